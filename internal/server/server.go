// Package server exposes the word collection and bookmarks as a JSON API
// and optionally serves an exported static site.
//
// Handlers read the collection through an atomic pointer. A reload
// builds a new Collection and swaps it in; in-flight requests keep the
// snapshot they started with.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/wotd/internal/bookmarks"
	"github.com/roach88/wotd/internal/navigation"
	"github.com/roach88/wotd/internal/rewrite"
	"github.com/roach88/wotd/internal/words"
)

const (
	defaultReloadDebounce = 200 * time.Millisecond
	shutdownTimeout       = 5 * time.Second
)

// Options configures a Server. Zero fields take defaults.
type Options struct {
	Clock  navigation.Clock
	IDs    IDGenerator
	Logger *slog.Logger
	// Rand replaces the random source of the random-word endpoint.
	Rand navigation.IntN
	// Static, when set, is served for every path the API does not claim,
	// through the edge rewrite rule.
	Static fs.FS
	// CORSOrigins enables CORS for the listed origins.
	CORSOrigins []string
	// BaseURL prefixes share links. Empty omits them.
	BaseURL string
	// WatchPath, when set, is reloaded on change while serving.
	WatchPath      string
	ReloadDebounce time.Duration
}

type snapshot struct {
	words *words.Collection
	nav   *navigation.Resolver
}

// Server is the HTTP surface.
type Server struct {
	current   atomic.Pointer[snapshot]
	bookmarks *bookmarks.Store
	opts      Options
	logger    *slog.Logger
	metrics   *Metrics
}

// New creates a Server over c and store.
func New(c *words.Collection, store *bookmarks.Store, opts Options) *Server {
	if opts.Clock == nil {
		opts.Clock = navigation.SystemClock{}
	}
	if opts.IDs == nil {
		opts.IDs = UUIDv7Generator{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ReloadDebounce <= 0 {
		opts.ReloadDebounce = defaultReloadDebounce
	}

	s := &Server{
		bookmarks: store,
		opts:      opts,
		logger:    opts.Logger,
		metrics:   NewMetrics(),
	}
	s.Swap(c)
	return s
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Collection returns the collection currently served.
func (s *Server) Collection() *words.Collection {
	return s.current.Load().words
}

// Swap replaces the served collection.
func (s *Server) Swap(c *words.Collection) {
	var navOpts []navigation.Option
	if s.opts.Rand != nil {
		navOpts = append(navOpts, navigation.WithRand(s.opts.Rand))
	}
	s.current.Store(&snapshot{words: c, nav: navigation.New(c, navOpts...)})
	s.metrics.WordsLoaded.Set(float64(c.Len()))
}

// Reload loads path and swaps it in. On failure the served collection
// is left unchanged.
func (s *Server) Reload(path string) error {
	c, err := words.Load(path)
	if err != nil {
		s.metrics.Reloads.WithLabelValues("error").Inc()
		s.logger.Error("reload failed, keeping current words", "path", path, "error", err)
		return err
	}
	s.Swap(c)
	s.metrics.Reloads.WithLabelValues("ok").Inc()
	s.logger.Info("reloaded words", "path", path, "words", c.Len())
	return nil
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(requestIDMiddleware(s.opts.IDs))
	r.Use(observe(s.logger, s.metrics))
	if len(s.opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
			ExposedHeaders: []string{RequestIDHeader},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/today", s.handleToday)
		r.Get("/words", s.handleWords)
		r.Get("/words/{slug}", s.handleWord)
		r.Get("/random", s.handleRandom)
		r.Get("/slugs", s.handleSlugs)
		r.Get("/facets", s.handleFacets)

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", s.handleBookmarks)
			r.Delete("/", s.handleClearBookmarks)
			r.Get("/{date}", s.handleBookmark)
			r.Post("/{date}/toggle", s.handleToggleBookmark)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, codeNotFound, "no such endpoint")
		})
	})

	if s.opts.Static != nil {
		r.NotFound(rewrite.Middleware(rewrite.ObjectServer(s.opts.Static)).ServeHTTP)
	}
	return r
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
// With WatchPath set, the data file watcher runs alongside; either
// failing stops both.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("serving", "addr", ln.Addr().String(), "words", s.Collection().Len())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	})

	if s.opts.WatchPath != "" {
		g.Go(func() error {
			return s.Watch(ctx, s.opts.WatchPath)
		})
	}

	return g.Wait()
}
