package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/wotd/internal/server"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr        string
	Static      string
	Watch       bool
	CORSOrigins []string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the word API and an optional static site",
		Long: `Serve the words and bookmarks as a JSON API under /api, with /healthz
and /metrics.

With --static, every other path is served from that directory through
the edge rewrite rule: /about/ and /about both serve about/index.html.
With --watch, the data file is reloaded when it changes.

Example:
  wotd serve --addr :8080
  wotd serve --data ./words.json --watch --static ./out`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (default from config: localhost:8080)")
	cmd.Flags().StringVar(&opts.Static, "static", "", "directory of an exported static site")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "reload the data file when it changes")
	cmd.Flags().StringSliceVar(&opts.CORSOrigins, "cors-origin", nil, "allowed CORS origin (repeatable)")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	s, err := opts.open(cmd)
	if err != nil {
		return err
	}

	cfg := s.cfg.Server
	if opts.Addr != "" {
		cfg.Addr = opts.Addr
	}
	if opts.Static != "" {
		cfg.Static = opts.Static
	}
	if opts.Watch {
		cfg.Watch = true
	}
	if len(opts.CORSOrigins) > 0 {
		cfg.CORSOrigins = opts.CORSOrigins
	}

	srvOpts := server.Options{
		Clock:       s.clock,
		Logger:      s.logger,
		Rand:        opts.Rand,
		CORSOrigins: cfg.CORSOrigins,
		BaseURL:     s.cfg.BaseURL,
	}
	if cfg.Static != "" {
		info, err := os.Stat(cfg.Static)
		if err != nil || !info.IsDir() {
			return s.out.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("static directory not found: %s", cfg.Static), nil)
		}
		srvOpts.Static = os.DirFS(cfg.Static)
	}
	if cfg.Watch {
		if s.cfg.Data == "" {
			s.logger.Warn("watch ignored: serving bundled words")
		} else {
			srvOpts.WatchPath = s.cfg.Data
		}
	}

	store, closer, err := s.openBookmarks()
	if err != nil {
		return err
	}
	defer s.closeQuietly(closer)

	srv := server.New(s.words, store, srvOpts)

	// Setup signal handling for graceful shutdown
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.logger.Info("server starting", "addr", cfg.Addr, "words", s.words.Len(), "static", cfg.Static, "watch", srvOpts.WatchPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %d words on http://%s\n", s.words.Len(), cfg.Addr)
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl-C to stop.")

	if err := srv.Run(ctx, cfg.Addr); err != nil {
		return s.out.Fail(ExitCommandError, ErrCodeGeneric, "server error", err)
	}

	s.logger.Info("server stopped gracefully")
	return nil
}
