package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/roach88/wotd/internal/bookmarks"
	"github.com/roach88/wotd/internal/config"
	"github.com/roach88/wotd/internal/navigation"
	"github.com/roach88/wotd/internal/words"
)

// session is what a command works against once config and words are
// loaded.
type session struct {
	opts   *RootOptions
	out    *OutputFormatter
	logger *slog.Logger
	cfg    *config.Config
	clock  navigation.Clock
	words  *words.Collection
	nav    *navigation.Resolver
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// newLogger configures logging based on the verbose flag.
func (o *RootOptions) newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig resolves file, environment and then flags.
func (o *RootOptions) loadConfig() (*config.Config, error) {
	lookup := o.Env
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return config.Resolve(o.ConfigPath, lookup, config.Overrides{
		Data:             o.Data,
		Timezone:         o.Timezone,
		BookmarksBackend: o.BookmarksBackend,
		BookmarksPath:    o.BookmarksPath,
	})
}

// openConfig loads the config and clock without touching word data.
func (o *RootOptions) openConfig(cmd *cobra.Command) (*session, error) {
	s := &session{
		opts:   o,
		out:    o.formatter(cmd),
		logger: o.newLogger(cmd.ErrOrStderr()),
	}

	cfg, err := o.loadConfig()
	if err != nil {
		return nil, s.out.Fail(ExitCommandError, ErrCodeConfig, "failed to load config", err)
	}
	s.cfg = cfg
	if cfg.Source != "" {
		s.out.VerboseLog("Using config %s", cfg.Source)
	}

	s.clock = o.Clock
	if s.clock == nil {
		loc, err := cfg.Location()
		if err != nil {
			return nil, s.out.Fail(ExitCommandError, ErrCodeConfig, "failed to load config", err)
		}
		s.clock = navigation.SystemClock{Location: loc}
	}
	return s, nil
}

// open loads config and the word collection.
func (o *RootOptions) open(cmd *cobra.Command) (*session, error) {
	s, err := o.openConfig(cmd)
	if err != nil {
		return nil, err
	}

	if s.cfg.Data == "" {
		s.words = words.Default()
		s.out.VerboseLog("Using bundled words (%d)", s.words.Len())
	} else {
		c, err := words.Load(s.cfg.Data)
		if err != nil {
			return nil, s.loadFailure(s.cfg.Data, err)
		}
		s.words = c
		s.out.VerboseLog("Loaded %d words from %s", c.Len(), s.cfg.Data)
	}

	var navOpts []navigation.Option
	if o.Rand != nil {
		navOpts = append(navOpts, navigation.WithRand(o.Rand))
	}
	s.nav = navigation.New(s.words, navOpts...)
	return s, nil
}

// loadFailure reports a data file error under the loader's own code.
func (s *session) loadFailure(path string, err error) error {
	code := ErrCodeGeneric
	var le *words.LoadError
	if errors.As(err, &le) {
		code = le.Code
	}
	if words.IsNotFound(err) {
		return s.out.Fail(ExitCommandError, code, fmt.Sprintf("data file not found: %s", path), nil)
	}
	return s.out.Fail(ExitCommandError, code, fmt.Sprintf("failed to load %s", path), err)
}

// openBookmarks opens the configured bookmark store. The closer must be
// closed when the command finishes.
func (s *session) openBookmarks() (*bookmarks.Store, io.Closer, error) {
	b := s.cfg.Bookmarks
	st, closer, err := bookmarks.OpenStorage(b.Backend, b.Path)
	if err != nil {
		return nil, nil, s.out.Fail(ExitCommandError, ErrCodeStorage, "failed to open bookmarks", err)
	}
	s.out.VerboseLog("Bookmarks: %s %s", b.Backend, b.Path)
	return bookmarks.New(st, bookmarks.WithLogger(s.logger)), closer, nil
}

func (s *session) closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		s.logger.Error("error closing bookmarks", "error", err)
	}
}

func (s *session) confirm(title string) (bool, error) {
	if s.opts.Confirm != nil {
		return s.opts.Confirm(title)
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}
