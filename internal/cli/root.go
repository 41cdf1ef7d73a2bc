package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/wotd/internal/config"
	"github.com/roach88/wotd/internal/navigation"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	ConfigPath       string
	Data             string
	Timezone         string
	BookmarksBackend string
	BookmarksPath    string

	// Clock overrides the wall clock (for testing).
	// If nil, defaults to a SystemClock in the configured time zone.
	Clock navigation.Clock
	// Env overrides the process environment (for testing).
	Env config.LookupFunc
	// Rand overrides the random source of the random command (for testing).
	Rand navigation.IntN
	// Confirm overrides the interactive yes/no prompt (for testing).
	Confirm func(title string) (bool, error)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the wotd CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the root command around opts, so
// callers can preset the test hooks.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wotd",
		Short: "wotd - Word of the Day",
		Long: `A vocabulary word of the day: one word per calendar day, with
browsing, search, bookmarks and a random pick.

Words dated after today stay hidden until their day comes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default ./"+config.DefaultFile+" if present)")
	flags.StringVar(&opts.Data, "data", "", "word data file (default: bundled words)")
	flags.StringVar(&opts.Timezone, "tz", "", "time zone deciding which day is today (default: local)")
	flags.StringVar(&opts.BookmarksBackend, "bookmarks-backend", "", "bookmark storage (memory|file|sqlite)")
	flags.StringVar(&opts.BookmarksPath, "bookmarks-path", "", "bookmark file or database path")

	// Add subcommands
	cmd.AddCommand(NewTodayCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewRandomCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewSlugsCommand(opts))
	cmd.AddCommand(NewBookmarksCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewRenumberCommand(opts))
	cmd.AddCommand(NewExtendCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewBrowseCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
