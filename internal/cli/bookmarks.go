package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/wotd/internal/archive"
	"github.com/roach88/wotd/internal/navigation"
	"github.com/roach88/wotd/internal/server"
	"github.com/roach88/wotd/internal/words"
)

// ClearResult is the bookmarks clear result.
type ClearResult struct {
	Cleared bool `json:"cleared"`
	Removed int  `json:"removed"`
}

// NewBookmarksCommand creates the bookmarks command and its subcommands.
func NewBookmarksCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "Manage bookmarked words",
		Long: `Manage the local bookmark list.

Bookmarks are dates. They are stored on this machine only, in the
backend chosen by bookmarks.backend (memory, file or sqlite).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newBookmarksListCommand(rootOpts))
	cmd.AddCommand(newBookmarksHasCommand(rootOpts))
	cmd.AddCommand(newBookmarksToggleCommand(rootOpts))
	cmd.AddCommand(newBookmarksClearCommand(rootOpts))

	return cmd
}

func newBookmarksListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List bookmarked words, most recent first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.open(cmd)
			if err != nil {
				return err
			}
			store, closer, err := s.openBookmarks()
			if err != nil {
				return err
			}
			defer s.closeQuietly(closer)

			dates := store.List()
			result := server.BookmarkList{
				Dates: dates,
				Words: archive.BookmarkedVisible(s.words, dates, s.clock.Now()),
			}
			return s.out.Render(result, func(w io.Writer) {
				if len(result.Words) == 0 {
					fmt.Fprintln(w, "No bookmarks yet.")
					return
				}
				for _, word := range result.Words {
					fmt.Fprintf(w, "%s  %s\n", word.Date, word.Word)
				}
			})
		},
	}
}

func newBookmarksHasCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "has <date>",
		Short:         "Report whether a date is bookmarked",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBookmark(rootOpts, cmd, args[0], false)
		},
	}
}

func newBookmarksToggleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <date>",
		Short: "Add or remove a bookmark",
		Long: `Add the bookmark for a date, or remove it if it is already set.

Example:
  wotd bookmarks toggle 20251207`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBookmark(rootOpts, cmd, args[0], true)
		},
	}
}

func runBookmark(opts *RootOptions, cmd *cobra.Command, date string, toggle bool) error {
	out := opts.formatter(cmd)
	if !words.IsDateSlug(date) {
		return out.Fail(ExitCommandError, ErrCodeInvalidArg, fmt.Sprintf("invalid date %q: want YYYYMMDD", date), nil)
	}

	s, err := opts.open(cmd)
	if err != nil {
		return err
	}
	store, closer, err := s.openBookmarks()
	if err != nil {
		return err
	}
	defer s.closeQuietly(closer)

	var state server.BookmarkState
	if toggle {
		state = server.BookmarkState{Date: date, Bookmarked: store.Toggle(date)}
		s.logger.Debug("bookmark toggled", "date", date, "bookmarked", state.Bookmarked)
	} else {
		state = server.BookmarkState{Date: date, Bookmarked: store.Has(date)}
	}

	label := date
	if w, ok := s.words.ByDate(date); ok && navigation.Visible(w, s.clock.Now()) {
		label = fmt.Sprintf("%s (%s)", date, w.Word)
	}
	return s.out.Render(state, func(w io.Writer) {
		switch {
		case !toggle && state.Bookmarked:
			fmt.Fprintf(w, "%s is bookmarked\n", label)
		case !toggle:
			fmt.Fprintf(w, "%s is not bookmarked\n", label)
		case state.Bookmarked:
			fmt.Fprintf(w, "Bookmarked %s\n", label)
		default:
			fmt.Fprintf(w, "Removed bookmark %s\n", label)
		}
	})
}

func newBookmarksClearCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:           "clear",
		Short:         "Remove every bookmark",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.openConfig(cmd)
			if err != nil {
				return err
			}
			store, closer, err := s.openBookmarks()
			if err != nil {
				return err
			}
			defer s.closeQuietly(closer)

			count := len(store.List())
			if count > 0 && !yes {
				ok, err := s.confirm(fmt.Sprintf("Remove all %d bookmarks?", count))
				if err != nil {
					return s.out.Fail(ExitCommandError, ErrCodeGeneric, "confirmation failed", err)
				}
				if !ok {
					return s.out.Render(ClearResult{}, func(w io.Writer) {
						fmt.Fprintln(w, "Kept bookmarks.")
					})
				}
			}

			store.Clear()
			return s.out.Render(ClearResult{Cleared: true, Removed: count}, func(w io.Writer) {
				fmt.Fprintf(w, "Removed %d bookmarks.\n", count)
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}
