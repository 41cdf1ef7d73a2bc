package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/wotd/internal/tui"
)

// NewBrowseCommand creates the browse command.
func NewBrowseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse words in an interactive terminal UI",
		Long: `Browse words in an interactive terminal UI.

Keys:
  ←/p  previous word        →/n  next word (up to today)
  h, / today's word         r    random word
  a    all words            b    bookmarks
  s    bookmark this word   c    copy link
  ?    all keys             q    quit`,
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

			m := tui.New(s.nav, store, tui.Options{
				Clock:   s.clock,
				BaseURL: s.cfg.BaseURL,
			})
			if err := tui.Run(m); err != nil {
				return s.out.Fail(ExitCommandError, ErrCodeGeneric, "terminal UI failed", err)
			}
			return nil
		},
	}
}
