package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/wotd/internal/archive"
	"github.com/roach88/wotd/internal/server"
	"github.com/roach88/wotd/internal/words"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Filter archive.Filter
}

// RandomOptions holds flags for the random command.
type RandomOptions struct {
	*RootOptions
	Exclude string
}

// SlugList is the slugs command result.
type SlugList struct {
	Slugs []string `json:"slugs"`
}

// NewTodayCommand creates the today command.
func NewTodayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's word",
		Long: `Show the word scheduled for today.

When no word is dated today (before the start date or after the last
entry) the first word is shown instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.open(cmd)
			if err != nil {
				return err
			}
			w, ok := s.words.Today(s.clock.Now())
			if !ok {
				return s.out.Fail(ExitFailure, ErrCodeNotFound, "no words loaded", nil)
			}
			return s.showPage(w)
		},
	}
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <slug>",
		Short: "Show a word by date or name",
		Long: `Show a word by its slug: an 8-digit date (YYYYMMDD) or the word itself,
case-insensitively. Words dated after today are shown as coming soon.

Example:
  wotd show 20251207
  wotd show Abundant`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.open(cmd)
			if err != nil {
				return err
			}
			w, ok := s.words.BySlug(args[0])
			if !ok {
				return s.out.Fail(ExitFailure, ErrCodeNotFound, fmt.Sprintf("no word for %q", args[0]), nil)
			}
			return s.showPage(w)
		},
	}
}

// NewRandomCommand creates the random command.
func NewRandomCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RandomOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Show a random word that has already been revealed",
		Long: `Show a random word among those dated today or earlier.

Today's word is excluded unless --exclude names another date.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			now := s.clock.Now()
			exclude := opts.Exclude
			if exclude == "" {
				if today, ok := s.words.Today(now); ok {
					exclude = today.Date
				}
			}
			w, ok := s.nav.PickRandomVisible(exclude, now)
			if !ok {
				return s.out.Fail(ExitFailure, ErrCodeNoVisible, "no visible words to pick from", nil)
			}
			return s.showPage(w)
		},
	}

	cmd.Flags().StringVar(&opts.Exclude, "exclude", "", "date to leave out (default: today's word)")

	return cmd
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List and search all words",
		Long: `List every word, optionally filtered.

--query matches the word or its definition, case-insensitively.
--difficulty and --pos match exactly; "all" matches everything.

Example:
  wotd list --query plenty
  wotd list --pos verb --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Filter.Query, "query", "q", "", "search word and definition")
	cmd.Flags().StringVar(&opts.Filter.Difficulty, "difficulty", "", "beginner|intermediate|advanced|all")
	cmd.Flags().StringVar(&opts.Filter.PartOfSpeech, "pos", "", "part of speech, e.g. noun")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	if err := validate.Struct(opts.Filter); err != nil {
		return out.Fail(ExitCommandError, ErrCodeInvalidArg,
			fmt.Sprintf("invalid difficulty %q: must be one of all, beginner, intermediate, advanced", opts.Filter.Difficulty), nil)
	}

	s, err := opts.open(cmd)
	if err != nil {
		return err
	}

	all := s.words.All()
	found := archive.Search(all, opts.Filter)
	result := server.WordList{
		Words:  found,
		Shown:  len(found),
		Total:  len(all),
		Filter: opts.Filter,
	}
	return s.out.Render(result, func(w io.Writer) {
		if len(found) == 0 {
			fmt.Fprintln(w, "No words match.")
			return
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "DATE\tWORD\tPART OF SPEECH\tDIFFICULTY")
		for _, word := range found {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", word.Date, word.Word, word.PartOfSpeech, word.Difficulty)
		}
		_ = tw.Flush()
		fmt.Fprintf(w, "\nShowing %d of %d words\n", result.Shown, result.Total)
	})
}

// NewSlugsCommand creates the slugs command.
func NewSlugsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "slugs",
		Short: "Print every page slug",
		Long: `Print the slug of every word page: its date and then its lower-cased
name, one per line. This is the page list a static export generates.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.open(cmd)
			if err != nil {
				return err
			}
			slugs := s.words.Slugs()
			return s.out.Render(SlugList{Slugs: slugs}, func(w io.Writer) {
				for _, slug := range slugs {
					fmt.Fprintln(w, slug)
				}
			})
		},
	}
}

// showPage renders w the way its page would at the current time.
func (s *session) showPage(w words.Word) error {
	store, closer, err := s.openBookmarks()
	if err != nil {
		return err
	}
	defer s.closeQuietly(closer)

	now := s.clock.Now()
	page := server.NewWordPage(s.nav, store, w, now, s.cfg.BaseURL)
	_, hasNext := s.nav.Next(w.Date)
	return s.out.Render(page, func(out io.Writer) {
		writePage(out, page, hasNext)
	})
}

const labelWidth = 12

func writeField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%-*s%s\n", labelWidth, label+":", value)
}

func neighbour(w *words.Word) string {
	return fmt.Sprintf("%s (%s)", w.Word, w.Date)
}

// writePage writes the text form of a word page. hasNext reports whether
// any later word exists, revealed or not.
func writePage(w io.Writer, p server.WordPage, hasNext bool) {
	if p.ComingSoon {
		day := words.DisplayDate(p.Date)
		fmt.Fprintln(w, "Coming Soon")
		fmt.Fprintln(w, day)
		fmt.Fprintln(w)
		fmt.Fprintf(w, "This word will be revealed on %s. Check back then to discover a new word!\n", day)
		if p.Previous != nil {
			fmt.Fprintln(w)
			writeField(w, "Previous", neighbour(p.Previous))
		}
		return
	}

	word := p.Word
	fmt.Fprintf(w, "%s (%s)\n", word.Word, word.Pronunciation)
	meta := word.PartOfSpeech
	if word.Difficulty != "" {
		meta += " · " + string(word.Difficulty)
	}
	fmt.Fprintln(w, meta)
	fmt.Fprintln(w, words.DisplayDate(word.Date))
	fmt.Fprintln(w)
	fmt.Fprintln(w, word.Definition)
	fmt.Fprintln(w)
	writeField(w, "Example", word.Example)
	writeField(w, "Etymology", word.Etymology)
	if len(word.Synonyms) > 0 {
		writeField(w, "Synonyms", strings.Join(word.Synonyms, ", "))
	}
	if len(word.Tags) > 0 {
		writeField(w, "Tags", strings.Join(word.Tags, ", "))
	}
	bookmarked := "no"
	if p.Bookmarked {
		bookmarked = "yes"
	}
	writeField(w, "Bookmarked", bookmarked)
	fmt.Fprintln(w)

	prev := "(none)"
	if p.Previous != nil {
		prev = neighbour(p.Previous)
	}
	writeField(w, "Previous", prev)
	next := "(none)"
	switch {
	case p.Next != nil:
		next = neighbour(p.Next)
	case hasNext:
		next = "(not yet revealed)"
	}
	writeField(w, "Next", next)
	if p.ShareURL != "" {
		writeField(w, "Link", p.ShareURL)
	}
}
