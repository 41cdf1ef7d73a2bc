package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/wotd/internal/dataset"
	"github.com/roach88/wotd/internal/words"
)

// MaintainOptions holds the output flags shared by renumber and extend.
type MaintainOptions struct {
	*RootOptions
	Write  bool
	Output string
}

// ExtendOptions holds flags for the extend command.
type ExtendOptions struct {
	MaintainOptions
	From string
}

// MaintainResult describes a rewritten data file.
type MaintainResult struct {
	File      string `json:"file"`
	Words     int    `json:"words"`
	Added     int    `json:"added,omitempty"`
	FirstDate string `json:"first_date,omitempty"`
	LastDate  string `json:"last_date,omitempty"`
}

func (o *MaintainOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&o.Write, "write", "w", false, "rewrite the data file in place")
	cmd.Flags().StringVarP(&o.Output, "output", "o", "", "write the result to this file")
	cmd.MarkFlagsMutuallyExclusive("write", "output")
}

// NewRenumberCommand creates the renumber command.
func NewRenumberCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MaintainOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "renumber <data-file>",
		Short: "Reassign word ids 1..N by position",
		Long: `Reassign every id from its position (1-based) and refresh
metadata.totalWords and metadata.lastUpdated.

The result is printed unless --write or --output is given.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaintain(opts, cmd, args[0], func(s *session, doc words.Document) (words.Document, MaintainResult, error) {
				out := dataset.Renumber(doc, s.clock.Now())
				return out, MaintainResult{Words: len(out.Words)}, nil
			})
		},
	}

	opts.addFlags(cmd)

	return cmd
}

// NewExtendCommand creates the extend command.
func NewExtendCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExtendOptions{MaintainOptions: MaintainOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "extend <data-file> --from <pool-file>",
		Short: "Append new words to the calendar",
		Long: `Append the words of a pool file to the data file. The first new word is
dated the day after the last word (or startDate for an empty file) and
ids continue from the last word. Any id or date in the pool is replaced.

The pool is a JSON array of words or a full data file.

Example:
  wotd extend words.json --from new-words.json --write`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaintain(&opts.MaintainOptions, cmd, args[0], func(s *session, doc words.Document) (words.Document, MaintainResult, error) {
				raw, err := readDataFile(s.out, opts.From)
				if err != nil {
					return words.Document{}, MaintainResult{}, err
				}
				pool, err := dataset.DecodePool(raw)
				if err != nil {
					return words.Document{}, MaintainResult{}, s.out.Fail(ExitCommandError, ErrCodeInvalidArg, fmt.Sprintf("invalid pool %s", opts.From), err)
				}
				out, err := dataset.Extend(doc, pool, s.clock.Now())
				if err != nil {
					return words.Document{}, MaintainResult{}, s.out.Fail(ExitCommandError, ErrCodeInvalidData, "failed to extend", err)
				}
				result := MaintainResult{Words: len(out.Words), Added: len(pool)}
				if len(pool) > 0 {
					result.FirstDate = out.Words[len(doc.Words)].Date
					result.LastDate = out.Words[len(out.Words)-1].Date
				}
				return out, result, nil
			})
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVar(&opts.From, "from", "", "pool of new words (required)")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

type maintainFunc func(s *session, doc words.Document) (words.Document, MaintainResult, error)

func runMaintain(opts *MaintainOptions, cmd *cobra.Command, path string, fn maintainFunc) error {
	s, err := opts.openConfig(cmd)
	if err != nil {
		return err
	}

	doc, err := words.ReadDocument(path)
	if err != nil {
		return s.loadFailure(path, err)
	}

	out, result, err := fn(s, doc)
	if err != nil {
		return err
	}
	data, err := dataset.Encode(out)
	if err != nil {
		return s.out.Fail(ExitCommandError, ErrCodeGeneric, "failed to encode", err)
	}

	target := opts.Output
	if opts.Write {
		target = path
	}
	if target == "" {
		_, err := s.out.Writer.Write(data)
		return err
	}

	if err := os.WriteFile(target, data, 0o644); err != nil {
		return s.out.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("failed to write %s", target), err)
	}
	s.logger.Info("data file written", "path", target, "words", result.Words)

	result.File = target
	return s.out.Render(result, func(w io.Writer) {
		if result.Added > 0 {
			fmt.Fprintf(w, "Added %d words (%s to %s) to %s\n", result.Added, result.FirstDate, result.LastDate, target)
			return
		}
		fmt.Fprintf(w, "Wrote %d words to %s\n", result.Words, target)
	})
}
