package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pardal23/gato23/internal/export"
)

var errEmptyNote = errors.New("no note saved")

// NoteOptions holds flags for the note commands.
type NoteOptions struct {
	*RootOptions
	FromID string
	OutDir string
}

// NoteResult holds the output of the note commands.
type NoteResult struct {
	Text  string `json:"text"`
	Saved bool   `json:"saved"`
}

func (r NoteResult) String() string {
	if r.Saved {
		return fmt.Sprintf("Saved note (%d bytes)", len(r.Text))
	}
	return r.Text
}

// NewNoteCommand creates the note command group.
func NewNoteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Edit the scratch note",
		Long: `Work with the scratch note, a single piece of text kept next to the
vault. Saving replaces the previous note.`,
	}

	cmd.AddCommand(newNoteSaveCommand(rootOpts))
	cmd.AddCommand(newNoteLoadCommand(rootOpts))
	cmd.AddCommand(newNoteExportCommand(rootOpts))

	return cmd
}

func newNoteSaveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NoteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "save [TEXT]",
		Short: "Save the scratch note",
		Long: `Save the scratch note.

The text comes from the argument, from a text record (--from ID), or from
standard input when neither is given.

Examples:
  vault note save "remember the milk"
  vault note save --from 3
  echo draft | vault note save`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNoteSave(opts, cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.FromID, "from", "", "copy the text of this record")

	return cmd
}

func runNoteSave(opts *NoteOptions, cmd *cobra.Command, args []string) error {
	if opts.FromID != "" && len(args) > 0 {
		return NewExitError(ExitCommandError, "give either TEXT or --from, not both")
	}

	return withEnv(opts.RootOptions, cmd, func(e *env) error {
		text, err := noteText(cmd, e, opts, args)
		if err != nil {
			return err
		}

		if err := e.slot.Save(text); err != nil {
			return WrapExitError(ExitCommandError, "failed to save note", err)
		}
		e.out.VerboseLog("Saved note to %s", e.slot.Path())
		return e.out.Success(NoteResult{Text: text, Saved: true})
	})
}

func noteText(cmd *cobra.Command, e *env, opts *NoteOptions, args []string) (string, error) {
	switch {
	case len(args) == 1:
		return args[0], nil

	case opts.FromID != "":
		id, err := parseID(opts.FromID)
		if err != nil {
			return "", err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		st, err := e.openStore(ctx)
		if err != nil {
			return "", err
		}
		rec, err := st.Get(ctx, id)
		if err != nil {
			return "", storeExitError(fmt.Sprintf("failed to read record %d", id), err)
		}
		if rec.TextContent == nil {
			return "", NewExitError(ExitFailure, fmt.Sprintf("record %d (%s) is not text", id, rec.Name))
		}
		return *rec.TextContent, nil

	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", WrapExitError(ExitCommandError, "failed to read note from input", err)
		}
		return string(data), nil
	}
}

func newNoteLoadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NoteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "load",
		Short:         "Print the scratch note",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(opts.RootOptions, cmd, func(e *env) error {
				text, ok, err := e.slot.Load()
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to load note", err)
				}
				if !ok {
					return WrapExitError(ExitFailure, "no note saved", errEmptyNote)
				}
				return e.out.Success(NoteResult{Text: text})
			})
		},
	}

	return cmd
}

func newNoteExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NoteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the scratch note to " + export.TextExportName,
		Long: `Write the scratch note to ` + export.TextExportName + `.

Exit codes:
  0 - File written
  1 - No note saved
  2 - Command error`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNoteExport(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.OutDir, "out", "o", ".", "directory to write the file to")

	return cmd
}

func runNoteExport(opts *NoteOptions, cmd *cobra.Command) error {
	return withEnv(opts.RootOptions, cmd, func(e *env) error {
		text, ok, err := e.slot.Load()
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load note", err)
		}
		if !ok {
			return WrapExitError(ExitFailure, "nothing to export", errEmptyNote)
		}

		result, err := saveDownload(export.Text(text), opts.OutDir)
		if err != nil {
			return err
		}
		return e.out.Success(result)
	})
}
