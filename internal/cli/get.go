package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pardal23/gato23/internal/export"
	"github.com/pardal23/gato23/internal/store"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
	OutDir string
}

// SavedResult describes a download written to disk.
type SavedResult struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Size     int    `json:"size"`
}

func (r SavedResult) String() string {
	return fmt.Sprintf("Saved %s (%s, %d bytes)", r.Path, r.MimeType, r.Size)
}

func saveDownload(d export.Download, dir string) (SavedResult, error) {
	path, err := d.Save(dir)
	if err != nil {
		return SavedResult{}, WrapExitError(ExitCommandError, "failed to write file", err)
	}
	return SavedResult{Path: path, Name: d.Name, MimeType: d.MimeType, Size: len(d.Data)}, nil
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Write a record's original bytes to a file",
		Long: `Write a record's original bytes to a file named after the record.

Examples:
  vault get 3
  vault get 3 --out ./restored`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.OutDir, "out", "o", ".", "directory to write the file to")

	return cmd
}

func runGet(opts *GetOptions, cmd *cobra.Command, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	return withStore(opts.RootOptions, cmd, func(ctx context.Context, e *env, st *store.Store) error {
		d, err := export.New(st, export.WithLogger(e.logger.Named("export"))).ExportOne(ctx, id)
		if err != nil {
			return storeExitError(fmt.Sprintf("failed to read record %d", id), err)
		}

		result, err := saveDownload(d, opts.OutDir)
		if err != nil {
			return err
		}
		return e.out.Success(result)
	})
}
