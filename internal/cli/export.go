package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pardal23/gato23/internal/export"
	"github.com/pardal23/gato23/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	OutDir string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Bundle every record into a zip backup",
		Long: `Bundle every record into ` + export.BackupName + `.

Each record becomes one zip entry named after the record.

Exit codes:
  0 - Backup written
  1 - Nothing to export (the vault is empty)
  2 - Command error

Examples:
  vault export
  vault export --out ./backups`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.OutDir, "out", "o", ".", "directory to write the backup to")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	return withStore(opts.RootOptions, cmd, func(ctx context.Context, e *env, st *store.Store) error {
		d, ok, err := export.New(st, export.WithLogger(e.logger.Named("export"))).ExportStore(ctx)
		if err != nil {
			return storeExitError("failed to export records", err)
		}
		if !ok {
			return WrapExitError(ExitFailure, "vault is empty", export.ErrNothingToExport)
		}

		result, err := saveDownload(d, opts.OutDir)
		if err != nil {
			return err
		}
		return e.out.Success(result)
	})
}
