package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pardal23/gato23/internal/importer"
	"github.com/pardal23/gato23/internal/store"
)

var errImportFailed = errors.New("import incomplete")

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
}

// ImportFileResult is the outcome of one imported file.
type ImportFileResult struct {
	Name  string  `json:"name"`
	IDs   []int64 `json:"ids"`
	Error string  `json:"error,omitempty"`
}

// ImportResult holds the output of the import command.
type ImportResult struct {
	BatchID   string             `json:"batch_id"`
	Files     []ImportFileResult `json:"files"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Records   int                `json:"records"`
	Summary   string             `json:"summary"`
}

func (r ImportResult) String() string {
	var b strings.Builder
	for _, f := range r.Files {
		if f.Error != "" {
			fmt.Fprintf(&b, "FAIL %s: %s\n", f.Name, f.Error)
			continue
		}
		fmt.Fprintf(&b, "ok   %s (%d record(s))\n", f.Name, len(f.IDs))
	}
	b.WriteString(r.Summary)
	return b.String()
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Import files into the vault",
		Long: `Import one or more files into the vault.

Zip and tar bundles (.zip, .tar, .tar.gz, .tgz, .tar.zst, .tzst) are expanded
and every file inside becomes its own record. Other files are stored as they
are. Files are imported one after another; a failing file does not stop the
rest of the batch.

Exit codes:
  0 - All files imported
  1 - At least one file failed
  2 - Command error (database unavailable, etc.)

Examples:
  vault import notes.txt photo.png
  vault import backup.zip --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, cmd, args)
		},
	}

	return cmd
}

func runImport(opts *ImportOptions, cmd *cobra.Command, paths []string) error {
	return withStore(opts.RootOptions, cmd, func(ctx context.Context, e *env, st *store.Store) error {
		inputs := make([]importer.Input, 0, len(paths))
		for _, path := range paths {
			inputs = append(inputs, importer.FileInput(path))
		}

		pipeline := importer.New(st,
			importer.WithClassifier(e.classifier),
			importer.WithLogger(e.logger.Named("import")),
		)
		report := pipeline.ImportAll(ctx, inputs)

		result := ImportResult{
			BatchID:   report.BatchID,
			Files:     make([]ImportFileResult, 0, len(report.Files)),
			Succeeded: report.Succeeded,
			Failed:    report.Failed,
			Records:   report.Records,
			Summary:   report.Summary(),
		}
		for _, f := range report.Files {
			fr := ImportFileResult{Name: f.Name, IDs: f.IDs}
			if f.Err != nil {
				fr.Error = f.Err.Error()
			}
			result.Files = append(result.Files, fr)
		}

		if report.Failed == 0 {
			return e.out.Success(result)
		}

		failure := WrapExitError(ExitFailure,
			fmt.Sprintf("%d of %d file(s) failed", report.Failed, len(report.Files)), errImportFailed)
		if e.out.Format == "json" {
			failure.Details = result
			return failure
		}
		if err := e.out.Success(result); err != nil {
			return err
		}
		return failure
	})
}
