package cli

import (
	"cmp"
	"context"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pardal23/gato23/internal/store"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records, newest first",
		Long: `List every record in the vault, newest first.

Examples:
  vault list
  vault list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	return withStore(opts, cmd, func(ctx context.Context, e *env, st *store.Store) error {
		records, err := st.GetAll(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list records", err)
		}

		slices.SortStableFunc(records, func(a, b store.Record) int {
			if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
				return c
			}
			return cmp.Compare(b.ID, a.ID)
		})

		result := ListResult{
			Records: make([]RecordView, 0, len(records)),
			Total:   len(records),
		}
		for _, rec := range records {
			result.Records = append(result.Records, newRecordView(rec))
		}
		return e.out.Success(result)
	})
}
