package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pardal23/gato23/internal/store"
)

// DeleteOptions holds flags for the delete and clear commands.
type DeleteOptions struct {
	*RootOptions
	Yes bool
}

// DeleteResult holds the output of the delete and clear commands.
type DeleteResult struct {
	ID      int64 `json:"id,omitempty"`
	Removed int   `json:"removed"`
}

func (r DeleteResult) String() string {
	if r.ID != 0 {
		return fmt.Sprintf("Deleted record %d", r.ID)
	}
	return fmt.Sprintf("Removed %d record(s)", r.Removed)
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one record",
		Long: `Delete one record. Deleting an id that does not exist succeeds.

Asks for confirmation unless --yes is given.

Examples:
  vault delete 3
  vault delete 3 --yes`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(opts, cmd, args[0])
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "skip confirmation")

	return cmd
}

func runDelete(opts *DeleteOptions, cmd *cobra.Command, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	return withStore(opts.RootOptions, cmd, func(ctx context.Context, e *env, st *store.Store) error {
		if err := requireConfirmation(cmd, opts.Yes, fmt.Sprintf("Delete record %d?", id)); err != nil {
			return err
		}
		if err := st.Delete(ctx, id); err != nil {
			return storeExitError(fmt.Sprintf("failed to delete record %d", id), err)
		}
		return e.out.Success(DeleteResult{ID: id})
	})
}

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every record",
		Long: `Delete every record in the vault. Record ids are not reused afterwards.

Asks for confirmation unless --yes is given.

Examples:
  vault clear --yes`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(opts, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "skip confirmation")

	return cmd
}

func runClear(opts *DeleteOptions, cmd *cobra.Command) error {
	return withStore(opts.RootOptions, cmd, func(ctx context.Context, e *env, st *store.Store) error {
		count, err := st.Count(ctx)
		if err != nil {
			return storeExitError("failed to count records", err)
		}

		if err := requireConfirmation(cmd, opts.Yes, fmt.Sprintf("Delete all %d record(s)?", count)); err != nil {
			return err
		}
		if err := st.Clear(ctx); err != nil {
			return storeExitError("failed to clear records", err)
		}
		return e.out.Success(DeleteResult{Removed: count})
	})
}
