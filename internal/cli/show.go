package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pardal23/gato23/internal/store"
)

// ShowResult holds the output of the show command.
type ShowResult struct {
	RecordView
	Content *string `json:"content"`
}

func (r ShowResult) String() string {
	if r.Content == nil {
		return fmt.Sprintf("[Binary file: %s - Not displayable]", r.Name)
	}
	return *r.Content
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Print the text content of a record",
		Long: `Print the text content of a record.

Binary records are not printed; a placeholder naming the file is shown
instead. Use "vault get" to retrieve the raw bytes.

Exit codes:
  0 - Record shown
  1 - No record with that id
  2 - Command error

Examples:
  vault show 3`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runShow(opts *RootOptions, cmd *cobra.Command, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	return withStore(opts, cmd, func(ctx context.Context, e *env, st *store.Store) error {
		rec, err := st.Get(ctx, id)
		if err != nil {
			return storeExitError(fmt.Sprintf("failed to read record %d", id), err)
		}
		return e.out.Success(ShowResult{RecordView: newRecordView(rec), Content: rec.TextContent})
	})
}
