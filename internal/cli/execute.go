package cli

import (
	"context"
	"fmt"
	"io"
)

// Execute runs the vault CLI with args and returns the process exit code.
// Errors are reported on stderr, or as a JSON error envelope on stdout when
// --format json is selected. A JSON run writes exactly one envelope.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	format, _ := cmd.PersistentFlags().GetString("format")
	if format == "json" {
		out := &OutputFormatter{Format: format, Writer: stdout}
		_ = out.Error(ErrorCode(err), err.Error(), ErrorDetails(err))
	} else {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return GetExitCode(err)
}
