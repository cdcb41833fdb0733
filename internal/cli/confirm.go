package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var errAborted = errors.New("aborted by user")

// confirm asks a yes/no question on the command's input. Only "y" or "yes"
// (any case) confirms; end of input declines.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N]: ", prompt)

	reader := bufio.NewReader(cmd.InOrStdin())
	input, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes", nil
}

// requireConfirmation returns errAborted unless skip is set or the user
// confirms.
func requireConfirmation(cmd *cobra.Command, skip bool, prompt string) error {
	if skip {
		return nil
	}
	ok, err := confirm(cmd, prompt)
	if err != nil {
		return WrapExitError(ExitCommandError, "confirmation failed", err)
	}
	if !ok {
		return WrapExitError(ExitFailure, "operation cancelled", errAborted)
	}
	return nil
}
