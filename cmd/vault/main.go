// Command vault stores files in a local SQLite-backed vault.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/pardal23/gato23/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
