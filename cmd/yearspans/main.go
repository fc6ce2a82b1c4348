// Command yearspans resolves historical date expressions to year spans.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/roach88/yearspans/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.NewRootCommand())
	stop()
	os.Exit(code)
}
