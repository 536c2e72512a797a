// Command diaviz converts Thrill worker logs into Graphviz DIA graphs.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/diaviz/internal/cli"
	"github.com/matzehuels/diaviz/pkg/errors"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps its error to an exit status:
// 0 on success (including the usage message), 130 when interrupted, 1
// otherwise.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := cli.New(os.Stderr, cli.LogInfo)
	err := c.RootCommand().ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, context.Canceled):
		return 130
	}

	if code := errors.GetCode(err); code != "" {
		fmt.Fprintf(os.Stderr, "diaviz: %s (%s)\n", errors.UserMessage(err), code)
	} else {
		fmt.Fprintf(os.Stderr, "diaviz: %s\n", err)
	}
	return 1
}
