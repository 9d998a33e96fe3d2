// Command carbondesk validates GHG activity data and calculates
// Scope 1/2/3 CO2e totals.
package main

import (
	"context"
	"os"

	"github.com/carbondesk/carbondesk/internal/cli"
	"github.com/carbondesk/carbondesk/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps the outcome to an exit code.
// Split from main so tests can exercise it.
func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	if err := root.ExecuteContext(context.Background()); err != nil {
		// Cobra has already printed the error.
		return 1
	}
	return 0
}
