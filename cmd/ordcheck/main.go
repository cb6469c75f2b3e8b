package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/platinummonkey/ordcheck/pkg/cli"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cli.Version = version
	rootCmd := cli.NewRootCommand()

	err := rootCmd.Execute()
	switch {
	case err == nil:
	case errors.Is(err, cli.ErrRejected):
		// findings were already printed
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
