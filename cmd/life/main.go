// Command life simulates Conway's Game of Life without a window.
package main

import (
	"fmt"
	"os"

	"life-torus/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
