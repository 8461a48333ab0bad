// Package main provides the entry point for the morphpop TUI.
//
// morphpop animates a trigger card into a floating panel and back, keeping
// the panel clear of the input dock.
//
// Usage:
//
//	morphpop [--config file] [--duration ms] [--debug]
package main

import (
	"fmt"
	"os"

	"github.com/riordanpawley/morphpop/internal/cli"
)

func main() {
	if err := cli.NewApp(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
