// Package main is the entry point for supplydw.
package main

import (
	"fmt"
	"os"

	"github.com/chainsight/supplydw/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
