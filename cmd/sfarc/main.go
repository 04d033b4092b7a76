// Package main is the entry point for the sfarc CLI tool.
package main

import (
	"os"

	"github.com/arcreach/sfarc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
