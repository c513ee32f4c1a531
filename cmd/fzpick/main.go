// Package main is the entry point for the fzpick CLI.
package main

import (
	"os"

	"github.com/runger/fzgo/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
