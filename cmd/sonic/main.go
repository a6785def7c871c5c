// Package main is the entry point for the sonic command.
//
// Usage:
//
//	sonic [flags] <command> [args]
//
// Commands:
//
//	process  - Change speed, pitch and volume of a WAV file
//	demo     - Run a synthetic tone through a grid of settings
//	info     - Show transform parameters for a sample rate
//	version  - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/tphakala/go-audio-sonic/cmd/sonic/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
