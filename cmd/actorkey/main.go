//go:build !gendocs

package main

import (
	"context"
	"fmt"
	"os"

	clilib "github.com/dotsecenv/actorkey/internal/cli"
)

// main runs the CLI
func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n\n", err)
		_ = rootCmd.Help()
		os.Exit(int(clilib.ExitGeneralError))
	}
}
