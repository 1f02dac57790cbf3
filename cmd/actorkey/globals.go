package main

import (
	"os"

	clilib "github.com/dotsecenv/actorkey/internal/cli"
	"github.com/dotsecenv/actorkey/pkg/actorkey/output"
)

// GlobalOptions holds the global configuration flags
type GlobalOptions struct {
	ConfigPath string
	Silent     bool
	Strict     bool
	LogLevel   string
	Format     string
}

// globalOpts is the shared global options instance
var globalOpts = &GlobalOptions{}

// createCLI creates a CLI instance from the global flags
func createCLI(jsonMode bool) (*clilib.CLI, *output.Error) {
	return clilib.NewCLI(clilib.Options{
		ConfigPath: globalOpts.ConfigPath,
		Silent:     globalOpts.Silent,
		Strict:     globalOpts.Strict,
		LogLevel:   globalOpts.LogLevel,
		Format:     globalOpts.Format,
		JSON:       jsonMode,
	}, os.Stdin, os.Stdout, os.Stderr)
}

// mustCreateCLI creates the CLI or exits with the config error
func mustCreateCLI(jsonMode bool) *clilib.CLI {
	cli, err := createCLI(jsonMode)
	if err != nil {
		exitWithError(err)
	}
	return cli
}

// exitWithError prints an error and exits with the appropriate code
func exitWithError(err *output.Error) {
	if err != nil {
		os.Exit(int(output.PrintError(os.Stderr, err)))
	}
}
