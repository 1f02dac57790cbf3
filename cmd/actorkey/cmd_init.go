package main

import (
	"os"

	clilib "github.com/dotsecenv/actorkey/internal/cli"
	"github.com/dotsecenv/actorkey/pkg/actorkey/output"
	"github.com/spf13/cobra"
)

var initOpts clilib.InitOptions

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration file",
	Long: `Initialize a new actorkey configuration file with the built-in defaults.

By default, creates a configuration file at the XDG config location
($XDG_CONFIG_HOME/actorkey/config). Use -c or ACTORKEY_CONFIG to choose
another path. With --strict the file enables strict mode.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		targetConfig, _, err := clilib.ResolveConfigPath(globalOpts.ConfigPath)
		if err != nil {
			exitWithError(output.NewErrorf(output.CodeConfigNotFound, "failed to get XDG paths: %v", err))
		}
		// --strict is a global flag; for init it means "write strict: true"
		initOpts.Strict = globalOpts.Strict
		exitWithError(clilib.InitConfig(targetConfig, initOpts, os.Stderr))
	},
}

func init() {
	initCmd.Flags().StringVar(&initOpts.DefaultKind, "default-kind", "", "Initialize config with this default_kind (user or client)")
}
