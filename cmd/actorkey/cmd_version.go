package main

import (
	"os"

	clilib "github.com/dotsecenv/actorkey/internal/cli"
	"github.com/dotsecenv/actorkey/pkg/actorkey/output"
	"github.com/spf13/cobra"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display the version, commit hash, and build date of actorkey.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		info := clilib.NewVersionInfo(version, commit, date)
		if !versionJSON {
			clilib.PrintVersion(os.Stdout, info)
			return
		}
		if err := clilib.PrintVersionJSON(os.Stdout, info); err != nil {
			exitWithError(output.Wrap(output.CodeGeneralError, err))
		}
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Output version information as JSON")
}
