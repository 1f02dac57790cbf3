package main

import (
	"github.com/spf13/cobra"
)

var showDefaultName bool

var showCmd = &cobra.Command{
	Use:   "show FILE",
	Short: "Print a record in canonical form",
	Long: `Read a key record file and print it in canonical form, in the format
selected by --format or the configuration.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cli := mustCreateCLI(false)
		exitWithError(cli.Show(cli.WithContext(cmd.Context()), args[0], showDefaultName))
	},
}

func init() {
	showCmd.Flags().BoolVar(&showDefaultName, "default-name", false, "Show the fingerprint name for records without a name")
}
