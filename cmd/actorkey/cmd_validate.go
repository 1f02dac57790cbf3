package main

import (
	"github.com/spf13/cobra"
)

var validateJSON bool

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check that a record can be submitted",
	Long: `Check that a key record is complete: it must parse, carry an RSA public
key of at least min_rsa_bits bits and have a name (the fingerprint is used
when none is set).

Expired keys and records without an expiration date produce warnings, which
are errors in strict mode.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cli := mustCreateCLI(validateJSON)
		exitWithError(cli.Validate(cli.WithContext(cmd.Context()), args[0]))
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output the result as a JSON envelope")
}
