package main

import (
	"github.com/spf13/cobra"
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint FILE",
	Short: "Print the fingerprint of a public key",
	Long: `Print the fingerprint of an RSA public key: the SHA-1 digest of the DER
encoding of its modulus and exponent, as colon-separated hex pairs.

FILE may hold a PEM, OpenSSH or armored OpenPGP public key. Use - for stdin.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cli := mustCreateCLI(false)
		exitWithError(cli.Fingerprint(cli.WithContext(cmd.Context()), args[0]))
	},
}
