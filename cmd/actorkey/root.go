package main

import (
	"github.com/spf13/cobra"
)

var (
	version = "unknown"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "actorkey",
	Short: "Build and check actor key records",
	Long: `actorkey: build, fingerprint and validate actor key records.

A key record binds an RSA public key to a user or client of an
authorization service. Records are exchanged as JSON (or YAML) documents:

  {"user":"alice","name":"laptop","public_key":"-----BEGIN PUBLIC KEY-----...","expiration_date":"infinity"}

Keys without a chosen name are named after the SHA-1 fingerprint of their
RSA modulus and exponent.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand, show help
		_ = cmd.Help()
	},
}

func init() {
	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&globalOpts.ConfigPath, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.Silent, "silent", "s", false, "Silent mode (suppress warnings)")
	rootCmd.PersistentFlags().BoolVar(&globalOpts.Strict, "strict", false, "Strict mode (warnings become errors)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.Format, "format", "", "Record output format (json or yaml)")

	// Add subcommands
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(fingerprintCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}
