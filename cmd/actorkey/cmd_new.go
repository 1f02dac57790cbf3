package main

import (
	clilib "github.com/dotsecenv/actorkey/internal/cli"
	"github.com/spf13/cobra"
)

var newOpts clilib.NewOptions

var newCmd = &cobra.Command{
	Use:   "new [ACTOR]",
	Short: "Create a key record",
	Long: `Create a key record for a user or a client.

The actor is given with --user or --client; a bare ACTOR argument uses the
default_kind from the configuration. Every field goes through the same
validation as records read from disk.

--public-key-file accepts PEM, OpenSSH (ssh-rsa) and armored OpenPGP RSA
public keys; the latter two are converted to PEM. Use - to read stdin.

The record is printed to stdout unless -o is given. Files ending in .yaml or
.yml are written as YAML, anything else as JSON.`,
	Example: `  actorkey new --user alice --public-key-file ~/.ssh/id_rsa.pub --default-name
  actorkey new --client build-bot --name ci --expiration 2030-01-01T00:00:00Z -o build-bot.json`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 1 {
			newOpts.Actor = args[0]
		}
		cli := mustCreateCLI(false)
		exitWithError(cli.NewKey(cli.WithContext(cmd.Context()), newOpts))
	},
}

func init() {
	newCmd.Flags().StringVar(&newOpts.User, "user", "", "Create a record for this user")
	newCmd.Flags().StringVar(&newOpts.Client, "client", "", "Create a record for this client")
	newCmd.Flags().StringVar(&newOpts.Name, "name", "", "Key name")
	newCmd.Flags().StringVar(&newOpts.PublicKeyFile, "public-key-file", "", "File holding the RSA public key (- for stdin)")
	newCmd.Flags().StringVar(&newOpts.Expiration, "expiration", "", `Expiration date (YYYY-MM-DDTHH:MM:SSZ or "infinity")`)
	newCmd.Flags().BoolVar(&newOpts.DefaultName, "default-name", false, "Name the key after its fingerprint when --name is not given")
	newCmd.Flags().StringVarP(&newOpts.OutputPath, "output", "o", "", "Write the record to this file")
	newCmd.Flags().BoolVarP(&newOpts.Force, "force", "f", false, "Overwrite an existing output file without asking")
	newCmd.MarkFlagsMutuallyExclusive("user", "client")
}
