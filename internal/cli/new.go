package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/dotsecenv/actorkey/pkg/actorkey/fingerprint"
	"github.com/dotsecenv/actorkey/pkg/actorkey/key"
	"github.com/dotsecenv/actorkey/pkg/actorkey/keyfile"
	"github.com/dotsecenv/actorkey/pkg/actorkey/output"
)

// NewOptions holds the flags of the "new" command.
type NewOptions struct {
	Actor         string // positional actor, kind from default_kind
	User          string
	Client        string
	Name          string
	PublicKeyFile string
	Expiration    string
	DefaultName   bool
	OutputPath    string
	Force         bool
}

// actorFromOptions picks the kind and actor name from --user, --client or the
// positional argument.
func (c *CLI) actorFromOptions(opts NewOptions) (key.Kind, string, *output.Error) {
	given := 0
	for _, v := range []string{opts.Actor, opts.User, opts.Client} {
		if v != "" {
			given++
		}
	}
	switch {
	case given == 0:
		return 0, "", output.NewError(output.CodeAmbiguousActor, "an actor is required: pass --user NAME, --client NAME or ACTOR")
	case given > 1:
		return 0, "", output.NewError(output.CodeAmbiguousActor, "--user, --client and ACTOR are mutually exclusive")
	case opts.User != "":
		return key.KindUser, opts.User, nil
	case opts.Client != "":
		return key.KindClient, opts.Client, nil
	default:
		return c.config.DefaultKind, opts.Actor, nil
	}
}

// NewKey builds a key record through the validated setters and prints it, or
// writes it to opts.OutputPath.
func (c *CLI) NewKey(ctx context.Context, opts NewOptions) *output.Error {
	logger := zerolog.Ctx(ctx)

	kind, actor, outErr := c.actorFromOptions(opts)
	if outErr != nil {
		return outErr
	}

	k, err := key.New(kind, actor)
	if err != nil {
		return ClassifyError(err, output.CodeGeneralError)
	}

	if opts.Name != "" {
		if err := k.SetName(opts.Name); err != nil {
			return ClassifyError(err, output.CodeGeneralError)
		}
	}

	if opts.PublicKeyFile != "" {
		publicKey, outErr := c.loadPublicKey(ctx, opts.PublicKeyFile)
		if outErr != nil {
			return outErr
		}
		if err := k.SetPublicKey(publicKey); err != nil {
			return ClassifyError(err, output.CodeGeneralError)
		}
	}

	if opts.Expiration != "" {
		if err := k.SetExpirationDate(opts.Expiration); err != nil {
			return ClassifyError(err, output.CodeGeneralError)
		}
		if expired, _ := k.Expired(time.Now()); expired {
			if e := c.warn(output.CodeWarnKeyExpired, "expiration date %s is already in the past", opts.Expiration); e != nil {
				return e
			}
		}
	}

	if opts.DefaultName {
		if opts.Name != "" {
			if e := c.warn(output.CodeWarnFlagIgnored, "--default-name ignored because --name was given"); e != nil {
				return e
			}
		} else {
			if err := k.DeriveDefaultName(); err != nil {
				return ClassifyError(err, output.CodeGeneralError)
			}
			name, _ := k.Name()
			logger.Debug().Str("name", name).Msg("derived default name")
		}
	}

	if opts.OutputPath == "" {
		data, err := keyfile.Encode(k, c.format)
		if err != nil {
			return ClassifyError(err, output.CodeGeneralError)
		}
		c.output.WriteRaw(data)
		return nil
	}

	if _, err := os.Stat(opts.OutputPath); err == nil && !opts.Force {
		confirmed, promptErr := PromptConfirm(fmt.Sprintf("%s exists. Overwrite?", opts.OutputPath), c.output.Stderr())
		if promptErr != nil {
			if errors.Is(promptErr, ErrUserCancelled) {
				return promptErr
			}
			return output.NewErrorf(output.CodeFileWriteError, "record file already exists: %s (use --force to overwrite)", opts.OutputPath)
		}
		if !confirmed {
			return output.NewErrorf(output.CodeFileWriteError, "record file already exists: %s", opts.OutputPath)
		}
	}

	if err := keyfile.Write(opts.OutputPath, k, keyfile.FormatForPath(opts.OutputPath)); err != nil {
		return ClassifyError(err, output.CodeFileWriteError)
	}
	logger.Info().Str("path", opts.OutputPath).Str(kind.String(), actor).Msg("record written")
	c.output.Successf("Wrote %s record for %s to %s", kind, actor, opts.OutputPath)
	return nil
}

// loadPublicKey reads a public key in any supported form and returns it as
// PEM. OpenSSH and OpenPGP inputs are converted, with a warning.
func (c *CLI) loadPublicKey(ctx context.Context, path string) (string, *output.Error) {
	data, err := c.readInput(path)
	if err != nil {
		return "", ClassifyError(err, output.CodeFileReadError)
	}
	text := string(data)

	source := fingerprint.DetectSource(text)
	zerolog.Ctx(ctx).Debug().Str("path", path).Str("source", string(source)).Msg("read public key")

	if source == fingerprint.SourcePEM {
		if _, err := fingerprint.ParsePublicKey(text); err != nil {
			return "", ClassifyError(err, output.CodeKeyParseError)
		}
		return text, nil
	}

	pub, err := fingerprint.ParsePublicKey(text)
	if err != nil {
		return "", ClassifyError(err, output.CodeKeyParseError)
	}
	pemText, err := fingerprint.EncodePEM(pub)
	if err != nil {
		return "", ClassifyError(err, output.CodeKeyParseError)
	}
	if e := c.warn(output.CodeWarnKeyNormalized, "%s public key converted to PEM", source); e != nil {
		return "", e
	}
	return pemText, nil
}
