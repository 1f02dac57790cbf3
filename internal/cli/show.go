package cli

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dotsecenv/actorkey/pkg/actorkey/keyfile"
	"github.com/dotsecenv/actorkey/pkg/actorkey/output"
)

// Show reads a record file and prints its canonical form. With deriveName,
// a record without a name is shown with its fingerprint name; the file is
// left untouched.
func (c *CLI) Show(ctx context.Context, path string, deriveName bool) *output.Error {
	k, err := keyfile.Read(path)
	if err != nil {
		return ClassifyError(err, output.CodeFileReadError)
	}

	if _, hasName := k.Name(); deriveName && !hasName {
		k = k.Clone()
		if err := k.DeriveDefaultName(); err != nil {
			return ClassifyError(err, output.CodeGeneralError)
		}
		name, _ := k.Name()
		if e := c.warn(output.CodeWarnDefaultName, "name derived from public key fingerprint: %s", name); e != nil {
			return e
		}
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Strs("fields", k.Mapping().Keys()).Msg("loaded record")

	data, err := keyfile.Encode(k, c.format)
	if err != nil {
		return ClassifyError(err, output.CodeGeneralError)
	}
	c.output.WriteRaw(data)
	return nil
}
