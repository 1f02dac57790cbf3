package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/dotsecenv/actorkey/pkg/actorkey/fingerprint"
	"github.com/dotsecenv/actorkey/pkg/actorkey/output"
)

// Fingerprint prints the fingerprint of the public key stored at path
// ("-" reads stdin).
func (c *CLI) Fingerprint(ctx context.Context, path string) *output.Error {
	data, err := c.readInput(path)
	if err != nil {
		return ClassifyError(err, output.CodeFileReadError)
	}

	pub, err := fingerprint.ParsePublicKey(string(data))
	if err != nil {
		return ClassifyError(fmt.Errorf("%s: %w", path, err), output.CodeKeyParseError)
	}

	fp, err := fingerprint.FromRSA(pub)
	if err != nil {
		return ClassifyError(err, output.CodeKeyParseError)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Str("source", string(fingerprint.DetectSource(string(data)))).
		Int("bits", pub.N.BitLen()).
		Msg("fingerprinted public key")

	c.output.WriteLine(fp)
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
