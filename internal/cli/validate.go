package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/dotsecenv/actorkey/pkg/actorkey/fingerprint"
	"github.com/dotsecenv/actorkey/pkg/actorkey/key"
	"github.com/dotsecenv/actorkey/pkg/actorkey/keyfile"
	"github.com/dotsecenv/actorkey/pkg/actorkey/output"
)

// ValidationResult is the data section of "validate --json".
type ValidationResult struct {
	Path           string `json:"path"`
	Kind           string `json:"kind,omitempty"`
	Actor          string `json:"actor,omitempty"`
	Name           string `json:"name,omitempty"`
	NameDerived    bool   `json:"name_derived,omitempty"`
	Fingerprint    string `json:"fingerprint,omitempty"`
	KeyBits        int    `json:"key_bits,omitempty"`
	MinKeyBits     int    `json:"min_key_bits"`
	ExpirationDate string `json:"expiration_date,omitempty"`
	Expired        bool   `json:"expired"`
	Valid          bool   `json:"valid"`
}

// Validate checks that the record at path is ready to be submitted: it must
// parse, carry an RSA public key of at least min_rsa_bits and have a name
// (derived from the fingerprint when absent).
func (c *CLI) Validate(ctx context.Context, path string) *output.Error {
	logger := zerolog.Ctx(ctx)

	result := ValidationResult{Path: path, MinKeyBits: c.config.MinRSABits}
	if abs, err := filepath.Abs(path); err == nil {
		result.Path = abs
	}

	outErr := c.validateRecord(ctx, path, &result)
	result.Valid = outErr == nil

	logger.Debug().Str("path", path).Bool("valid", result.Valid).Msg("validated record")

	if c.output.IsJSON() {
		_ = c.output.WriteJSON(result, outErr)
		return outErr
	}

	c.printValidation(result)
	return outErr
}

func (c *CLI) validateRecord(ctx context.Context, path string, result *ValidationResult) *output.Error {
	k, err := keyfile.Read(path)
	if err != nil {
		return ClassifyError(err, output.CodeFileReadError)
	}
	result.Kind = k.Kind().String()
	result.Actor = k.Actor()

	publicKey, hasKey := k.PublicKey()
	if hasKey {
		pub, err := fingerprint.ParsePublicKey(publicKey)
		if err != nil {
			return ClassifyError(fmt.Errorf("public_key: %w", err), output.CodeKeyParseError)
		}
		result.KeyBits = pub.N.BitLen()
		if fp, err := fingerprint.FromRSA(pub); err == nil {
			result.Fingerprint = fp
		}
	}

	if _, hasName := k.Name(); !hasName && hasKey {
		k = k.Clone()
		if err := k.DeriveDefaultName(); err != nil {
			return ClassifyError(err, output.CodeValidationError)
		}
		result.NameDerived = true
		if e := c.warn(output.CodeWarnDefaultName, "record has no name; the fingerprint will be used"); e != nil {
			return e
		}
	}
	result.Name, _ = k.Name()

	if err := key.CheckComplete(k); err != nil {
		return ClassifyError(err, output.CodeIncompleteRecord)
	}

	if !c.config.IsKeySizeAllowed(result.KeyBits) {
		return output.NewErrorf(output.CodeKeyTooWeak,
			"RSA key is %d bits, minimum is %d (min_rsa_bits)", result.KeyBits, c.config.MinRSABits).
			WithDetail("key_bits", result.KeyBits).
			WithDetail("min_key_bits", c.config.MinRSABits)
	}

	date, hasDate := k.ExpirationDate()
	if !hasDate {
		return c.warn(output.CodeWarnExpirationUnset, "record has no expiration_date")
	}
	result.ExpirationDate = date

	expired, err := k.Expired(time.Now())
	if err != nil {
		return ClassifyError(err, output.CodeValidationError)
	}
	result.Expired = expired
	if expired {
		zerolog.Ctx(ctx).Debug().Str("expiration_date", date).Msg("record expired")
		return c.warn(output.CodeWarnKeyExpired, "key expired at %s", date)
	}
	return nil
}

func (c *CLI) printValidation(r ValidationResult) {
	out := c.output.Stdout()
	_, _ = fmt.Fprintf(out, "Record: %s\n", r.Path)
	if r.Actor != "" {
		_, _ = fmt.Fprintf(out, "  %s: %s\n", r.Kind, r.Actor)
	}
	if r.Name != "" {
		suffix := ""
		if r.NameDerived {
			suffix = " (derived)"
		}
		_, _ = fmt.Fprintf(out, "  name: %s%s\n", r.Name, suffix)
	}
	if r.Fingerprint != "" {
		_, _ = fmt.Fprintf(out, "  fingerprint: %s\n", r.Fingerprint)
		_, _ = fmt.Fprintf(out, "  key size: %d bits (minimum %d)\n", r.KeyBits, r.MinKeyBits)
	}
	if r.ExpirationDate != "" {
		_, _ = fmt.Fprintf(out, "  expiration_date: %s\n", r.ExpirationDate)
	}
	if r.Valid {
		_, _ = fmt.Fprintf(out, "  Status: ✓ Valid\n")
	} else {
		_, _ = fmt.Fprintf(out, "  Status: ✗ Invalid\n")
	}
}
