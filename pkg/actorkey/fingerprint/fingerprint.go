// Package fingerprint derives the default name of an actor key from its RSA
// public key material.
package fingerprint

import (
	"crypto/rsa"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// ErrKeyParse is returned when key material is missing or is not a usable RSA public key.
var ErrKeyParse = errors.New("invalid RSA public key")

// Size is the length of a formatted fingerprint: 20 hex pairs and 19 separators.
const Size = sha1.Size*3 - 1

var formatRe = regexp.MustCompile(`^[0-9a-f]{2}(:[0-9a-f]{2}){19}$`)

// Derive computes the default key name for the given public key text.
//
// The key is parsed (see ParsePublicKey), its modulus and public exponent are
// re-encoded as DER SEQUENCE { INTEGER n, INTEGER e }, and the SHA-1 digest of
// those bytes is rendered as lowercase hex pairs joined by ':'.
func Derive(publicKey string) (string, error) {
	pub, err := ParsePublicKey(publicKey)
	if err != nil {
		return "", err
	}
	return FromRSA(pub)
}

// FromRSA computes the fingerprint of an already parsed RSA public key.
func FromRSA(pub *rsa.PublicKey) (string, error) {
	der, err := MarshalComponents(pub)
	if err != nil {
		return "", err
	}
	sum := sha1.Sum(der)
	return Format(sum[:]), nil
}

// MarshalComponents returns the DER encoding of SEQUENCE { INTEGER n, INTEGER e }.
// Integers use the minimal two's-complement form, so a modulus whose top bit is
// set gains a leading zero byte.
func MarshalComponents(pub *rsa.PublicKey) ([]byte, error) {
	if pub == nil || pub.N == nil || pub.N.Sign() <= 0 {
		return nil, fmt.Errorf("%w: missing modulus", ErrKeyParse)
	}
	if pub.E <= 0 {
		return nil, fmt.Errorf("%w: invalid public exponent %d", ErrKeyParse, pub.E)
	}

	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(pub.N)
		b.AddASN1Int64(int64(pub.E))
	})
	der, err := b.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to encode key components: %w", err)
	}
	return der, nil
}

// Format renders a digest as lowercase hex pairs separated by ':'.
func Format(digest []byte) string {
	encoded := hex.EncodeToString(digest)
	pairs := make([]string, 0, len(digest))
	for i := 0; i+2 <= len(encoded); i += 2 {
		pairs = append(pairs, encoded[i:i+2])
	}
	return strings.Join(pairs, ":")
}

// IsFingerprint reports whether s has the exact shape of a derived fingerprint.
func IsFingerprint(s string) bool {
	return formatRe.MatchString(s)
}
