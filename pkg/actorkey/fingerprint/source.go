package fingerprint

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp/packet"
	// gopenpgp's package is also named "crypto"; alias it to keep call sites readable.
	pgpcrypto "github.com/ProtonMail/gopenpgp/v3/crypto"
	"golang.org/x/crypto/ssh"
)

// Source identifies the encoding a public key was supplied in.
type Source string

const (
	SourceUnknown Source = "unknown"
	SourcePEM     Source = "pem"
	SourceSSH     Source = "openssh"
	SourceOpenPGP Source = "openpgp"
)

const (
	pemPKIX        = "PUBLIC KEY"
	pemPKCS1       = "RSA PUBLIC KEY"
	openPGPArmored = "-----BEGIN PGP PUBLIC KEY BLOCK-----"
)

// DetectSource guesses the encoding of key text without parsing it.
func DetectSource(text string) Source {
	trimmed := strings.TrimSpace(text)
	switch {
	case trimmed == "":
		return SourceUnknown
	case strings.HasPrefix(trimmed, openPGPArmored):
		return SourceOpenPGP
	case strings.HasPrefix(trimmed, "-----BEGIN "):
		return SourcePEM
	case strings.HasPrefix(trimmed, "ssh-"):
		return SourceSSH
	default:
		return SourceUnknown
	}
}

// ParsePublicKey parses RSA public key text. Accepted encodings:
//   - PEM "PUBLIC KEY" (PKIX) and "RSA PUBLIC KEY" (PKCS#1)
//   - an OpenSSH authorized_keys line ("ssh-rsa AAAA... comment")
//   - an armored OpenPGP public key with an RSA primary key
//
// Line wrapping and surrounding whitespace do not matter. All failures wrap ErrKeyParse.
func ParsePublicKey(text string) (*rsa.PublicKey, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: public key is empty", ErrKeyParse)
	}

	switch DetectSource(trimmed) {
	case SourceOpenPGP:
		return parseOpenPGP(trimmed)
	case SourcePEM:
		return parsePEM(trimmed)
	case SourceSSH:
		return parseAuthorizedKey(trimmed)
	default:
		return nil, fmt.Errorf("%w: unrecognized key encoding", ErrKeyParse)
	}
}

// Bits returns the modulus size of an RSA public key.
func Bits(text string) (int, error) {
	pub, err := ParsePublicKey(text)
	if err != nil {
		return 0, err
	}
	return pub.N.BitLen(), nil
}

// EncodePEM renders an RSA public key as a PKIX "PUBLIC KEY" PEM block.
func EncodePEM(pub *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("failed to marshal public key: %w", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: pemPKIX, Bytes: der})), nil
}

func parsePEM(text string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(text))
	if block == nil {
		return nil, fmt.Errorf("%w: malformed PEM block", ErrKeyParse)
	}

	switch block.Type {
	case pemPKIX:
		parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrKeyParse, err)
		}
		pub, ok := parsed.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: key type %T is not RSA", ErrKeyParse, parsed)
		}
		return pub, nil
	case pemPKCS1:
		pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrKeyParse, err)
		}
		return pub, nil
	default:
		return nil, fmt.Errorf("%w: unsupported PEM block type %q", ErrKeyParse, block.Type)
	}
}

func parseAuthorizedKey(text string) (*rsa.PublicKey, error) {
	sshKey, _, _, _, err := ssh.ParseAuthorizedKey([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyParse, err)
	}
	if sshKey.Type() != ssh.KeyAlgoRSA {
		return nil, fmt.Errorf("%w: ssh key type %s is not RSA", ErrKeyParse, sshKey.Type())
	}

	cryptoKey, ok := sshKey.(ssh.CryptoPublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: ssh key does not expose its public key", ErrKeyParse)
	}
	pub, ok := cryptoKey.CryptoPublicKey().(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: ssh key is not RSA", ErrKeyParse)
	}
	return pub, nil
}

func parseOpenPGP(text string) (*rsa.PublicKey, error) {
	key, err := pgpcrypto.NewKeyFromArmored(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyParse, err)
	}

	entity := key.GetEntity()
	if entity == nil || entity.PrimaryKey == nil {
		return nil, fmt.Errorf("%w: OpenPGP key has no primary key", ErrKeyParse)
	}

	switch entity.PrimaryKey.PubKeyAlgo {
	case packet.PubKeyAlgoRSA, packet.PubKeyAlgoRSAEncryptOnly, packet.PubKeyAlgoRSASignOnly:
	default:
		return nil, fmt.Errorf("%w: OpenPGP primary key algorithm %d is not RSA", ErrKeyParse, entity.PrimaryKey.PubKeyAlgo)
	}

	pub, ok := entity.PrimaryKey.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: OpenPGP primary key is not RSA", ErrKeyParse)
	}
	return pub, nil
}
