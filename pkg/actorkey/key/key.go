// Package key models an actor key: the record that binds a user or client to
// an RSA public key, an optional name and an optional expiration date.
//
// Every field is validated when it is assigned. A record may be incomplete
// (for example without a public key) for as long as the caller needs;
// CheckComplete is the separate gate used before a record is submitted.
package key

import (
	"fmt"
	"time"

	"github.com/dotsecenv/actorkey/pkg/actorkey/fingerprint"
)

// Infinity is the expiration date of a key that never expires.
const Infinity = "infinity"

// ExpirationLayout is the time layout of a finite expiration date.
const ExpirationLayout = "2006-01-02T15:04:05Z"

// Key is an actor key record. The zero value is not usable; create keys with New,
// FromMapping, FromJSON or FromYAML.
//
// A Key is not safe for concurrent mutation.
type Key struct {
	kind           Kind
	actor          string
	name           *string
	publicKey      *string
	expirationDate *string
}

// Deriver computes a default key name from public key text.
type Deriver interface {
	Derive(publicKey string) (string, error)
}

// DeriverFunc adapts a function to the Deriver interface.
type DeriverFunc func(publicKey string) (string, error)

// Derive calls f.
func (f DeriverFunc) Derive(publicKey string) (string, error) {
	return f(publicKey)
}

// DefaultDeriver is the SHA-1 fingerprint of the key's DER-encoded modulus and exponent.
var DefaultDeriver Deriver = DeriverFunc(fingerprint.Derive)

// New creates a key for the given actor. The kind is checked before anything else.
func New(kind Kind, actor string) (*Key, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: kind must be either %s or %s, got %s", ErrInvalidArgument, KindUser, KindClient, kind)
	}
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	return &Key{kind: kind, actor: actor}, nil
}

// Kind returns the actor kind fixed at construction.
func (k *Key) Kind() Kind {
	return k.kind
}

// Actor returns the actor the key belongs to.
func (k *Key) Actor() string {
	return k.actor
}

// Name returns the key name and whether it is set.
func (k *Key) Name() (string, bool) {
	return deref(k.name)
}

// PublicKey returns the public key text and whether it is set.
func (k *Key) PublicKey() (string, bool) {
	return deref(k.publicKey)
}

// ExpirationDate returns the expiration date and whether it is set.
func (k *Key) ExpirationDate() (string, bool) {
	return deref(k.expirationDate)
}

// SetActor replaces the actor. The kind is unchanged.
func (k *Key) SetActor(actor string) error {
	if err := validateActor(actor); err != nil {
		return err
	}
	k.actor = actor
	return nil
}

// SetName assigns the key name.
func (k *Key) SetName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	k.name = &name
	return nil
}

// SetPublicKey assigns the public key text. Any string is accepted here;
// the key material is only parsed when a fingerprint is needed.
func (k *Key) SetPublicKey(publicKey string) error {
	k.publicKey = &publicKey
	return nil
}

// SetExpirationDate assigns the expiration date ("infinity" or YYYY-MM-DDTHH:MM:SSZ).
func (k *Key) SetExpirationDate(date string) error {
	if err := validateExpirationDate(date); err != nil {
		return err
	}
	k.expirationDate = &date
	return nil
}

// Set assigns a field by its serialized name. Values that are not strings are
// rejected whatever the field.
func (k *Key) Set(field string, value any) error {
	s, ok := value.(string)
	if !ok {
		return &ValidationError{Field: field, Value: value, Reason: "must be a string"}
	}

	switch field {
	case FieldActor:
		return k.SetActor(s)
	case FieldName:
		return k.SetName(s)
	case FieldPublicKey:
		return k.SetPublicKey(s)
	case FieldExpirationDate:
		return k.SetExpirationDate(s)
	default:
		return &ValidationError{Field: field, Value: value, Reason: "unknown field"}
	}
}

// DeriveDefaultName sets the name to the fingerprint of the public key when no
// name has been chosen. It does nothing if a name is already set.
func (k *Key) DeriveDefaultName() error {
	return k.DeriveDefaultNameWith(DefaultDeriver)
}

// DeriveDefaultNameWith is DeriveDefaultName with a caller-supplied Deriver.
func (k *Key) DeriveDefaultNameWith(d Deriver) error {
	if k.name != nil {
		return nil
	}
	if k.publicKey == nil {
		return fmt.Errorf("%w: public_key is not set", fingerprint.ErrKeyParse)
	}

	name, err := d.Derive(*k.publicKey)
	if err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}
	k.name = &name
	return nil
}

// Clone returns an independent copy of the key.
func (k *Key) Clone() *Key {
	c := &Key{kind: k.kind, actor: k.actor}
	c.name = clone(k.name)
	c.publicKey = clone(k.publicKey)
	c.expirationDate = clone(k.expirationDate)
	return c
}

// Expired reports whether the key's expiration date is before now.
// Keys without an expiration date, or with "infinity", never expire.
func (k *Key) Expired(now time.Time) (bool, error) {
	date, ok := k.ExpirationDate()
	if !ok {
		return false, nil
	}
	at, never, err := ParseExpiration(date)
	if err != nil || never {
		return false, err
	}
	return !now.Before(at), nil
}

// ParseExpiration interprets an expiration date. never is true for "infinity".
func ParseExpiration(date string) (at time.Time, never bool, err error) {
	if err := validateExpirationDate(date); err != nil {
		return time.Time{}, false, err
	}
	if date == Infinity {
		return time.Time{}, true, nil
	}
	at, err = time.Parse(ExpirationLayout, date)
	if err != nil {
		return time.Time{}, false, &ValidationError{Field: FieldExpirationDate, Value: date, Reason: err.Error()}
	}
	return at, false, nil
}

// CheckComplete reports whether a record carries everything the authorization
// service requires: a public key that parses as RSA and a name. Call
// DeriveDefaultName first to fill in the default name.
func CheckComplete(k *Key) error {
	if k == nil {
		return fmt.Errorf("%w: no key", ErrIncomplete)
	}
	publicKey, ok := k.PublicKey()
	if !ok {
		return fmt.Errorf("%w: public_key is required", ErrIncomplete)
	}
	if _, err := fingerprint.ParsePublicKey(publicKey); err != nil {
		return fmt.Errorf("public_key: %w", err)
	}
	if _, ok := k.Name(); !ok {
		return fmt.Errorf("%w: name is required", ErrIncomplete)
	}
	return nil
}

func deref(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

func clone(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
