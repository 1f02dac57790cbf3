package key

import (
	"fmt"
	"strings"
)

// Kind identifies what sort of actor a key belongs to.
// It also names the JSON field the actor is serialized under.
type Kind int

const (
	KindUser Kind = iota + 1
	KindClient
)

// Field names used in the serialized form.
const (
	FieldUser           = "user"
	FieldClient         = "client"
	FieldActor          = "actor"
	FieldName           = "name"
	FieldPublicKey      = "public_key"
	FieldExpirationDate = "expiration_date"
)

// String returns the serialized label of the kind ("user" or "client").
func (k Kind) String() string {
	switch k {
	case KindUser:
		return FieldUser
	case KindClient:
		return FieldClient
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	return k == KindUser || k == KindClient
}

// ParseKind converts "user" or "client" (case-insensitive) into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case FieldUser:
		return KindUser, nil
	case FieldClient:
		return KindClient, nil
	default:
		return 0, fmt.Errorf("%w: kind must be either %q or %q, got %q", ErrInvalidArgument, FieldUser, FieldClient, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Entry is a single field of a key's serialized form.
type Entry struct {
	Key   string
	Value string
}

// Mapping is the ordered serialized form of a key: the actor entry first,
// followed by whichever optional fields are set.
type Mapping []Entry

// Get returns the value stored under name.
func (m Mapping) Get(name string) (string, bool) {
	for _, e := range m {
		if e.Key == name {
			return e.Value, true
		}
	}
	return "", false
}

// Map returns the mapping as an unordered map.
func (m Mapping) Map() map[string]string {
	out := make(map[string]string, len(m))
	for _, e := range m {
		out[e.Key] = e.Value
	}
	return out
}

// Keys returns the field names in order.
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for _, e := range m {
		keys = append(keys, e.Key)
	}
	return keys
}
