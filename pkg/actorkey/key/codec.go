package key

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mapping returns the serialized form of the key. The actor comes first under
// its kind's label; name, public_key and expiration_date follow only when set.
func (k *Key) Mapping() Mapping {
	m := Mapping{{Key: k.kind.String(), Value: k.actor}}
	if k.name != nil {
		m = append(m, Entry{Key: FieldName, Value: *k.name})
	}
	if k.publicKey != nil {
		m = append(m, Entry{Key: FieldPublicKey, Value: *k.publicKey})
	}
	if k.expirationDate != nil {
		m = append(m, Entry{Key: FieldExpirationDate, Value: *k.expirationDate})
	}
	return m
}

// JSON returns the canonical JSON form of the key.
func (k *Key) JSON() ([]byte, error) {
	return k.MarshalJSON()
}

// MarshalJSON implements json.Marshaler, keeping the field order of Mapping.
func (k *Key) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range k.Mapping() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, e.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, e.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode %q: %w", s, err)
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

// UnmarshalJSON implements json.Unmarshaler using FromJSON.
func (k *Key) UnmarshalJSON(data []byte) error {
	parsed, err := FromJSON(data)
	if err != nil {
		return err
	}
	*k = *parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler with the same field order as Mapping.
// Multi-line values such as PEM keys are written as literal blocks.
func (k *Key) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range k.Mapping() {
		value := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Value}
		if strings.Contains(e.Value, "\n") {
			value.Style = yaml.LiteralStyle
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			value,
		)
	}
	return node, nil
}

// YAML returns the key as a YAML document.
func (k *Key) YAML() ([]byte, error) {
	return yaml.Marshal(k)
}

// FromMapping rebuilds a key from a decoded document. Exactly one of "user" or
// "client" must be present. The optional fields go through the same setters
// as direct assignment. A null optional field counts as absent; unknown
// fields are ignored.
func FromMapping(m map[string]any) (*Key, error) {
	userValue, hasUser := m[FieldUser]
	clientValue, hasClient := m[FieldClient]

	var kind Kind
	var actorValue any
	switch {
	case hasUser && hasClient:
		return nil, fmt.Errorf("%w: both %q and %q are present", ErrAmbiguousActor, FieldUser, FieldClient)
	case hasUser:
		kind, actorValue = KindUser, userValue
	case hasClient:
		kind, actorValue = KindClient, clientValue
	default:
		return nil, fmt.Errorf("%w: one of %q or %q is required", ErrAmbiguousActor, FieldUser, FieldClient)
	}

	actor, ok := actorValue.(string)
	if !ok {
		return nil, &ValidationError{Field: kind.String(), Value: actorValue, Reason: "must be a string"}
	}

	k, err := New(kind, actor)
	if err != nil {
		return nil, err
	}

	for _, field := range []string{FieldName, FieldPublicKey, FieldExpirationDate} {
		value, ok := m[field]
		if !ok || value == nil {
			continue
		}
		if err := k.Set(field, value); err != nil {
			return nil, err
		}
	}
	return k, nil
}

// FromJSON rebuilds a key from its JSON form.
func FromJSON(data []byte) (*Key, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrParse)
	}
	return FromMapping(m)
}

// FromYAML rebuilds a key from its YAML form.
func FromYAML(data []byte) (*Key, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: expected a YAML mapping", ErrParse)
	}
	return FromMapping(m)
}
