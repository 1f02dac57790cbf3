package key

import (
	"errors"
	"testing"
	"time"

	"github.com/dotsecenv/actorkey/pkg/actorkey/fingerprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPublicKey = `-----BEGIN PUBLIC KEY-----
MIIBIjANBgkqhkiG9w0BAQEFAAOCAQ8AMIIBCgKCAQEAvPo+oNPB7uuNkws0fC02
KxSwdyqPLu0fhI1pOweNKAZeEIiEz2PkybathHWy8snSXGNxsITkf3eyvIIKa8OZ
WrlqpI3yv/5DOP8HTMCxnFuMJQtDwMcevlqebX4bCxcByuBpNYDcAHjjfLGSfMjn
E5lZpgYWwnpic4kSjYcL9ORK9nYvlWV9P/kCYmRhIjB4AhtpWRiOfY/TKi3P2LxT
IjSmiN/ihHtlhV/VSnBJ5PzT/lRknlrJ4kACoz7Pq9jv+aAx5ft/xE9yDa2DYs0q
Tfuc9dUYsFjptWYrV6pfEQ+bgo1OGBXORBFcFL+2D7u9JYquKrMgosznHoEkQNLo
0wIDAQAB
-----END PUBLIC KEY-----
`

const testFingerprint = "12:3e:33:73:0b:f4:ec:72:dc:f0:4c:51:62:27:08:76:96:24:f4:4a"

func newUserKey(t *testing.T) *Key {
	t.Helper()
	k, err := New(KindUser, "original_actor")
	require.NoError(t, err)
	return k
}

func TestNew(t *testing.T) {
	t.Parallel()

	k := newUserKey(t)
	assert.Equal(t, KindUser, k.Kind())
	assert.Equal(t, "original_actor", k.Actor())

	_, ok := k.Name()
	assert.False(t, ok)
	_, ok = k.PublicKey()
	assert.False(t, ok)
	_, ok = k.ExpirationDate()
	assert.False(t, ok)
}

func TestNew_InvalidKind(t *testing.T) {
	t.Parallel()

	for _, kind := range []Kind{0, 3, -1} {
		k, err := New(kind, "original_actor")
		assert.Nil(t, k)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.NotErrorIs(t, err, ErrValidation)
	}

	// The kind is rejected before the actor is looked at.
	_, err := New(Kind(7), "Not Valid")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNew_InvalidActor(t *testing.T) {
	t.Parallel()

	k, err := New(KindClient, "Bad Actor")
	assert.Nil(t, k)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, FieldActor, verr.Field)
	assert.Equal(t, "Bad Actor", verr.Value)
}

func TestSetters_AcceptValidNames(t *testing.T) {
	t.Parallel()

	valid := []string{"new_field_value", "a", "svc1", "my-key_2", "0", "---", "___"}

	for _, v := range valid {
		t.Run(v, func(t *testing.T) {
			k := newUserKey(t)

			require.NoError(t, k.SetActor(v))
			assert.Equal(t, v, k.Actor())

			require.NoError(t, k.SetName(v))
			name, ok := k.Name()
			assert.True(t, ok)
			assert.Equal(t, v, name)
		})
	}
}

func TestSetters_RejectInvalidNames(t *testing.T) {
	t.Parallel()

	invalid := []string{"Bar", "foo/bar", "foo?", "foo&", "foo ", "", "foo\nbar", "foo.bar", "café"}

	for _, v := range invalid {
		t.Run(v, func(t *testing.T) {
			k := newUserKey(t)

			err := k.SetActor(v)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, "original_actor", k.Actor(), "actor must be unchanged after a failed set")

			err = k.SetName(v)
			assert.ErrorIs(t, err, ErrValidation)
			_, ok := k.Name()
			assert.False(t, ok, "name must stay unset after a failed set")
		})
	}
}

func TestSetName_FailureKeepsPreviousValue(t *testing.T) {
	t.Parallel()

	k := newUserKey(t)
	require.NoError(t, k.SetName("first"))
	require.Error(t, k.SetName("Second"))

	name, _ := k.Name()
	assert.Equal(t, "first", name)
}

func TestSetName_AcceptsFingerprint(t *testing.T) {
	t.Parallel()

	k := newUserKey(t)
	require.NoError(t, k.SetName(testFingerprint))

	name, _ := k.Name()
	assert.Equal(t, testFingerprint, name)

	assert.Error(t, k.SetName("12:3E:33"))
}

func TestSetPublicKey(t *testing.T) {
	t.Parallel()

	k := newUserKey(t)
	require.NoError(t, k.SetPublicKey("new_field_value"))
	pk, ok := k.PublicKey()
	assert.True(t, ok)
	assert.Equal(t, "new_field_value", pk)

	require.NoError(t, k.SetPublicKey(testPublicKey))
	pk, _ = k.PublicKey()
	assert.Equal(t, testPublicKey, pk)
}

func TestSetExpirationDate(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name  string
		value string
		valid bool
	}{
		{name: "utc timestamp", value: "2020-12-24T21:00:00Z", valid: true},
		{name: "infinity", value: "infinity", valid: true},
		{name: "free text", value: "invalid_date", valid: false},
		{name: "two digit year", value: "20-12-24T21:00:00Z", valid: false},
		{name: "missing Z", value: "2020-12-24T21:00:00", valid: false},
		{name: "offset instead of Z", value: "2020-12-24T21:00:00+01:00", valid: false},
		{name: "fractional seconds", value: "2020-12-24T21:00:00.5Z", valid: false},
		{name: "capitalized infinity", value: "Infinity", valid: false},
		{name: "empty", value: "", valid: false},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			k := newUserKey(t)
			err := k.SetExpirationDate(tc.value)
			date, ok := k.ExpirationDate()
			if tc.valid {
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, tc.value, date)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, FieldExpirationDate, verr.Field)
			assert.False(t, ok)
		})
	}
}

func TestSet_RejectsNonStrings(t *testing.T) {
	t.Parallel()

	values := []any{map[string]any{}, 42, 3.5, true, nil, []string{"a"}}
	fields := []string{FieldActor, FieldName, FieldPublicKey, FieldExpirationDate}

	for _, field := range fields {
		for _, v := range values {
			k := newUserKey(t)
			err := k.Set(field, v)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr, "field %s value %#v", field, v)
			assert.Equal(t, field, verr.Field)
			assert.Contains(t, verr.Error(), "must be a string")
		}
	}
}

func TestSet_Dispatch(t *testing.T) {
	t.Parallel()

	k := newUserKey(t)
	require.NoError(t, k.Set(FieldActor, "someone"))
	require.NoError(t, k.Set(FieldName, "monkeypants"))
	require.NoError(t, k.Set(FieldPublicKey, testPublicKey))
	require.NoError(t, k.Set(FieldExpirationDate, Infinity))

	assert.Equal(t, Mapping{
		{Key: "user", Value: "someone"},
		{Key: "name", Value: "monkeypants"},
		{Key: "public_key", Value: testPublicKey},
		{Key: "expiration_date", Value: "infinity"},
	}, k.Mapping())

	err := k.Set("color", "blue")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "unknown field")
}

func TestDeriveDefaultName(t *testing.T) {
	t.Parallel()

	t.Run("name unset", func(t *testing.T) {
		k := newUserKey(t)
		require.NoError(t, k.SetPublicKey(testPublicKey))
		require.NoError(t, k.DeriveDefaultName())

		name, ok := k.Name()
		assert.True(t, ok)
		assert.Equal(t, testFingerprint, name)
		assert.Len(t, name, 59)
	})

	t.Run("name already set", func(t *testing.T) {
		k := newUserKey(t)
		require.NoError(t, k.SetPublicKey(testPublicKey))
		require.NoError(t, k.SetName("not_nil"))
		require.NoError(t, k.DeriveDefaultName())

		name, _ := k.Name()
		assert.Equal(t, "not_nil", name)
	})

	t.Run("idempotent", func(t *testing.T) {
		k := newUserKey(t)
		require.NoError(t, k.SetPublicKey(testPublicKey))
		require.NoError(t, k.DeriveDefaultName())
		first, _ := k.Name()
		require.NoError(t, k.DeriveDefaultName())
		second, _ := k.Name()
		assert.Equal(t, first, second)
	})

	t.Run("public key unset", func(t *testing.T) {
		k := newUserKey(t)
		err := k.DeriveDefaultName()
		assert.ErrorIs(t, err, fingerprint.ErrKeyParse)
		_, ok := k.Name()
		assert.False(t, ok)
	})

	t.Run("public key invalid", func(t *testing.T) {
		k := newUserKey(t)
		require.NoError(t, k.SetPublicKey("new_field_value"))
		err := k.DeriveDefaultName()
		assert.ErrorIs(t, err, fingerprint.ErrKeyParse)
		_, ok := k.Name()
		assert.False(t, ok)
	})
}

func TestDeriveDefaultNameWith(t *testing.T) {
	t.Parallel()

	var seen string
	stub := DeriverFunc(func(publicKey string) (string, error) {
		seen = publicKey
		return "stub-name", nil
	})

	k := newUserKey(t)
	require.NoError(t, k.SetPublicKey("anything"))
	require.NoError(t, k.DeriveDefaultNameWith(stub))
	assert.Equal(t, "anything", seen)
	name, _ := k.Name()
	assert.Equal(t, "stub-name", name)

	failing := DeriverFunc(func(string) (string, error) { return "", errors.New("backend down") })
	k2 := newUserKey(t)
	require.NoError(t, k2.SetPublicKey("anything"))
	assert.EqualError(t, k2.DeriveDefaultNameWith(failing), "backend down")

	bogus := DeriverFunc(func(string) (string, error) { return "Not A Name", nil })
	k3 := newUserKey(t)
	require.NoError(t, k3.SetPublicKey("anything"))
	assert.ErrorIs(t, k3.DeriveDefaultNameWith(bogus), ErrValidation)
	_, ok := k3.Name()
	assert.False(t, ok)
}

func TestCheckComplete(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, CheckComplete(nil), ErrIncomplete)

	k := newUserKey(t)
	assert.ErrorIs(t, CheckComplete(k), ErrIncomplete)

	require.NoError(t, k.SetPublicKey("not a key"))
	assert.ErrorIs(t, CheckComplete(k), fingerprint.ErrKeyParse)

	require.NoError(t, k.SetPublicKey(testPublicKey))
	err := CheckComplete(k)
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Contains(t, err.Error(), "name")

	require.NoError(t, k.DeriveDefaultName())
	assert.NoError(t, CheckComplete(k))
}

func TestClone(t *testing.T) {
	t.Parallel()

	k := newUserKey(t)
	require.NoError(t, k.SetPublicKey(testPublicKey))

	c := k.Clone()
	require.NoError(t, c.DeriveDefaultName())
	require.NoError(t, c.SetActor("other"))

	_, ok := k.Name()
	assert.False(t, ok)
	assert.Equal(t, "original_actor", k.Actor())
	assert.Equal(t, KindUser, c.Kind())
}

func TestParseExpiration(t *testing.T) {
	t.Parallel()

	at, never, err := ParseExpiration("2020-12-24T21:00:00Z")
	require.NoError(t, err)
	assert.False(t, never)
	assert.Equal(t, time.Date(2020, 12, 24, 21, 0, 0, 0, time.UTC), at)

	_, never, err = ParseExpiration(Infinity)
	require.NoError(t, err)
	assert.True(t, never)

	_, _, err = ParseExpiration("2020-13-45T21:00:00Z")
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = ParseExpiration("tomorrow")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	k := newUserKey(t)
	expired, err := k.Expired(now)
	require.NoError(t, err)
	assert.False(t, expired)

	require.NoError(t, k.SetExpirationDate(Infinity))
	expired, err = k.Expired(now)
	require.NoError(t, err)
	assert.False(t, expired)

	require.NoError(t, k.SetExpirationDate("2020-12-24T21:00:00Z"))
	expired, err = k.Expired(now)
	require.NoError(t, err)
	assert.True(t, expired)

	require.NoError(t, k.SetExpirationDate("2030-12-24T21:00:00Z"))
	expired, err = k.Expired(now)
	require.NoError(t, err)
	assert.False(t, expired)
}

func TestKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "user", KindUser.String())
	assert.Equal(t, "client", KindClient.String())
	assert.False(t, Kind(0).Valid())

	kind, err := ParseKind(" Client ")
	require.NoError(t, err)
	assert.Equal(t, KindClient, kind)

	_, err = ParseKind("not_a_user_or_client")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	var decoded Kind
	require.NoError(t, decoded.UnmarshalText([]byte("user")))
	assert.Equal(t, KindUser, decoded)

	text, err := KindClient.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "client", string(text))

	_, err = Kind(0).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
