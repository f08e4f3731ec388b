package point

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a hash.Hash that keeps every written byte.
type recorder struct{ bytes.Buffer }

func (r *recorder) Sum(b []byte) []byte { return append(b, r.Bytes()...) }
func (r *recorder) Size() int           { return r.Len() }
func (r *recorder) BlockSize() int      { return 1 }

func TestIDVariants(t *testing.T) {
	n := NewNumID(42)
	v, ok := n.Num()
	assert.True(t, ok)
	assert.Equal(t, uint64(42), v)
	_, ok = n.UUID()
	assert.False(t, ok)
	assert.Equal(t, IDKindNum, n.Kind())
	assert.Equal(t, "42", n.String())

	u := NewUUIDID("abc")
	s, ok := u.UUID()
	assert.True(t, ok)
	assert.Equal(t, "abc", s)
	_, ok = u.Num()
	assert.False(t, ok)

	var zero ID
	assert.True(t, zero.IsZero())
	assert.Equal(t, "", zero.String())
}

func TestIDFromUUID(t *testing.T) {
	u := uuid.MustParse("6BA7B810-9DAD-11D1-80B4-00C04FD430C8")
	id := NewIDFromUUID(u)
	s, ok := id.UUID()
	require.True(t, ok)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", s)

	back, err := uuid.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, u, back)
}

func TestIDEquality(t *testing.T) {
	assert.True(t, NewNumID(7).Equal(NewNumID(7)))
	assert.False(t, NewNumID(7).Equal(NewUUIDID("7")))
	assert.False(t, NewUUIDID("a").Equal(NewUUIDID("b")))

	m := map[ID]int{NewNumID(1): 1, NewUUIDID("1"): 2}
	assert.Len(t, m, 2)
}

func TestIDHash(t *testing.T) {
	assert.Equal(t, NewNumID(7).Hash(), NewNumID(7).Hash())
	assert.Equal(t, NewUUIDID("a").Hash(), NewUUIDID("a").Hash())
	assert.NotEqual(t, NewNumID(7).Hash(), NewNumID(8).Hash())
	assert.NotEqual(t, NewNumID(7).Hash(), NewUUIDID("a").Hash())
	assert.NotEqual(t, NewNumID(7).Hash(), NewUUIDID("7").Hash())

	// A 7-byte UUID string plus its terminator has the same bytes as a
	// numeric ID whose top byte is 0xff; the kinds must still hash apart.
	num := NewNumID(0xff00000000000001)
	text := NewUUIDID("\x01\x00\x00\x00\x00\x00\x00")
	var a, b recorder
	num.WriteHash(&a)
	text.WriteHash(&b)
	require.Equal(t, a.Bytes(), b.Bytes())
	assert.NotEqual(t, num.Hash(), text.Hash())

	// The zero ID contributes nothing.
	assert.Equal(t, xxhash.Sum64(nil), ID{}.Hash())
	assert.Equal(t, ID{}.Hash(), ID{}.Hash())
}

func TestIDWriteHash(t *testing.T) {
	var r recorder
	NewNumID(0x0102030405060708).WriteHash(&r)
	assert.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, r.Bytes())

	r.Reset()
	NewUUIDID("ab").WriteHash(&r)
	assert.Equal(t, []byte{'a', 'b', 0xff}, r.Bytes())

	r.Reset()
	ID{}.WriteHash(&r)
	assert.Empty(t, r.Bytes())
}

func TestParseID(t *testing.T) {
	id, err := ParseID("12345")
	require.NoError(t, err)
	assert.Equal(t, NewNumID(12345), id)

	id, err = ParseID("6BA7B810-9DAD-11D1-80B4-00C04FD430C8")
	require.NoError(t, err)
	assert.Equal(t, NewUUIDID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), id)

	for _, bad := range []string{"", "not-a-uuid", "99999999999999999999999"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrInvalidID, bad)
	}
}

func TestIDJSON(t *testing.T) {
	type doc struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	in := doc{A: NewNumID(18446744073709551615), B: NewUUIDID("x-y"), C: ID{}}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":18446744073709551615,"b":"x-y","c":null}`, string(b))

	var out doc
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)

	var id ID
	assert.ErrorIs(t, id.UnmarshalJSON([]byte(`-1`)), ErrInvalidID)
	assert.ErrorIs(t, id.UnmarshalJSON([]byte(`1.5`)), ErrInvalidID)
}
