package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructOrder(t *testing.T) {
	s := NewStruct(F("b", Integer(1)), F("a", Integer(2)), F("c", Integer(3)))
	assert.Equal(t, []string{"b", "a", "c"}, s.Keys())

	// Re-setting keeps the original position.
	s.Set("b", Integer(10))
	assert.Equal(t, []string{"b", "a", "c"}, s.Keys())
	v, ok := s.Get("b")
	assert.True(t, ok)
	assert.True(t, v.Equal(Integer(10)))

	var keys []string
	for k := range s.All() {
		keys = append(keys, k)
		if k == "a" {
			break
		}
	}
	assert.Equal(t, []string{"b", "a"}, keys)
}

func TestStructDuplicateKeys(t *testing.T) {
	s := NewStruct(F("k", Integer(1)), F("other", Null()), F("k", Integer(2)))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"k", "other"}, s.Keys())
	v, _ := s.Get("k")
	assert.True(t, v.Equal(Integer(2)))
}

func TestNilStruct(t *testing.T) {
	var s *Struct
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has("k"))
	assert.Nil(t, s.Keys())
	_, ok := s.Get("k")
	assert.False(t, ok)
	for range s.All() {
		t.Fatal("nil struct must not yield")
	}
	assert.True(t, s.Equal(NewStruct()))
	assert.Equal(t, "{}", s.String())
	assert.Equal(t, map[string]any{}, s.IntoJSON())
}

func TestZeroStructSet(t *testing.T) {
	var s Struct
	s.Set("k", Bool(true))
	assert.Equal(t, 1, s.Len())

	var nilStruct *Struct
	assert.Panics(t, func() { nilStruct.Set("k", Null()) })
}

func TestKeysIsCopy(t *testing.T) {
	s := NewStruct(F("a", Null()))
	keys := s.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"a"}, s.Keys())
}

func TestListValue(t *testing.T) {
	l := ListValue{Integer(1), String("x")}
	assert.Equal(t, 2, l.Len())

	var idx []int
	for i, v := range l.All() {
		idx = append(idx, i)
		assert.False(t, v.IsNull())
	}
	assert.Equal(t, []int{0, 1}, idx)

	// Iter yields pointers into the list.
	for p := range l.Iter() {
		assert.Same(t, &l[0], p)
		break
	}

	assert.True(t, l.Equal(ListValue{Integer(1), String("x")}))
	assert.False(t, l.Equal(ListValue{String("x"), Integer(1)}))
}
