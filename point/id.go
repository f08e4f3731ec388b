package point

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"hash"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// ErrInvalidID is returned when a string or JSON value is not a valid ID.
var ErrInvalidID = errors.New("point: invalid id")

// IDKind identifies the variant held by an ID.
type IDKind uint8

const (
	// IDKindNone is the kind of the zero ID.
	IDKindNone IDKind = iota
	// IDKindNum is a 64-bit unsigned numeric ID.
	IDKindNum
	// IDKindUUID is a UUID carried in its textual form.
	IDKindUUID
)

// ID identifies a point. It is either a number or a UUID string.
//
// IDs are comparable and can be used as map keys. A numeric ID never equals
// a UUID ID, even when their textual forms match.
type ID struct {
	kind IDKind
	num  uint64
	uuid string
}

// NewNumID returns a numeric ID.
func NewNumID(n uint64) ID { return ID{kind: IDKindNum, num: n} }

// NewUUIDID returns a UUID ID holding s verbatim.
func NewUUIDID(s string) ID { return ID{kind: IDKindUUID, uuid: s} }

// NewIDFromUUID returns a UUID ID holding the canonical form of u.
func NewIDFromUUID(u uuid.UUID) ID { return NewUUIDID(u.String()) }

// ParseID parses s as a numeric ID if it is all digits, otherwise as a UUID
// which is stored in canonical form.
func ParseID(s string) (ID, error) {
	if s == "" {
		return ID{}, fmt.Errorf("%w: empty", ErrInvalidID)
	}
	if isDigits(s) {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return ID{}, fmt.Errorf("%w: %w", ErrInvalidID, err)
		}
		return NewNumID(n), nil
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}
	return NewIDFromUUID(u), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Kind returns the variant of id.
func (id ID) Kind() IDKind { return id.kind }

// IsZero reports whether id holds neither variant.
func (id ID) IsZero() bool { return id.kind == IDKindNone }

// Num returns the numeric value if id is numeric.
func (id ID) Num() (uint64, bool) {
	if id.kind != IDKindNum {
		return 0, false
	}
	return id.num, true
}

// UUID returns the UUID text if id is a UUID.
func (id ID) UUID() (string, bool) {
	if id.kind != IDKindUUID {
		return "", false
	}
	return id.uuid, true
}

// String returns the decimal number or the UUID text. The zero ID is "".
func (id ID) String() string {
	switch id.kind {
	case IDKindNum:
		return strconv.FormatUint(id.num, 10)
	case IDKindUUID:
		return id.uuid
	default:
		return ""
	}
}

// Equal reports whether both IDs hold the same variant and payload.
func (id ID) Equal(other ID) bool { return id == other }

// WriteHash feeds id into h.
//
// A numeric ID writes its 8 little-endian bytes. A UUID ID writes the string
// bytes followed by a 0xff terminator. The zero ID writes nothing.
func (id ID) WriteHash(h hash.Hash) {
	switch id.kind {
	case IDKindNum:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], id.num)
		_, _ = h.Write(b[:])
	case IDKindUUID:
		_, _ = h.Write([]byte(id.uuid))
		_, _ = h.Write([]byte{0xff})
	}
}

// Hash returns the xxhash64 digest of the bytes written by WriteHash, seeded
// with the ID kind so that numeric and UUID IDs never share a digest input.
func (id ID) Hash() uint64 {
	d := xxhash.NewWithSeed(uint64(id.kind))
	id.WriteHash(d)
	return d.Sum64()
}

// MarshalJSON encodes a numeric ID as a JSON number, a UUID ID as a string
// and the zero ID as null.
func (id ID) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case IDKindNum:
		return strconv.AppendUint(nil, id.num, 10), nil
	case IDKindUUID:
		return json.Marshal(id.uuid)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ID{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidID, err)
		}
		*id = NewUUIDID(s)
		return nil
	default:
		n, err := strconv.ParseUint(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidID, err)
		}
		*id = NewNumID(n)
		return nil
	}
}
