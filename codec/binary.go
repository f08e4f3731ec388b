package codec

import (
	"encoding"
	"fmt"
)

// Binary encodes values that implement encoding.BinaryMarshaler and
// encoding.BinaryUnmarshaler, such as *value.Struct. It is more compact than
// JSON and keeps the integer/double distinction without textual markers.
type Binary struct{}

// Marshal encodes v with its MarshalBinary method.
func (Binary) Marshal(v any) ([]byte, error) {
	m, ok := v.(encoding.BinaryMarshaler)
	if !ok {
		return nil, fmt.Errorf("codec: binary: %T does not implement encoding.BinaryMarshaler", v)
	}
	return m.MarshalBinary()
}

// Unmarshal decodes data into v with its UnmarshalBinary method.
func (Binary) Unmarshal(data []byte, v any) error {
	u, ok := v.(encoding.BinaryUnmarshaler)
	if !ok {
		return fmt.Errorf("codec: binary: %T does not implement encoding.BinaryUnmarshaler", v)
	}
	return u.UnmarshalBinary(data)
}

// Name returns the unique name of the codec ("binary").
func (Binary) Name() string { return "binary" }
