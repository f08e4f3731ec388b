package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Payload structs keep their key order and the integer/double distinction
// through their own MarshalJSON/UnmarshalJSON methods, so JSON and GoJSON
// produce the same bytes for them.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// MarshalIndent encodes v as indented JSON.
func (JSON) MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(v, prefix, indent)
}

// Default is the codec used when none is configured.
var Default Codec = GoJSON{}
