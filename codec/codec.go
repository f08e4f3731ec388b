// Package codec centralizes document encoding for payloads and usage reports.
//
// A Codec turns Go values into bytes and back. The built-in codecs are JSON
// (encoding/json) and GoJSON (github.com/goccy/go-json), which both honor the
// ordered MarshalJSON/UnmarshalJSON methods of value.Struct, and Binary for
// the compact payload encoding. Any of them can be wrapped in Compressed to
// store documents in checksummed zstd or lz4 frames.
package codec

import (
	"fmt"
	"strings"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
//
// A name may carry a compression suffix, e.g. "go-json+zstd" or "json+lz4",
// in which case the base codec is wrapped in Compressed.
func ByName(name string) (Codec, bool) {
	base, comp, hasComp := strings.Cut(name, "+")

	var c Codec
	switch base {
	case "json":
		c = JSON{}
	case "go-json":
		c = GoJSON{}
	case "binary":
		c = Binary{}
	default:
		return nil, false
	}
	if !hasComp {
		return c, true
	}

	compression, err := ParseCompression(comp)
	if err != nil || compression == CompressionNone {
		return nil, false
	}
	return Compressed{Codec: c, Compression: compression}, true
}

// Names lists the base codec names accepted by ByName.
func Names() []string { return []string{"json", "go-json", "binary"} }

// MustMarshal is a helper for tests and examples.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
