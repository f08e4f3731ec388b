package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/pointkit/internal/conv"
	"github.com/hupe1980/pointkit/internal/hash"
)

var (
	// ErrCorruptFrame is returned when a frame header or body is malformed.
	ErrCorruptFrame = errors.New("codec: corrupt frame")
	// ErrChecksum is returned when a frame's content does not match its checksum.
	ErrChecksum = errors.New("codec: checksum mismatch")
)

// Compression defines the compression algorithm used for a frame.
type Compression uint8

const (
	// CompressionNone stores data uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD (better ratio).
	CompressionZSTD Compression = 2
)

// String returns the short name of the algorithm.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression maps a name ("none", "lz4", "zstd") to a Compression.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd", "zst":
		return CompressionZSTD, nil
	default:
		return CompressionNone, fmt.Errorf("codec: unknown compression %q", name)
	}
}

// CompressionForPath infers the compression from a file extension.
// Files ending in .zst use ZSTD, .lz4 uses LZ4, anything else none.
func CompressionForPath(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CompressionZSTD
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// Frame layout (little endian):
//
//	[magic "PKF" 3][algo 1][uncompressed size 4][stored size 4][crc32c 4][data...]
//
// A stored size of zero means the data follows uncompressed. The checksum
// covers the uncompressed bytes.
const (
	frameHeaderSize = 16
	// maxFrameSize bounds the allocation made for a decoded frame.
	maxFrameSize = 1 << 30
	maxLZ4Ratio  = 255
)

var frameMagic = [3]byte{'P', 'K', 'F'}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) { zstdEncoderPool.Put(enc) }

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxFrameSize))
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) { zstdDecoderPool.Put(dec) }

// IsFrame reports whether data starts with a frame header.
func IsFrame(data []byte) bool {
	return len(data) >= frameHeaderSize && bytes.Equal(data[:3], frameMagic[:])
}

// EncodeFrame compresses data with c and wraps it in a checksummed frame.
//
// If compression does not shrink the data by at least 10% the frame stores it
// uncompressed.
func EncodeFrame(data []byte, c Compression) ([]byte, error) {
	size, err := conv.IntToUint32(len(data))
	if err != nil {
		return nil, err
	}

	var compressed []byte
	switch c {
	case CompressionNone:
	case CompressionLZ4:
		if len(data) == 0 {
			break
		}
		compressed, err = compressLZ4(data)
	case CompressionZSTD:
		if len(data) == 0 {
			break
		}
		compressed = compressZSTD(data)
	default:
		return nil, fmt.Errorf("codec: unknown compression %d", uint8(c))
	}
	if err != nil {
		return nil, err
	}

	body := data
	stored := uint32(0)
	if len(compressed) > 0 && float64(len(compressed)) <= float64(len(data))*0.9 {
		body = compressed
		stored = uint32(len(compressed)) //nolint:gosec // len(compressed) < len(data) which fits in uint32
	}

	out := make([]byte, frameHeaderSize+len(body))
	copy(out, frameMagic[:])
	out[3] = byte(c)
	binary.LittleEndian.PutUint32(out[4:], size)
	binary.LittleEndian.PutUint32(out[8:], stored)
	binary.LittleEndian.PutUint32(out[12:], hash.CRC32C(data))
	copy(out[frameHeaderSize:], body)
	return out, nil
}

// DecodeFrame unwraps a frame produced by EncodeFrame and verifies its
// checksum.
func DecodeFrame(frame []byte) ([]byte, error) {
	if !IsFrame(frame) {
		return nil, fmt.Errorf("%w: missing header", ErrCorruptFrame)
	}

	algo := Compression(frame[3])
	size := binary.LittleEndian.Uint32(frame[4:])
	stored := binary.LittleEndian.Uint32(frame[8:])
	sum := binary.LittleEndian.Uint32(frame[12:])
	body := frame[frameHeaderSize:]

	if size > maxFrameSize {
		return nil, fmt.Errorf("%w: size %d exceeds limit", ErrCorruptFrame, size)
	}

	var data []byte
	if stored == 0 {
		if uint64(len(body)) != uint64(size) {
			return nil, fmt.Errorf("%w: body is %d bytes, header says %d", ErrCorruptFrame, len(body), size)
		}
		data = body
	} else {
		if uint64(len(body)) != uint64(stored) {
			return nil, fmt.Errorf("%w: body is %d bytes, header says %d", ErrCorruptFrame, len(body), stored)
		}
		var err error
		data, err = decompressBlock(body, algo, size)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptFrame, err)
		}
	}

	if hash.CRC32C(data) != sum {
		return nil, ErrChecksum
	}
	return data, nil
}

// Decompress undoes compression c on data.
//
// Framed input is decoded with DecodeFrame whatever c says. Otherwise data is
// treated as a raw stream as written by the zstd or lz4 command line tools.
func Decompress(data []byte, c Compression) ([]byte, error) {
	if IsFrame(data) {
		return DecodeFrame(data)
	}

	switch c {
	case CompressionNone:
		return data, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptFrame, err)
		}
		return out, nil
	case CompressionLZ4:
		out, err := io.ReadAll(io.LimitReader(lz4.NewReader(bytes.NewReader(data)), maxFrameSize+1))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptFrame, err)
		}
		if len(out) > maxFrameSize {
			return nil, fmt.Errorf("%w: stream exceeds limit", ErrCorruptFrame)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("codec: unknown compression %d", uint8(c))
	}
}

func compressLZ4(data []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	n, err := lz4.CompressBlock(data, dst, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return dst[:n], nil
}

func compressZSTD(data []byte) []byte {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)

	return enc.EncodeAll(data, nil)
}

func decompressBlock(body []byte, algo Compression, size uint32) ([]byte, error) {
	switch algo {
	case CompressionLZ4:
		// An LZ4 block expands at most ~255x; larger claims are corrupt.
		if uint64(size) > uint64(len(body))*maxLZ4Ratio {
			return nil, fmt.Errorf("size %d exceeds lz4 bound for %d bytes", size, len(body))
		}
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, err
		}
		if uint64(n) != uint64(size) {
			return nil, errors.New("decompressed size mismatch")
		}
		return out, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		out, err := dec.DecodeAll(body, make([]byte, 0, min(uint64(size), uint64(len(body))*4)))
		if err != nil {
			return nil, err
		}
		if uint64(len(out)) != uint64(size) {
			return nil, errors.New("decompressed size mismatch")
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unknown compression %d", uint8(algo))
	}
}

// Compressed wraps a Codec so that encoded documents are stored in frames.
//
// Unmarshal also accepts raw zstd/lz4 streams and, for CompressionNone,
// plain unframed input.
type Compressed struct {
	Codec       Codec
	Compression Compression
}

// Inner returns the wrapped codec, or Default if none is set.
func (c Compressed) Inner() Codec {
	if c.Codec == nil {
		return Default
	}
	return c.Codec
}

// Marshal encodes v with the inner codec and frames the result.
func (c Compressed) Marshal(v any) ([]byte, error) {
	raw, err := c.Inner().Marshal(v)
	if err != nil {
		return nil, err
	}
	return EncodeFrame(raw, c.Compression)
}

// Unmarshal unframes data and decodes it with the inner codec.
func (c Compressed) Unmarshal(data []byte, v any) error {
	raw, err := Decompress(data, c.Compression)
	if err != nil {
		return err
	}
	return c.Inner().Unmarshal(raw, v)
}

// Name returns "<inner>+<compression>", e.g. "go-json+zstd".
func (c Compressed) Name() string {
	return c.Inner().Name() + "+" + c.Compression.String()
}
