package pointkit

import (
	"bytes"
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/pointkit/codec"
	"github.com/hupe1980/pointkit/usage"
	"github.com/hupe1980/pointkit/value"
)

// LoadPayload reads a payload document from path.
//
// The document must be a JSON object (or null, which yields an empty
// payload). Key order is preserved.
func LoadPayload(ctx context.Context, path string, opts ...Option) (*value.Struct, error) {
	o := applyOptions(opts)

	var s value.Struct
	if err := loadFile(ctx, path, &s, o); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadUsage reads a usage report from path.
func LoadUsage(ctx context.Context, path string, opts ...Option) (*usage.Usage, error) {
	o := applyOptions(opts)

	var u usage.Usage
	if err := loadFile(ctx, path, &u, o); err != nil {
		return nil, err
	}
	return &u, nil
}

// DecodePayload decodes a payload document held in memory. Framed input is
// unwrapped; raw zstd/lz4 streams require WithCompression.
func DecodePayload(data []byte, opts ...Option) (*value.Struct, error) {
	o := applyOptions(opts)

	var s value.Struct
	if err := decode(data, "", &s, o.compression, o.codec); err != nil {
		return nil, err
	}
	return &s, nil
}

// DecodeUsage decodes a usage report held in memory.
func DecodeUsage(data []byte, opts ...Option) (*usage.Usage, error) {
	o := applyOptions(opts)

	var u usage.Usage
	if err := decode(data, "", &u, o.compression, o.codec); err != nil {
		return nil, err
	}
	return &u, nil
}

// EncodePayload encodes s with the configured codec. If a compression is
// configured the result is wrapped in a checksummed frame.
func EncodePayload(s *value.Struct, opts ...Option) ([]byte, error) {
	o := applyOptions(opts)

	data, err := o.codec.Marshal(s)
	if err != nil {
		return nil, err
	}
	if o.compression == codec.CompressionNone {
		return data, nil
	}
	return codec.EncodeFrame(data, o.compression)
}

// SumUsageFiles loads every usage report in paths and aggregates them.
//
// Files are loaded concurrently, at most WithWorkers at a time. The first
// failure cancels the remaining loads and is returned.
func SumUsageFiles(ctx context.Context, paths []string, opts ...Option) (*usage.Usage, error) {
	o := applyOptions(opts)

	total, err := sumUsageFiles(ctx, paths, o)
	o.logger.LogReduce(ctx, len(paths), err)
	return total, err
}

func sumUsageFiles(ctx context.Context, paths []string, o options) (*usage.Usage, error) {
	if len(paths) == 0 {
		return nil, ErrEmptyInput
	}

	parts := make([]*usage.Usage, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, path := range paths {
		g.Go(func() error {
			var u usage.Usage
			if err := loadFile(gctx, path, &u, o); err != nil {
				return err
			}
			parts[i] = &u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return usage.Reduce(ctx, parts,
		usage.WithWorkers(o.workers),
		usage.WithLogger(o.logger.Logger),
		usage.WithMetrics(o.metrics),
	)
}

func loadFile(ctx context.Context, path string, dst any, o options) error {
	err := readAndDecode(ctx, path, dst, o)
	o.logger.LogLoad(ctx, path, o.codec.Name(), err)
	return err
}

func readAndDecode(ctx context.Context, path string, dst any, o options) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is caller supplied
	if err != nil {
		return err
	}

	compression := o.compression
	if compression == codec.CompressionNone {
		compression = codec.CompressionForPath(path)
	}
	return decode(data, path, dst, compression, o.codec)
}

func decode(data []byte, path string, dst any, compression codec.Compression, c codec.Codec) error {
	raw, err := codec.Decompress(data, compression)
	if err != nil {
		return &DecodeError{Path: path, cause: err}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return &DecodeError{Path: path, cause: ErrEmptyInput}
	}
	if err := c.Unmarshal(raw, dst); err != nil {
		return &DecodeError{Path: path, cause: err}
	}
	return nil
}
