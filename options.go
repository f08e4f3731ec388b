package pointkit

import (
	"fmt"
	"runtime"

	"github.com/hupe1980/pointkit/codec"
	"github.com/hupe1980/pointkit/usage"
)

type options struct {
	codec       codec.Codec
	compression codec.Compression
	logger      *Logger
	workers     int
	metrics     usage.MetricsCollector
}

func defaultOptions() options {
	return options{
		codec:   codec.Default,
		logger:  NoopLogger(),
		workers: runtime.GOMAXPROCS(0),
		metrics: usage.NoopMetricsCollector{},
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// The loaders frame and unframe themselves, so a compressed codec is
	// split into its inner codec and its compression.
	if cc, ok := o.codec.(codec.Compressed); ok {
		if o.compression == codec.CompressionNone {
			o.compression = cc.Compression
		}
		o.codec = cc.Inner()
	}
	return o
}

// Option configures the loaders.
type Option func(*options)

// WithCodec configures the codec used to decode documents.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCodecName selects a built-in codec by name (see codec.ByName), e.g.
// "go-json", "binary" or "json+zstd". An unknown name is reported by the
// loader as ErrUnknownCodec.
func WithCodecName(name string) Option {
	return func(o *options) {
		c, ok := codec.ByName(name)
		if !ok {
			o.codec = unknownCodec(name)
			return
		}
		o.codec = c
	}
}

// WithCompression forces the compression used for input.
//
// By default it is inferred from the file extension (.zst, .lz4). Framed
// input is always recognized.
func WithCompression(c codec.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithWorkers bounds the number of files loaded and reduced concurrently by
// SumUsageFiles. If n <= 0, GOMAXPROCS is used.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

// WithMetrics sets the collector that receives usage reduction metrics.
func WithMetrics(m usage.MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = usage.NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// unknownCodec defers a bad codec name until the codec is first used.
type unknownCodec string

func (c unknownCodec) Marshal(any) ([]byte, error) { return nil, c.err() }

func (c unknownCodec) Unmarshal([]byte, any) error { return c.err() }

func (c unknownCodec) Name() string { return string(c) }

func (c unknownCodec) err() error { return fmt.Errorf("%w: %q", ErrUnknownCodec, string(c)) }
