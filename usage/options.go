package usage

import (
	"log/slog"
	"runtime"
)

type options struct {
	workers int
	logger  *slog.Logger
	metrics MetricsCollector
}

func defaultOptions() options {
	return options{
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.New(slog.DiscardHandler),
		metrics: NoopMetricsCollector{},
	}
}

// Option configures Reduce.
type Option func(*options)

// WithWorkers sets the number of goroutines used by Reduce.
//
// If n <= 0, GOMAXPROCS is used.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

// WithLogger sets the logger Reduce reports to. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		o.logger = l
	}
}

// WithMetrics sets the collector Reduce records into. A nil collector
// disables collection.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}
