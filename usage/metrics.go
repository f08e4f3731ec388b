package usage

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives one record per Reduce call.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordReduce is called after each reduction. parts is the number of
	// inputs, duration the time taken and err is nil on success.
	RecordReduce(parts int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

// RecordReduce implements MetricsCollector.
func (NoopMetricsCollector) RecordReduce(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// It is safe for concurrent use.
type BasicMetricsCollector struct {
	ReduceCount      atomic.Int64
	ReduceErrors     atomic.Int64
	ReduceParts      atomic.Int64
	ReduceTotalNanos atomic.Int64
}

// RecordReduce implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReduce(parts int, duration time.Duration, err error) {
	b.ReduceCount.Add(1)
	b.ReduceParts.Add(int64(parts))
	b.ReduceTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReduceErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	count := b.ReduceCount.Load()
	var avg int64
	if count > 0 {
		avg = b.ReduceTotalNanos.Load() / count
	}
	return BasicMetricsStats{
		ReduceCount:    count,
		ReduceErrors:   b.ReduceErrors.Load(),
		ReduceParts:    b.ReduceParts.Load(),
		ReduceAvgNanos: avg,
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ReduceCount    int64
	ReduceErrors   int64
	ReduceParts    int64
	ReduceAvgNanos int64
}
