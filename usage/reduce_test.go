package usage

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestReduceMatchesSum(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := rand.New(rand.NewPCG(7, 11))
	parts := make([]*Usage, 257)
	for i := range parts {
		parts[i] = randomUsage(r)
	}
	want := Sum(parts...)

	for _, workers := range []int{1, 2, 3, 8, 64, 1000} {
		got, err := Reduce(context.Background(), parts, WithWorkers(workers))
		require.NoError(t, err, "workers=%d", workers)
		assert.Equal(t, want, got, "workers=%d", workers)
	}
}

func TestReduceEmpty(t *testing.T) {
	got, err := Reduce(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = Reduce(context.Background(), []*Usage{nil, nil}, WithWorkers(2))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReduceCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	metrics := &BasicMetricsCollector{}
	parts := []*Usage{{Hardware: &HardwareUsage{CPU: 1}}, {Hardware: &HardwareUsage{CPU: 2}}}

	got, err := Reduce(ctx, parts, WithWorkers(2), WithMetrics(metrics))
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, context.Canceled))

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.ReduceCount)
	assert.Equal(t, int64(1), stats.ReduceErrors)
	assert.Equal(t, int64(2), stats.ReduceParts)
}

func TestReduceMetricsAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	metrics := &BasicMetricsCollector{}

	parts := []*Usage{
		{Inference: &InferenceUsage{Models: map[string]ModelUsage{"a": {Tokens: 1}}}},
		{Inference: &InferenceUsage{Models: map[string]ModelUsage{"a": {Tokens: 2}}}},
		{Hardware: &HardwareUsage{CPU: 3}},
	}
	got, err := Reduce(context.Background(), parts, WithWorkers(2), WithLogger(logger), WithMetrics(metrics))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got.Inference.Models["a"].Tokens)
	assert.Equal(t, uint64(3), got.Hardware.CPU)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.ReduceCount)
	assert.Equal(t, int64(0), stats.ReduceErrors)
	assert.Equal(t, int64(3), stats.ReduceParts)
	assert.GreaterOrEqual(t, stats.ReduceAvgNanos, int64(0))

	assert.Contains(t, buf.String(), "usage reduce completed")
	assert.Contains(t, buf.String(), "parts=3")
}

func TestReduceNilOptions(t *testing.T) {
	got, err := Reduce(context.Background(), []*Usage{{Hardware: &HardwareUsage{CPU: 1}}},
		WithWorkers(0), WithLogger(nil), WithMetrics(nil))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.Hardware.CPU)
}

func TestNoopMetricsCollector(t *testing.T) {
	var m MetricsCollector = NoopMetricsCollector{}
	m.RecordReduce(1, 0, nil)
	assert.Equal(t, BasicMetricsStats{}, (&BasicMetricsCollector{}).GetStats())
}
