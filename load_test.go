package pointkit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pointkit/codec"
	"github.com/hupe1980/pointkit/usage"
	"github.com/hupe1980/pointkit/value"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLoadPayload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	doc := []byte(`{"city":"Berlin","population":3645000,"area":891.8,"tags":["capital",null],"geo":{"lat":52.52}}`)

	t.Run("plain", func(t *testing.T) {
		for _, c := range []codec.Codec{codec.JSON{}, codec.GoJSON{}} {
			s, err := LoadPayload(ctx, writeFile(t, dir, "p.json", doc), WithCodec(c))
			require.NoError(t, err)
			assert.Equal(t, []string{"city", "population", "area", "tags", "geo"}, s.Keys())

			pop, _ := s.Get("population")
			n, ok := pop.AsInteger()
			require.True(t, ok)
			assert.Equal(t, int64(3645000), n)

			area, _ := s.Get("area")
			assert.True(t, area.IsDouble())
		}
	})

	t.Run("framed zst", func(t *testing.T) {
		frame, err := codec.EncodeFrame(doc, codec.CompressionZSTD)
		require.NoError(t, err)

		s, err := LoadPayload(ctx, writeFile(t, dir, "p.json.zst", frame))
		require.NoError(t, err)
		assert.Equal(t, 5, s.Len())
	})

	t.Run("raw zstd stream", func(t *testing.T) {
		enc, err := zstd.NewWriter(nil)
		require.NoError(t, err)
		raw := enc.EncodeAll(doc, nil)
		require.NoError(t, enc.Close())

		s, err := LoadPayload(ctx, writeFile(t, dir, "raw.zst", raw))
		require.NoError(t, err)
		assert.Equal(t, 5, s.Len())
	})

	t.Run("framed without extension", func(t *testing.T) {
		frame, err := codec.EncodeFrame(doc, codec.CompressionLZ4)
		require.NoError(t, err)

		s, err := LoadPayload(ctx, writeFile(t, dir, "p.bin", frame))
		require.NoError(t, err)
		assert.Equal(t, 5, s.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPayload(ctx, filepath.Join(dir, "nope.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("not an object", func(t *testing.T) {
		path := writeFile(t, dir, "arr.json", []byte(`[1,2]`))
		_, err := LoadPayload(ctx, path)

		var de *DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, path, de.Path)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := LoadPayload(ctx, writeFile(t, dir, "empty.json", []byte("  \n")))
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("corrupt frame", func(t *testing.T) {
		frame, err := codec.EncodeFrame(doc, codec.CompressionNone)
		require.NoError(t, err)
		frame[len(frame)-2] ^= 0x01

		_, err = LoadPayload(ctx, writeFile(t, dir, "bad.json", frame))
		assert.ErrorIs(t, err, codec.ErrChecksum)
	})

	t.Run("canceled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := LoadPayload(cctx, writeFile(t, dir, "c.json", doc))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("unknown codec", func(t *testing.T) {
		_, err := LoadPayload(ctx, writeFile(t, dir, "u.json", doc), WithCodecName("yaml"))
		assert.ErrorIs(t, err, ErrUnknownCodec)
	})
}

func TestEncodeDecodePayload(t *testing.T) {
	s := value.NewStruct(
		value.F("b", value.Integer(1)),
		value.F("a", value.Double(1)),
	)

	for _, comp := range []codec.Compression{codec.CompressionNone, codec.CompressionLZ4, codec.CompressionZSTD} {
		t.Run(comp.String(), func(t *testing.T) {
			data, err := EncodePayload(s, WithCompression(comp))
			require.NoError(t, err)
			assert.Equal(t, comp != codec.CompressionNone, codec.IsFrame(data))

			got, err := DecodePayload(data)
			require.NoError(t, err)
			assert.True(t, s.Equal(got))
			assert.Equal(t, []string{"b", "a"}, got.Keys())
		})
	}

	_, err := DecodePayload(nil)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Empty(t, de.Path)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestCodecNameRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := value.NewStruct(
		value.F("city", value.String("Berlin")),
		value.F("rating", value.Double(4)),
		value.F("tags", value.List(value.String("capital"), value.Integer(1))),
	)

	for _, name := range []string{"json", "go-json", "binary", "json+zstd", "go-json+lz4", "binary+zstd", "binary+lz4"} {
		t.Run(name, func(t *testing.T) {
			data, err := EncodePayload(s, WithCodecName(name))
			require.NoError(t, err)

			path := writeFile(t, dir, "p.doc", data)
			got, err := LoadPayload(ctx, path, WithCodecName(name))
			require.NoError(t, err)
			assert.True(t, s.Equal(got))
			assert.Equal(t, []string{"city", "rating", "tags"}, got.Keys())

			got, err = DecodePayload(data, WithCodecName(name))
			require.NoError(t, err)
			assert.True(t, s.Equal(got))
		})
	}

	t.Run("compressed codec value", func(t *testing.T) {
		c := codec.Compressed{Codec: codec.JSON{}, Compression: codec.CompressionZSTD}
		data, err := c.Marshal(s)
		require.NoError(t, err)

		got, err := LoadPayload(ctx, writeFile(t, dir, "c.json", data), WithCodec(c))
		require.NoError(t, err)
		assert.True(t, s.Equal(got))
	})
}

func TestDecodeUsage(t *testing.T) {
	u, err := DecodeUsage([]byte(`{"hardware":{"cpu":3,"vector_io_read":7},"inference":{"models":{"bge":{"tokens":12}}}}`))
	require.NoError(t, err)
	require.NotNil(t, u.Hardware)
	assert.Equal(t, uint64(3), u.Hardware.CPU)
	assert.Equal(t, uint64(7), u.Hardware.VectorIORead)
	assert.Equal(t, uint64(12), u.Inference.Models["bge"].Tokens)

	u, err = DecodeUsage([]byte(`{}`))
	require.NoError(t, err)
	assert.True(t, u.IsEmpty())
}

func TestSumUsageFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	a := writeFile(t, dir, "a.json", []byte(`{"inference":{"models":{"model_a":{"tokens":100},"model_b":{"tokens":200}}}}`))
	b := writeFile(t, dir, "b.json", []byte(`{"hardware":{"cpu":2},"inference":{"models":{"model_a":{"tokens":50},"model_c":{"tokens":300}}}}`))

	frame, err := codec.EncodeFrame([]byte(`{"hardware":{"cpu":1}}`), codec.CompressionZSTD)
	require.NoError(t, err)
	c := writeFile(t, dir, "c.json.zst", frame)

	var logs bytes.Buffer
	metrics := &usage.BasicMetricsCollector{}

	total, err := SumUsageFiles(ctx, []string{a, b, c},
		WithWorkers(2),
		WithMetrics(metrics),
		WithLogger(NewLogger(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))),
	)
	require.NoError(t, err)

	assert.Equal(t, uint64(3), total.Hardware.CPU)
	assert.Equal(t, map[string]usage.ModelUsage{
		"model_a": {Tokens: 150},
		"model_b": {Tokens: 200},
		"model_c": {Tokens: 300},
	}, total.Inference.Models)

	assert.Equal(t, int64(1), metrics.GetStats().ReduceCount)
	assert.Contains(t, logs.String(), "usage sum completed")
	assert.Contains(t, logs.String(), "load completed")

	t.Run("empty list", func(t *testing.T) {
		_, err := SumUsageFiles(ctx, nil)
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("one bad file", func(t *testing.T) {
		bad := writeFile(t, dir, "bad.json", []byte(`{"hardware":{"cpu":-1}}`))
		_, err := SumUsageFiles(ctx, []string{a, bad})

		var de *DecodeError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, bad, de.Path)
	})
}
