package pointkit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	l := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l.LogLoad(ctx, "a.json", "go-json", nil)
	assert.Contains(t, buf.String(), `"msg":"load completed"`)
	assert.Contains(t, buf.String(), `"codec":"go-json"`)

	buf.Reset()
	l.LogReduce(ctx, 2, errors.New("boom"))
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), `"files":2`)
	assert.Contains(t, buf.String(), `"error":"boom"`)
}

func TestLoggerConstructors(t *testing.T) {
	assert.NotNil(t, NewLogger(nil))
	assert.NotNil(t, NewJSONLogger(slog.LevelWarn))
	assert.NotNil(t, NewTextLogger(slog.LevelWarn))
	assert.False(t, NoopLogger().Enabled(context.Background(), slog.LevelError))
}
