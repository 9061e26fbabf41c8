package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger_WithAndLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	child := l.With("component", "sync")
	child.Info(context.Background(), "cycle finished", "uploaded", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "cycle finished", rec["msg"])
	assert.Equal(t, "sync", rec["component"])
	assert.Equal(t, float64(3), rec["uploaded"])
}
