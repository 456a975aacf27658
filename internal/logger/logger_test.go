package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrettyHandler(t *testing.T) {
	color.NoColor = true

	t.Run("should render level, message and attributes", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, slog.LevelInfo, false)

		l.With("pr_number", 7).Info("title proposed", "title", "Fix parser")

		out := buf.String()
		assert.Contains(t, out, "[INFO]")
		assert.Contains(t, out, "title proposed")
		assert.Contains(t, out, "pr_number=7")
		assert.Contains(t, out, `title="Fix parser"`)
	})

	t.Run("should drop records below the level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, slog.LevelWarn, false)

		l.Info("hidden")
		l.Debug("hidden too")

		assert.Empty(t, buf.String())
	})

	t.Run("should prefix grouped keys", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, slog.LevelInfo, false)

		l.WithGroup("github").Info("request", "status", 200)

		assert.Contains(t, buf.String(), "github.status=200")
	})
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelInfo, true)

	l.Info("done", "action", "updated")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "done", record["msg"])
	assert.Equal(t, "updated", record["action"])
}

func TestContextLogger(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	l := New(&buf, slog.LevelDebug, false)

	ctx := WithLogger(context.Background(), l)
	ctx = With(ctx, "pr_number", 12)

	Info(ctx, "reading PR")
	Error(ctx, "failed", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "reading PR")
	assert.Contains(t, out, "pr_number=12")
	assert.Contains(t, out, "error=boom")
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}
