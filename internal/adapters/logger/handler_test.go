package logger_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/redo/internal/adapters/logger"
)

func newTestHandler(t *testing.T, level slog.Leveler) (*logger.PrettyHandler, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: level}), buf
}

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		want  string
	}{
		{name: "info", level: slog.LevelInfo, want: "message\n"},
		{name: "warn", level: slog.LevelWarn, want: "! message\n"},
		{name: "error", level: slog.LevelError, want: "✗ message\n"},
		{name: "debug filtered", level: slog.LevelDebug, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, buf := newTestHandler(t, slog.LevelInfo)
			slog.New(h).Log(t.Context(), tt.level, "message")
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_DynamicLevel(t *testing.T) {
	level := &slog.LevelVar{}
	h, buf := newTestHandler(t, level)
	lg := slog.New(h)

	lg.Debug("first")
	assert.Empty(t, buf.String())

	level.Set(slog.LevelDebug)
	lg.Debug("second")
	assert.Equal(t, "○ second\n", buf.String())
}

func TestPrettyHandler_Attrs(t *testing.T) {
	tests := []struct {
		name  string
		attrs []slog.Attr
		want  string
	}{
		{
			name:  "single",
			attrs: []slog.Attr{slog.String("target", "hello")},
			want:  "msg target=hello\n",
		},
		{
			name:  "multiple",
			attrs: []slog.Attr{slog.String("a", "1"), slog.Int("b", 2)},
			want:  "msg a=1 b=2\n",
		},
		{
			name:  "empty value",
			attrs: []slog.Attr{slog.String("empty", "")},
			want:  "msg empty=\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, buf := newTestHandler(t, slog.LevelInfo)
			slog.New(h.WithAttrs(tt.attrs)).Info("msg")
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_RecordAttrs(t *testing.T) {
	h, buf := newTestHandler(t, slog.LevelInfo)
	slog.New(h.WithAttrs([]slog.Attr{slog.String("run", "1")})).Info("msg", "rule", "default.o.do")

	assert.Equal(t, "msg run=1 rule=default.o.do\n", buf.String())
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	h, buf := newTestHandler(t, slog.LevelInfo)
	slog.New(h.WithGroup("build").WithGroup("rule")).Info("msg", "name", "x.do")

	assert.Equal(t, "msg build.rule.name=x.do\n", buf.String())
}

func TestPrettyHandler_WithGroup_EmptyName(t *testing.T) {
	h, _ := newTestHandler(t, slog.LevelInfo)
	assert.Same(t, h, h.WithGroup(""))
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h, _ := newTestHandler(t, slog.LevelWarn)

	assert.False(t, h.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, h.Enabled(t.Context(), slog.LevelWarn))
	assert.True(t, h.Enabled(t.Context(), slog.LevelError))
}

func TestPrettyHandler_NilWriter(t *testing.T) {
	require.NotPanics(t, func() {
		_ = logger.NewPrettyHandler(nil, nil)
	})
}

func TestPrettyHandler_Handle_ReturnsError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	h := logger.NewPrettyHandler(brokenWriter{}, nil)
	record := slog.NewRecord(time.Time{}, slog.LevelInfo, "lost", 0)

	require.Error(t, h.Handle(t.Context(), record))
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}
