package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tasklist/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger writes to a buffer with NO_COLOR set so output has no ANSI codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name string
		log  func(*logger.Logger)
		want string
	}{
		{name: "info", log: func(l *logger.Logger) { l.Info("loaded 3 tasks") }, want: "loaded 3 tasks\n"},
		{name: "empty info", log: func(l *logger.Logger) { l.Info("") }, want: "\n"},
		{name: "warn", log: func(l *logger.Logger) { l.Warn("tasks were not saved") }, want: "! tasks were not saved\n"},
		{name: "simple error", log: func(l *logger.Logger) { l.Error(errors.New("boom")) }, want: "✗ Error: boom\n"},
		{name: "nil error", log: func(l *logger.Logger) { l.Error(nil) }, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLogger_Error_Chains(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "zerr wrap",
			err:  zerr.Wrap(errors.New("permission denied"), "failed to write task slot"),
			want: "✗ Error: failed to write task slot\n\n  Caused by:\n    → permission denied\n",
		},
		{
			name: "joined sentinel and cause",
			err:  errors.Join(zerr.New("failed to save tasks"), errors.New("disk full")),
			want: "✗ Error: failed to save tasks\n\n  Caused by:\n    → disk full\n",
		},
		{
			name: "stdlib chain is printed whole",
			err:  fmt.Errorf("outer: %w", errors.New("inner")),
			want: "✗ Error: outer: inner\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Error(zerr.With(zerr.New("unknown storage backend"), "backend", "redis"))

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"error"`)
	assert.Contains(t, out, "unknown storage backend")
	assert.Contains(t, out, `"backend":"redis"`)
	assert.NotContains(t, out, "✗")

	buf.Reset()
	lg.SetJSON(false)
	lg.Warn("back to pretty")
	assert.Equal(t, "! back to pretty\n", buf.String())
}

func TestLogger_SetOutputKeepsMode(t *testing.T) {
	lg, _ := newTestLogger(t)
	lg.SetJSON(true)

	var buf bytes.Buffer
	lg.SetOutput(&buf)
	lg.Info("hello")

	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestLogger_ConcurrentUse(t *testing.T) {
	lg, buf := newTestLogger(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 50 {
			lg.SetJSON(false)
		}
	}()
	for range 50 {
		lg.Info("x")
	}
	<-done

	require.NotEmpty(t, buf.String())
}
