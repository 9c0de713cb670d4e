package common

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{name: "debug console", level: "debug", format: "console"},
		{name: "info json", level: "info", format: "json"},
		{name: "warn default format", level: "warn", format: ""},
		{name: "error", level: "error", format: "console"},
		{name: "bad level", level: "verbose", format: "console", wantErr: true},
		{name: "bad format", level: "info", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SetupLogger(tt.level, tt.format)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
		})
	}
}

// captureLog swaps the default logger for one writing JSON to a buffer.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLogError(t *testing.T) {
	buf := captureLog(t)

	LogError(errors.New("disk full"), "save failed", Fields{"op": "save expense"})

	out := buf.String()
	assert.Contains(t, out, "save failed")
	assert.Contains(t, out, "disk full")
	assert.Contains(t, out, "save expense")
	assert.Contains(t, out, `"level":"ERROR"`)
}

func TestLogInfo(t *testing.T) {
	buf := captureLog(t)

	LogInfo("migrations applied", Fields{"schema_version": 3})

	out := buf.String()
	assert.Contains(t, out, "migrations applied")
	assert.Contains(t, out, `"schema_version":3`)
	assert.Contains(t, out, `"level":"INFO"`)
}
