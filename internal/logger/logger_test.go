package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessError_LogsAtWarnWithErr(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug, "json").With("component", "auth")

	log.BusinessError("login rejected", errors.New("invalid email or password"), "email", "alice@mail.com")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "login rejected", record["msg"])
	assert.Equal(t, "invalid email or password", record["err"])
	assert.Equal(t, "auth", record["component"])
}

func TestInternalError_NilErrIsSkipped(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug, "text")

	log.InternalError("nothing happened", nil)

	assert.Zero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("", "development"))
	assert.Equal(t, slog.LevelInfo, parseLevel("", "production"))
	assert.Equal(t, slog.LevelWarn, parseLevel(" WARNING ", "production"))
	assert.Equal(t, slog.LevelError, parseLevel("error", "development"))
}
