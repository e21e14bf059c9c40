package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelcraft/travelcraft/core/logger"
)

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{Level: "warn", Format: "json", Service: "api"})

	log.Info("dropped")
	log.Warn("kept", logger.Error(errors.New("boom")), logger.UserID(uuid.Nil), logger.Component("auth"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "api", rec["service"])
	assert.Equal(t, "boom", rec["error"])
	assert.Equal(t, "auth", rec["component"])
	assert.NotContains(t, rec, "user_id")
}

func TestNilSafeAttrs(t *testing.T) {
	t.Parallel()

	assert.Empty(t, logger.Error(nil).Key)
	assert.Empty(t, logger.RequestID("").Key)
	assert.Empty(t, logger.SessionID(uuid.Nil).Key)
	assert.Equal(t, "session_id", logger.SessionID(uuid.New()).Key)
}
