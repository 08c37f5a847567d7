package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_ProductionUsesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "logmanager", "production")
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	buf.Reset()
	LogError(logger, "delete failed", errors.New("boom"), logrus.Fields{"user": "Hans"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "delete failed", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "Hans", entry["user"])
}

func TestNewLogger_Development(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "logmanager", "development")
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), "logger initialized")
}
