package logutil

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerConfigFromViper(t *testing.T) {
	t.Parallel()

	v := viper.New()
	v.Set("logging.level", "debug")
	v.Set("logging.format", "json")
	v.Set("logging.add_source", true)

	assert.Equal(t, LoggerConfig{Level: "debug", Format: "json", AddSource: true}, LoggerConfigFromReader(v))
	assert.Equal(t, LoggerConfig{}, LoggerConfigFromReader(nil))
}

func TestNewLoggerJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := NewLogger(&buf, LoggerConfig{Level: "info", Format: "json"})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("execution_start", "execution_id", "x1")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "execution_start", record["msg"])
	assert.Equal(t, "x1", record["execution_id"])
}

func TestNewLoggerDefaultsToWarnText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := NewLogger(&buf, LoggerConfig{})
	require.NoError(t, err)

	logger.Info("quiet")
	logger.Warn("gate_timeout", "channel", "console:c1")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "msg=gate_timeout")
}

func TestNewLoggerRejectsUnknownSettings(t *testing.T) {
	t.Parallel()

	_, err := NewLogger(&bytes.Buffer{}, LoggerConfig{Level: "loud"})
	assert.ErrorContains(t, err, "unknown logging.level: loud")

	_, err = NewLogger(&bytes.Buffer{}, LoggerConfig{Format: "xml"})
	assert.ErrorContains(t, err, "unknown logging.format: xml")
}
