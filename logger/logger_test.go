package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")

	log.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	log.Warn().Str("project", "p1").Msg("visible")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "p1", line["project"])
	assert.Equal(t, "visible", line["message"])
	assert.Contains(t, line, "time")
}

func TestNewWithWriterFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "loud")

	log.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
	log.Info().Msg("shown")
	assert.NotZero(t, buf.Len())
}

func TestGormWritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug")

	Gorm(log).Warn(nil, "slow query %s", "SELECT 1")
	assert.Contains(t, buf.String(), "SELECT 1")
	assert.Contains(t, buf.String(), "gorm")
}
