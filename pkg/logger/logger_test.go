package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-api/pkg/logger"
)

func TestNew_JSONConNivel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})

	l.Info().Msg("descartado")
	l.Warn().Str("stock_id", "s-1").Msg("visible")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "s-1", entry["stock_id"])
	assert.Equal(t, "visible", entry["message"])
}

func TestNew_NivelInvalidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "ruidoso", Out: &buf})
	l.Debug().Msg("no")
	assert.Zero(t, buf.Len())
	l.Info().Msg("si")
	assert.NotZero(t, buf.Len())
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})
	c := l.Component("http")
	c.Info().Msg("x")
	assert.Contains(t, buf.String(), `"component":"http"`)
}
