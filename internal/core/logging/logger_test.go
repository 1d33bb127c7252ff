package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestComponent(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger := Component("hub")
	logger.Info().Msg("test message")

	entry := decode(t, &buf)
	assert.Equal(t, "hub", entry[ComponentKey])
	assert.Equal(t, "test message", entry["message"])
}

func TestScoped(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf).Level(zerolog.InfoLevel)

	logger := Scoped(base, "tui")
	logger.Debug().Msg("dropped")
	assert.Zero(t, buf.Len(), "scoped logger keeps the parent level")

	logger.Warn().Float64("x", 1.5).Msg("kept")
	entry := decode(t, &buf)
	assert.Equal(t, "tui", entry[ComponentKey])
	assert.Equal(t, 1.5, entry["x"])
}
