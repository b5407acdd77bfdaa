package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("text respects level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger, err := NewLogger(buf, LogConfig{Level: "warn", Format: "text"})
		require.NoError(t, err)

		logger.Info("hidden")
		logger.Warn("shown", "query", "flying")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "level=WARN msg=shown query=flying")
	})

	t.Run("json", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger, err := NewLogger(buf, LogConfig{Level: "DEBUG", Format: "json"})
		require.NoError(t, err)

		logger.Debug("search", "results", 3)
		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "search", record["msg"])
		assert.Equal(t, float64(3), record["results"])
	})

	t.Run("errors", func(t *testing.T) {
		_, err := NewLogger(&bytes.Buffer{}, LogConfig{Level: "trace"})
		assert.Error(t, err)
		_, err = NewLogger(&bytes.Buffer{}, LogConfig{Format: "xml"})
		assert.Error(t, err)
	})
}
