package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerWritesKeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	defer SetLogger(zap.NewNop())

	Info("📋 Starting to process reaction event", "guild_id", "g1", "message_id", "m1")
	Debug("filtered out below info")
	Warn("⚠️ Stale mapping", "board_id", "brd_1")

	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	assert.Equal(t, "📋 Starting to process reaction event", entries[0].Message)
	assert.Equal(t, map[string]any{"guild_id": "g1", "message_id": "m1"}, entries[0].ContextMap())
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestConfigure(t *testing.T) {
	defer SetLogger(zap.NewNop())

	assert.NoError(t, Configure("debug", "dev"))
	assert.NoError(t, Configure("INFO", "prod"))

	err := Configure("loud", "dev")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
