package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitLogger(t *testing.T) {
	defer SetLogger(zap.NewNop())

	for _, format := range []string{"", "console", "json"} {
		require.NoError(t, InitLogger("debug", format), format)
	}
	require.NoError(t, InitLogger("WARN", "console"))
}

func TestInitLoggerInvalid(t *testing.T) {
	defer SetLogger(zap.NewNop())

	assert.Error(t, InitLogger("banana", "console"))
	assert.Error(t, InitLogger("info", "xml"))
}

func TestLevelsRouteToLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	SetLogger(zap.New(core))
	defer SetLogger(zap.NewNop())

	Debug("dropped %d", 1)
	Info("connected to %s", "db01:3306")
	Warn("missing fields: %v", []string{"Last_IO_Error"})
	Error("query failed")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "connected to db01:3306", entries[0].Message)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, "query failed", entries[2].Message)
}
