package logger

import (
	"os"
	"path/filepath"
	"testing"

	"rpc-speed-bot/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Stderr(t *testing.T) {
	log, err := NewLogger(config.LoggerConfig{Level: "debug", Encoding: "console"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLogger_BadLevelFallsBackToInfo(t *testing.T) {
	log, err := NewLogger(config.LoggerConfig{Level: "loud"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}

func TestNewLogger_WritesToRotatingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "bot.log")
	log, err := NewLogger(config.LoggerConfig{
		Level:      "info",
		File:       file,
		MaxSizeMB:  1,
		MaxBackups: 1,
	})
	require.NoError(t, err)

	log.Info("test_message_from_logger_test")
	_ = log.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "test_message_from_logger_test")
}
