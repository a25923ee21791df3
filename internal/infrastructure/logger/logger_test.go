package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("json logger on stdout", func(t *testing.T) {
		log, err := New(&Config{Level: "info", Format: "json", Output: "stdout"})
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("console logger with custom time layout", func(t *testing.T) {
		log, err := New(&Config{
			Level:      "debug",
			Format:     "console",
			Output:     "stderr",
			TimeFormat: "2006-01-02 15:04:05",
		})
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("unknown settings fall back instead of failing", func(t *testing.T) {
		log, err := New(&Config{Level: "verbose", Format: "xml", Output: "syslog"})
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARNING"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.FatalLevel, parseLevel("fatal"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
}
