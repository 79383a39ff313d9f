package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"chatty":  zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, levelFromString(in), in)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	log, err := New("debug", true)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = New("error", false)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.WarnLevel))
}
