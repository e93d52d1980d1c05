package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(VerbosityUser))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(VerbosityInfo))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(VerbosityDebug))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(7))
}

func TestInitialize(t *testing.T) {
	require.NoError(t, Initialize(false, VerbosityInfo))
	require.NotNil(t, Logger)
	assert.False(t, JSONOutput)

	require.NoError(t, Initialize(true, VerbosityUser))
	require.NotNil(t, Logger)
	assert.True(t, JSONOutput)
}

func TestHelpersWithNilLogger(t *testing.T) {
	saved := Logger
	defer func() { Logger = saved }()

	Logger = nil
	// Must not panic
	Infow("info", "k", "v")
	Warnw("warn")
	Errorw("error")
	Debugw("debug")
}
