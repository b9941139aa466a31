package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(zap.NewNop()) })

	Debugf("debug %d", 1)
	Infof("info %s", "x")
	Warnf("warn")
	Errorf("boom")

	entries := logs.All()
	assert.Len(t, entries, 4)
	assert.Equal(t, "debug 1", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "info x", entries[1].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestInitVerbose(t *testing.T) {
	t.Cleanup(func() { Set(zap.NewNop()) })

	assert.NoError(t, Init(true))
	assert.NoError(t, Init(false))
}
