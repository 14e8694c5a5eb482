package logger

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_Levels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewZapLogger(zap.New(core), "engine")

	l.Debug("cycle %d started", 1)
	l.Info("cycle %d committed", 1)
	l.Warn("cycle %d failed", 2)
	l.Error("render %s", "broken")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "cycle 1 started", entries[0].Message)
	assert.Equal(t, zap.DebugLevel, entries[0].Level)
	assert.Equal(t, "engine", entries[0].LoggerName)
	assert.Equal(t, zap.InfoLevel, entries[1].Level)
	assert.Equal(t, zap.WarnLevel, entries[2].Level)
	assert.Equal(t, "render broken", entries[3].Message)
}

func TestZapLogger_NoName(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewZapLogger(zap.New(core), "")
	l.Info("hello")
	l.Debug("filtered out")

	require.Equal(t, 1, logs.Len())
	assert.Empty(t, logs.All()[0].LoggerName)
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sentinel.log")

	z, err := Open(Options{File: path, Level: "debug"})
	require.NoError(t, err)

	NewZapLogger(z, "backend").Debug("fetched %s", "/api/health")
	require.NoError(t, z.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fetched /api/health")
	assert.Contains(t, string(data), "backend")
}

func TestOpen_LevelFiltering(t *testing.T) {
	os.Unsetenv(DebugEnv)
	path := filepath.Join(t.TempDir(), "sentinel.log")

	z, err := Open(Options{File: path, Level: "warn"})
	require.NoError(t, err)

	l := NewZapLogger(z, "")
	l.Info("quiet")
	l.Warn("loud")
	require.NoError(t, z.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "loud")
}

func TestOpen_DebugEnv(t *testing.T) {
	t.Setenv(DebugEnv, "1")
	path := filepath.Join(t.TempDir(), "sentinel.log")

	z, err := Open(Options{File: path, Level: "error"})
	require.NoError(t, err)

	NewZapLogger(z, "").Debug("visible")
	require.NoError(t, z.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
}

func TestOpen_BadLevel(t *testing.T) {
	_, err := Open(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	l := Noop()
	require.NotNil(t, l)

	assert.NotPanics(t, func() {
		l.Debug("debug %s", "msg")
		l.Info("info %d", 1)
		l.Warn("warn")
		l.Error("error")
	})
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("debug %s", "one")
	l.Info("info %d", 2)
	l.Warn("warn message")
	l.Error("error: %v", "boom")

	require.Len(t, l.Messages, 4)
	assert.Equal(t, LogMessage{Level: "debug", Message: "debug one"}, l.Messages[0])
	assert.Equal(t, LogMessage{Level: "error", Message: "error: boom"}, l.Messages[3])

	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("fatal"))
	assert.True(t, l.Contains("error", "boom"))
	assert.False(t, l.Contains("info", "boom"))

	l.Clear()
	assert.Empty(t, l.Messages)
}

func TestBufferLogger_Concurrent(t *testing.T) {
	l := NewBufferLogger()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Info("message %d", i)
		}(i)
	}
	wg.Wait()

	assert.Len(t, l.Messages, 20)
}

func TestSetDefault(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetDefault(zap.New(core))
	t.Cleanup(func() { SetDefault(zap.NewNop()) })

	Named("clock").Info("tick")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "clock", logs.All()[0].LoggerName)
	assert.NotPanics(t, Sync)
}
