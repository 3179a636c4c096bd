package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testConfig struct {
	level, output, file string
}

func (c testConfig) GetLevel() string  { return c.level }
func (c testConfig) GetOutput() string { return c.output }
func (c testConfig) GetFile() string   { return c.file }

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DEBUG,
		"INFO":    INFO,
		"warning": WARN,
		"error":   ERROR,
		"fatal":   FATAL,
		"":        INFO,
		"verbose": INFO,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}
}

func TestFormatting(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewFromZap(zap.New(core)).With(zap.Int64("projectId", 7))

	l.Debug("hidden %d", 1)
	l.Info("contribution %s recorded", "0xabc")
	l.Warn("retry %d", 2)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "contribution 0xabc recorded", entries[0].Message)
	assert.Equal(t, int64(7), entries[0].ContextMap()["projectId"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestSetup_File(t *testing.T) {
	prev := defaultLogger
	t.Cleanup(func() { defaultLogger = prev })

	path := filepath.Join(t.TempDir(), "app.log")
	l, err := Setup(testConfig{level: "info", output: "file", file: path})
	require.NoError(t, err)
	assert.Same(t, l, defaultLogger)

	Info("hello %s", "launchpad")
	l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello launchpad")
	assert.Contains(t, string(data), `"level":"INFO"`)
}
