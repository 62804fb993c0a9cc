package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// useTestLogger swaps the package logger for one writing into a buffer.
func useTestLogger(t *testing.T, cfg Config) *bytes.Buffer {
	t.Helper()
	ensureInitialized()
	var out bytes.Buffer
	prev := defaultLogger
	prevLevel := logLevel.Level()
	defaultLogger = newLogger(cfg, &out, logLevel)
	t.Cleanup(func() {
		defaultLogger = prev
		logLevel.Set(prevLevel)
	})
	return &out
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("err"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestLevelFiltering(t *testing.T) {
	out := useTestLogger(t, Config{LogLevel: "warn"})

	Infof("quiet %d", 1)
	Warnf("loud %d", 2)

	assert.NotContains(t, out.String(), "quiet 1")
	assert.Contains(t, out.String(), "loud 2")
	assert.Contains(t, out.String(), "logger_test.go")
}

func TestTagFiltering(t *testing.T) {
	out := useTestLogger(t, Config{
		LogLevel:     "debug",
		EnabledTags:  []string{"find", "history"},
		DisabledTags: []string{"history"},
	})

	DebugTagf("find", "matched %d", 3)
	DebugTagf("history", "checkpoint")
	Debugf("untagged detail")
	Infof("untagged info")

	got := out.String()
	assert.Contains(t, got, "matched 3")
	assert.Contains(t, got, "tag=find")
	assert.NotContains(t, got, "checkpoint")
	assert.NotContains(t, got, "untagged detail")
	assert.Contains(t, got, "untagged info")
}

func TestPackageAndFileFiltering(t *testing.T) {
	out := useTestLogger(t, Config{LogLevel: "debug", DisabledPackages: []string{"Logger"}})
	Infof("from this package")
	assert.Empty(t, out.String())

	out = useTestLogger(t, Config{LogLevel: "debug", EnabledFiles: []string{"other.go"}})
	Infof("from this file")
	assert.Empty(t, out.String())

	out = useTestLogger(t, Config{LogLevel: "debug", EnabledFiles: []string{"logger_test.go"}})
	Infof("kept")
	assert.Contains(t, out.String(), "kept")
}
