package mithril

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileLogger_WritesInitLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.log")

	logger, err := NewFileLogger("test", false, path)
	require.NoError(t, err)
	logger.Infof("hello %s", "world")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.GreaterOrEqual(t, len(lines), 2)

	idx := strings.Index(lines[0], "INIT ")
	require.GreaterOrEqual(t, idx, 0, "first line should carry the INIT stamp")
	_, err = time.Parse(time.RFC3339, strings.TrimSpace(lines[0][idx+len("INIT "):]))
	assert.NoError(t, err, "INIT stamp should be RFC3339")

	assert.Contains(t, string(data), "[test] INFO: hello world")
}

func TestFileLogger_DebugGate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.log")

	logger, err := NewFileLogger("", false, path)
	require.NoError(t, err)

	logger.Debugf("hidden")
	logger.SetDebug(true)
	require.True(t, logger.DebugEnabled())
	logger.Debugf("visible")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "DEBUG: visible")
}

func TestDefaultLogger_PrefixFormat(t *testing.T) {
	withPrefix := NewDefaultLogger("client", false)
	assert.Equal(t, "[client] INFO: ready", withPrefix.prefixf("INFO", "ready"))

	noPrefix := NewDefaultLogger("", false)
	assert.Equal(t, "WARN: low vram: 12", noPrefix.prefixf("WARN", "low vram: %d", 12))
}

func TestLoggingModule_FileAndFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.log")
	app := NewAppBuilder().
		UseModule(LoggingModule{Prefix: "viewer", File: path}).
		Build()

	_, ok := app.Logger().(*DefaultLogger)
	assert.True(t, ok)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "INIT ")

	// an unwritable path falls back to plain stdout logging
	bad := filepath.Join(t.TempDir(), "missing", "dir", "engine.log")
	app = NewAppBuilder().
		UseModule(LoggingModule{Prefix: "viewer", File: bad}).
		Build()

	_, ok = app.Logger().(*DefaultLogger)
	assert.True(t, ok, "a bad log path should still leave a working logger")
}

func TestApp_Logger_NeverNil(t *testing.T) {
	app := NewAppBuilder().Build()
	require.NotNil(t, app.Logger())
	assert.False(t, app.Logger().DebugEnabled())

	logger := NewDefaultLogger("x", true)
	app.addResources(logger)
	assert.Same(t, logger, app.Logger())
}
