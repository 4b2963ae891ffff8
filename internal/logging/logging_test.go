package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/stickies/internal/config"
)

func TestFileReceivesJSONAtConfiguredLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "stickies.log")
	var console bytes.Buffer

	logger, closeFn, err := newLogger(config.LogConfig{Level: "debug", File: path}, &console)
	require.NoError(t, err)

	logger.Debugw("task added", "id", 7)
	logger.Warnw("plan failed", "reason", "timeout")
	closeFn()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "task added", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.EqualValues(t, 7, entry["id"])

	// only the warning reaches the console
	assert.NotContains(t, console.String(), "task added")
	assert.Contains(t, console.String(), "plan failed")
}

func TestConsoleOnlyWhenNoFile(t *testing.T) {
	var console bytes.Buffer

	logger, closeFn, err := newLogger(config.LogConfig{Level: "info"}, &console)
	require.NoError(t, err)
	logger.Infow("quiet")
	logger.Errorw("loud")
	closeFn()

	assert.NotContains(t, console.String(), "quiet")
	assert.Contains(t, console.String(), "loud")
}

func TestInvalidLevel(t *testing.T) {
	_, _, err := newLogger(config.LogConfig{Level: "chatty"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Infow("discarded", "k", "v") })
}
