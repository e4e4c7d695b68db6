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
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewTeeCore_SplitsLevels(t *testing.T) {
	var console, file bytes.Buffer
	logger := zap.New(newTeeCore(zapcore.AddSync(&console), zapcore.AddSync(&file)))

	logger.Debug("ranking candidates", zap.Int("day", 3))
	logger.Info("schedule generated", zap.String("cycle_id", "c-1"))

	assert.NotContains(t, console.String(), "ranking candidates")
	assert.Contains(t, console.String(), "schedule generated")

	lines := strings.Split(strings.TrimSpace(file.String()), "\n")
	require.Len(t, lines, 2)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "schedule generated", entry["msg"])
	assert.Equal(t, "c-1", entry["cycle_id"])
	assert.Contains(t, entry, "timestamp")
}

func TestInitLogger_CreatesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := InitLogger("test", dir)
	require.NoError(t, err)
	logger.Debug("hello")
	_ = logger.Sync()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "test_"))
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".log"))
}
