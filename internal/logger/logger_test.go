package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Level(t *testing.T) {
	log := New(Config{Level: "warn"})
	require.False(t, log.Core().Enabled(zap.InfoLevel))
	require.True(t, log.Core().Enabled(zap.WarnLevel))

	log = New(Config{Level: "loud"})
	require.True(t, log.Core().Enabled(zap.InfoLevel))
	require.False(t, log.Core().Enabled(zap.DebugLevel))
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log := New(Config{Level: "info", File: path})

	log.Info("task created", zap.Int("id", 7))
	_ = log.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), `"msg":"task created"`)
	require.Contains(t, string(content), `"id":7`)
}
