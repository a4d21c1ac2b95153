package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setRunEnv(t *testing.T) (logFile, dataDir string) {
	t.Helper()

	dir := t.TempDir()
	logFile = filepath.Join(dir, "logs", "extraction.log")
	dataDir = filepath.Join(dir, "data", "processed")

	t.Setenv("APP_ENV", "dev")
	t.Setenv("APP_LOG_LEVEL", "info")
	t.Setenv("API_FOOTBALL_KEY", "")
	t.Setenv("EXTRACT_LOG_FILE", logFile)
	t.Setenv("EXTRACT_DATA_DIR", dataDir)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "false")
	return logFile, dataDir
}

func TestRun_MissingAPIKeyExitsBeforeAnyWork(t *testing.T) {
	logFile, dataDir := setRunEnv(t)

	require.Equal(t, 1, run())

	raw, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(raw), "extractor setup failed")
	require.Contains(t, string(raw), "API_FOOTBALL_KEY not found")

	_, err = os.Stat(dataDir)
	require.True(t, os.IsNotExist(err), "data directory must not be created")
}

func TestRun_ConfigErrorIsLogged(t *testing.T) {
	logFile, _ := setRunEnv(t)
	t.Setenv("APP_ENV", "qa")

	require.Equal(t, 1, run())

	raw, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(raw), "load config failed")
	require.Contains(t, string(raw), `invalid APP_ENV`)
}
