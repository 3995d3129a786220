package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	require.Equal(t, DefaultUserAgent, cfg.UserAgent)
	require.Equal(t, 30*time.Second, cfg.Timeout())
	require.Equal(t, 1500*time.Millisecond, cfg.Delay())
	require.Equal(t, ".", cfg.LogDir)
	require.Equal(t, "wanikani_scraper.db", cfg.DBPath)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
timeout_seconds: 10
delay_seconds: 3
log_dir: logs
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, 10*time.Second, cfg.Timeout())
	require.Equal(t, 3*time.Second, cfg.Delay())
	require.Equal(t, "logs", cfg.LogDir)
	// Untouched keys keep their defaults.
	require.Equal(t, DefaultUserAgent, cfg.UserAgent)
	require.Equal(t, "wanikani_scraper.db", cfg.DBPath)
}

func TestLoadConfig_MissingFileIsAnError(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err, "a typoed --config must not silently fall back to defaults")
}

func TestLoadConfig_UnparsableYAMLIsAnError(t *testing.T) {
	path := writeConfig(t, "timeout_seconds: [not a number")

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	for _, tc := range []struct {
		name    string
		content string
	}{
		{"zero timeout", "timeout_seconds: 0"},
		{"oversized timeout", "timeout_seconds: 301"},
		{"negative delay", "delay_seconds: -1"},
		{"blank user agent", `user_agent: ""`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.content))
			require.Error(t, err)
		})
	}
}

func TestConfig_DelaySupportsFractionalSeconds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DelaySeconds = 0.5
	require.Equal(t, 500*time.Millisecond, cfg.Delay())
}
