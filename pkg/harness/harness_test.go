package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anubrata/bluebella-e2e/pkg/config"
)

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.ini"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBaseURL, cfg.BaseURL)
}

func TestLoadConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("base_url = https://file.example.com\n"), 0600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://file.example.com", cfg.BaseURL)
}

func TestApplyFlagOverrides(t *testing.T) {
	tests := []struct {
		name         string
		browser      string
		headless     string
		wantBrowser  string
		wantHeadless bool
	}{
		{
			name:         "no overrides",
			wantBrowser:  config.DefaultBrowser,
			wantHeadless: true,
		},
		{
			name:         "browser override",
			browser:      "firefox",
			wantBrowser:  "firefox",
			wantHeadless: true,
		},
		{
			name:         "headless off",
			headless:     "false",
			wantBrowser:  config.DefaultBrowser,
			wantHeadless: false,
		},
		{
			name:         "unparseable headless is ignored",
			headless:     "maybe",
			wantBrowser:  config.DefaultBrowser,
			wantHeadless: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			applyFlagOverrides(cfg, tt.browser, tt.headless)
			assert.Equal(t, tt.wantBrowser, cfg.Browser)
			assert.Equal(t, tt.wantHeadless, cfg.Headless)
		})
	}
}

func TestSanitizeName(t *testing.T) {
	got := sanitizeName(`TestShoppingFlow/Emerson Bodysuit:v2\x`)
	assert.Equal(t, "TestShoppingFlow_Emerson_Bodysuit_v2_x", got)
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[Paths]\nlogs_path = logs\n"), 0600))

	origConfig := *configFlag
	*configFlag = path
	t.Cleanup(func() { *configFlag = origConfig })

	h, err := New()
	require.NoError(t, err)

	assert.NotNil(t, h.Config)
	assert.NotNil(t, h.Browser)
	assert.NotNil(t, h.Report)
	assert.NotEmpty(t, h.runID)
	assert.Equal(t, filepath.Join(dir, "logs"), h.Config.LogsPath)

	// The resolved config doubles as the process-wide instance
	require.True(t, config.IsInitialized())
	assert.Same(t, h.Config, config.Global())
}
