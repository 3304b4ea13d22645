// Package config loads the suite configuration from an INI file and
// exposes it through a process-wide singleton.
//
// The file layout mirrors the sections the suite has always used:
//
//	[DEFAULT]   base_url, implicit_wait
//	[Test]      default_timeout, short_timeout, long_timeout
//	[Browser]   default_browser, headless, viewport_width, viewport_height, launch_args
//	[Paths]     test_data_path, screenshots_path, reports_path, logs_path
//
// A handful of values can be overridden from the environment so CI can
// point the same checkout at a different storefront without editing the
// file (see the STOREFRONT_* variables).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-ini/ini"
)

// Environment override variables.
const (
	EnvBaseURL  = "STOREFRONT_BASE_URL"
	EnvBrowser  = "STOREFRONT_BROWSER"
	EnvHeadless = "STOREFRONT_HEADLESS"
)

// Defaults applied when the file omits a key.
const (
	DefaultBaseURL        = "https://www.bluebella.com"
	DefaultBrowser        = "chromium"
	DefaultTimeout        = 10 * time.Second
	DefaultShortTimeout   = 5 * time.Second
	DefaultLongTimeout    = 20 * time.Second
	DefaultViewportWidth  = 1920
	DefaultViewportHeight = 1080
)

// SupportedBrowsers lists the browser engines the suite can drive.
var SupportedBrowsers = []string{"chromium", "firefox"}

// Config holds the resolved suite configuration.
type Config struct {
	// BaseURL is the storefront root the suite runs against.
	BaseURL string

	// Browser selects the engine to launch: "chromium" or "firefox".
	Browser string

	// Headless controls whether the browser runs without a window.
	Headless bool

	// Viewport dimensions for new browser contexts.
	ViewportWidth  int
	ViewportHeight int

	// LaunchArgs are extra arguments passed to the browser binary.
	LaunchArgs []string

	// Explicit wait tiers. Default covers ordinary interactions, Short
	// is used to probe for optional UI, Long covers slow transitions
	// like the cart drawer after an add-to-cart.
	Timeout      time.Duration
	ShortTimeout time.Duration
	LongTimeout  time.Duration

	// Paths, resolved relative to the config file's directory when not
	// absolute.
	TestDataPath    string
	ScreenshotsPath string
	ReportsPath     string
	LogsPath        string
}

// Load reads the configuration file at path. A missing file is an
// error; missing keys fall back to defaults. Environment overrides are
// applied last.
func Load(path string) (*Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	cfg := defaults()
	baseDir := filepath.Dir(path)

	def := file.Section(ini.DefaultSection)
	if k := def.Key("base_url"); k.String() != "" {
		cfg.BaseURL = k.String()
	}

	test := file.Section("Test")
	cfg.Timeout = secondsKey(test, "default_timeout", cfg.Timeout)
	cfg.ShortTimeout = secondsKey(test, "short_timeout", cfg.ShortTimeout)
	cfg.LongTimeout = secondsKey(test, "long_timeout", cfg.LongTimeout)

	browser := file.Section("Browser")
	if k := browser.Key("default_browser"); k.String() != "" {
		cfg.Browser = k.String()
	}
	cfg.Headless = browser.Key("headless").MustBool(cfg.Headless)
	cfg.ViewportWidth = browser.Key("viewport_width").MustInt(cfg.ViewportWidth)
	cfg.ViewportHeight = browser.Key("viewport_height").MustInt(cfg.ViewportHeight)
	if k := browser.Key("launch_args"); k.String() != "" {
		for _, arg := range strings.Split(k.String(), ",") {
			if arg = strings.TrimSpace(arg); arg != "" {
				cfg.LaunchArgs = append(cfg.LaunchArgs, arg)
			}
		}
	}

	paths := file.Section("Paths")
	cfg.TestDataPath = resolvePath(baseDir, paths.Key("test_data_path").MustString(cfg.TestDataPath))
	cfg.ScreenshotsPath = resolvePath(baseDir, paths.Key("screenshots_path").MustString(cfg.ScreenshotsPath))
	cfg.ReportsPath = resolvePath(baseDir, paths.Key("reports_path").MustString(cfg.ReportsPath))
	cfg.LogsPath = resolvePath(baseDir, paths.Key("logs_path").MustString(cfg.LogsPath))

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the suite cannot run with.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	supported := false
	for _, name := range SupportedBrowsers {
		if c.Browser == name {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported browser %q (supported: %s)", c.Browser, strings.Join(SupportedBrowsers, ", "))
	}
	if c.Timeout <= 0 || c.ShortTimeout <= 0 || c.LongTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	return nil
}

// TimeoutMillis converts a duration to the millisecond float Playwright
// options expect.
func TimeoutMillis(d time.Duration) float64 {
	return float64(d.Milliseconds())
}

// Default returns the built-in configuration with environment
// overrides applied, for runs without a config file.
func Default() *Config {
	cfg := defaults()
	applyEnvOverrides(cfg)
	return cfg
}

func defaults() *Config {
	return &Config{
		BaseURL:         DefaultBaseURL,
		Browser:         DefaultBrowser,
		Headless:        true,
		ViewportWidth:   DefaultViewportWidth,
		ViewportHeight:  DefaultViewportHeight,
		Timeout:         DefaultTimeout,
		ShortTimeout:    DefaultShortTimeout,
		LongTimeout:     DefaultLongTimeout,
		TestDataPath:    "testdata/shopping.json",
		ScreenshotsPath: "artifacts/screenshots",
		ReportsPath:     "artifacts/reports",
		LogsPath:        "artifacts/logs",
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvBrowser); v != "" {
		cfg.Browser = v
	}
	if v := os.Getenv(EnvHeadless); v != "" {
		cfg.Headless = v != "false" && v != "0"
	}
}

func secondsKey(section *ini.Section, name string, fallback time.Duration) time.Duration {
	secs := section.Key(name).MustInt(int(fallback / time.Second))
	if secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}

func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
