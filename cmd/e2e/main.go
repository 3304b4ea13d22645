// Package main provides the suite's maintenance commands: installing
// browsers, validating the configuration and fixtures, and printing
// the resolved configuration. The tests themselves run through go test
// (see the e2e package).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/playwright-community/playwright-go"

	"github.com/anubrata/bluebella-e2e/pkg/config"
	"github.com/anubrata/bluebella-e2e/pkg/testdata"
)

const usage = `Usage: e2e [flags] <command>

Commands:
  install   install the Playwright driver and browsers
  check     validate the config file and test fixtures
  config    print the resolved configuration

Flags:
`

func main() {
	configPath := flag.String("config", "config/config.ini", "path to the suite config file")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "install":
		err = runInstall()
	case "check":
		err = runCheck(*configPath)
	case "config":
		err = runConfig(*configPath)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// runInstall downloads the Playwright driver plus the two engines the
// suite supports.
func runInstall() error {
	fmt.Println("Installing Playwright driver and browsers...")
	if err := playwright.Install(&playwright.RunOptions{
		Browsers: []string{"chromium", "firefox"},
	}); err != nil {
		return fmt.Errorf("playwright install failed: %w", err)
	}
	fmt.Println("Done.")
	return nil
}

// runCheck validates the config file and every fixture scenario, the
// same checks the harness performs at run start.
func runCheck(configPath string) error {
	if err := config.Initialize(configPath); err != nil {
		return err
	}
	cfg := config.Global()
	fmt.Printf("config OK: %s\n", configPath)

	scenarios, err := testdata.Load(cfg.TestDataPath)
	if err != nil {
		return err
	}

	var bad int
	for _, scenario := range scenarios {
		if err := scenario.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "  %v\n", err)
			bad++
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d scenarios invalid", bad, len(scenarios))
	}

	fmt.Printf("fixtures OK: %d scenarios in %s\n", len(scenarios), cfg.TestDataPath)
	return nil
}

// runConfig prints the resolved configuration after defaults and
// environment overrides.
func runConfig(configPath string) error {
	if err := config.Initialize(configPath); err != nil {
		return err
	}
	cfg := config.Global()

	fmt.Printf("base_url:     %s\n", cfg.BaseURL)
	fmt.Printf("browser:      %s (headless=%v)\n", cfg.Browser, cfg.Headless)
	fmt.Printf("viewport:     %dx%d\n", cfg.ViewportWidth, cfg.ViewportHeight)
	fmt.Printf("timeouts:     default=%v short=%v long=%v\n", cfg.Timeout, cfg.ShortTimeout, cfg.LongTimeout)
	fmt.Printf("test data:    %s\n", cfg.TestDataPath)
	fmt.Printf("screenshots:  %s\n", cfg.ScreenshotsPath)
	fmt.Printf("reports:      %s\n", cfg.ReportsPath)
	fmt.Printf("logs:         %s\n", cfg.LogsPath)
	return nil
}
