// Package harness wires the suite together for go test: it loads the
// configuration, starts the Playwright driver once per run, hands each
// test an isolated browser session, captures diagnostics when a test
// fails, and writes the run report on exit.
//
// A suite's TestMain is three lines:
//
//	func TestMain(m *testing.M) {
//		h := harness.MustNew()
//		os.Exit(h.Main(m))
//	}
package harness

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/anubrata/bluebella-e2e/pkg/browser"
	"github.com/anubrata/bluebella-e2e/pkg/config"
	"github.com/anubrata/bluebella-e2e/pkg/logging"
	"github.com/anubrata/bluebella-e2e/pkg/report"
	"github.com/anubrata/bluebella-e2e/pkg/testdata"
)

var (
	// go test runs with the test package directory as working
	// directory, so the default points one level up.
	configFlag    = flag.String("config", "../config/config.ini", "path to the suite config file")
	browserFlag   = flag.String("browser", "", "browser engine to use (chromium, firefox)")
	headlessFlag  = flag.String("headless", "", "run headless: true or false")
	scenariosFlag = flag.String("scenarios", "", "glob of product names selecting scenarios to run")
)

// Harness owns the shared run state.
type Harness struct {
	Config  *config.Config
	Browser *browser.Manager
	Report  *report.Recorder

	log   *logging.Logger
	runID string
}

// New builds a harness from the config file and CLI flags. A missing
// config file falls back to built-in defaults so a fresh checkout can
// run without one.
func New() (*Harness, error) {
	if !flag.Parsed() {
		flag.Parse()
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(cfg, *browserFlag, *headlessFlag)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Install the resolved config, flag overrides included, so helpers
	// outside the harness read the same instance via config.Global.
	config.SetGlobal(cfg)

	if cfg.LogsPath != "" {
		logging.SetDirectory(cfg.LogsPath)
	}
	log, _ := logging.NewLogger("harness")

	runID := logging.RunID()
	return &Harness{
		Config:  cfg,
		Browser: browser.NewManager(),
		Report:  report.NewRecorder(runID, cfg.Browser, cfg.BaseURL),
		log:     log,
		runID:   runID,
	}, nil
}

// MustNew is New for TestMain, where there is no t to fail.
func MustNew() *Harness {
	h, err := New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "harness setup failed: %v\n", err)
		os.Exit(1)
	}
	return h
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Default(), nil
	}
	if err := config.Initialize(path); err != nil {
		return nil, err
	}
	return config.Global(), nil
}

// applyFlagOverrides lets CLI flags win over the config file, the same
// precedence the suite has always used.
func applyFlagOverrides(cfg *config.Config, browserName, headless string) {
	if browserName != "" {
		cfg.Browser = browserName
	}
	switch headless {
	case "true":
		cfg.Headless = true
	case "false":
		cfg.Headless = false
	}
}

// Main runs the suite: driver up, tests, report, driver down.
// Pass the result to os.Exit.
func (h *Harness) Main(m *testing.M) int {
	h.log.Infof("run %s starting against %s (%s, headless=%v)",
		h.runID, h.Config.BaseURL, h.Config.Browser, h.Config.Headless)

	if err := h.Browser.Initialize(); err != nil {
		h.log.Errorf("driver initialization failed: %v", err)
		fmt.Fprintf(os.Stderr, "driver initialization failed: %v\n", err)
		return 1
	}

	code := m.Run()

	h.writeReports()
	if err := h.Browser.Shutdown(); err != nil {
		h.log.Errorf("driver shutdown failed: %v", err)
	}
	h.log.Close()
	return code
}

// Scenarios loads the fixture file and applies the -scenarios filter.
func (h *Harness) Scenarios() ([]testdata.Scenario, error) {
	scenarios, err := testdata.Load(h.Config.TestDataPath)
	if err != nil {
		return nil, err
	}

	filtered, err := testdata.Filter(scenarios, *scenariosFlag)
	if err != nil {
		return nil, err
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("no scenarios match filter %q", *scenariosFlag)
	}

	h.log.Infof("running %d of %d scenarios", len(filtered), len(scenarios))
	return filtered, nil
}

// Run executes fn as a subtest with its own browser session. The
// session is closed afterwards; on failure a screenshot and an HTML
// snapshot are captured before the browser goes away, and the result
// lands in the run report either way.
func (h *Harness) Run(t *testing.T, name string, fn func(t *testing.T, s *browser.Session) error) bool {
	return t.Run(name, func(t *testing.T) {
		// Reclaim sessions an aborted test left behind so the session
		// cap cannot starve the rest of the run
		h.Browser.CleanupIdleSessions()

		session, err := h.Browser.StartSession(sanitizeName(t.Name()), browser.SessionOptions{
			Browser:  h.Config.Browser,
			Headless: h.Config.Headless,
			Viewport: &browser.Viewport{
				Width:  h.Config.ViewportWidth,
				Height: h.Config.ViewportHeight,
			},
			Timeout:    h.Config.Timeout,
			LaunchArgs: h.Config.LaunchArgs,
		})
		if err != nil {
			h.Report.Add(report.Result{
				Name:   t.Name(),
				Status: report.StatusFailed,
				Error:  fmt.Sprintf("failed to start browser session: %v", err),
			})
			t.Fatalf("failed to start browser session: %v", err)
		}

		start := time.Now()
		var runErr error

		// Record after fn returns or bails out through t.Fatal
		defer func() {
			result := report.Result{
				Name:     t.Name(),
				Duration: time.Since(start),
			}
			switch {
			case t.Skipped():
				result.Status = report.StatusSkipped
			case runErr != nil || t.Failed():
				result.Status = report.StatusFailed
				result.Error = "test failed, see run log"
				if runErr != nil {
					result.Error = runErr.Error()
				}
				h.captureDiagnostics(t.Name(), session, &result)
			default:
				result.Status = report.StatusPassed
			}
			h.Report.Add(result)

			if err := h.Browser.CloseSession(session.Name); err != nil {
				h.log.Warnf("failed to close session %q: %v", session.Name, err)
			}
		}()

		if runErr = fn(t, session); runErr != nil {
			t.Errorf("%v", runErr)
		}
	})
}

// captureDiagnostics grabs a screenshot and a cleaned HTML snapshot.
// Capture errors are logged, never surfaced, so they cannot mask the
// test failure itself.
func (h *Harness) captureDiagnostics(testName string, session *browser.Session, result *report.Result) {
	stamp := time.Now().Format("2006-01-02_15-04-05")
	base := fmt.Sprintf("%s_%s", sanitizeName(testName), stamp)

	shotPath := filepath.Join(h.Config.ScreenshotsPath, base+".png")
	if data, err := session.Screenshot(shotPath); err != nil {
		h.log.Errorf("failed to capture screenshot for %s: %v", testName, err)
	} else {
		h.log.Infof("screenshot saved: %s", shotPath)
		result.Screenshot = data
	}

	snapPath := filepath.Join(h.Config.ScreenshotsPath, base+".html")
	if err := session.SaveSnapshot(snapPath, browser.DefaultSnapshotLength); err != nil {
		h.log.Errorf("failed to capture page snapshot for %s: %v", testName, err)
	} else {
		result.SnapshotPath = snapPath
	}
}

func (h *Harness) writeReports() {
	htmlPath := filepath.Join(h.Config.ReportsPath, fmt.Sprintf("report_%s.html", h.runID))
	if err := h.Report.WriteHTML(htmlPath); err != nil {
		h.log.Errorf("failed to write HTML report: %v", err)
	} else {
		h.log.Infof("HTML report written: %s", htmlPath)
		fmt.Fprintf(os.Stderr, "HTML report: %s\n", htmlPath)
	}

	jsonPath := filepath.Join(h.Config.ReportsPath, fmt.Sprintf("report_%s.json", h.runID))
	if err := h.Report.WriteJSON(jsonPath); err != nil {
		h.log.Errorf("failed to write JSON report: %v", err)
	}

	passed, failed, skipped := h.Report.Summary()
	h.log.Infof("run %s finished: %d passed, %d failed, %d skipped", h.runID, passed, failed, skipped)
}

// sanitizeName turns a test name into a safe file/session name.
func sanitizeName(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", " ", "_", ":", "_")
	return replacer.Replace(name)
}
