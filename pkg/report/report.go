// Package report collects test results and renders the run report.
//
// The HTML report is self-contained: failure screenshots are embedded
// as base64 data URIs so the single file can be attached to a CI run
// or mailed around. A JSON sidecar carries the same results for
// machine consumption.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Status of a single test.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Result is one test's outcome.
type Result struct {
	Name       string        `json:"name"`
	Status     Status        `json:"status"`
	Duration   time.Duration `json:"duration"`
	Error      string        `json:"error,omitempty"`
	Screenshot []byte        `json:"-"`

	// SnapshotPath points at the cleaned HTML snapshot on disk, if one
	// was captured.
	SnapshotPath string `json:"snapshotPath,omitempty"`
}

// Recorder accumulates results for a run.
type Recorder struct {
	mu        sync.Mutex
	runID     string
	browser   string
	baseURL   string
	startedAt time.Time
	results   []Result
}

// NewRecorder creates a recorder for one run.
func NewRecorder(runID, browser, baseURL string) *Recorder {
	return &Recorder{
		runID:     runID,
		browser:   browser,
		baseURL:   baseURL,
		startedAt: time.Now(),
	}
}

// Add records a result.
func (r *Recorder) Add(result Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

// Results returns a copy of the recorded results.
func (r *Recorder) Results() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Result(nil), r.results...)
}

// Summary returns the counts per status.
func (r *Recorder) Summary() (passed, failed, skipped int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, result := range r.results {
		switch result.Status {
		case StatusPassed:
			passed++
		case StatusFailed:
			failed++
		case StatusSkipped:
			skipped++
		}
	}
	return passed, failed, skipped
}

// WriteHTML renders the report to path, creating parent directories.
func (r *Recorder) WriteHTML(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := renderHTML(file, r.view()); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// WriteJSON writes the machine-readable sidecar to path.
func (r *Recorder) WriteJSON(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	payload := struct {
		RunID     string    `json:"runId"`
		Browser   string    `json:"browser"`
		BaseURL   string    `json:"baseUrl"`
		StartedAt time.Time `json:"startedAt"`
		Results   []Result  `json:"results"`
	}{r.runID, r.browser, r.baseURL, r.startedAt, r.results}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
