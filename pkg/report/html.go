package report

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"time"
)

// view is the template's input.
type view struct {
	RunID     string
	Browser   string
	BaseURL   string
	StartedAt string
	Duration  string
	Passed    int
	Failed    int
	Skipped   int
	Rows      []row
}

type row struct {
	Name       string
	Status     Status
	Duration   string
	Error      string
	Screenshot template.URL
	Snapshot   string
}

func (r *Recorder) view() view {
	v := view{
		RunID:     r.runID,
		Browser:   r.browser,
		BaseURL:   r.baseURL,
		StartedAt: r.startedAt.Format(time.RFC1123),
		Duration:  time.Since(r.startedAt).Round(time.Millisecond).String(),
	}

	for _, result := range r.results {
		switch result.Status {
		case StatusPassed:
			v.Passed++
		case StatusFailed:
			v.Failed++
		case StatusSkipped:
			v.Skipped++
		}

		entry := row{
			Name:     result.Name,
			Status:   result.Status,
			Duration: result.Duration.Round(time.Millisecond).String(),
			Error:    result.Error,
			Snapshot: result.SnapshotPath,
		}
		if len(result.Screenshot) > 0 {
			encoded := base64.StdEncoding.EncodeToString(result.Screenshot)
			entry.Screenshot = template.URL(fmt.Sprintf("data:image/png;base64,%s", encoded))
		}
		v.Rows = append(v.Rows, entry)
	}
	return v
}

func renderHTML(w io.Writer, v view) error {
	return reportTemplate.Execute(w, v)
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Storefront E2E Report {{.RunID}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2em; color: #222; }
h1 { font-size: 1.4em; }
.meta { color: #666; margin-bottom: 1.5em; }
.summary span { margin-right: 1.5em; font-weight: 600; }
.passed { color: #1a7f37; }
.failed { color: #cf222e; }
.skipped { color: #9a6700; }
table { border-collapse: collapse; width: 100%; margin-top: 1em; }
th, td { text-align: left; padding: 0.5em 0.8em; border-bottom: 1px solid #ddd; vertical-align: top; }
td.status { font-weight: 600; text-transform: uppercase; }
pre.error { background: #fff1f0; padding: 0.8em; white-space: pre-wrap; max-width: 60em; }
img.shot { max-width: 640px; border: 1px solid #ccc; margin-top: 0.5em; display: block; }
</style>
</head>
<body>
<h1>Storefront E2E Report</h1>
<div class="meta">
run {{.RunID}} &middot; {{.Browser}} &middot; {{.BaseURL}}<br>
started {{.StartedAt}} &middot; took {{.Duration}}
</div>
<div class="summary">
<span class="passed">{{.Passed}} passed</span>
<span class="failed">{{.Failed}} failed</span>
<span class="skipped">{{.Skipped}} skipped</span>
</div>
<table>
<tr><th>Test</th><th>Status</th><th>Duration</th><th>Details</th></tr>
{{range .Rows}}
<tr>
<td>{{.Name}}</td>
<td class="status {{.Status}}">{{.Status}}</td>
<td>{{.Duration}}</td>
<td>
{{if .Error}}<pre class="error">{{.Error}}</pre>{{end}}
{{if .Screenshot}}<img class="shot" src="{{.Screenshot}}" alt="failure screenshot for {{.Name}}">{{end}}
{{if .Snapshot}}<div>snapshot: {{.Snapshot}}</div>{{end}}
</td>
</tr>
{{end}}
</table>
</body>
</html>
`))
