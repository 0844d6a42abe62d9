package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/kbits/internal/metrics"
)

// ReportFile is the name of the persisted report inside the report directory.
const ReportFile = "build-report.json"

// Report captures the result of one generator run.
type Report struct {
	ID          string          `json:"id"`
	Mode        Mode            `json:"mode"`
	Profile     string          `json:"profile"`
	Output      string          `json:"output"`
	Start       time.Time       `json:"start"`
	End         time.Time       `json:"end"`
	Revision    string          `json:"revision,omitempty"`
	Branch      string          `json:"branch,omitempty"`
	ContentHash string          `json:"content_hash,omitempty"`
	Outcome     metrics.Outcome `json:"outcome"`
	Error       string          `json:"error,omitempty"`
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

// Summary returns a single-line human readable description.
func (r *Report) Summary() string {
	rev := r.Revision
	if rev == "" {
		rev = "-"
	}
	return fmt.Sprintf("%s %s outcome=%s duration=%s revision=%s output=%s",
		r.Mode, r.ID, r.Outcome, r.Duration().Round(time.Millisecond), rev, r.Output)
}

// Persist writes the report as JSON into dir, replacing any previous one.
func (r *Report) Persist(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("ensure report dir: %w", err)
	}
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	path := filepath.Join(dir, ReportFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write temp report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename report: %w", err)
	}
	return nil
}

// ReadReport loads a report previously written by Persist.
func ReadReport(dir string) (*Report, error) {
	b, err := os.ReadFile(filepath.Join(dir, ReportFile)) // #nosec G304 -- path built from caller's dir
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}
