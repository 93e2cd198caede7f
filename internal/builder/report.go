package builder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
	"git.home.luguber.info/inful/rf24docs/internal/metrics"
	"git.home.luguber.info/inful/rf24docs/internal/version"
)

// ReportFile is the name of the persisted build report.
const ReportFile = "build-report.json"

// PageReport records one source that went into a build.
type PageReport struct {
	DocName     string `json:"doc"`
	Title       string `json:"title"`
	Fingerprint string `json:"fingerprint"`
}

// OutputReport records one file a build wrote.
type OutputReport struct {
	Path        string `json:"path"` // relative to the output directory
	Bytes       int    `json:"bytes"`
	Fingerprint string `json:"fingerprint"`
}

// Report summarises a build.
type Report struct {
	SchemaVersion int                 `json:"schema_version"`
	BuildID       string              `json:"build_id"`
	Format        Format              `json:"format"`
	Project       string              `json:"project"`
	Release       string              `json:"release"`
	Style         string              `json:"style"`
	Start         time.Time           `json:"start"`
	End           time.Time           `json:"end"`
	Outcome       metrics.ResultLabel `json:"outcome"`
	Pages         []PageReport        `json:"pages"`
	Outputs       []OutputReport      `json:"outputs"`
	Warnings      []string            `json:"warnings,omitempty"`
	ToolVersion   string              `json:"tool_version"`
}

func newReport(id string, format Format) *Report {
	return &Report{
		SchemaVersion: 1,
		BuildID:       id,
		Format:        format,
		Start:         time.Now(),
		ToolVersion:   version.Version,
	}
}

// Duration is the wall time of the build.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return 0
	}
	return r.End.Sub(r.Start)
}

// Warn records a non-fatal problem.
func (r *Report) Warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) addOutput(rel string, data []byte) {
	r.Outputs = append(r.Outputs, OutputReport{
		Path:        filepath.ToSlash(rel),
		Bytes:       len(data),
		Fingerprint: mdfp.CalculateFingerprintFromParts("", string(data)),
	})
}

func (r *Report) finish(err error) {
	r.End = time.Now()
	switch {
	case err != nil:
		r.Outcome = metrics.ResultFailed
	case len(r.Warnings) > 0:
		r.Outcome = metrics.ResultWarning
	default:
		r.Outcome = metrics.ResultSuccess
	}
}

// Summary is a one-line human readable description.
func (r *Report) Summary() string {
	return fmt.Sprintf("build=%s format=%s outcome=%s pages=%d outputs=%d warnings=%d duration=%s",
		r.BuildID, r.Format, r.Outcome, len(r.Pages), len(r.Outputs), len(r.Warnings), r.Duration().Round(time.Millisecond))
}

// Persist writes build-report.json into dir atomically.
func (r *Report) Persist(dir string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "marshal build report").Build()
	}
	path := filepath.Join(dir, ReportFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write build report").
			WithContext("path", tmp).
			Build()
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "replace build report").
			WithContext("path", path).
			Build()
	}
	return nil
}

// ReadReport loads a persisted report from dir.
func ReadReport(dir string) (*Report, error) {
	data, err := os.ReadFile(filepath.Join(dir, ReportFile))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read build report").Build()
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.WrapError(err, errors.CategoryBuild, "decode build report").Build()
	}
	return &r, nil
}

// Changed returns the documents whose fingerprint differs from prev, plus
// documents that are new. A nil prev reports every page.
func (r *Report) Changed(prev *Report) []string {
	old := map[string]string{}
	if prev != nil {
		for _, p := range prev.Pages {
			old[p.DocName] = p.Fingerprint
		}
	}
	var changed []string
	for _, p := range r.Pages {
		if fp, ok := old[p.DocName]; !ok || !strings.EqualFold(fp, p.Fingerprint) {
			changed = append(changed, p.DocName)
		}
	}
	return changed
}
