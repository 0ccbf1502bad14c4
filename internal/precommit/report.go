package precommit

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/hookkit/internal/errors"
)

// HookMetric is one hook's line in the excluded-files report.
type HookMetric struct {
	HookID             string `json:"hook_id"`
	ExcludedFilesCount int    `json:"excluded_files_count"`
}

// Report summarizes the files excluded from pre-commit hooks.
type Report struct {
	TotalExcludedFiles int          `json:"total_excluded_files"`
	Hooks              []HookMetric `json:"hooks"`
}

// NewReport builds a report listing only hooks that exclude at least one
// file.
func NewReport(fs afero.Fs, hooks []Hook) Report {
	report := Report{Hooks: []HookMetric{}}
	for _, h := range hooks {
		count := h.CountExcludedFiles(fs)
		if count == 0 {
			continue
		}
		report.Hooks = append(report.Hooks, HookMetric{HookID: h.ID, ExcludedFilesCount: count})
		report.TotalExcludedFiles += count
	}
	return report
}

// JSON renders the report with two-space indentation.
func (r Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// WriteReport writes the rendered report to path, creating parent
// directories.
func WriteReport(fs afero.Fs, r Report, path string) error {
	data, err := r.JSON()
	if err != nil {
		return errors.Wrap(err, "failed to encode report")
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
