package checks

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/hookkit/internal/errors"
)

// Finding is a single offending line.
type Finding struct {
	Path    string
	Line    int
	Content string
}

// String formats the finding the way compilers report errors.
func (f Finding) String() string {
	return fmt.Sprintf("%s:%d: error: '%s'", f.Path, f.Line, f.Content)
}

// splitLines splits content into lines the way a text editor shows them: a
// trailing newline does not produce an empty last line, and "\r\n" endings are
// treated as "\n".
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}

// scanLines reads every file and reports each line for which match returns
// true. Files are processed in order; the first read error aborts the scan.
func scanLines(fs afero.Fs, files []string, match func(string) bool) ([]Finding, error) {
	var findings []Finding
	for _, file := range files {
		data, err := afero.ReadFile(fs, file)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", file)
		}
		for i, line := range splitLines(string(data)) {
			if match(line) {
				findings = append(findings, Finding{Path: file, Line: i + 1, Content: strings.TrimSpace(line)})
			}
		}
	}
	return findings, nil
}
