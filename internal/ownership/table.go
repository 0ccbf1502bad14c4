package ownership

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// Entry is one ownership rule from a CODEOWNERS file.
type Entry struct {
	// Pattern is the path pattern as written in the file.
	Pattern string
	// Owners are the owners listed after the pattern. May be empty, which
	// explicitly removes ownership for matching paths.
	Owners []string
	// Line is the 1-based source line number.
	Line int
}

// Table is an immutable ordered set of ownership entries, stored in reverse of
// declaration order so that the first covering entry has the highest precedence.
type Table struct {
	entries []Entry
}

// BuildTable parses CODEOWNERS lines into a table. Comment lines and blank lines
// are skipped; lines are never rejected.
func BuildTable(lines []string) Table {
	entries := make([]Entry, 0, len(lines))
	for i, line := range lines {
		if entry, ok := parseLine(line, i+1); ok {
			entries = append(entries, entry)
		}
	}

	slices.Reverse(entries)
	return Table{entries: entries}
}

// Parse reads CODEOWNERS content from r.
func Parse(r io.Reader) (Table, error) {
	s := bufio.NewScanner(r)
	lines := make([]string, 0, 64)
	for s.Scan() {
		lines = append(lines, s.Text())
	}

	if err := s.Err(); err != nil {
		return Table{}, fmt.Errorf("scan codeowners: %w", err)
	}

	return BuildTable(lines), nil
}

// Load reads and parses the CODEOWNERS file at path.
func Load(fs afero.Fs, path string) (Table, error) {
	f, err := fs.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open codeowners file: %w", err)
	}
	defer func() { _ = f.Close() }()

	table, err := Parse(f)
	if err != nil {
		return Table{}, fmt.Errorf("parse codeowners file %s: %w", path, err)
	}

	return table, nil
}

// parseLine splits one line into pattern and owners.
func parseLine(line string, lineNumber int) (Entry, bool) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "#") {
		return Entry{}, false
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Entry{}, false
	}

	return Entry{
		Pattern: fields[0],
		Owners:  fields[1:],
		Line:    lineNumber,
	}, true
}

// Len returns the number of entries.
func (t Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries in lookup order (last declared first).
func (t Table) Entries() []Entry {
	return slices.Clone(t.entries)
}
