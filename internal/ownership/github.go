package ownership

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// DefaultLocations are the CODEOWNERS locations GitHub looks at, in order,
// relative to the repository root.
var DefaultLocations = []string{
	filepath.Join(".github", "CODEOWNERS"),
	"CODEOWNERS",
	filepath.Join("docs", "CODEOWNERS"),
}

// GithubOwnership answers ownership questions for files of one repository.
type GithubOwnership struct {
	repoDir string
	file    string
	matcher *Matcher
}

// FindCodeowners returns the first existing CODEOWNERS file under repoDir.
func FindCodeowners(fs afero.Fs, repoDir string) (string, error) {
	for _, location := range DefaultLocations {
		candidate := filepath.Join(repoDir, location)
		info, err := fs.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no CODEOWNERS file found in %s (looked at %s)", repoDir, strings.Join(DefaultLocations, ", "))
}

// NewGithubOwnership loads the CODEOWNERS file of the repository at repoDir.
// When codeownersFile is empty the default locations are searched.
func NewGithubOwnership(fs afero.Fs, repoDir, codeownersFile string) (*GithubOwnership, error) {
	if codeownersFile == "" {
		found, err := FindCodeowners(fs, repoDir)
		if err != nil {
			return nil, err
		}
		codeownersFile = found
	}

	table, err := Load(fs, codeownersFile)
	if err != nil {
		return nil, err
	}

	return &GithubOwnership{
		repoDir: repoDir,
		file:    codeownersFile,
		matcher: NewMatcher(table),
	}, nil
}

// File returns the CODEOWNERS file the ownership was loaded from.
func (o *GithubOwnership) File() string {
	return o.file
}

// Lookup returns the entry that decides ownership of file. ok is false when no
// entry covers the file or the file is outside the repository.
func (o *GithubOwnership) Lookup(file string) (Entry, bool) {
	rel, ok := o.relative(file)
	if !ok {
		return Entry{}, false
	}
	return o.matcher.Lookup(rel)
}

// Owners returns the owners of file. ok is false when no entry covers the file.
func (o *GithubOwnership) Owners(file string) ([]string, bool) {
	entry, ok := o.Lookup(file)
	if !ok {
		return nil, false
	}
	return slices.Clone(entry.Owners), true
}

// IsOwnedBy reports whether codeowner is one of the owners of file.
func (o *GithubOwnership) IsOwnedBy(file, codeowner string) bool {
	owners, _ := o.Owners(file)
	return slices.Contains(owners, codeowner)
}

// FirstOwner returns the first listed owner of file, if any.
func (o *GithubOwnership) FirstOwner(file string) (string, bool) {
	owners, _ := o.Owners(file)
	if len(owners) == 0 {
		return "", false
	}
	return owners[0], true
}

// relative converts file to a slash-separated path relative to the repository root.
// Paths that cannot be related to the root are assumed to already be relative.
func (o *GithubOwnership) relative(file string) (string, bool) {
	rel, err := filepath.Rel(o.repoDir, file)
	if err != nil {
		rel = file
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}
