// Package testutil provides testing utilities for hookkit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// NewMemRepo returns an in-memory filesystem holding files, keyed by path.
func NewMemRepo(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	WriteFiles(t, fs, "", files)
	return fs
}

// SetupTestRepo creates a temporary directory on disk holding files and
// makes it the working directory for the rest of the test. Returns the
// directory path.
func SetupTestRepo(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	WriteFiles(t, afero.NewOsFs(), dir, files)
	t.Chdir(dir)
	return dir
}

// WriteFiles writes files below root, creating parent directories.
func WriteFiles(t *testing.T, fs afero.Fs, root string, files map[string]string) {
	t.Helper()

	for path, content := range files {
		fullPath := filepath.Join(root, filepath.FromSlash(path))
		if err := fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", path, err)
		}
		if err := afero.WriteFile(fs, fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write file %s: %v", path, err)
		}
	}
}

// ReadFile returns the content of path, failing the test when it cannot be
// read.
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// AssertMissing fails the test when path exists.
func AssertMissing(t *testing.T, fs afero.Fs, path string) {
	t.Helper()

	if _, err := fs.Stat(path); !os.IsNotExist(err) {
		t.Errorf("%s should not exist (stat error: %v)", path, err)
	}
}
