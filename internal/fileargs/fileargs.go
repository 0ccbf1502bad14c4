// Package fileargs turns hook command-line arguments into file lists.
//
// pre-commit passes explicit file names, which are returned untouched. When a
// hook is run by hand, arguments may be glob patterns ("docs/**/*.md"); those
// are expanded with doublestar against the same afero filesystem the hooks
// read from.
package fileargs

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/Iron-Ham/hookkit/internal/errors"
)

// IsPattern reports whether arg contains glob syntax.
func IsPattern(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}

// Expand returns the files named by args in argument order. An argument naming
// an existing file is used as is, even when it contains glob syntax. Other
// patterns expand to matching regular files in lexical order; a pattern with no
// match contributes nothing. Each file appears once.
func Expand(fs afero.Fs, args []string) ([]string, error) {
	seen := make(map[string]struct{}, len(args))
	var files []string
	add := func(name string) {
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		files = append(files, name)
	}

	for _, arg := range args {
		if !IsPattern(arg) || isFile(fs, arg) {
			add(arg)
			continue
		}

		matches, err := Glob(fs, arg)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			add(m)
		}
	}
	return files, nil
}

func isFile(fs afero.Fs, name string) bool {
	info, err := fs.Stat(name)
	return err == nil && info.Mode().IsRegular()
}

// Glob expands a single pattern. Patterns may be relative or absolute; the
// static prefix is split off and the rest is matched below it.
func Glob(fs afero.Fs, pattern string) ([]string, error) {
	slashed := filepath.ToSlash(pattern)
	if !doublestar.ValidatePattern(slashed) {
		return nil, errors.Wrapf(doublestar.ErrBadPattern, "invalid file pattern %q", pattern)
	}

	base, rest := doublestar.SplitPattern(slashed)
	root := fs
	if base != "." {
		root = afero.NewBasePathFs(fs, filepath.FromSlash(base))
	}

	matches, err := doublestar.Glob(afero.NewIOFS(root), rest, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to expand %q", pattern)
	}

	for i, m := range matches {
		if base != "." {
			m = path.Join(base, m)
		}
		matches[i] = m
	}
	slices.Sort(matches)
	for i, m := range matches {
		matches[i] = filepath.FromSlash(m)
	}
	return matches, nil
}
