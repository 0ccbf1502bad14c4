package precommit

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/dlclark/regexp2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/hookkit/internal/errors"
	"github.com/Iron-Ham/hookkit/internal/pyregex"
)

// ConfigFile is the pre-commit configuration file name.
const ConfigFile = ".pre-commit-config.yaml"

// Hook is a configured pre-commit hook and the files its exclude pattern
// matches.
type Hook struct {
	ID string
	// Exclude is the raw exclude pattern, empty when the hook has none.
	Exclude string
	// ExcludedPaths are files, as paths on the filesystem the hook was
	// loaded from.
	ExcludedPaths []string
}

// CountExcludedFiles returns the number of ExcludedPaths that are still
// regular files. Removed paths and directories count as zero.
func (h Hook) CountExcludedFiles(fs afero.Fs) int {
	count := 0
	for _, path := range h.ExcludedPaths {
		info, err := fs.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			count++
		}
	}
	return count
}

type configDocument struct {
	Repos []struct {
		Repo  string `yaml:"repo"`
		Hooks []struct {
			ID      string `yaml:"id"`
			Exclude string `yaml:"exclude"`
		} `yaml:"hooks"`
	} `yaml:"repos"`
}

// LoadHooks parses the pre-commit config at configPath and resolves each
// hook's exclude pattern against the files under repoRoot. Hooks keep their
// configuration order. The .git directory is never scanned.
func LoadHooks(fs afero.Fs, repoRoot, configPath string) ([]Hook, error) {
	data, err := afero.ReadFile(fs, configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrConfigNotFound, configPath)
		}
		return nil, errors.Wrapf(err, "failed to read %s", configPath)
	}

	var doc configDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewConfigError(configPath, "", fmt.Sprintf("cannot decode %s", configPath)).WithCause(err)
	}

	files, err := repoFiles(fs, repoRoot)
	if err != nil {
		return nil, err
	}

	var hooks []Hook
	for _, repo := range doc.Repos {
		for _, h := range repo.Hooks {
			if h.ID == "" {
				return nil, errors.NewConfigError(configPath, "repos.hooks.id",
					fmt.Sprintf("Each hook must have a non-empty 'id' in %s", configPath))
			}
			hook := Hook{ID: h.ID, Exclude: h.Exclude}
			if h.Exclude != "" {
				matched, err := matchFiles(h.Exclude, files)
				if err != nil {
					return nil, errors.NewConfigError(configPath, "repos.hooks.exclude",
						fmt.Sprintf("hook '%s' has an invalid exclude pattern in %s", h.ID, configPath)).WithCause(err)
				}
				for _, rel := range matched {
					hook.ExcludedPaths = append(hook.ExcludedPaths, filepath.Join(repoRoot, filepath.FromSlash(rel)))
				}
			}
			hooks = append(hooks, hook)
		}
	}
	return hooks, nil
}

// UselessExcludes returns the hooks that declare an exclude pattern matching
// no file in the repository.
func UselessExcludes(hooks []Hook) []Hook {
	var useless []Hook
	for _, h := range hooks {
		if h.Exclude != "" && len(h.ExcludedPaths) == 0 {
			useless = append(useless, h)
		}
	}
	return useless
}

// matchFiles returns the files the pattern finds anywhere in their path, the
// way pre-commit applies exclude expressions.
func matchFiles(pattern string, files []string) ([]string, error) {
	re, err := pyregex.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	var matched []string
	for _, file := range files {
		ok, err := re.MatchString(file)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, file)
		}
	}
	return matched, nil
}

// repoFiles lists every regular file under root as a slash-separated path
// relative to root, sorted.
func repoFiles(fs afero.Fs, root string) ([]string, error) {
	var files []string
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list files under %s", root)
	}
	slices.Sort(files)
	return files, nil
}
