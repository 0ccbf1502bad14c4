// Package hookkit exposes the pre-commit hook manifest shipped with the
// repository. The commands themselves live under internal/cmd.
package hookkit

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed .pre-commit-hooks.yaml
var manifestYAML []byte

// ManifestHook is one hook declared in .pre-commit-hooks.yaml.
type ManifestHook struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Entry       string   `yaml:"entry"`
	Language    string   `yaml:"language"`
	Files       string   `yaml:"files"`
	Types       []string `yaml:"types"`
	Stages      []string `yaml:"stages"`
	// PassFilenames is nil when the manifest leaves pre-commit's default (true).
	PassFilenames *bool `yaml:"pass_filenames"`
	AlwaysRun     bool  `yaml:"always_run"`
	Verbose       bool  `yaml:"verbose"`
}

// Hooks returns the hooks of the embedded manifest in declaration order.
func Hooks() ([]ManifestHook, error) {
	var hooks []ManifestHook
	if err := yaml.Unmarshal(manifestYAML, &hooks); err != nil {
		return nil, fmt.Errorf("failed to parse hook manifest: %w", err)
	}
	return hooks, nil
}

// HookByID returns the manifest hook with the given id.
func HookByID(id string) (ManifestHook, error) {
	hooks, err := Hooks()
	if err != nil {
		return ManifestHook{}, err
	}
	for _, h := range hooks {
		if h.ID == id {
			return h, nil
		}
	}
	return ManifestHook{}, fmt.Errorf("%s not found in hooks manifest", id)
}
