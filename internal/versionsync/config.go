package versionsync

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/hookkit/internal/errors"
)

// DefaultConfigFile is the versions config looked up in the working directory.
const DefaultConfigFile = ".versions.yaml"

// LoadConfig reads and validates the versions config at path. Documents ending in
// ".toml" are decoded as TOML, everything else as YAML. Entry paths are resolved
// relative to the config file's directory.
//
// All structural problems are reported as *errors.ConfigError; a missing file
// wraps errors.ErrConfigNotFound.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	info, err := fs.Stat(path)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", errors.ErrConfigNotFound, path)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	doc, err := decode(path, data)
	if err != nil {
		return nil, errors.NewConfigError(path, "", fmt.Sprintf("cannot decode %s", path)).WithCause(err)
	}

	return parseConfig(doc, path)
}

func decode(path string, data []byte) (any, error) {
	var doc any
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var table map[string]any
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, err
		}
		return table, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseConfig(doc any, path string) (*Config, error) {
	top, err := requireMapping(doc, path, "", fmt.Sprintf("Top-level config must be a mapping in %s", path))
	if err != nil {
		return nil, err
	}

	if _, ok := top["sync_versions"]; !ok {
		return nil, errors.NewConfigError(path, "sync_versions", fmt.Sprintf("Missing top-level 'sync_versions' in %s", path))
	}

	name, err := requireNonEmptyString(top["name"], path, "name", fmt.Sprintf("Missing top-level 'name' in %s", path))
	if err != nil {
		return nil, err
	}

	items, err := requireList(top["sync_versions"], path, "sync_versions", fmt.Sprintf("'sync_versions' must be a list in %s", path))
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(path)
	cfg := &Config{Name: name, Path: path, Specs: make([]Spec, 0, len(items))}
	for _, item := range items {
		raw, err := requireMapping(item, path, "sync_versions", fmt.Sprintf("Each sync_versions entry must be a mapping in %s", path))
		if err != nil {
			return nil, err
		}

		spec, err := parseSpec(raw, baseDir, path)
		if err != nil {
			return nil, err
		}
		cfg.Specs = append(cfg.Specs, spec)
	}

	return cfg, nil
}

func parseSpec(raw map[string]any, baseDir, path string) (Spec, error) {
	name, err := requireNonEmptyString(raw["name"], path, "sync_versions.name",
		fmt.Sprintf("Each sync_versions entry must have a non-empty 'name' in %s", path))
	if err != nil {
		return Spec{}, err
	}

	version, err := requireNonEmptyString(raw["version"], path, "sync_versions.version",
		fmt.Sprintf("Each sync_versions entry must have a non-empty 'version' in %s", path))
	if err != nil {
		return Spec{}, err
	}

	entriesMsg := fmt.Sprintf("Each sync_versions entry must have a non-empty 'entries' list in %s", path)
	items, err := requireList(raw["entries"], path, "sync_versions.entries", entriesMsg)
	if err != nil {
		return Spec{}, err
	}
	if len(items) == 0 {
		return Spec{}, errors.NewConfigError(path, "sync_versions.entries", entriesMsg)
	}

	spec := Spec{Name: name, Version: version, Entries: make([]Entry, 0, len(items))}
	for _, item := range items {
		rawEntry, err := requireMapping(item, path, "sync_versions.entries", fmt.Sprintf("Each entries item must be a mapping in %s", path))
		if err != nil {
			return Spec{}, err
		}

		entry, err := parseEntry(rawEntry, baseDir, path)
		if err != nil {
			return Spec{}, err
		}
		spec.Entries = append(spec.Entries, entry)
	}

	return spec, nil
}

func parseEntry(raw map[string]any, baseDir, path string) (Entry, error) {
	target, err := requireNonEmptyString(raw["path"], path, "entries.path",
		fmt.Sprintf("Each entries item must have a non-empty 'path' in %s", path))
	if err != nil {
		return Entry{}, err
	}

	pattern, err := requireNonEmptyString(raw["pattern"], path, "entries.pattern",
		fmt.Sprintf("Each entries item must have a non-empty 'pattern' in %s", path))
	if err != nil {
		return Entry{}, err
	}

	var override string
	if value, ok := raw["version_override"]; ok && value != nil {
		override, err = requireNonEmptyString(value, path, "entries.version_override",
			fmt.Sprintf("Each entries item 'version_override' must be a non-empty string in %s", path))
		if err != nil {
			return Entry{}, err
		}
	}

	if !filepath.IsAbs(target) {
		target = filepath.Join(baseDir, filepath.FromSlash(target))
	}

	return Entry{Path: target, Pattern: pattern, VersionOverride: override}, nil
}

func requireMapping(value any, path, field, message string) (map[string]any, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, errors.NewConfigError(path, field, message)
	}
	return m, nil
}

func requireList(value any, path, field, message string) ([]any, error) {
	list, ok := value.([]any)
	if !ok {
		return nil, errors.NewConfigError(path, field, message)
	}
	return list, nil
}

func requireNonEmptyString(value any, path, field, message string) (string, error) {
	s, ok := value.(string)
	if !ok || s == "" {
		return "", errors.NewConfigError(path, field, message)
	}
	return s, nil
}
