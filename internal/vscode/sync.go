package vscode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"github.com/tailscale/hujson"

	"github.com/Iron-Ham/hookkit/internal/errors"
	"github.com/Iron-Ham/hookkit/internal/logging"
)

// DefaultIndent is the number of spaces used when writing JSON.
const DefaultIndent = 4

// Default locations relative to the repository root.
const (
	DefaultDevcontainerJSON = ".devcontainer/devcontainer.json"
	DefaultSettingsPath     = ".vscode/settings.json"
	DefaultExtensionsPath   = ".vscode/extensions.json"
)

// Customizations is the "customizations.vscode" block of devcontainer.json.
type Customizations struct {
	Settings   map[string]any
	Extensions []string
}

// OverwriteRecord describes a setting whose existing value was replaced.
type OverwriteRecord struct {
	Key      string
	OldValue any
	NewValue any
}

// String renders the record for log output.
func (r OverwriteRecord) String() string {
	return fmt.Sprintf("'%s' was overwritten from '%s' to '%s'", r.Key, render(r.OldValue), render(r.NewValue))
}

// Options selects what Sync writes.
type Options struct {
	DevcontainerJSON string
	SettingsPath     string
	ExtensionsPath   string
	// Indent is the number of spaces per JSON level; zero means DefaultIndent.
	Indent         int
	SyncSettings   bool
	SyncExtensions bool
}

// DefaultOptions returns options using the default paths under repoRoot.
func DefaultOptions(repoRoot string) Options {
	return Options{
		DevcontainerJSON: filepath.Join(repoRoot, filepath.FromSlash(DefaultDevcontainerJSON)),
		SettingsPath:     filepath.Join(repoRoot, filepath.FromSlash(DefaultSettingsPath)),
		ExtensionsPath:   filepath.Join(repoRoot, filepath.FromSlash(DefaultExtensionsPath)),
		Indent:           DefaultIndent,
		SyncSettings:     true,
		SyncExtensions:   true,
	}
}

// Syncer copies devcontainer customizations into .vscode files.
type Syncer struct {
	fs     afero.Fs
	logger *logging.Logger
}

// NewSyncer creates a Syncer. A nil logger discards log output.
func NewSyncer(fs afero.Fs, logger *logging.Logger) *Syncer {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Syncer{fs: fs, logger: logger.WithTool("sync-vscode")}
}

// Sync reads the devcontainer customizations and merges them into the
// settings and extensions files selected by opts. The returned records list
// every overwritten setting; each is also logged as a warning.
func (s *Syncer) Sync(opts Options) ([]OverwriteRecord, error) {
	s.logger.Info("syncing VS Code configuration",
		"devcontainer", opts.DevcontainerJSON,
		"settings", opts.SettingsPath,
		"extensions", opts.ExtensionsPath)

	custom, err := LoadDevcontainer(s.fs, opts.DevcontainerJSON)
	if err != nil {
		return nil, err
	}

	var records []OverwriteRecord
	if opts.SyncSettings {
		records, err = s.UpdateSettings(opts.SettingsPath, custom.Settings, opts.Indent)
		if err != nil {
			return nil, err
		}
		if len(records) > 0 {
			logger := s.logger.WithFile(opts.SettingsPath)
			logger.Info("updated settings")
			for _, r := range records {
				logger.Warn(fmt.Sprintf("In %s, %s", opts.SettingsPath, r), "key", r.Key)
			}
		}
	}

	if opts.SyncExtensions {
		if err := s.UpdateExtensions(opts.ExtensionsPath, custom.Extensions, opts.Indent); err != nil {
			return records, err
		}
	}

	return records, nil
}

// LoadDevcontainer reads the "customizations.vscode" block of a
// devcontainer.json file. Missing "settings" or "extensions" members are
// treated as empty.
func LoadDevcontainer(fs afero.Fs, path string) (*Customizations, error) {
	doc, err := readObject(fs, path)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.NewConfigError(path, "", fmt.Sprintf("devcontainer config not found: %s", path))
	}

	customizations, ok := doc["customizations"].(map[string]any)
	if !ok {
		return nil, errors.NewConfigError(path, "customizations", fmt.Sprintf("Missing 'customizations' in %s", path))
	}
	block, ok := customizations["vscode"].(map[string]any)
	if !ok {
		return nil, errors.NewConfigError(path, "customizations.vscode", fmt.Sprintf("Missing 'customizations.vscode' in %s", path))
	}

	custom := &Customizations{Settings: map[string]any{}}
	if raw, ok := block["settings"]; ok && raw != nil {
		settings, ok := raw.(map[string]any)
		if !ok {
			return nil, errors.NewConfigError(path, "customizations.vscode.settings",
				fmt.Sprintf("'customizations.vscode.settings' must be an object in %s", path))
		}
		custom.Settings = settings
	}
	if raw, ok := block["extensions"]; ok && raw != nil {
		extensions, err := stringList(raw, path, "customizations.vscode.extensions")
		if err != nil {
			return nil, err
		}
		custom.Extensions = extensions
	}

	return custom, nil
}

// UpdateSettings merges settings into the JSON object at path, creating the
// file when needed. Existing keys are overwritten; a record is returned for
// every key whose previous non-null value differed.
func (s *Syncer) UpdateSettings(path string, settings map[string]any, indent int) ([]OverwriteRecord, error) {
	current, err := readObject(s.fs, path)
	if err != nil {
		return nil, err
	}
	if current == nil {
		current = map[string]any{}
	}

	records := MergeSettings(current, settings)
	if err := writeJSON(s.fs, path, current, indent); err != nil {
		return nil, err
	}
	return records, nil
}

// MergeSettings copies every key of updates into dst and reports the keys
// whose existing non-null value changed. Records are ordered by key.
func MergeSettings(dst, updates map[string]any) []OverwriteRecord {
	keys := make([]string, 0, len(updates))
	for key := range updates {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var records []OverwriteRecord
	for _, key := range keys {
		value := updates[key]
		old, existed := dst[key]
		dst[key] = value
		if existed && old != nil && !sameValue(old, value) {
			records = append(records, OverwriteRecord{Key: key, OldValue: old, NewValue: value})
		}
	}
	return records
}

// sameValue compares decoded JSON values. Numbers are equal when they denote
// the same value, so 1 and 1.0 match.
func sameValue(a, b any) bool {
	switch a := a.(type) {
	case json.Number:
		b, ok := b.(json.Number)
		if !ok {
			return false
		}
		if a == b {
			return true
		}
		x, errA := a.Float64()
		y, errB := b.Float64()
		return errA == nil && errB == nil && x == y
	case map[string]any:
		b, ok := b.(map[string]any)
		if !ok || len(a) != len(b) {
			return false
		}
		for key, v := range a {
			w, ok := b[key]
			if !ok || !sameValue(v, w) {
				return false
			}
		}
		return true
	case []any:
		b, ok := b.([]any)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !sameValue(a[i], b[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

// UpdateExtensions unions extensions into the "recommendations" list of the
// JSON object at path, creating the file when needed. Other members of the
// object are preserved.
func (s *Syncer) UpdateExtensions(path string, extensions []string, indent int) error {
	current, err := readObject(s.fs, path)
	if err != nil {
		return err
	}
	if current == nil {
		current = map[string]any{}
	}

	var existing []string
	if raw, ok := current["recommendations"]; ok {
		existing, err = recommendations(raw, path)
		if err != nil {
			return err
		}
	}

	merged := CombineRecommendations(existing, FilterUnwanted(extensions))
	list := make([]any, len(merged))
	for i, ext := range merged {
		list[i] = ext
	}
	current["recommendations"] = list

	return writeJSON(s.fs, path, current, indent)
}

// FilterUnwanted drops entries prefixed with "-", which devcontainer.json uses
// to exclude an extension.
func FilterUnwanted(extensions []string) []string {
	out := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, "-") {
			out = append(out, ext)
		}
	}
	return out
}

// CombineRecommendations returns the sorted union of both lists without
// duplicates.
func CombineRecommendations(existing, added []string) []string {
	combined := slices.Concat(existing, added)
	slices.Sort(combined)
	return slices.Compact(combined)
}

func recommendations(raw any, path string) ([]string, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, errors.NewConfigError(path, "recommendations",
			fmt.Sprintf("Invalid %s: recommendations must be a list", path))
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, errors.NewConfigError(path, "recommendations",
				fmt.Sprintf("Invalid %s: recommendations must be a list of strings. Bad item: '%s'", path, render(item)))
		}
		out = append(out, s)
	}
	return out, nil
}

func stringList(raw any, path, field string) ([]string, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, errors.NewConfigError(path, field, fmt.Sprintf("'%s' must be a list in %s", field, path))
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, errors.NewConfigError(path, field, fmt.Sprintf("'%s' must be a list of strings in %s", field, path))
		}
		out = append(out, s)
	}
	return out, nil
}

// readObject decodes the JSON-with-comments object at path. A missing file
// yields a nil map and no error.
func readObject(fs afero.Fs, path string) (map[string]any, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}
	if !exists {
		return nil, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, errors.NewConfigError(path, "", fmt.Sprintf("cannot parse %s", path)).WithCause(err)
	}

	dec := json.NewDecoder(bytes.NewReader(std))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.NewConfigError(path, "", fmt.Sprintf("cannot parse %s", path)).WithCause(err)
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, errors.NewConfigError(path, "", fmt.Sprintf("%s must contain a JSON object", path))
	}
	return obj, nil
}

// writeJSON writes v as indented JSON followed by a newline, creating parent
// directories. Non-ASCII and HTML characters are written unescaped.
func writeJSON(fs afero.Fs, path string, v any, indent int) error {
	if indent <= 0 {
		indent = DefaultIndent
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))
	if err := enc.Encode(v); err != nil {
		return errors.Wrapf(err, "failed to encode %s", path)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if err := afero.WriteFile(fs, path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

func render(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
