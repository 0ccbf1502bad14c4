package vscode

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/hookkit/internal/errors"
	"github.com/Iron-Ham/hookkit/internal/logging"
)

const devcontainer = `{
	// Dev container used by CI and local development.
	"name": "repo",
	"customizations": {
		"vscode": {
			"settings": {
				"editor.tabSize": 4,
				"files.trimTrailingWhitespace": true, // trailing comma below
			},
			"extensions": [
				"ms-python.python",
				"golang.go",
				"-ms-azuretools.vscode-docker",
			],
		},
	},
}
`

func newRepo(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	return fs
}

func readJSON(t *testing.T, fs afero.Fs, path string) map[string]any {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("%s is not valid JSON: %v\n%s", path, err, data)
	}
	return v
}

func TestLoadDevcontainer(t *testing.T) {
	fs := newRepo(t, map[string]string{DefaultDevcontainerJSON: devcontainer})

	custom, err := LoadDevcontainer(fs, DefaultDevcontainerJSON)
	if err != nil {
		t.Fatalf("LoadDevcontainer failed: %v", err)
	}
	if len(custom.Settings) != 2 {
		t.Errorf("len(Settings) = %d, want 2", len(custom.Settings))
	}
	want := []string{"ms-python.python", "golang.go", "-ms-azuretools.vscode-docker"}
	if !slices.Equal(custom.Extensions, want) {
		t.Errorf("Extensions = %v, want %v", custom.Extensions, want)
	}
}

func TestLoadDevcontainer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no customizations", `{"name": "x"}`, "'customizations'"},
		{"no vscode block", `{"customizations": {"jetbrains": {}}}`, "'customizations.vscode'"},
		{"settings not an object", `{"customizations": {"vscode": {"settings": []}}}`, "must be an object"},
		{"extensions not strings", `{"customizations": {"vscode": {"extensions": [1]}}}`, "list of strings"},
		{"malformed", `{"customizations": `, "cannot parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newRepo(t, map[string]string{"dc.json": tt.content})
			_, err := LoadDevcontainer(fs, "dc.json")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %q, want it to contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoadDevcontainer_Missing(t *testing.T) {
	if _, err := LoadDevcontainer(afero.NewMemMapFs(), "dc.json"); err == nil {
		t.Error("expected an error for a missing devcontainer.json")
	}
}

func TestMergeSettings(t *testing.T) {
	dst := map[string]any{"a": "old", "b": true, "c": nil, "keep": 1.0}
	records := MergeSettings(dst, map[string]any{"a": "new", "b": true, "c": "set", "d": "added"})

	want := []OverwriteRecord{{Key: "a", OldValue: "old", NewValue: "new"}}
	if len(records) != 1 || records[0] != want[0] {
		t.Errorf("records = %+v, want %+v", records, want)
	}
	if dst["a"] != "new" || dst["c"] != "set" || dst["d"] != "added" || dst["keep"] != 1.0 {
		t.Errorf("dst = %v", dst)
	}
}

func TestMergeSettings_NumericEquality(t *testing.T) {
	tests := []struct {
		name    string
		old     any
		new     any
		changed bool
	}{
		{"integer and float spelling", json.Number("1"), json.Number("1.0"), false},
		{"exponent spelling", json.Number("100"), json.Number("1e2"), false},
		{"nested in object", map[string]any{"size": json.Number("12")}, map[string]any{"size": json.Number("12.00")}, false},
		{"nested in array", []any{json.Number("80"), json.Number("120")}, []any{json.Number("80.0"), json.Number("120")}, false},
		{"different numbers", json.Number("1"), json.Number("1.5"), true},
		{"number and string", json.Number("1"), "1", true},
		{"array lengths differ", []any{json.Number("80")}, []any{json.Number("80"), json.Number("100")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := MergeSettings(map[string]any{"key": tt.old}, map[string]any{"key": tt.new})
			if got := len(records) == 1; got != tt.changed {
				t.Errorf("overwritten = %v, want %v (records %+v)", got, tt.changed, records)
			}
		})
	}
}

func TestSync_NumericSettingNotReported(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "dc.json", []byte(`{"customizations": {"vscode": {"settings": {"editor.tabSize": 4.0}}}}`), 0644)
	_ = afero.WriteFile(fs, "settings.json", []byte(`{"editor.tabSize": 4}`), 0644)

	records, err := NewSyncer(fs, nil).Sync(Options{
		DevcontainerJSON: "dc.json",
		SettingsPath:     "settings.json",
		SyncSettings:     true,
	})
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %+v, want none", records)
	}
}

func TestOverwriteRecord_String(t *testing.T) {
	r := OverwriteRecord{Key: "editor.rulers", OldValue: []any{80.0}, NewValue: []any{100.0}}
	want := "'editor.rulers' was overwritten from '[80]' to '[100]'"
	if got := r.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCombineRecommendations(t *testing.T) {
	got := CombineRecommendations([]string{"b", "a"}, []string{"c", "a"})
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("CombineRecommendations() = %v", got)
	}
}

func TestFilterUnwanted(t *testing.T) {
	got := FilterUnwanted([]string{"a", "-b", "c"})
	if !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("FilterUnwanted() = %v", got)
	}
}

func TestSync_CreatesFiles(t *testing.T) {
	fs := newRepo(t, map[string]string{"Repo/.devcontainer/devcontainer.json": devcontainer})

	records, err := NewSyncer(fs, nil).Sync(DefaultOptions("Repo"))
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %+v, want none", records)
	}

	data, err := afero.ReadFile(fs, "Repo/.vscode/settings.json")
	if err != nil {
		t.Fatalf("settings.json not written: %v", err)
	}
	want := "{\n    \"editor.tabSize\": 4,\n    \"files.trimTrailingWhitespace\": true\n}\n"
	if string(data) != want {
		t.Errorf("settings.json = %q, want %q", data, want)
	}

	extensions := readJSON(t, fs, "Repo/.vscode/extensions.json")
	got := extensions["recommendations"].([]any)
	if len(got) != 2 || got[0] != "golang.go" || got[1] != "ms-python.python" {
		t.Errorf("recommendations = %v", got)
	}
}

func TestSync_MergesExisting(t *testing.T) {
	fs := newRepo(t, map[string]string{
		"Repo/.devcontainer/devcontainer.json": devcontainer,
		"Repo/.vscode/settings.json":           `{"editor.tabSize": 2, "search.exclude": {"**/bazel-*": true}, /* kept */ "files.trimTrailingWhitespace": true}`,
		"Repo/.vscode/extensions.json":         `{"recommendations": ["zxh404.vscode-proto3", "golang.go"], "unwantedRecommendations": ["x"]}`,
	})

	var logs bytes.Buffer
	logger := logging.NewLogger(&logs, "DEBUG", logging.FormatJSON)

	records, err := NewSyncer(fs, logger).Sync(DefaultOptions("Repo"))
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	if len(records) != 1 || records[0].Key != "editor.tabSize" {
		t.Fatalf("records = %+v, want editor.tabSize only", records)
	}
	if !strings.Contains(logs.String(), "'editor.tabSize' was overwritten from '2' to '4'") {
		t.Errorf("warning not logged: %s", logs.String())
	}
	if !strings.Contains(logs.String(), `"level":"WARN"`) {
		t.Errorf("overwrite not logged at WARN: %s", logs.String())
	}

	settings := readJSON(t, fs, "Repo/.vscode/settings.json")
	if settings["editor.tabSize"] != 4.0 {
		t.Errorf("editor.tabSize = %v, want 4", settings["editor.tabSize"])
	}
	if _, ok := settings["search.exclude"]; !ok {
		t.Error("existing search.exclude setting was dropped")
	}

	extensions := readJSON(t, fs, "Repo/.vscode/extensions.json")
	got := extensions["recommendations"].([]any)
	want := []any{"golang.go", "ms-python.python", "zxh404.vscode-proto3"}
	if !slices.Equal(got, want) {
		t.Errorf("recommendations = %v, want %v", got, want)
	}
	if _, ok := extensions["unwantedRecommendations"]; !ok {
		t.Error("unwantedRecommendations member was dropped")
	}
}

func TestSync_SkipFlags(t *testing.T) {
	fs := newRepo(t, map[string]string{"Repo/.devcontainer/devcontainer.json": devcontainer})

	opts := DefaultOptions("Repo")
	opts.SyncSettings = false
	opts.SyncExtensions = false
	if _, err := NewSyncer(fs, nil).Sync(opts); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	for _, path := range []string{"Repo/.vscode/settings.json", "Repo/.vscode/extensions.json"} {
		if exists, _ := afero.Exists(fs, path); exists {
			t.Errorf("%s written although syncing was disabled", path)
		}
	}
}

func TestSync_CustomIndentAndUnicode(t *testing.T) {
	fs := newRepo(t, map[string]string{
		"dc.json": `{"customizations": {"vscode": {"settings": {"cSpell.words": ["naïve", "<tag>&"]}}}}`,
	})

	opts := Options{DevcontainerJSON: "dc.json", SettingsPath: "out/settings.json", Indent: 2, SyncSettings: true}
	if _, err := NewSyncer(fs, nil).Sync(opts); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	data, err := afero.ReadFile(fs, "out/settings.json")
	if err != nil {
		t.Fatalf("settings not written: %v", err)
	}
	want := "{\n  \"cSpell.words\": [\n    \"naïve\",\n    \"<tag>&\"\n  ]\n}\n"
	if string(data) != want {
		t.Errorf("settings.json = %q, want %q", data, want)
	}
}

func TestUpdateExtensions_InvalidRecommendations(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"not a list", `{"recommendations": "golang.go"}`, "recommendations must be a list"},
		{"not strings", `{"recommendations": ["golang.go", 3]}`, "Bad item: '3'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newRepo(t, map[string]string{"extensions.json": tt.content})
			err := NewSyncer(fs, nil).UpdateExtensions("extensions.json", []string{"a"}, DefaultIndent)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %q, want it to contain %q", err.Error(), tt.want)
			}
		})
	}
}
