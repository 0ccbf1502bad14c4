package versionsync

import (
	"strings"
	"testing"

	"github.com/dlclark/regexp2"
	"github.com/spf13/afero"

	"github.com/Iron-Ham/hookkit/internal/errors"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestSpec_EffectiveVersion(t *testing.T) {
	spec := Spec{Name: "go", Version: "1.25.5"}

	if got := spec.EffectiveVersion(Entry{}); got != "1.25.5" {
		t.Errorf("EffectiveVersion() = %q, want %q", got, "1.25.5")
	}
	if got := spec.EffectiveVersion(Entry{VersionOverride: "1.24.0"}); got != "1.24.0" {
		t.Errorf("EffectiveVersion() = %q, want override %q", got, "1.24.0")
	}
}

func TestPrepare_MissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll("Repo", 0755)

	spec := Spec{Name: "rust", Version: "1.91.0", Entries: []Entry{{Path: "Repo/missing.txt", Pattern: `rust:\s*([0-9.]+)`}}}
	prepared, err := NewSyncer(fs, nil).Prepare(spec, spec.Entries[0])

	if prepared != nil {
		t.Errorf("prepared = %+v, want nil", prepared)
	}
	if !errors.Is(err, errors.ErrMissingFile) {
		t.Fatalf("err = %v, want ErrMissingFile", err)
	}
	if !strings.Contains(err.Error(), "missing") || !strings.Contains(err.Error(), "Repo/missing.txt") {
		t.Errorf("err = %q, want it to mention missing and the path", err.Error())
	}
}

func TestPrepare_DirectoryIsMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll("Repo/dir", 0755)

	spec := Spec{Name: "rust", Version: "1.91.0"}
	_, err := NewSyncer(fs, nil).Prepare(spec, Entry{Path: "Repo/dir", Pattern: "(x)"})
	if !errors.Is(err, errors.ErrMissingFile) {
		t.Errorf("err = %v, want ErrMissingFile", err)
	}
}

func TestPrepare_ValidEntry(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "Repo/MODULE.bazel", "RUST_VERSION = \"1.87.0\"\n")

	spec := Spec{Name: "rust", Version: "1.91.0"}
	prepared, err := NewSyncer(fs, nil).Prepare(spec, Entry{Path: "Repo/MODULE.bazel", Pattern: `RUST_VERSION\s*=\s*"([0-9.]+)"`})
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if prepared.Content != "RUST_VERSION = \"1.87.0\"\n" {
		t.Errorf("Content = %q", prepared.Content)
	}
	if prepared.Regexp == nil {
		t.Error("Regexp is nil")
	}
}

func TestPrepare_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    error
	}{
		{"no capture group", `RUST_VERSION\s*=\s*"[0-9.]+"`, errors.ErrCaptureGroups},
		{"two capture groups", `(RUST_VERSION)\s*=\s*"([0-9.]+)"`, errors.ErrCaptureGroups},
		{"placeholder twice", `THE_VERSION THE_VERSION`, errors.ErrPlaceholderCount},
		{"placeholder twice with broken syntax", `(THE_VERSION THE_VERSION`, errors.ErrPlaceholderCount},
		{"invalid pattern", `RUST_VERSION = "([0-9.]+"`, errors.ErrInvalidPattern},
		{"no match", `NO_MATCH([0-9.]+)`, errors.ErrNoMatch},
		{"placeholder plus extra group", `(RUST)_VERSION = "THE_VERSION"`, errors.ErrCaptureGroups},
		{"named group plus placeholder", `(?P<name>RUST)_VERSION = "THE_VERSION"`, errors.ErrCaptureGroups},
		{"unterminated group reference", `(?P=v RUST_VERSION = "([0-9.]+)"`, errors.ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "MODULE.bazel", "RUST_VERSION = \"1.87.0\"\n")

			spec := Spec{Name: "rust", Version: "1.91.0"}
			prepared, err := NewSyncer(fs, nil).Prepare(spec, Entry{Path: "MODULE.bazel", Pattern: tt.pattern})
			if prepared != nil {
				t.Errorf("prepared = %+v, want nil", prepared)
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}

			var syncErr *errors.SyncError
			if !errors.As(err, &syncErr) {
				t.Fatalf("err is %T, want *errors.SyncError", err)
			}
			if syncErr.Spec != "rust" || syncErr.File != "MODULE.bazel" {
				t.Errorf("SyncError = %+v, want spec rust and file MODULE.bazel", syncErr)
			}
		})
	}
}

func TestApply_PythonNamedGroup(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		content string
		want    string
	}{
		{
			name:    "named group",
			pattern: `version = "(?P<v>[0-9.]+)"`,
			content: "version = \"1.87.0\"\n",
			want:    "version = \"1.91.0\"\n",
		},
		{
			name:    "named group between alternations",
			pattern: `(?:'|")rust-(?P<v>[0-9.]+)(?:'|")`,
			content: "tool = 'rust-1.87.0'\n",
			want:    "tool = 'rust-1.91.0'\n",
		},
		{
			name:    "end of string anchor",
			pattern: `rust ([0-9.]+)\n\Z`,
			content: "rust 1.0.0\nrust 1.87.0\n",
			want:    "rust 1.0.0\nrust 1.91.0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "tools.txt", tt.content)

			specs := []Spec{{Name: "rust", Version: "1.91.0", Entries: []Entry{{Path: "tools.txt", Pattern: tt.pattern}}}}
			changed, errs := NewSyncer(fs, nil).Apply(specs)
			if len(errs) != 0 {
				t.Fatalf("Apply errors: %v", errs)
			}
			if !changed {
				t.Error("changed = false, want true")
			}
			if got := readFile(t, fs, "tools.txt"); got != tt.want {
				t.Errorf("tools.txt = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApply_MultipleMatchesUpdatesAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "Repo/MODULE.bazel", "RUST_VERSION = \"1.87.0\"\n")
	writeFile(t, fs, "Repo/.pre-commit-config.yaml", "rust: 1.87.0\nrust: 1.87.0\n")

	specs := []Spec{{
		Name:    "rust",
		Version: "1.91.0",
		Entries: []Entry{
			{Path: "Repo/MODULE.bazel", Pattern: `RUST_VERSION\s*=\s*"([^"]+)"`},
			{Path: "Repo/.pre-commit-config.yaml", Pattern: `rust:\s*([0-9.]+)`},
		},
	}}

	changed, errs := NewSyncer(fs, nil).Apply(specs)
	if len(errs) != 0 {
		t.Fatalf("Apply errors: %v", errs)
	}
	if !changed {
		t.Error("changed = false, want true")
	}
	if got := readFile(t, fs, "Repo/MODULE.bazel"); got != "RUST_VERSION = \"1.91.0\"\n" {
		t.Errorf("MODULE.bazel = %q", got)
	}
	if got := readFile(t, fs, "Repo/.pre-commit-config.yaml"); got != "rust: 1.91.0\nrust: 1.91.0\n" {
		t.Errorf(".pre-commit-config.yaml = %q", got)
	}
}

func TestApply_AlreadyInSyncIsNoop(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "go.mod", "module x\n\ngo 1.25.5\n")

	specs := []Spec{{Name: "go", Version: "1.25.5", Entries: []Entry{{Path: "go.mod", Pattern: `^go THE_VERSION$`}}}}

	changed, errs := NewSyncer(fs, nil).Apply(specs)
	if len(errs) != 0 {
		t.Fatalf("Apply errors: %v", errs)
	}
	if changed {
		t.Error("changed = true, want false")
	}
	if got := readFile(t, fs, "go.mod"); got != "module x\n\ngo 1.25.5\n" {
		t.Errorf("go.mod = %q", got)
	}
}

func TestApply_Idempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "tools.yaml", "node: v20.1.0 # pinned\nnode: v20.1.0\n")

	specs := []Spec{{Name: "node", Version: "v22.3.0", Entries: []Entry{{Path: "tools.yaml", Pattern: `node: THE_VERSION`}}}}
	syncer := NewSyncer(fs, nil)

	changed, errs := syncer.Apply(specs)
	if !changed || len(errs) != 0 {
		t.Fatalf("first Apply = (%v, %v), want (true, none)", changed, errs)
	}
	first := readFile(t, fs, "tools.yaml")
	if first != "node: v22.3.0 # pinned\nnode: v22.3.0\n" {
		t.Errorf("after first run = %q", first)
	}

	changed, errs = syncer.Apply(specs)
	if changed || len(errs) != 0 {
		t.Fatalf("second Apply = (%v, %v), want (false, none)", changed, errs)
	}
	if got := readFile(t, fs, "tools.yaml"); got != first {
		t.Errorf("second run changed content to %q", got)
	}
}

func TestApply_VersionOverride(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "a.txt", "v=1.0.0\n")
	writeFile(t, fs, "b.txt", "v=1.0.0\n")

	specs := []Spec{{
		Name:    "tool",
		Version: "2.0.0",
		Entries: []Entry{
			{Path: "a.txt", Pattern: `v=THE_VERSION`},
			{Path: "b.txt", Pattern: `v=THE_VERSION`, VersionOverride: "2.0.0-rc.1+build.5"},
		},
	}}

	if _, errs := NewSyncer(fs, nil).Apply(specs); len(errs) != 0 {
		t.Fatalf("Apply errors: %v", errs)
	}
	if got := readFile(t, fs, "a.txt"); got != "v=2.0.0\n" {
		t.Errorf("a.txt = %q", got)
	}
	if got := readFile(t, fs, "b.txt"); got != "v=2.0.0-rc.1+build.5\n" {
		t.Errorf("b.txt = %q", got)
	}
}

func TestApply_ErrorsDoNotStopOtherEntries(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "ok.txt", "rust: 1.87.0\n")

	specs := []Spec{
		{Name: "rust", Version: "1.91.0", Entries: []Entry{
			{Path: "missing.txt", Pattern: `rust:\s*([0-9.]+)`},
			{Path: "ok.txt", Pattern: `rust:\s*[0-9.]+`},
		}},
		{Name: "rust-again", Version: "1.91.0", Entries: []Entry{
			{Path: "ok.txt", Pattern: `rust:\s*([0-9.]+)`},
		}},
	}

	changed, errs := NewSyncer(fs, nil).Apply(specs)
	if !changed {
		t.Error("changed = false, want true")
	}
	if len(errs) != 2 {
		t.Fatalf("len(errs) = %d, want 2: %v", len(errs), errs)
	}
	if !errors.Is(errs[0], errors.ErrMissingFile) {
		t.Errorf("errs[0] = %v, want ErrMissingFile", errs[0])
	}
	if !errors.Is(errs[1], errors.ErrCaptureGroups) {
		t.Errorf("errs[1] = %v, want ErrCaptureGroups", errs[1])
	}
	if got := readFile(t, fs, "ok.txt"); got != "rust: 1.91.0\n" {
		t.Errorf("ok.txt = %q", got)
	}
}

func TestApply_MissingFileOnly(t *testing.T) {
	fs := afero.NewMemMapFs()
	specs := []Spec{{Name: "rust", Version: "1.91.0", Entries: []Entry{{Path: "Repo/missing.txt", Pattern: `rust:\s*([0-9.]+)`}}}}

	changed, errs := NewSyncer(fs, nil).Apply(specs)
	if changed {
		t.Error("changed = true, want false")
	}
	if len(errs) != 1 {
		t.Errorf("len(errs) = %d, want 1", len(errs))
	}
}

func TestReplaceCaptures(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		content string
		version string
		want    string
	}{
		{
			name:    "keeps surrounding text",
			pattern: `version = "([^"]+)"`,
			content: `version = "1.0.0" # keep me`,
			version: "2.0.0",
			want:    `version = "2.0.0" # keep me`,
		},
		{
			name:    "multiple matches",
			pattern: `rust:\s*([0-9.]+)`,
			content: "rust: 1.87.0\nrust: 1.87.0\n",
			version: "1.91.0",
			want:    "rust: 1.91.0\nrust: 1.91.0\n",
		},
		{
			name:    "lookaround guards are untouched",
			pattern: `(?<=tag: )([0-9.]+)(?=\n)`,
			content: "tag: 1.2.3\n",
			version: "1.3.0",
			want:    "tag: 1.3.0\n",
		},
		{
			name:    "non ascii text before match",
			pattern: `héllo ([0-9.]+)`,
			content: "ünïcode héllo 1.0.0 ✓",
			version: "1.1.0",
			want:    "ünïcode héllo 1.1.0 ✓",
		},
		{
			name:    "optional group not participating",
			pattern: `tool(?:@([0-9.]+))?;`,
			content: "tool;tool@1.0.0;",
			version: "2.0.0",
			want:    "tool;tool@2.0.0;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := regexp2.MustCompile(tt.pattern, regexp2.Multiline)
			got, err := ReplaceCaptures(re, tt.content, tt.version)
			if err != nil {
				t.Fatalf("ReplaceCaptures failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReplaceCaptures() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSemverPlaceholder(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{"go 1.25.5", true},
		{"go v1.25.5", true},
		{"go 1.0.0-alpha.1", true},
		{"go 1.0.0+20130313144700", true},
		{"go 1.0.0-beta+exp.sha.5114f85", true},
		{"go 1.25", false},
		{"go 01.2.3", false},
		{"go 1.2.3.4", false},
		{"go x1.2.3", false},
	}

	re := regexp2.MustCompile(strings.Replace(`go THE_VERSION`, Placeholder, SemverPattern, 1), regexp2.Multiline)
	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			got, err := re.MatchString(tt.content)
			if err != nil {
				t.Fatalf("MatchString failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("MatchString(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}
