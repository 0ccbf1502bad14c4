package versionsync

// Placeholder is the token in a sync pattern that expands to SemverPattern.
const Placeholder = "THE_VERSION"

// SemverPattern captures a semantic version (optional "v", major.minor.patch,
// optional pre-release and build metadata). It refuses to start or end inside a
// larger version-like token.
const SemverPattern = `(?<![0-9A-Za-z.-])` +
	`(v?(?:0|[1-9]\d*)\.(?:0|[1-9]\d*)\.(?:0|[1-9]\d*)` +
	`(?:-(?:(?:0|[1-9]\d*|\d*[A-Za-z-][0-9A-Za-z-]*)(?:\.(?:0|[1-9]\d*|\d*[A-Za-z-][0-9A-Za-z-]*))*))?` +
	`(?:\+(?:[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?)` +
	`(?![0-9A-Za-z.-])`

// Entry is one file location that must carry a spec's version.
type Entry struct {
	// Path is the target file.
	Path string
	// Pattern is a regular expression with exactly one capture group, or
	// containing Placeholder once.
	Pattern string
	// VersionOverride replaces the spec version for this entry when non-empty.
	VersionOverride string
}

// Spec declares the canonical version of a named tool and where it must appear.
type Spec struct {
	Name    string
	Version string
	Entries []Entry
}

// EffectiveVersion returns the version entry must be set to.
func (s Spec) EffectiveVersion(entry Entry) string {
	if entry.VersionOverride != "" {
		return entry.VersionOverride
	}
	return s.Version
}

// Config is a parsed versions config document.
type Config struct {
	// Name identifies the document.
	Name string
	// Path is the file the config was loaded from.
	Path string
	// Specs are the sync_versions items in document order.
	Specs []Spec
}
