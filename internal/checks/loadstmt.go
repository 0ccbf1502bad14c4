package checks

import (
	"fmt"

	"github.com/dlclark/regexp2"
	"github.com/spf13/afero"

	"github.com/Iron-Ham/hookkit/internal/errors"
)

// LoadRule names the only label a Bazel rule may be loaded from.
type LoadRule struct {
	// Path is the required .bzl label, e.g. "@rules_python//python:defs.bzl".
	Path string
	// Name is the loaded symbol, e.g. "py_library".
	Name string
}

// Usage returns the load statement files are expected to use.
func (r LoadRule) Usage() string {
	return fmt.Sprintf(`load("%s", "%s")`, r.Path, r.Name)
}

// Message is the diagnostic printed for a file that loads the rule from
// anywhere else.
func (r LoadRule) Message(file string) string {
	return fmt.Sprintf("Error: %s does not use the correct load statement. Please use `%s` to load the rule \"%s\".",
		file, r.Usage(), r.Name)
}

// Compile builds the expression matching a load() statement that mentions
// the rule name but does not load it from the rule path.
func (r LoadRule) Compile() (*regexp2.Regexp, error) {
	expr := fmt.Sprintf(`^\s*load\((?!"%s")[^)]*"%s"[^)]*\)`, regexp2.Escape(r.Path), regexp2.Escape(r.Name))
	re, err := regexp2.Compile(expr, regexp2.Multiline)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid load rule %s", r.Usage())
	}
	return re, nil
}

// HasWrongLoadStatement reports whether content loads the rule from a path
// other than r.Path.
func (r LoadRule) HasWrongLoadStatement(content string) (bool, error) {
	re, err := r.Compile()
	if err != nil {
		return false, err
	}
	return re.MatchString(content)
}

// FindWrongLoadStatements returns the files that load the rule from the wrong
// place, in input order.
func FindWrongLoadStatements(fs afero.Fs, files []string, rule LoadRule) ([]string, error) {
	re, err := rule.Compile()
	if err != nil {
		return nil, err
	}

	var invalid []string
	for _, file := range files {
		data, err := afero.ReadFile(fs, file)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", file)
		}
		wrong, err := re.MatchString(string(data))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to scan %s", file)
		}
		if wrong {
			invalid = append(invalid, file)
		}
	}
	return invalid, nil
}
