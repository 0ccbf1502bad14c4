package versionsync

import (
	"os"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/spf13/afero"

	"github.com/Iron-Ham/hookkit/internal/errors"
	"github.com/Iron-Ham/hookkit/internal/logging"
	"github.com/Iron-Ham/hookkit/internal/pyregex"
)

// Prepared is a validated entry ready for rewriting.
type Prepared struct {
	// Regexp is the compiled entry pattern with exactly one capture group.
	Regexp *regexp2.Regexp
	// Content is the current text of the target file.
	Content string
	// Mode is the target file's permission bits, reused when writing back.
	Mode os.FileMode
}

// Syncer validates and applies version sync specs against a filesystem.
type Syncer struct {
	fs     afero.Fs
	logger *logging.Logger
}

// NewSyncer creates a Syncer. A nil logger discards log output.
func NewSyncer(fs afero.Fs, logger *logging.Logger) *Syncer {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Syncer{
		fs:     fs,
		logger: logger.WithTool("sync-versions"),
	}
}

// Prepare validates entry and loads its target file. Validation stops at the
// first problem; the returned error is a *errors.SyncError.
func (s *Syncer) Prepare(spec Spec, entry Entry) (*Prepared, error) {
	info, err := s.fs.Stat(entry.Path)
	if err != nil || info.IsDir() {
		return nil, errors.NewSyncError(spec.Name, entry.Path, entry.Pattern, errors.ErrMissingFile)
	}

	pattern, err := expandPlaceholder(spec, entry)
	if err != nil {
		return nil, err
	}

	re, err := pyregex.Compile(pattern, regexp2.Multiline)
	if err != nil {
		return nil, errors.NewSyncError(spec.Name, entry.Path, entry.Pattern, errors.ErrInvalidPattern).WithCause(err)
	}

	if captureGroups(re) != 1 {
		return nil, errors.NewSyncError(spec.Name, entry.Path, entry.Pattern, errors.ErrCaptureGroups)
	}

	data, err := afero.ReadFile(s.fs, entry.Path)
	if err != nil {
		return nil, errors.NewSyncError(spec.Name, entry.Path, entry.Pattern, nil).WithCause(err)
	}
	content := string(data)

	matched, err := re.MatchString(content)
	if err != nil {
		return nil, errors.NewSyncError(spec.Name, entry.Path, entry.Pattern, nil).WithCause(err)
	}
	if !matched {
		return nil, errors.NewSyncError(spec.Name, entry.Path, entry.Pattern, errors.ErrNoMatch)
	}

	return &Prepared{Regexp: re, Content: content, Mode: info.Mode().Perm()}, nil
}

// Apply synchronizes every entry of every spec. Entries are independent: a
// failing entry is reported and the rest are still processed. changed reports
// whether any file was rewritten.
func (s *Syncer) Apply(specs []Spec) (changed bool, errs []error) {
	for _, spec := range specs {
		for _, entry := range spec.Entries {
			entryChanged, err := s.applyEntry(spec, entry)
			if err != nil {
				s.logger.WithFile(entry.Path).Debug("entry failed validation", "spec", spec.Name, "error", err.Error())
				errs = append(errs, err)
				continue
			}
			changed = changed || entryChanged
		}
	}
	return changed, errs
}

func (s *Syncer) applyEntry(spec Spec, entry Entry) (bool, error) {
	prepared, err := s.Prepare(spec, entry)
	if err != nil {
		return false, err
	}

	version := spec.EffectiveVersion(entry)
	updated, err := ReplaceCaptures(prepared.Regexp, prepared.Content, version)
	if err != nil {
		return false, errors.NewSyncError(spec.Name, entry.Path, entry.Pattern, nil).WithCause(err)
	}

	if updated == prepared.Content {
		s.logger.WithFile(entry.Path).Debug("already up to date", "spec", spec.Name, "version", version)
		return false, nil
	}

	if err := afero.WriteFile(s.fs, entry.Path, []byte(updated), prepared.Mode); err != nil {
		return false, errors.NewSyncError(spec.Name, entry.Path, entry.Pattern, nil).WithCause(err)
	}

	s.logger.WithFile(entry.Path).Info("updated version", "spec", spec.Name, "version", version)
	return true, nil
}

// ReplaceCaptures replaces the first capture group of every non-overlapping
// match of re in content with version. Text of the match outside the group is
// kept verbatim. Matches where the group did not participate are left alone.
func ReplaceCaptures(re *regexp2.Regexp, content, version string) (string, error) {
	return re.ReplaceFunc(content, func(m regexp2.Match) string {
		group := m.GroupByNumber(1)
		text := m.Runes()
		if group == nil || len(group.Captures) == 0 {
			return string(text)
		}

		start := group.Index - m.Index
		end := start + group.Length
		return string(text[:start]) + version + string(text[end:])
	}, -1, -1)
}

// expandPlaceholder substitutes SemverPattern for Placeholder. More than one
// placeholder is rejected before any compilation happens.
func expandPlaceholder(spec Spec, entry Entry) (string, error) {
	switch strings.Count(entry.Pattern, Placeholder) {
	case 0:
		return entry.Pattern, nil
	case 1:
		return strings.Replace(entry.Pattern, Placeholder, SemverPattern, 1), nil
	default:
		return "", errors.NewSyncError(spec.Name, entry.Path, entry.Pattern, errors.ErrPlaceholderCount)
	}
}

// captureGroups returns the number of capture groups in re, excluding the
// implicit whole-match group.
func captureGroups(re *regexp2.Regexp) int {
	return len(re.GetGroupNumbers()) - 1
}
