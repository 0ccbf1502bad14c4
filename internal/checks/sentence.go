package checks

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/spf13/afero"

	"github.com/Iron-Ham/hookkit/internal/errors"
	"github.com/Iron-Ham/hookkit/internal/pyregex"
)

// SentenceHeading introduces the list of lines holding several sentences.
const SentenceHeading = "The following lines contain multiple sentences (max one sentence per line):"

// sentenceBreak matches the whitespace after a letter and a terminal
// punctuation mark when more text follows. Digits before the mark are
// excluded so that "1. Item" stays intact.
var sentenceBreak = pyregex.MustCompile(`(?<=[A-Za-z][.?!])\s+(?=\S)`, regexp2.None)

// LineHasMultipleSentences reports whether line holds more than one sentence.
func LineHasMultipleSentences(line string) bool {
	ok, err := sentenceBreak.MatchString(line)
	return err == nil && ok
}

// SplitSentences splits line at every sentence break. Each resulting line
// keeps the original line's leading indentation. A line without breaks is
// returned as the only element.
func SplitSentences(line string) []string {
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]

	var sentences []string
	start := 0
	runes := []rune(line)
	m, err := sentenceBreak.FindRunesMatch(runes)
	for err == nil && m != nil {
		sentences = append(sentences, string(runes[start:m.Index]))
		start = m.Index + m.Length
		m, err = sentenceBreak.FindNextMatch(m)
	}
	if start == 0 {
		return []string{line}
	}
	sentences = append(sentences, string(runes[start:]))

	for i := 1; i < len(sentences); i++ {
		sentences[i] = indent + sentences[i]
	}
	return sentences
}

// FindMultipleSentences returns every line in files holding more than one
// sentence.
func FindMultipleSentences(fs afero.Fs, files []string) ([]Finding, error) {
	return scanLines(fs, files, LineHasMultipleSentences)
}

// FixMultipleSentences rewrites files so that every sentence sits on its own
// line. Only files that contain a multi-sentence line are written; the
// returned slice names them in input order.
func FixMultipleSentences(fs afero.Fs, files []string) ([]string, error) {
	var changed []string
	for _, file := range files {
		fixed, err := fixFile(fs, file)
		if err != nil {
			return changed, err
		}
		if fixed {
			changed = append(changed, file)
		}
	}
	return changed, nil
}

func fixFile(fs afero.Fs, file string) (bool, error) {
	info, err := fs.Stat(file)
	if err != nil {
		return false, errors.Wrapf(err, "failed to stat %s", file)
	}
	data, err := afero.ReadFile(fs, file)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", file)
	}

	lines := splitLines(string(data))
	out := make([]string, 0, len(lines))
	modified := false
	for _, line := range lines {
		split := SplitSentences(line)
		if len(split) > 1 {
			modified = true
		}
		out = append(out, split...)
	}
	if !modified {
		return false, nil
	}

	content := strings.Join(out, "\n") + "\n"
	if err := afero.WriteFile(fs, file, []byte(content), info.Mode().Perm()); err != nil {
		return false, errors.Wrapf(err, "failed to write %s", file)
	}
	return true, nil
}
