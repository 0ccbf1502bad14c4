// Package pyregex compiles regular expressions written for Python's re module
// with the regexp2 engine.
//
// regexp2 follows .NET syntax, which already covers lookarounds, lazy
// quantifiers and (?<name>...) groups. Python spells a few constructs
// differently; Translate rewrites them:
//
//	(?P<name>...)  ->  (?<name>...)
//	(?P=name)      ->  \k<name>
//	\Z             ->  \z
package pyregex

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// Compile translates expr and compiles it.
func Compile(expr string, opts regexp2.RegexOptions) (*regexp2.Regexp, error) {
	translated, err := Translate(expr)
	if err != nil {
		return nil, err
	}
	return regexp2.Compile(translated, opts)
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string, opts regexp2.RegexOptions) *regexp2.Regexp {
	re, err := Compile(expr, opts)
	if err != nil {
		panic(fmt.Sprintf("pyregex: Compile(%q): %v", expr, err))
	}
	return re
}

// Translate rewrites the Python-only constructs of expr into regexp2 syntax.
// Escaped characters and character classes are copied unchanged.
func Translate(expr string) (string, error) {
	var b strings.Builder
	b.Grow(len(expr))

	inClass := false
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch {
		case c == '\\' && i+1 < len(expr):
			next := expr[i+1]
			if next == 'Z' && !inClass {
				b.WriteString(`\z`)
			} else {
				b.WriteByte(c)
				b.WriteByte(next)
			}
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
			b.WriteByte(c)
		case c == '[':
			inClass = true
			b.WriteByte(c)
			// A ']' right after '[' or '[^' is a literal member.
			if i+1 < len(expr) && expr[i+1] == '^' {
				b.WriteByte('^')
				i++
			}
			if i+1 < len(expr) && expr[i+1] == ']' {
				b.WriteByte(']')
				i++
			}
		case strings.HasPrefix(expr[i:], "(?P<"):
			b.WriteString("(?<")
			i += len("(?P<") - 1
		case strings.HasPrefix(expr[i:], "(?P="):
			end := strings.IndexByte(expr[i:], ')')
			if end < 0 {
				return "", fmt.Errorf("missing ) in group reference at position %d", i)
			}
			name := expr[i+len("(?P=") : i+end]
			b.WriteString(`\k<` + name + `>`)
			i += end
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}
