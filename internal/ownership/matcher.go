package ownership

import (
	"path"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// Matcher resolves ownership for repository-relative paths against a table.
// It is safe for concurrent use.
type Matcher struct {
	table Table
	cache *regexCache
}

// NewMatcher creates a matcher over table with its own expression cache.
func NewMatcher(table Table) *Matcher {
	return &Matcher{
		table: table,
		cache: newRegexCache(),
	}
}

// Match returns the owners of the highest-precedence entry covering path.
// ok is false when no entry covers path, which is distinct from a covering
// entry with no owners.
func (m *Matcher) Match(filePath string) (owners []string, ok bool) {
	entry, ok := m.Lookup(filePath)
	if !ok {
		return nil, false
	}
	return slices.Clone(entry.Owners), true
}

// Lookup returns the highest-precedence entry covering path.
func (m *Matcher) Lookup(filePath string) (Entry, bool) {
	filePath = normalizePath(filePath)
	for _, entry := range m.table.entries {
		if m.Covers(filePath, entry.Pattern) {
			return entry, true
		}
	}
	return Entry{}, false
}

// Covers reports whether pattern covers the repository-relative filePath.
func (m *Matcher) Covers(filePath, pattern string) bool {
	if strings.Contains(pattern, "*") {
		return m.coversWildcard(filePath, pattern)
	}

	if rooted, ok := strings.CutPrefix(pattern, "/"); ok {
		return isPathPrefix(filePath, strings.TrimRight(rooted, "/"))
	}

	return strings.Contains(filePath, strings.TrimRight(pattern, "/"))
}

// coversWildcard matches patterns containing "*". A trailing "/*" only covers
// direct children: the last wildcard must capture exactly the base name.
func (m *Matcher) coversWildcard(filePath, pattern string) bool {
	re := m.cache.compile(wildcardExpression(pattern))

	groups := re.FindStringSubmatch(filePath)
	if groups == nil {
		return false
	}

	if strings.HasSuffix(pattern, "/*") {
		return groups[len(groups)-1] == path.Base(filePath)
	}

	return true
}

// wildcardExpression converts a wildcard pattern into a start-anchored
// expression. Every "*" becomes a greedy capture; literal text is quoted.
func wildcardExpression(pattern string) string {
	body, rooted := strings.CutPrefix(pattern, "/")

	parts := strings.Split(body, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	expr := strings.Join(parts, "(.*)")

	if rooted {
		return "^" + expr
	}
	return "^.*?" + expr
}

// isPathPrefix reports whether prefix is filePath itself or one of its parent
// directories.
func isPathPrefix(filePath, prefix string) bool {
	if !strings.HasPrefix(filePath, prefix) {
		return false
	}
	if len(filePath) == len(prefix) {
		return true
	}
	return filePath[len(prefix)] == '/'
}

// normalizePath converts path to the slash-separated relative form patterns are written against.
func normalizePath(raw string) string {
	if strings.Contains(raw, `\`) {
		raw = strings.ReplaceAll(raw, `\`, `/`)
	}
	return strings.TrimPrefix(raw, "./")
}

// regexCache memoizes compiled wildcard expressions by source text. It is
// unbounded; the set of patterns is fixed by the CODEOWNERS file.
type regexCache struct {
	mu       sync.Mutex
	compiled map[string]*regexp.Regexp
}

func newRegexCache() *regexCache {
	return &regexCache{compiled: make(map[string]*regexp.Regexp)}
}

// compile returns the cached expression for expr, compiling it on first use.
// Expressions come from wildcardExpression, which quotes all literal text, so
// compilation cannot fail.
func (c *regexCache) compile(expr string) *regexp.Regexp {
	c.mu.Lock()
	defer c.mu.Unlock()

	if re, ok := c.compiled[expr]; ok {
		return re
	}

	re := regexp.MustCompile(expr)
	c.compiled[expr] = re
	return re
}

// len returns the number of cached expressions.
func (c *regexCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.compiled)
}
