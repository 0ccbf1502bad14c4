/*
Package ownership implements CODEOWNERS-style path ownership lookup.

Basic flow:
  - parse rules from text (`Parse`, `BuildTable`) or a file (`Load`)
  - build a matcher (`NewMatcher`)
  - ask who owns a path (`Match`)

Precedence follows CODEOWNERS: the last matching line in the file wins. Tables
store entries in reverse file order so a lookup is a single pass that stops at
the first covering entry.

Pattern semantics (`Covers`):
  - patterns containing "*" are turned into an expression where every "*" is a
    greedy capture; a leading "/" anchors at the repository root, otherwise any
    prefix is allowed. A trailing "/*" only covers direct children.
  - patterns starting with "/" cover the path itself and everything below it.
  - any other pattern covers every path containing it as a substring, so
    "build" also covers "src/build/output".

`GithubOwnership` wraps a matcher with CODEOWNERS discovery relative to a
repository root.
*/
package ownership
