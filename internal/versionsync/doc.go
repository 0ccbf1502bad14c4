// Package versionsync keeps a declared tool version synchronized across text files.
//
// A versions config lists, per tool, the canonical version and every file location
// that must mirror it. Each location is a regular expression with exactly one
// capture group; only the captured text is replaced, so the characters that
// anchor or guard the version stay untouched.
//
// Patterns may contain the placeholder THE_VERSION once. It expands to a semantic
// version expression guarded on both sides, so
//
//	go THE_VERSION
//
// matches "go 1.25.5" and captures "1.25.5".
//
// Patterns use Python/.NET regular expression syntax (lookarounds allowed), which
// is what pre-commit users already write.
//
// Example config (.versions.yaml):
//
//	name: tool-versions
//	sync_versions:
//	  - name: rust
//	    version: 1.91.0
//	    entries:
//	      - path: MODULE.bazel
//	        pattern: 'RUST_VERSION\s*=\s*"([^"]+)"'
//	      - path: .pre-commit-config.yaml
//	        pattern: 'rust: THE_VERSION'
//	        version_override: 1.91.0-nightly
package versionsync
