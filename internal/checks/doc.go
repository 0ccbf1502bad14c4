// Package checks implements the line-oriented lint rules run as pre-commit
// hooks: TODO ticket references, one sentence per line, and Bazel load()
// statement sources.
//
// Each rule is a pure function over text plus a file-level helper that reads
// through an afero.Fs and returns Findings. Rendering findings and choosing an
// exit code is left to the caller.
package checks
