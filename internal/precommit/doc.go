// Package precommit reads a repository's .pre-commit-config.yaml and reports
// how many files each hook's exclude pattern keeps out of the check.
package precommit
