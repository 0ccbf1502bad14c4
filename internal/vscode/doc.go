// Package vscode keeps a repository's .vscode settings and extension
// recommendations in step with the "customizations.vscode" block of its
// devcontainer.json.
//
// Input files may contain comments and trailing commas; they are standardized
// with hujson before decoding. Output is plain indented JSON.
package vscode
