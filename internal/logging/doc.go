// Package logging provides structured logging for hookkit commands.
//
// This package wraps Go's log/slog. Hooks are short-lived processes, so logs go
// to stderr by default (keeping stdout free for findings) or to a file when one is
// configured.
//
// # Basic Usage
//
//	logger := logging.NewLogger(os.Stderr, "INFO", logging.FormatText)
//	logger.Info("synced versions", "entries", 4)
//
// # Context Propagation
//
// Child loggers carry persistent attributes:
//
//	toolLogger := logger.WithTool("sync-versions")
//	toolLogger.WithFile("MODULE.bazel").Debug("pattern matched", "matches", 2)
//
// # Testing
//
// Use [NopLogger] to discard all log output.
//
// # Configuration
//
//	logging:
//	  level: info
//	  format: text
//	  file: ""
package logging
