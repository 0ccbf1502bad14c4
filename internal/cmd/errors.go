package cmd

import (
	"github.com/Iron-Ham/hookkit/internal/errors"
	"github.com/Iron-Ham/hookkit/internal/report"
)

// silentError signals that a hook failed but its diagnostics were already
// printed. Used to set exit code 1 without a duplicate error message.
type silentError struct {
	reason string
}

func (e *silentError) Error() string {
	if e.reason == "" {
		return "check failed"
	}
	return e.reason
}

func failed(reason string) error {
	return &silentError{reason: reason}
}

// printFailure prints err and returns the hook failure for reason. Config and
// sync errors are printed unchanged; other errors are prefixed with reason.
func printFailure(p *report.Printer, reason string, err error) error {
	if errors.IsUserFacing(err) {
		p.Error(err.Error())
	} else {
		p.Errorf("%s: %v", reason, err)
	}
	return failed(reason)
}
