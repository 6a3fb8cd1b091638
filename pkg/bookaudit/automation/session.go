// Package automation drives a hidden host spreadsheet application to read
// VBA project components through its extensibility model.
package automation

import "errors"

// ErrUnavailable indicates no automation session can be created on this
// platform or host installation.
var ErrUnavailable = errors.New("office automation is not available")

// Factory creates an automation session. Injectable so analysis can run
// against a fake session without a display or host application.
type Factory func() (Session, error)

// Session is a scoped handle on a hidden, alert-suppressed application
// instance. It must be closed on every exit path; Close quits the hosted
// application and releases the automation runtime.
type Session interface {
	// OpenWorkbook opens a workbook read-only.
	OpenWorkbook(path string) (Workbook, error)
	// Close quits the application instance and releases the runtime.
	Close()
}

// Workbook is an open workbook handle inside a session.
type Workbook interface {
	// Components enumerates the VBA project components in host order.
	Components() ([]Component, error)
	// Close closes the workbook without saving.
	Close()
}

// Component is a single VBA project component.
type Component interface {
	Name() (string, error)
	Type() (int, error)
	CountOfLines() (int, error)
	// Lines returns count lines of source text starting at the 1-based
	// start line, verbatim including original line breaks.
	Lines(start, count int) (string, error)
}

// NewSession starts a hidden, alert-suppressed host application session.
// Returns ErrUnavailable on platforms without an automation runtime.
func NewSession() (Session, error) {
	return newSessionPlatform()
}
