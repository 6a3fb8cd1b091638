// Package ui provides the tool's user interaction surface behind a minimal
// capability interface, so analysis and reporting stay testable without a
// display.
package ui

// Kind classifies a notification.
type Kind int

const (
	// KindInfo is a completion notice.
	KindInfo Kind = iota
	// KindError is a failure notice.
	KindError
)

// UI is the interaction surface: one file picker, one notifier.
type UI interface {
	// PickWorkbook presents a blocking open-file dialog restricted to
	// spreadsheet extensions. Returns "" when the user cancels;
	// cancellation is not an error.
	PickWorkbook() (string, error)
	// Notify presents a blocking notice.
	Notify(kind Kind, title, message string) error
}
