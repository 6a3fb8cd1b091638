package ui

import (
	"errors"

	"github.com/ncruces/zenity"
)

// Dialogs implements UI with native modal dialogs.
type Dialogs struct{}

// PickWorkbook presents the open-file dialog with spreadsheet filters.
func (Dialogs) PickWorkbook() (string, error) {
	path, err := zenity.SelectFile(
		zenity.Title("Select Excel File"),
		zenity.FileFilters{
			{Name: "Excel files", Patterns: []string{"*.xlsx", "*.xlsm", "*.xls"}, CaseFold: true},
			{Name: "All files", Patterns: []string{"*"}},
		},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	return path, err
}

// Notify presents a blocking info or error dialog.
func (Dialogs) Notify(kind Kind, title, message string) error {
	if kind == KindError {
		return zenity.Error(message, zenity.Title(title))
	}
	return zenity.Info(message, zenity.Title(title))
}
