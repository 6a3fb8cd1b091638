package ui

import (
	"errors"
	"fmt"
	"io"
)

// Console implements UI for headless runs: notifications are printed and
// no picker is available.
type Console struct {
	out io.Writer
}

// NewConsole creates a Console writing notifications to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// PickWorkbook always fails: headless runs must supply the path directly.
func (c *Console) PickWorkbook() (string, error) {
	return "", errors.New("no file dialog available: pass the workbook path as an argument")
}

// Notify prints the notification.
func (c *Console) Notify(kind Kind, title, message string) error {
	if kind == KindError {
		_, err := fmt.Fprintf(c.out, "%s: %s\n", title, message)
		return err
	}
	_, err := fmt.Fprintf(c.out, "%s\n", message)
	return err
}
