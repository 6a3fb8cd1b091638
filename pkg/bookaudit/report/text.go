package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/bookaudit-go/pkg/bookaudit/models"
)

// TextWriter outputs the fixed-layout plain-text report: a banner header
// followed by file, worksheet, module, and source sections separated by
// dashed rules. The layout is deterministic for a given result.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the full report in plain text.
func (w *TextWriter) Write(result *models.AnalysisResult) (int, error) {
	banner := strings.Repeat("=", 80)
	rule := strings.Repeat("-", 50)

	var b strings.Builder
	b.WriteString(banner + "\n")
	b.WriteString("Excel File Analysis Report\n")
	b.WriteString(banner + "\n\n")

	b.WriteString("FILE INFORMATION\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Filename: %s\n", result.Filename)
	fmt.Fprintf(&b, "Full Path: %s\n", result.FullPath)
	fmt.Fprintf(&b, "Analysis Date: %s\n\n", result.AnalysisDate)

	b.WriteString("WORKSHEET INFORMATION\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Total Worksheets: %d\n", len(result.Worksheets))
	for _, sheet := range result.Worksheets {
		fmt.Fprintf(&b, "\nSheet Name: %s\n", sheet.Name)
		fmt.Fprintf(&b, "Has Content: %s\n", formatBool(sheet.HasContent))
		fmt.Fprintf(&b, "Print Area: %s\n", sheet.PrintArea)
	}
	b.WriteString("\n")

	b.WriteString("VBA MODULE INFORMATION\n")
	b.WriteString(rule + "\n")
	if result.VBAError != "" {
		fmt.Fprintf(&b, "Error: %s\n\n", result.VBAError)
	} else {
		fmt.Fprintf(&b, "Total Modules: %d\n", len(result.Modules))
		for _, module := range result.Modules {
			fmt.Fprintf(&b, "\nModule Name: %s\n", module.Name)
			fmt.Fprintf(&b, "Type: %d\n", module.Type)
			fmt.Fprintf(&b, "Code Lines: %d\n", module.CodeLines)
		}
		b.WriteString("\n")

		b.WriteString("VBA MODULE CODE\n")
		b.WriteString(rule + "\n")
		for _, module := range result.Modules {
			fmt.Fprintf(&b, "\n%s\n", module.Name)
			b.WriteString(strings.Repeat("-", len(module.Name)) + "\n")
			b.WriteString(result.ModuleCode[module.Name] + "\n")
			b.WriteString("\n")
		}
	}

	return io.WriteString(w.output, b.String())
}

// formatBool renders a flag as True/False to match the report layout.
func formatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
