// Package models defines data structures for workbook analysis.
package models

// VBA source markers recording which extraction path produced the macro data.
const (
	// VBASourceAutomation indicates the live office-automation session.
	VBASourceAutomation = "automation"
	// VBASourceProject indicates the offline vbaProject.bin parser.
	VBASourceProject = "project"
)

// AnalysisResult represents the full analysis of a single workbook.
// It is populated once per run and is not mutated after report generation.
type AnalysisResult struct {
	// Filename is the workbook file name (no path).
	Filename string `json:"filename"`
	// FullPath is the absolute path to the workbook.
	FullPath string `json:"full_path"`
	// AnalysisDate is the analysis timestamp ("2006-01-02 15:04:05").
	AnalysisDate string `json:"analysis_date"`
	// Worksheets lists per-sheet metadata in workbook order.
	Worksheets []WorksheetInfo `json:"worksheets"`
	// Modules lists VBA components in enumeration order.
	// Empty when VBAError is set.
	Modules []ModuleInfo `json:"modules"`
	// ModuleCode maps module name to its full source text, or to
	// EmptyModulePlaceholder for modules without code. Its key set equals
	// the Modules name set whenever extraction succeeds.
	ModuleCode map[string]string `json:"module_code"`
	// VBAError holds a human-readable message when macro extraction failed.
	// Worksheet data remains valid in that case.
	VBAError string `json:"vba_error,omitempty"`
	// VBASource records which extraction path produced Modules and
	// ModuleCode (VBASourceAutomation or VBASourceProject). Empty when
	// extraction failed or was skipped.
	VBASource string `json:"vba_source,omitempty"`
}
