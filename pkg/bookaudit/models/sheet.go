package models

// PrintAreaNotSet is the sentinel reported for sheets without a print area.
const PrintAreaNotSet = "Not Set"

// WorksheetInfo represents structural metadata for a single worksheet.
type WorksheetInfo struct {
	// Name is the sheet name, unique within a workbook.
	Name string `json:"name"`
	// HasContent is true when the sheet's used range differs from the
	// minimal single-cell extent.
	HasContent bool `json:"has_content"`
	// PrintArea is the configured print area reference, verbatim, or
	// PrintAreaNotSet when none is configured.
	PrintArea string `json:"print_area"`
}
