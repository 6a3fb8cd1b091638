package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExtractPrintAreas extracts configured print areas from a workbook.
// Returns a map of sheet name to the print area reference, verbatim as
// stored in the workbook (e.g. "'My Sheet'!$A$1:$D$10").
func ExtractPrintAreas(f *excelize.File) (map[string]string, error) {
	result := make(map[string]string)

	for _, dn := range f.GetDefinedName() {
		// Print areas are stored as the built-in _xlnm.Print_Area
		// defined name, scoped to a sheet.
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		sheetName := printAreaSheet(dn.Scope, dn.RefersTo)
		if sheetName == "" {
			continue
		}
		result[sheetName] = dn.RefersTo
	}

	return result, nil
}

// printAreaSheet resolves the sheet owning a print area defined name.
// The scope carries the sheet for sheet-local names; otherwise the sheet
// is recovered from the reference itself.
// Reference format: 'SheetName'!$A$1:$D$10 or SheetName!$A$1:$D$10,
// possibly comma-separated for multiple areas.
func printAreaSheet(scope, refersTo string) string {
	if scope != "" && scope != "Workbook" {
		return scope
	}

	for _, part := range strings.Split(refersTo, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if idx := strings.LastIndex(part, "!"); idx >= 0 {
			return strings.Trim(part[:idx], "'")
		}
	}
	return ""
}
