// Package parser provides workbook structure and VBA project parsing.
package parser

import (
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/bookaudit-go/pkg/bookaudit/models"
)

// ExtractWorksheets extracts per-sheet metadata from a workbook.
// Sheets are returned in workbook order.
func ExtractWorksheets(f *excelize.File) ([]models.WorksheetInfo, error) {
	printAreas, err := ExtractPrintAreas(f)
	if err != nil {
		return nil, err
	}

	sheetList := f.GetSheetList()
	sheets := make([]models.WorksheetInfo, 0, len(sheetList))
	for _, sheetName := range sheetList {
		dim, err := f.GetSheetDimension(sheetName)
		if err != nil {
			return nil, err
		}
		if !hasContent(dim) {
			// Some producers omit or never update the stored dimension.
			// Recalculate it from the cell data before trusting it.
			scanned, err := scanUsedRange(f, sheetName)
			if err != nil {
				return nil, err
			}
			if scanned != "" {
				dim = scanned
			}
		}

		printArea, ok := printAreas[sheetName]
		if !ok {
			printArea = models.PrintAreaNotSet
		}

		sheets = append(sheets, models.WorksheetInfo{
			Name:       sheetName,
			HasContent: hasContent(dim),
			PrintArea:  printArea,
		})
	}

	return sheets, nil
}

// hasContent reports whether a used-range reference covers more than the
// minimal single-cell extent.
func hasContent(dim string) bool {
	return dim != "" && dim != "A1" && dim != "A1:A1"
}

// scanUsedRange computes the used-range reference from cell data.
// Returns "" for sheets without any non-empty cell.
func scanUsedRange(f *excelize.File, sheetName string) (string, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return "", err
	}

	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return "", nil
	}

	startCell, err := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	if err != nil {
		return "", err
	}
	endCell, err := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
	if err != nil {
		return "", err
	}
	return startCell + ":" + endCell, nil
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}
