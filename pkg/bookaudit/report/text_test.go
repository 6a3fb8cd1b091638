package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/bookaudit-go/pkg/bookaudit/models"
)

func testResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		Filename:     "book.xlsx",
		FullPath:     "/data/book.xlsx",
		AnalysisDate: "2026-08-24 10:30:00",
		Worksheets: []models.WorksheetInfo{
			{Name: "Sheet1", HasContent: true, PrintArea: "Sheet1!$A$1:$B$2"},
			{Name: "Sheet2", HasContent: false, PrintArea: models.PrintAreaNotSet},
		},
		Modules: []models.ModuleInfo{
			{Name: "Module1", Type: int(models.TypeStdModule), CodeLines: 2},
			{Name: "EmptyClass", Type: int(models.TypeClassModule), CodeLines: 0},
		},
		ModuleCode: map[string]string{
			"Module1":    "Sub Main()\r\nEnd Sub",
			"EmptyClass": models.EmptyModulePlaceholder,
		},
	}
}

func TestTextWriter(t *testing.T) {
	var b strings.Builder
	n, err := NewTextWriter(&b).Write(testResult())
	require.NoError(t, err)

	out := b.String()
	assert.Equal(t, len(out), n)

	assert.True(t, strings.HasPrefix(out, strings.Repeat("=", 80)+"\n"))
	assert.Contains(t, out, "Excel File Analysis Report\n")

	assert.Contains(t, out, "FILE INFORMATION\n"+strings.Repeat("-", 50)+"\n")
	assert.Contains(t, out, "Filename: book.xlsx\n")
	assert.Contains(t, out, "Full Path: /data/book.xlsx\n")
	assert.Contains(t, out, "Analysis Date: 2026-08-24 10:30:00\n")

	assert.Contains(t, out, "Total Worksheets: 2\n")
	assert.Contains(t, out, "Sheet Name: Sheet1\nHas Content: True\nPrint Area: Sheet1!$A$1:$B$2\n")
	assert.Contains(t, out, "Sheet Name: Sheet2\nHas Content: False\nPrint Area: Not Set\n")

	assert.Contains(t, out, "Total Modules: 2\n")
	assert.Contains(t, out, "Module Name: Module1\nType: 1\nCode Lines: 2\n")
	assert.Contains(t, out, "Module Name: EmptyClass\nType: 2\nCode Lines: 0\n")

	assert.Contains(t, out, "VBA MODULE CODE\n")
	assert.Contains(t, out, "Module1\n-------\nSub Main()\r\nEnd Sub\n")
	assert.Contains(t, out, "EmptyClass\n----------\n(Empty Module)\n")

	// Source listings follow module enumeration order.
	assert.Less(t,
		strings.Index(out, "Module1\n-------"),
		strings.Index(out, "EmptyClass\n----------"))
}

func TestTextWriterVBAError(t *testing.T) {
	result := testResult()
	result.Modules = nil
	result.ModuleCode = map[string]string{}
	result.VBAError = "VBA access not enabled in Excel Trust Center"

	var b strings.Builder
	_, err := NewTextWriter(&b).Write(result)
	require.NoError(t, err)

	out := b.String()
	assert.Contains(t, out, "VBA MODULE INFORMATION\n")
	assert.Contains(t, out, "Error: VBA access not enabled in Excel Trust Center\n")
	assert.NotContains(t, out, "Total Modules:")
	assert.NotContains(t, out, "VBA MODULE CODE")

	// Worksheet section is still fully populated.
	assert.Contains(t, out, "Total Worksheets: 2\n")
	assert.Contains(t, out, "Sheet Name: Sheet1\n")
}

func TestTextWriterNoModules(t *testing.T) {
	result := testResult()
	result.Modules = nil
	result.ModuleCode = map[string]string{}

	var b strings.Builder
	_, err := NewTextWriter(&b).Write(result)
	require.NoError(t, err)

	assert.Contains(t, b.String(), "Total Modules: 0\n")
}
