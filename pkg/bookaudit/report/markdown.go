package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/ukaji3/bookaudit-go/pkg/bookaudit/models"
)

// MarkdownWriter outputs the report in Markdown, mirroring the sections of
// the plain-text layout. This format is meant for documentation and
// sharing rather than the default dialog-driven flow.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(result *models.AnalysisResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Excel File Analysis Report")
	md.PlainText("")

	md.H2("File Information")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Filename", "`" + result.Filename + "`"},
			{"Full Path", "`" + result.FullPath + "`"},
			{"Analysis Date", result.AnalysisDate},
		},
	})
	md.PlainText("")

	md.H2("Worksheet Information")
	md.PlainTextf("Total Worksheets: %d", len(result.Worksheets))
	md.PlainText("")
	sheetRows := make([][]string, 0, len(result.Worksheets))
	for _, sheet := range result.Worksheets {
		sheetRows = append(sheetRows, []string{
			sheet.Name,
			formatBool(sheet.HasContent),
			sheet.PrintArea,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Sheet Name", "Has Content", "Print Area"},
		Rows:   sheetRows,
	})
	md.PlainText("")

	md.H2("VBA Module Information")
	if result.VBAError != "" {
		md.Warning(result.VBAError)
	} else {
		md.PlainTextf("Total Modules: %d", len(result.Modules))
		md.PlainText("")
		moduleRows := make([][]string, 0, len(result.Modules))
		for _, module := range result.Modules {
			moduleRows = append(moduleRows, []string{
				module.Name,
				models.ComponentType(module.Type).String(),
				strconv.Itoa(module.CodeLines),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Module Name", "Type", "Code Lines"},
			Rows:   moduleRows,
		})
		md.PlainText("")

		md.H2("VBA Module Code")
		for _, module := range result.Modules {
			md.H3(module.Name)
			md.CodeBlocks(markdown.SyntaxHighlight("vb"), result.ModuleCode[module.Name])
			md.PlainText("")
		}
	}

	return len(md.String()), md.Build()
}
