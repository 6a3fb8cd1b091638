// Package report renders analysis results as report documents.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ukaji3/bookaudit-go/pkg/bookaudit/models"
)

// Writer defines the interface for report output. Implementations render
// an analysis result in a specific document format.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(result *models.AnalysisResult) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// Format selects the report document format.
type Format string

const (
	// FormatText is the fixed-layout plain-text report (default).
	FormatText Format = "text"
	// FormatMarkdown is a markdown rendering of the same sections.
	FormatMarkdown Format = "markdown"
	// FormatJSON is the raw analysis result as indented JSON.
	FormatJSON Format = "json"
)

// Ext returns the report file extension for the format.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// NewWriter creates a Writer for the given format.
func NewWriter(format Format, output io.Writer) (Writer, error) {
	switch format {
	case FormatText, "":
		return NewTextWriter(output), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output), nil
	default:
		return nil, fmt.Errorf("unknown report format: %s", format)
	}
}

// OutputPath derives the report file path:
// <basename>_analysis_<YYYYMMDD_HHMMSS><ext> in outputDir, or in the
// analyzed file's directory when outputDir is empty.
func OutputPath(result *models.AnalysisResult, outputDir string, format Format, now time.Time) string {
	if outputDir == "" {
		outputDir = filepath.Dir(result.FullPath)
	}
	base := strings.TrimSuffix(result.Filename, filepath.Ext(result.Filename))
	name := fmt.Sprintf("%s_analysis_%s%s", base, now.Format("20060102_150405"), format.Ext())
	return filepath.Join(outputDir, name)
}

// Save renders the result in the given format and writes it as UTF-8 next
// to the analyzed file (or into outputDir). Returns the path written.
func Save(result *models.AnalysisResult, outputDir string, format Format) (string, error) {
	path := OutputPath(result, outputDir, format, time.Now())

	var buf bytes.Buffer
	w, err := NewWriter(format, &buf)
	if err != nil {
		return "", err
	}
	if _, err := w.Write(result); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
