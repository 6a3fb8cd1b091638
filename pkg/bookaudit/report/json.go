package report

import (
	"encoding/json"
	"io"

	"github.com/ukaji3/bookaudit-go/pkg/bookaudit/models"
)

// JSONWriter outputs the raw analysis result as indented JSON. Useful for
// piping results into other tools.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the analysis result as JSON.
func (w *JSONWriter) Write(result *models.AnalysisResult) (int, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	return w.output.Write(data)
}
