package bookaudit

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/bookaudit-go/pkg/bookaudit/automation"
	"github.com/ukaji3/bookaudit-go/pkg/bookaudit/models"
	"github.com/ukaji3/bookaudit-go/pkg/bookaudit/parser"
)

// Analyze extracts structural metadata and macro source from a workbook.
// Worksheet analysis never requires the host application. Macro-extraction
// failures are recorded on the result and do not abort the run; the
// worksheet data already gathered remains valid.
func Analyze(path string, opts Options) (*models.AnalysisResult, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	result := &models.AnalysisResult{
		Filename:     filepath.Base(path),
		FullPath:     absPath,
		AnalysisDate: time.Now().Format("2006-01-02 15:04:05"),
		ModuleCode:   map[string]string{},
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	result.Worksheets, err = parser.ExtractWorksheets(f)
	if err != nil {
		return nil, err
	}

	if opts.ShouldIncludeVBA() {
		extractVBA(absPath, opts, result)
	}

	return result, nil
}

// extractVBA populates the macro fields of the result. On failure the
// modules list and code mapping stay empty and VBAError records the cause.
func extractVBA(path string, opts Options, result *models.AnalysisResult) {
	modules, code, source, err := extractModules(path, opts)
	if errors.Is(err, parser.ErrNoVBAProject) {
		// A workbook without macros is a normal zero-module outcome.
		slog.Debug("workbook has no VBA project", "path", path)
		return
	}
	if err != nil {
		slog.Debug("macro extraction failed", "path", path, "error", err)
		result.VBAError = ClassifyVBAError(err)
		return
	}
	result.Modules = modules
	result.ModuleCode = code
	result.VBASource = source
}

// extractModules pulls every VBA component through a live automation
// session, falling back to the embedded project storage when no session is
// available. The session and workbook handle are released on all exit
// paths; the workbook is closed without saving.
func extractModules(path string, opts Options) ([]models.ModuleInfo, map[string]string, string, error) {
	session, err := opts.sessionFactory()()
	if err != nil {
		if errors.Is(err, automation.ErrUnavailable) && opts.ShouldFallBackToProject() {
			slog.Debug("automation unavailable, reading embedded project", "path", path)
			modules, code, err := parser.ExtractVBAProject(path)
			if err != nil {
				return nil, nil, "", err
			}
			return modules, code, models.VBASourceProject, nil
		}
		return nil, nil, "", &VBAError{Stage: "session", Err: err}
	}
	defer session.Close()

	wb, err := session.OpenWorkbook(path)
	if err != nil {
		return nil, nil, "", &VBAError{Stage: "open", Err: err}
	}
	defer wb.Close()

	components, err := wb.Components()
	if err != nil {
		return nil, nil, "", &VBAError{Stage: "components", Err: err}
	}

	modules := make([]models.ModuleInfo, 0, len(components))
	code := make(map[string]string, len(components))
	for _, c := range components {
		name, err := c.Name()
		if err != nil {
			return nil, nil, "", &VBAError{Stage: "components", Err: err}
		}
		typeCode, err := c.Type()
		if err != nil {
			return nil, nil, "", &VBAError{Stage: "components", Err: err}
		}
		lines, err := c.CountOfLines()
		if err != nil {
			return nil, nil, "", &VBAError{Stage: "components", Err: err}
		}

		if lines > 0 {
			src, err := c.Lines(1, lines)
			if err != nil {
				return nil, nil, "", &VBAError{Stage: "components", Err: err}
			}
			code[name] = src
		} else {
			code[name] = models.EmptyModulePlaceholder
		}
		modules = append(modules, models.ModuleInfo{
			Name:      name,
			Type:      typeCode,
			CodeLines: lines,
		})
	}

	return modules, code, models.VBASourceAutomation, nil
}
