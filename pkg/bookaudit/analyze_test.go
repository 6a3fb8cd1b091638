package bookaudit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/bookaudit-go/pkg/bookaudit/automation"
	"github.com/ukaji3/bookaudit-go/pkg/bookaudit/models"
	"github.com/ukaji3/bookaudit-go/pkg/bookaudit/report"
)

// fakeComponent is an in-memory VBA component.
type fakeComponent struct {
	name     string
	typeCode int
	source   string
	lines    int
}

func (c *fakeComponent) Name() (string, error)      { return c.name, nil }
func (c *fakeComponent) Type() (int, error)         { return c.typeCode, nil }
func (c *fakeComponent) CountOfLines() (int, error) { return c.lines, nil }

func (c *fakeComponent) Lines(_, _ int) (string, error) {
	return c.source, nil
}

// fakeSession records the resource-release discipline of the extraction.
type fakeSession struct {
	components    []automation.Component
	componentsErr error
	openErr       error

	closed         bool
	workbookClosed bool
}

func (s *fakeSession) OpenWorkbook(path string) (automation.Workbook, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	return &fakeWorkbook{session: s}, nil
}

func (s *fakeSession) Close() { s.closed = true }

type fakeWorkbook struct {
	session *fakeSession
}

func (w *fakeWorkbook) Components() ([]automation.Component, error) {
	if w.session.componentsErr != nil {
		return nil, w.session.componentsErr
	}
	return w.session.components, nil
}

func (w *fakeWorkbook) Close() { w.session.workbookClosed = true }

func sessionFactory(s *fakeSession) automation.Factory {
	return func() (automation.Session, error) { return s, nil }
}

// testWorkbook writes a workbook with Sheet1 holding data in A1:B2 and an
// empty Sheet2.
func testWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "a")
	f.SetCellValue("Sheet1", "B2", "b")
	_, err := f.NewSheet("Sheet2")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestAnalyzeFileNotFound(t *testing.T) {
	_, err := Analyze(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestAnalyzeWorksheets(t *testing.T) {
	session := &fakeSession{}
	opts := Options{SessionFactory: sessionFactory(session)}

	result, err := Analyze(testWorkbook(t), opts)
	require.NoError(t, err)

	assert.Equal(t, "book.xlsx", result.Filename)
	assert.True(t, filepath.IsAbs(result.FullPath))
	assert.NotEmpty(t, result.AnalysisDate)

	require.Len(t, result.Worksheets, 2)
	assert.Equal(t, "Sheet1", result.Worksheets[0].Name)
	assert.True(t, result.Worksheets[0].HasContent)
	assert.Equal(t, "Sheet2", result.Worksheets[1].Name)
	assert.False(t, result.Worksheets[1].HasContent)

	assert.Empty(t, result.VBAError)
	assert.Empty(t, result.Modules)
}

func TestAnalyzeModules(t *testing.T) {
	session := &fakeSession{
		components: []automation.Component{
			&fakeComponent{
				name:     "Module1",
				typeCode: int(models.TypeStdModule),
				source:   "Sub Main()\r\nEnd Sub",
				lines:    2,
			},
			&fakeComponent{
				name:     "EmptyClass",
				typeCode: int(models.TypeClassModule),
				lines:    0,
			},
		},
	}
	opts := Options{SessionFactory: sessionFactory(session)}

	result, err := Analyze(testWorkbook(t), opts)
	require.NoError(t, err)

	require.Len(t, result.Modules, 2)
	assert.Equal(t, models.VBASourceAutomation, result.VBASource)
	assert.Empty(t, result.VBAError)

	// The code mapping's key set matches the module name set.
	require.Len(t, result.ModuleCode, 2)
	assert.Equal(t, "Sub Main()\r\nEnd Sub", result.ModuleCode["Module1"])
	assert.Equal(t, models.EmptyModulePlaceholder, result.ModuleCode["EmptyClass"])

	assert.True(t, session.workbookClosed, "workbook must be closed without saving")
	assert.True(t, session.closed, "session must be released")
}

func TestAnalyzeTrustPolicyDenied(t *testing.T) {
	session := &fakeSession{
		componentsErr: errors.New(
			"Programmatic access to Visual Basic Project is not trusted"),
	}
	opts := Options{SessionFactory: sessionFactory(session)}

	result, err := Analyze(testWorkbook(t), opts)
	require.NoError(t, err)

	assert.Equal(t, TrustPolicyMessage, result.VBAError)
	assert.Empty(t, result.Modules)
	assert.Empty(t, result.ModuleCode)
	// Worksheet data gathered before the failure stays valid.
	assert.Len(t, result.Worksheets, 2)

	assert.True(t, session.workbookClosed)
	assert.True(t, session.closed)
}

func TestAnalyzeOpenFailureReleasesSession(t *testing.T) {
	session := &fakeSession{openErr: errors.New("host raised a modal prompt")}
	opts := Options{SessionFactory: sessionFactory(session)}

	result, err := Analyze(testWorkbook(t), opts)
	require.NoError(t, err)

	assert.Contains(t, result.VBAError, "host raised a modal prompt")
	assert.True(t, session.closed, "session must be released on open failure")
}

func TestAnalyzeAutomationUnavailableNoMacros(t *testing.T) {
	// With no session available the embedded project is consulted; a
	// workbook without macros is a normal zero-module outcome.
	opts := Options{
		SessionFactory: func() (automation.Session, error) {
			return nil, automation.ErrUnavailable
		},
	}

	result, err := Analyze(testWorkbook(t), opts)
	require.NoError(t, err)

	assert.Empty(t, result.VBAError)
	assert.Empty(t, result.Modules)
	assert.Empty(t, result.VBASource)
}

func TestAnalyzeAutomationUnavailableNoFallback(t *testing.T) {
	fallback := false
	opts := Options{
		SessionFactory: func() (automation.Session, error) {
			return nil, automation.ErrUnavailable
		},
		AllowProjectFallback: &fallback,
	}

	result, err := Analyze(testWorkbook(t), opts)
	require.NoError(t, err)

	assert.NotEmpty(t, result.VBAError)
	assert.Empty(t, result.Modules)
}

func TestAnalyzeSkipVBA(t *testing.T) {
	include := false
	factoryCalled := false
	opts := Options{
		IncludeVBA: &include,
		SessionFactory: func() (automation.Session, error) {
			factoryCalled = true
			return nil, automation.ErrUnavailable
		},
	}

	result, err := Analyze(testWorkbook(t), opts)
	require.NoError(t, err)

	assert.False(t, factoryCalled)
	assert.Empty(t, result.Modules)
	assert.Empty(t, result.VBAError)
}

func TestAnalyzeEndToEnd(t *testing.T) {
	opts := Options{SessionFactory: sessionFactory(&fakeSession{})}
	result, err := Analyze(testWorkbook(t), opts)
	require.NoError(t, err)

	path, err := report.Save(result, t.TempDir(), report.FormatText)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "Total Worksheets: 2")
	assert.Contains(t, out, "Sheet Name: Sheet1\nHas Content: True")
	assert.Contains(t, out, "Sheet Name: Sheet2\nHas Content: False")
	assert.Contains(t, out, "Total Modules: 0")
}

func TestClassifyVBAError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{
			"trust policy",
			errors.New("exception: Programmatic access to Visual Basic Project is not trusted"),
			TrustPolicyMessage,
		},
		{
			"other error",
			errors.New("workbook is corrupt"),
			"workbook is corrupt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyVBAError(tt.err))
		})
	}
}
