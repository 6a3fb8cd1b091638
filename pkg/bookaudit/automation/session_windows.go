//go:build windows

package automation

import (
	"fmt"
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

type oleSession struct {
	application *ole.IDispatch
}

// newSessionPlatform launches a hidden Excel instance on a locked OS thread
// with an apartment-threaded COM runtime.
func newSessionPlatform() (Session, error) {
	runtime.LockOSThread()
	ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED)

	unknown, err := oleutil.CreateObject("Excel.Application")
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("%w: launch application: %v", ErrUnavailable, err)
	}
	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("%w: query application interface: %v", ErrUnavailable, err)
	}
	// The instance must never surface UI of its own.
	if _, err := oleutil.PutProperty(app, "DisplayAlerts", false); err != nil {
		app.Release()
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("%w: suppress alerts: %v", ErrUnavailable, err)
	}
	if _, err := oleutil.PutProperty(app, "Visible", false); err != nil {
		app.Release()
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("%w: hide application: %v", ErrUnavailable, err)
	}

	return &oleSession{application: app}, nil
}

func (s *oleSession) Close() {
	if s.application != nil {
		// Quit errors are ignored: the handle is released regardless.
		oleutil.CallMethod(s.application, "Quit")
		s.application.Release()
		s.application = nil
	}
	ole.CoUninitialize()
	runtime.UnlockOSThread()
}

func (s *oleSession) OpenWorkbook(path string) (Workbook, error) {
	workbooksProp, err := oleutil.GetProperty(s.application, "Workbooks")
	if err != nil {
		return nil, fmt.Errorf("get Workbooks: %w", err)
	}
	workbooks := workbooksProp.ToIDispatch()
	defer workbooks.Release()

	// Open(FileName, UpdateLinks, ReadOnly)
	wbResult, err := oleutil.CallMethod(workbooks, "Open", path, 0, true)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &oleWorkbook{workbook: wbResult.ToIDispatch()}, nil
}

type oleWorkbook struct {
	workbook   *ole.IDispatch
	components []*ole.IDispatch
}

func (w *oleWorkbook) Close() {
	for _, c := range w.components {
		c.Release()
	}
	w.components = nil
	if w.workbook != nil {
		oleutil.CallMethod(w.workbook, "Close", false)
		w.workbook.Release()
		w.workbook = nil
	}
}

func (w *oleWorkbook) Components() ([]Component, error) {
	projectProp, err := oleutil.GetProperty(w.workbook, "VBProject")
	if err != nil {
		return nil, fmt.Errorf("get VBProject: %w", err)
	}
	project := projectProp.ToIDispatch()
	defer project.Release()

	componentsProp, err := oleutil.GetProperty(project, "VBComponents")
	if err != nil {
		return nil, fmt.Errorf("get VBComponents: %w", err)
	}
	components := componentsProp.ToIDispatch()
	defer components.Release()

	countProp, err := oleutil.GetProperty(components, "Count")
	if err != nil {
		return nil, fmt.Errorf("get VBComponents.Count: %w", err)
	}
	count := int(countProp.Val)

	result := make([]Component, 0, count)
	for i := 1; i <= count; i++ {
		itemProp, err := oleutil.GetProperty(components, "Item", i)
		if err != nil {
			return nil, fmt.Errorf("get component %d: %w", i, err)
		}
		item := itemProp.ToIDispatch()
		w.components = append(w.components, item)
		result = append(result, &oleComponent{component: item})
	}
	return result, nil
}

type oleComponent struct {
	component *ole.IDispatch
}

func (c *oleComponent) Name() (string, error) {
	prop, err := oleutil.GetProperty(c.component, "Name")
	if err != nil {
		return "", fmt.Errorf("get Name: %w", err)
	}
	return prop.ToString(), nil
}

func (c *oleComponent) Type() (int, error) {
	prop, err := oleutil.GetProperty(c.component, "Type")
	if err != nil {
		return 0, fmt.Errorf("get Type: %w", err)
	}
	return int(prop.Val), nil
}

func (c *oleComponent) CountOfLines() (int, error) {
	cm, err := c.codeModule()
	if err != nil {
		return 0, err
	}
	defer cm.Release()

	prop, err := oleutil.GetProperty(cm, "CountOfLines")
	if err != nil {
		return 0, fmt.Errorf("get CountOfLines: %w", err)
	}
	return int(prop.Val), nil
}

func (c *oleComponent) Lines(start, count int) (string, error) {
	cm, err := c.codeModule()
	if err != nil {
		return "", err
	}
	defer cm.Release()

	prop, err := oleutil.GetProperty(cm, "Lines", start, count)
	if err != nil {
		return "", fmt.Errorf("get Lines(%d, %d): %w", start, count, err)
	}
	return prop.ToString(), nil
}

func (c *oleComponent) codeModule() (*ole.IDispatch, error) {
	prop, err := oleutil.GetProperty(c.component, "CodeModule")
	if err != nil {
		return nil, fmt.Errorf("get CodeModule: %w", err)
	}
	return prop.ToIDispatch(), nil
}
