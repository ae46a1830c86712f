package grid

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Workbook is a read-only handle on a spreadsheet file.
// Handles are not safe for concurrent use; open one per goroutine.
type Workbook interface {
	// Path returns the file the workbook was opened from.
	Path() string
	// SheetNames lists worksheet names in workbook order.
	SheetNames() []string
	// Sheet loads a worksheet by name.
	Sheet(name string) (*Sheet, error)
	// Close releases the underlying file.
	Close() error
}

// Open opens an .xlsx/.xlsm or legacy .xls workbook, choosing the reader by
// file extension.
func Open(path string) (Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrFileNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "stat %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xls":
		wb, err := xls.Open(path, "utf-8")
		if err != nil || wb == nil {
			return nil, errors.Wrapf(ErrInvalidFormat, "%s: %v", path, err)
		}
		return &xlsWorkbook{path: path, wb: wb}, nil
	default:
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidFormat, "%s: %v", path, err)
		}
		return NewExcelizeWorkbook(f, path), nil
	}
}

// NewExcelizeWorkbook wraps an already opened excelize file.
func NewExcelizeWorkbook(f *excelize.File, path string) Workbook {
	return &excelizeWorkbook{path: path, f: f}
}

type excelizeWorkbook struct {
	path string
	f    *excelize.File
}

func (w *excelizeWorkbook) Path() string         { return w.path }
func (w *excelizeWorkbook) SheetNames() []string { return w.f.GetSheetList() }
func (w *excelizeWorkbook) Close() error         { return w.f.Close() }

func (w *excelizeWorkbook) Sheet(name string) (*Sheet, error) {
	return FromExcelize(w.f, name)
}

type xlsWorkbook struct {
	path string
	wb   *xls.WorkBook
}

func (w *xlsWorkbook) Path() string { return w.path }
func (w *xlsWorkbook) Close() error { return nil }

func (w *xlsWorkbook) SheetNames() []string {
	names := make([]string, 0, w.wb.NumSheets())
	for i := 0; i < w.wb.NumSheets(); i++ {
		if ws := w.wb.GetSheet(i); ws != nil {
			names = append(names, ws.Name)
		}
	}
	return names
}

func (w *xlsWorkbook) Sheet(name string) (*Sheet, error) {
	for i := 0; i < w.wb.NumSheets(); i++ {
		if ws := w.wb.GetSheet(i); ws != nil && ws.Name == name {
			return FromXLS(ws), nil
		}
	}
	return nil, errors.Wrapf(ErrSheetNotFound, "sheet %q", name)
}

// NewMemoryWorkbook wraps already loaded sheets, e.g. for callers that build
// grids programmatically.
func NewMemoryWorkbook(path string, sheets ...*Sheet) Workbook {
	return &memoryWorkbook{path: path, sheets: sheets}
}

type memoryWorkbook struct {
	path   string
	sheets []*Sheet
}

func (w *memoryWorkbook) Path() string { return w.path }
func (w *memoryWorkbook) Close() error { return nil }

func (w *memoryWorkbook) SheetNames() []string {
	names := make([]string, len(w.sheets))
	for i, s := range w.sheets {
		names[i] = s.Name
	}
	return names
}

func (w *memoryWorkbook) Sheet(name string) (*Sheet, error) {
	for _, s := range w.sheets {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, errors.Wrapf(ErrSheetNotFound, "sheet %q", name)
}
