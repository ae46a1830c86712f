package recon

import (
	"fmt"

	"github.com/joaomendes-ine/etl-workflow/pkg/recon/grid"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/parser"
)

// ErrFileNotFound indicates an input file does not exist.
var ErrFileNotFound = grid.ErrFileNotFound

// ErrInvalidFormat indicates an input file is not a readable spreadsheet.
var ErrInvalidFormat = grid.ErrInvalidFormat

// ErrSheetNotFound indicates a requested sheet is absent from a workbook.
var ErrSheetNotFound = grid.ErrSheetNotFound

// ErrNoDataDetected indicates no data region could be found in a sheet.
var ErrNoDataDetected = parser.ErrNoDataDetected

// InputError represents a failure to read one input for one sheet.
type InputError struct {
	Path  string
	Sheet string
	Err   error
}

func (e *InputError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("input %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("input %s, sheet %q: %v", e.Path, e.Sheet, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// NewInputError creates a new InputError.
func NewInputError(path, sheet string, err error) *InputError {
	return &InputError{
		Path:  path,
		Sheet: sheet,
		Err:   err,
	}
}
