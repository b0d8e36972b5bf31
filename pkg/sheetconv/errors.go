package sheetconv

import (
	"errors"
	"fmt"
)

// ErrNoFile indicates that no document was provided to import.
var ErrNoFile = errors.New("no file provided")

// ErrDecode indicates the input bytes are not a valid xlsx document.
var ErrDecode = errors.New("invalid xlsx format")

// ErrNoSheet indicates a document without worksheets.
var ErrNoSheet = errors.New("workbook has no sheets")

// ErrEmptySheet indicates a sheet whose header cannot be derived: it has no
// rows, or its first record has no fields.
var ErrEmptySheet = errors.New("sheet has no header fields")

// ErrEmptyJob indicates an export job that would produce no sheets.
var ErrEmptyJob = errors.New("export job has no sheets")

// ErrDuplicateSheet indicates two sheets of a job with the same name.
var ErrDuplicateSheet = errors.New("duplicate sheet name")

// ErrInvalidSheetName indicates a sheet name the workbook format rejects.
var ErrInvalidSheetName = errors.New("invalid sheet name")

// SheetError represents a failure tied to one sheet.
type SheetError struct {
	Sheet string
	Op    string // "create", "header", "rows", "style", "width", "read"
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q (%s): %v", e.Sheet, e.Op, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(sheet, op string, err error) *SheetError {
	return &SheetError{
		Sheet: sheet,
		Op:    op,
		Err:   err,
	}
}
