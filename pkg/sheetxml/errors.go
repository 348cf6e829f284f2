package sheetxml

import (
	"fmt"

	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/errs"
)

var (
	// ErrInvalidArgument indicates a malformed value such as a bad column
	// name, a NaN number or an uncompilable format pattern.
	ErrInvalidArgument = errs.ErrInvalidArgument
	// ErrUnsupportedCellKind indicates a cell no classification rule accepts.
	ErrUnsupportedCellKind = errs.ErrUnsupportedCellKind
	// ErrMissingRow indicates an absent row while null rows are not ignored.
	ErrMissingRow = errs.ErrMissingRow
	// ErrMissingHeader indicates an absent header row or header cell.
	ErrMissingHeader = errs.ErrMissingHeader
	// ErrFileNotFound indicates the input file does not exist.
	ErrFileNotFound = errs.ErrFileNotFound
	// ErrInvalidFormat indicates the input is not a readable workbook.
	ErrInvalidFormat = errs.ErrInvalidFormat
)

// ConversionError records where in the workbook a conversion failed.
type ConversionError struct {
	Sheet string
	// Row is 1-based; 0 when the failure is not tied to a row.
	Row int
	// Column is a column name such as "B"; empty when not tied to a cell.
	Column string
	Err    error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	switch {
	case e.Column != "":
		return fmt.Sprintf("conversion error in sheet %q at %s%d: %v", e.Sheet, e.Column, e.Row, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("conversion error in sheet %q row %d: %v", e.Sheet, e.Row, e.Err)
	}
	return fmt.Sprintf("conversion error in sheet %q: %v", e.Sheet, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// NewConversionError creates a new ConversionError.
func NewConversionError(sheet string, row int, column string, err error) *ConversionError {
	return &ConversionError{
		Sheet:  sheet,
		Row:    row,
		Column: column,
		Err:    err,
	}
}

func missingRow(row int) error {
	return fmt.Errorf("%w: unable to process row %d; it's null", ErrMissingRow, row)
}
