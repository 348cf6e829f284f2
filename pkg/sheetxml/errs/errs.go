// Package errs holds the sentinel errors shared by the sheetxml packages.
// They are re-exported from package sheetxml; callers should match them with
// errors.Is against either name.
package errs

import "errors"

// ErrInvalidArgument indicates a malformed input value, such as a column name
// with non-letter characters or a NaN passed to number formatting.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrUnsupportedCellKind indicates a cell whose kind matched no classification rule.
var ErrUnsupportedCellKind = errors.New("unsupported cell kind")

// ErrMissingRow indicates a structurally absent row inside a sheet's row range.
var ErrMissingRow = errors.New("missing row")

// ErrMissingHeader indicates the header row, or one of its cells, is absent.
var ErrMissingHeader = errors.New("missing header")

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is neither an xlsx nor an xls workbook.
var ErrInvalidFormat = errors.New("invalid spreadsheet format")
