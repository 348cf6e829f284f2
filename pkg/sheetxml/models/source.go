// Package models defines the spreadsheet handle consumed by the converter, an
// in-memory snapshot implementing it, and the output tree.
package models

// Workbook is a read-only view of a parsed spreadsheet.
type Workbook interface {
	SheetCount() int
	SheetAt(i int) Sheet
	// Date1904 reports whether date serials count from 1904-01-01.
	Date1904() bool
}

// Sheet is a read-only view of one worksheet. Row numbers are zero-based.
type Sheet interface {
	SheetName() string
	FirstRowNum() int
	LastRowNum() int
	// PhysicalRowCount is the number of rows actually stored.
	PhysicalRowCount() int
	// RowAt returns false when the row is structurally absent.
	RowAt(i int) (Row, bool)
}

// Row is a read-only view of one stored row.
type Row interface {
	RowNum() int
	// CellCount is the number of column positions the row spans: the index
	// of its last stored cell plus one.
	CellCount() int
	// CellAt returns false when no cell is stored at the position.
	CellAt(i int) (Cell, bool)
}

// Cell exposes the raw payload of a stored cell. Each accessor fails when
// the cell does not carry a payload of that kind.
type Cell interface {
	CellKind() CellKind
	NumericValue() (float64, error)
	StringValue() (string, error)
	BooleanValue() (bool, error)
	ErrorValue() (ErrorCode, error)
	// IsDateFormatted fails when the cell's formula could not be inspected.
	IsDateFormatted() (bool, error)
}
