package models

import "sort"

// SheetData is an in-memory worksheet snapshot holding only stored rows.
type SheetData struct {
	// Name is the sheet name.
	Name string
	// Rows holds stored rows in ascending Num order.
	Rows []*RowData
}

// SheetName returns Name.
func (s *SheetData) SheetName() string {
	return s.Name
}

// FirstRowNum returns 0 for a sheet without rows.
func (s *SheetData) FirstRowNum() int {
	if len(s.Rows) == 0 {
		return 0
	}
	return s.Rows[0].Num
}

// LastRowNum returns 0 for a sheet without rows.
func (s *SheetData) LastRowNum() int {
	if len(s.Rows) == 0 {
		return 0
	}
	return s.Rows[len(s.Rows)-1].Num
}

// PhysicalRowCount returns the number of stored rows.
func (s *SheetData) PhysicalRowCount() int {
	return len(s.Rows)
}

// RowAt finds the stored row numbered i.
func (s *SheetData) RowAt(i int) (Row, bool) {
	idx := sort.Search(len(s.Rows), func(k int) bool { return s.Rows[k].Num >= i })
	if idx < len(s.Rows) && s.Rows[idx].Num == i {
		return s.Rows[idx], true
	}
	return nil, false
}

// RowData is a stored row.
type RowData struct {
	// Num is the zero-based row number.
	Num int
	// Cells holds stored cells in ascending Column order.
	Cells []*CellData
}

// RowNum returns Num.
func (r *RowData) RowNum() int {
	return r.Num
}

// CellCount returns the last stored column plus one, or 0 for an empty row.
func (r *RowData) CellCount() int {
	if len(r.Cells) == 0 {
		return 0
	}
	return r.Cells[len(r.Cells)-1].Column + 1
}

// CellAt finds the stored cell in column i.
func (r *RowData) CellAt(i int) (Cell, bool) {
	idx := sort.Search(len(r.Cells), func(k int) bool { return r.Cells[k].Column >= i })
	if idx < len(r.Cells) && r.Cells[idx].Column == i {
		return r.Cells[idx], true
	}
	return nil, false
}
