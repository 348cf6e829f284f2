package models

// WorkbookData is an in-memory workbook snapshot.
type WorkbookData struct {
	// Sheets in storage order.
	Sheets []*SheetData
	// Is1904 is set for workbooks using the 1904 date system.
	Is1904 bool
}

// SheetCount returns the number of sheets.
func (w *WorkbookData) SheetCount() int {
	return len(w.Sheets)
}

// SheetAt returns the i-th sheet in storage order.
func (w *WorkbookData) SheetAt(i int) Sheet {
	return w.Sheets[i]
}

// Date1904 reports Is1904.
func (w *WorkbookData) Date1904() bool {
	return w.Is1904
}
