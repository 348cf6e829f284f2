package sheetxml

import "github.com/ukaji3/sheetxml-go/pkg/sheetxml/models"

func strCell(col int, s string) *models.CellData {
	return &models.CellData{Column: col, Kind: models.CellString, Text: s}
}

func numCell(col int, v float64) *models.CellData {
	return &models.CellData{Column: col, Kind: models.CellNumeric, Number: v}
}

func dateCell(col int, serial float64) *models.CellData {
	return &models.CellData{Column: col, Kind: models.CellNumeric, Number: serial, DateFormatted: true}
}

func boolCell(col int, b bool) *models.CellData {
	return &models.CellData{Column: col, Kind: models.CellBoolean, Bool: b}
}

func blankCell(col int) *models.CellData {
	return &models.CellData{Column: col, Kind: models.CellBlank}
}

func newRow(num int, cells ...*models.CellData) *models.RowData {
	return &models.RowData{Num: num, Cells: cells}
}

func newSheet(name string, rows ...*models.RowData) *models.SheetData {
	return &models.SheetData{Name: name, Rows: rows}
}

func newWorkbook(sheets ...*models.SheetData) *models.WorkbookData {
	return &models.WorkbookData{Sheets: sheets}
}

func childNames(n *models.Node) []string {
	var names []string
	for _, c := range n.Children {
		names = append(names, c.Name)
	}
	return names
}

func childTexts(n *models.Node) []string {
	var texts []string
	for _, c := range n.Children {
		texts = append(texts, c.Text)
	}
	return texts
}

func attrValues(nodes []*models.Node, name string) []string {
	var values []string
	for _, n := range nodes {
		v, _ := n.Attr(name)
		values = append(values, v)
	}
	return values
}
