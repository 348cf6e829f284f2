package sheetxml

import "github.com/ukaji3/sheetxml-go/pkg/sheetxml/models"

// The spreadsheet handle consumed by Convert. Readers in package parser
// return models.WorkbookData, which implements it.
type (
	Workbook = models.Workbook
	Sheet    = models.Sheet
	Row      = models.Row
	Cell     = models.Cell
)
