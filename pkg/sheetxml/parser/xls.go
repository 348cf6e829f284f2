package parser

import (
	"fmt"
	"io"

	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/errs"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/models"
	"github.com/yamitzky/xlrd-go/xlrd"
)

// xlsName is only used by the reader in its messages; the bytes are passed
// as FileContents.
const xlsName = "workbook.xls"

// OpenXLS reads a legacy BIFF workbook. Cells keep their stored types, and a
// number is flagged as date formatted when its XF record points at a date
// number format.
func OpenXLS(data []byte) (wb *models.WorkbookData, err error) {
	defer func() {
		if r := recover(); r != nil {
			wb, err = nil, fmt.Errorf("%w: %v", errs.ErrInvalidFormat, r)
		}
	}()

	book, err := xlrd.OpenWorkbook(xlsName, &xlrd.OpenWorkbookOptions{
		Logfile:        io.Discard,
		FormattingInfo: true,
		FileContents:   data,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidFormat, err)
	}

	wb = &models.WorkbookData{Is1904: book.Datemode == 1}
	for i := 0; i < book.NSheets; i++ {
		ws, err := book.SheetByIndex(i)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %d: %v", errs.ErrInvalidFormat, i, err)
		}
		wb.Sheets = append(wb.Sheets, readXLSSheet(book, ws))
	}
	return wb, nil
}

func readXLSSheet(book *xlrd.Book, ws *xlrd.Sheet) *models.SheetData {
	sheet := &models.SheetData{Name: ws.Name}
	for r := 0; r < ws.NRows; r++ {
		var row *models.RowData
		for c := 0; c < ws.NCols; c++ {
			ctype := ws.RawCellType(r, c)
			if ctype == xlrd.XL_CELL_EMPTY {
				continue
			}
			if row == nil {
				row = &models.RowData{Num: r}
			}
			date := isXLSDate(book, ws.RawCellXFIndex(r, c))
			row.Cells = append(row.Cells, xlsCell(c, ctype, ws.RawCellValue(r, c), date))
		}
		if row != nil {
			sheet.Rows = append(sheet.Rows, row)
		}
	}
	return sheet
}

// isXLSDate reports whether the XF record at xf uses a date number format,
// either one of the built-in ids or a custom format string.
func isXLSDate(book *xlrd.Book, xf int) bool {
	if xf < 0 || xf >= len(book.XFList) || book.XFList[xf] == nil {
		return false
	}
	key := book.XFList[xf].FormatKey
	if isBuiltinDateFormat(key) {
		return true
	}
	f := book.FormatMap[key]
	return f != nil && isDateFormatCode(f.FormatString)
}

// xlsCell maps one stored BIFF cell onto the workbook model.
func xlsCell(col, ctype int, value interface{}, date bool) *models.CellData {
	cell := &models.CellData{Column: col, Kind: models.CellBlank}
	switch ctype {
	case xlrd.XL_CELL_TEXT:
		if s, ok := value.(string); ok && s != "" {
			cell.Kind = models.CellString
			cell.Text = s
		}
	case xlrd.XL_CELL_NUMBER, xlrd.XL_CELL_DATE:
		if n, ok := xlsNumber(value); ok {
			cell.Kind = models.CellNumeric
			cell.Number = n
			cell.DateFormatted = date || ctype == xlrd.XL_CELL_DATE
		}
	case xlrd.XL_CELL_BOOLEAN:
		cell.Kind = models.CellBoolean
		switch v := value.(type) {
		case bool:
			cell.Bool = v
		case int:
			cell.Bool = v != 0
		}
	case xlrd.XL_CELL_ERROR:
		cell.Kind = models.CellError
		switch v := value.(type) {
		case byte:
			cell.Err = models.ErrorCode(v)
		case int:
			cell.Err = models.ErrorCode(byte(v))
		}
	}
	return cell
}

func xlsNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
