// Package parser reads workbooks into models.WorkbookData snapshots.
package parser

import (
	"archive/zip"
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/errs"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/format"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/models"
	"github.com/xuri/excelize/v2"
	"github.com/xuri/nfp"
)

var rawValue = excelize.Options{RawCellValue: true}

// OpenXLSX reads an xlsx workbook. Rows and cells that the file does not
// store are absent from the snapshot.
func OpenXLSX(data []byte) (*models.WorkbookData, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidFormat, err)
	}
	defer f.Close()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidFormat, err)
	}
	parts, err := worksheetParts(zr)
	if err != nil {
		return nil, err
	}

	wb := &models.WorkbookData{}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		wb.Is1904 = *props.Date1904
	}

	styles := newDateStyles(f)
	for _, sheetName := range f.GetSheetList() {
		layout, err := readSheetLayout(zr, parts[sheetName])
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
		}
		sheet, err := extractSheet(f, sheetName, layout, styles, wb.Is1904)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}

func extractSheet(f *excelize.File, sheetName string, layout sheetLayout, styles *dateStyles, date1904 bool) (*models.SheetData, error) {
	sheet := &models.SheetData{Name: sheetName}
	for _, rl := range layout.rows {
		row := &models.RowData{Num: rl.num}
		for _, cl := range rl.cells {
			cell, err := extractCell(f, sheetName, cl, styles, date1904)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", cl.ref, err)
			}
			row.Cells = append(row.Cells, cell)
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

func extractCell(f *excelize.File, sheetName string, cl cellLayout, styles *dateStyles, date1904 bool) (*models.CellData, error) {
	cell := &models.CellData{Column: cl.col}

	cellType, err := f.GetCellType(sheetName, cl.ref)
	if err != nil {
		return nil, err
	}
	value, err := f.GetCellValue(sheetName, cl.ref, rawValue)
	if err != nil {
		return nil, err
	}

	if cl.hasFormula {
		formula, err := f.GetCellFormula(sheetName, cl.ref)
		if err != nil {
			return nil, err
		}
		cell.Kind = models.CellFormula
		cell.Formula = formula
		if cl.hasValue {
			setResult(cell, cellType, value)
		} else {
			evaluate(f, sheetName, cl.ref, cell)
		}
		if cell.ResultKind == models.CellNumeric && !cell.Malformed {
			cell.DateFormatted = styles.cellIsDate(sheetName, cl.ref)
		}
		return cell, nil
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		cell.Kind = models.CellString
		cell.Text = value
	case excelize.CellTypeBool:
		cell.Kind = models.CellBoolean
		cell.Bool = parseBool(value)
	case excelize.CellTypeError:
		cell.Kind = models.CellError
		cell.Err = parseErrorCode(value)
	case excelize.CellTypeDate:
		t, err := parseISODate(value)
		if err != nil {
			cell.Kind = models.CellString
			cell.Text = value
			break
		}
		cell.Kind = models.CellNumeric
		cell.Number = format.TimeToSerial(t, date1904)
		cell.DateFormatted = true
	default:
		if !cl.hasValue || value == "" {
			cell.Kind = models.CellBlank
			break
		}
		n, ok := parseNumber(value)
		if !ok {
			cell.Kind = models.CellString
			cell.Text = value
			break
		}
		cell.Kind = models.CellNumeric
		cell.Number = n
		cell.DateFormatted = styles.cellIsDate(sheetName, cl.ref)
	}
	return cell, nil
}

// setResult stores a formula's cached result.
func setResult(cell *models.CellData, cellType excelize.CellType, value string) {
	switch cellType {
	case excelize.CellTypeFormula, excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		cell.ResultKind = models.CellString
		cell.Text = value
	case excelize.CellTypeBool:
		cell.ResultKind = models.CellBoolean
		cell.Bool = parseBool(value)
	case excelize.CellTypeError:
		cell.ResultKind = models.CellError
		cell.Err = parseErrorCode(value)
	default:
		setEvaluated(cell, value)
	}
}

// evaluate computes a formula that has no cached result. A formula the
// calculator cannot handle is marked malformed and given a #NAME? result.
func evaluate(f *excelize.File, sheetName, ref string, cell *models.CellData) {
	value, err := f.CalcCellValue(sheetName, ref, rawValue)
	if err != nil {
		if code, ok := models.ParseErrorCode(value); ok {
			cell.ResultKind = models.CellError
			cell.Err = code
			return
		}
		if code, ok := models.ParseErrorCode(err.Error()); ok {
			cell.ResultKind = models.CellError
			cell.Err = code
			return
		}
		cell.Malformed = true
		cell.ResultKind = models.CellError
		cell.Err = models.ErrorName
		return
	}
	setEvaluated(cell, value)
}

func setEvaluated(cell *models.CellData, value string) {
	if code, ok := models.ParseErrorCode(value); ok {
		cell.ResultKind = models.CellError
		cell.Err = code
		return
	}
	switch strings.ToUpper(value) {
	case "TRUE", "FALSE":
		cell.ResultKind = models.CellBoolean
		cell.Bool = parseBool(value)
		return
	}
	if n, ok := parseNumber(value); ok {
		cell.ResultKind = models.CellNumeric
		cell.Number = n
		return
	}
	cell.ResultKind = models.CellString
	cell.Text = value
}

// parseNumber accepts finite decimal numbers only.
func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func parseBool(s string) bool {
	return s == "1" || strings.EqualFold(s, "true")
}

func parseErrorCode(s string) models.ErrorCode {
	if code, ok := models.ParseErrorCode(s); ok {
		return code
	}
	return models.ErrorValue
}

func parseISODate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// dateStyles caches whether a cell style's number format shows a date or time.
type dateStyles struct {
	f    *excelize.File
	byID map[int]bool
}

func newDateStyles(f *excelize.File) *dateStyles {
	return &dateStyles{f: f, byID: make(map[int]bool)}
}

func (d *dateStyles) cellIsDate(sheetName, ref string) bool {
	styleID, err := d.f.GetCellStyle(sheetName, ref)
	if err != nil {
		return false
	}
	if v, ok := d.byID[styleID]; ok {
		return v
	}
	style, err := d.f.GetStyle(styleID)
	isDate := err == nil && isDateFormat(style.NumFmt, style.CustomNumFmt)
	d.byID[styleID] = isDate
	return isDate
}

func isDateFormat(numFmt int, custom *string) bool {
	if custom != nil && *custom != "" {
		return isDateFormatCode(*custom)
	}
	return isBuiltinDateFormat(numFmt)
}

// isDateFormatCode reports whether a custom format code contains date or time tokens.
func isDateFormatCode(code string) bool {
	p := nfp.NumberFormatParser()
	for _, section := range p.Parse(code) {
		for _, token := range section.Items {
			if token.TType == nfp.TokenTypeDateTimes || token.TType == nfp.TokenTypeElapsedDateTimes {
				return true
			}
		}
	}
	return false
}

// isBuiltinDateFormat reports whether a built-in number format id shows a date or time.
func isBuiltinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	return false
}
