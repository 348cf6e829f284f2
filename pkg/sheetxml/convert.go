package sheetxml

import (
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/column"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/models"
)

// Element and attribute names of the generated document.
const (
	ElementSpreadsheet = "spreadsheet"
	ElementSheet       = "sheet"
	ElementRow         = "row"

	AttrSheetName = "name"
	AttrRowNumber = "number"
	AttrType      = "type"
	AttrPosition  = "position"
)

// RowCount returns the number of row positions to walk in sheet. A last row
// number of 0 means either an empty sheet or a single row at 0, so the stored
// row count decides.
func RowCount(sheet Sheet) int {
	last := sheet.LastRowNum()
	if last == 0 {
		return sheet.PhysicalRowCount()
	}
	return last + 1
}

// ColumnCount returns the widest row span within the sheet's row range.
func ColumnCount(sheet Sheet) int {
	result := 0
	rows := RowCount(sheet)
	for i := sheet.FirstRowNum(); i < rows; i++ {
		row, ok := sheet.RowAt(i)
		if ok && row.CellCount() > result {
			result = row.CellCount()
		}
	}
	return result
}

type builder struct {
	opts       Options
	log        *logrus.Logger
	classifier Classifier
}

// Convert builds the document tree for wb. Any failure aborts the whole
// conversion and no tree is returned.
func Convert(wb Workbook, opts Options) (*models.Node, error) {
	policy, err := opts.Policy()
	if err != nil {
		return nil, err
	}
	b := &builder{
		opts:       opts,
		log:        opts.logger(),
		classifier: Classifier{Policy: policy, Date1904: wb.Date1904()},
	}

	b.log.WithField("sheets", wb.SheetCount()).Trace("converting workbook")
	root := models.NewNode(ElementSpreadsheet)
	for i := 0; i < wb.SheetCount(); i++ {
		if err := b.convertSheet(wb.SheetAt(i), root); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func (b *builder) convertSheet(sheet Sheet, parent *models.Node) error {
	name := sheet.SheetName()
	sheetNode := parent.AddChild(models.NewNode(ElementSheet))
	sheetNode.SetAttr(AttrSheetName, name)

	rows := RowCount(sheet)
	cols := ColumnCount(sheet)
	b.log.WithFields(logrus.Fields{
		"sheet": name,
		"rows":  rows,
		"cells": cols,
	}).Trace("converting sheet")
	if rows == 0 {
		return nil
	}

	names, err := ColumnNames(sheet, cols, b.opts, b.classifier)
	if err != nil {
		return NewConversionError(name, 0, "", err)
	}

	start := sheet.FirstRowNum()
	if b.opts.Style.NamingStrategy() == NamingHeaderRow {
		start = b.opts.Style.HeaderRowNumber()
	}

	for r := start; r < rows; r++ {
		row, ok := sheet.RowAt(r)
		if !ok {
			if b.opts.ShouldIgnoreNullRows() {
				b.log.WithFields(logrus.Fields{"sheet": name, "row": r + 1}).Trace("skipping null row")
				continue
			}
			return NewConversionError(name, r+1, "", missingRow(r+1))
		}
		if err := b.convertRow(name, row, names, sheetNode); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) convertRow(sheetName string, row Row, names []string, parent *models.Node) error {
	rowNum := row.RowNum() + 1
	rowNode := parent.AddChild(models.NewNode(ElementRow))
	b.log.WithFields(logrus.Fields{"sheet": sheetName, "row": rowNum}).Trace("processing row")
	if b.opts.Style.ShouldEmitRowNumber() {
		rowNode.SetAttr(AttrRowNumber, strconv.Itoa(rowNum))
	}

	for i, elemName := range names {
		cell, ok := row.CellAt(i)
		value, err := b.classifier.Classify(cell, ok)
		if err != nil {
			return NewConversionError(sheetName, rowNum, column.Name(i), err)
		}
		b.log.WithFields(logrus.Fields{
			"row":    rowNum,
			"column": i + 1,
			"type":   value.Type.String(),
			"value":  value.Text,
		}).Trace("classified cell")

		cellNode := rowNode.AddChild(models.NewNode(elemName))
		if b.opts.Style.ShouldEmitType() {
			cellNode.SetAttr(AttrType, value.Type.String())
		}
		if b.opts.Style.ShouldEmitCellPosition() {
			cellNode.SetAttr(AttrPosition, column.Cell(i, rowNum))
		}
		cellNode.SetText(value.Text)
	}
	return nil
}
