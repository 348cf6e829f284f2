package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/column"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/errs"
)

// sheetLayout records which rows and cells a worksheet part stores,
// independent of their values.
type sheetLayout struct {
	rows []rowLayout
}

type rowLayout struct {
	num   int // zero-based
	cells []cellLayout
}

type cellLayout struct {
	col        int // zero-based
	ref        string
	hasFormula bool
	hasValue   bool
}

// worksheetParts maps sheet names to their worksheet part inside the package.
func worksheetParts(r *zip.Reader) (map[string]string, error) {
	workbookXML, err := readZipFile(r, "xl/workbook.xml")
	if err != nil {
		return nil, err
	}
	if workbookXML == nil {
		return nil, fmt.Errorf("%w: xl/workbook.xml not found", errs.ErrInvalidFormat)
	}
	sheetsInfo := parseWorkbookSheets(workbookXML)

	relsXML, err := readZipFile(r, "xl/_rels/workbook.xml.rels")
	if err != nil {
		return nil, err
	}
	return parseWorkbookRels(relsXML, sheetsInfo), nil
}

func readSheetLayout(r *zip.Reader, partPath string) (sheetLayout, error) {
	if partPath == "" {
		return sheetLayout{}, nil
	}
	data, err := readZipFile(r, partPath)
	if err != nil {
		return sheetLayout{}, err
	}
	return parseSheetLayout(data)
}

func parseSheetLayout(data []byte) (sheetLayout, error) {
	var layout sheetLayout
	decoder := xml.NewDecoder(bytes.NewReader(data))
	rowIdx, cellIdx := -1, -1
	nextRow := 0

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return sheetLayout{}, fmt.Errorf("%w: worksheet: %v", errs.ErrInvalidFormat, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "row":
				num := nextRow
				if v := attrValue(t, "r"); v != "" {
					n, err := strconv.Atoi(v)
					if err != nil || n < 1 {
						return sheetLayout{}, fmt.Errorf("%w: invalid row number %q", errs.ErrInvalidFormat, v)
					}
					num = n - 1
				}
				nextRow = num + 1
				layout.rows = append(layout.rows, rowLayout{num: num})
				rowIdx, cellIdx = len(layout.rows)-1, -1
			case "c":
				if rowIdx < 0 {
					continue
				}
				row := &layout.rows[rowIdx]
				col := 0
				if n := len(row.cells); n > 0 {
					col = row.cells[n-1].col + 1
				}
				ref := attrValue(t, "r")
				if ref != "" {
					c, err := refColumn(ref)
					if err != nil {
						return sheetLayout{}, err
					}
					col = c
				} else {
					ref = column.Cell(col, row.num+1)
				}
				row.cells = append(row.cells, cellLayout{col: col, ref: ref})
				cellIdx = len(row.cells) - 1
			case "f":
				if cellIdx >= 0 {
					layout.rows[rowIdx].cells[cellIdx].hasFormula = true
				}
			case "v", "is":
				if cellIdx >= 0 {
					layout.rows[rowIdx].cells[cellIdx].hasValue = true
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "c":
				cellIdx = -1
			case "row":
				rowIdx, cellIdx = -1, -1
			}
		}
	}

	sort.SliceStable(layout.rows, func(i, j int) bool { return layout.rows[i].num < layout.rows[j].num })
	for i := range layout.rows {
		cells := layout.rows[i].cells
		sort.SliceStable(cells, func(a, b int) bool { return cells[a].col < cells[b].col })
	}
	return layout, nil
}

// refColumn returns the zero-based column of an A1-style reference.
func refColumn(ref string) (int, error) {
	end := strings.IndexAny(ref, "0123456789")
	if end <= 0 {
		return 0, fmt.Errorf("%w: invalid cell reference %q", errs.ErrInvalidFormat, ref)
	}
	col, err := column.Index(strings.ReplaceAll(ref[:end], "$", ""))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid cell reference %q", errs.ErrInvalidFormat, ref)
	}
	return col, nil
}

func attrValue(se xml.StartElement, name string) string {
	for _, attr := range se.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "../") {
		clean := target
		for strings.HasPrefix(clean, "../") {
			clean = strings.TrimPrefix(clean, "../")
		}
		return "xl/" + clean
	}
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return baseDir + "/" + target
}

func parseWorkbookSheets(data []byte) map[string]string {
	result := make(map[string]string) // rId -> sheet name
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			name, rID := attrValue(se, "name"), attrValue(se, "id")
			if name != "" && rID != "" {
				result[rID] = name
			}
		}
	}

	return result
}

func parseWorkbookRels(data []byte, sheetsInfo map[string]string) map[string]string {
	result := make(map[string]string) // sheet name -> part path
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			rID, target := attrValue(se, "Id"), attrValue(se, "Target")
			if sheetName, ok := sheetsInfo[rID]; ok && strings.Contains(strings.ToLower(target), "worksheet") {
				result[sheetName] = resolveRelativePath(target, "xl")
			}
		}
	}

	return result
}
