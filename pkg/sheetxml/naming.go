package sheetxml

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/column"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/models"
)

const simpleCellName = "cell"

// invalidNameChars are replaced with '_' in header-derived names.
const invalidNameChars = "\\?*: |&\"'<>)(/"

// ColumnNames returns the cell element names for positions 0..count-1 of sheet.
func ColumnNames(sheet models.Sheet, count int, opts Options, classifier Classifier) ([]string, error) {
	switch opts.Style.NamingStrategy() {
	case NamingColumnLetter:
		return columnLetterNames(count), nil
	case NamingHeaderRow:
		return headerRowNames(sheet, count, opts.Style.HeaderRowNumber(), classifier, opts.idGenerator())
	}
	return simpleNames(count), nil
}

func simpleNames(count int) []string {
	names := make([]string, count)
	for i := range names {
		names[i] = simpleCellName
	}
	return names
}

func columnLetterNames(count int) []string {
	names := make([]string, count)
	for i := range names {
		names[i] = column.Name(i)
	}
	return names
}

// headerRowNames reads names from the 1-based header row. Cells that do not
// hold text use their classified value.
func headerRowNames(sheet models.Sheet, count, headerRow int, classifier Classifier, newID func() string) ([]string, error) {
	row, ok := sheet.RowAt(headerRow - 1)
	if !ok {
		return nil, fmt.Errorf("%w: header row %d does not exist", ErrMissingHeader, headerRow)
	}

	names := make([]string, count)
	for i := range names {
		cell, ok := row.CellAt(i)
		if !ok {
			return nil, fmt.Errorf("%w: no header cell at %s", ErrMissingHeader, column.Cell(i, headerRow))
		}
		text, err := cell.StringValue()
		if err != nil {
			v, cerr := classifier.Classify(cell, true)
			if cerr != nil {
				return nil, fmt.Errorf("header cell %s: %w", column.Cell(i, headerRow), cerr)
			}
			text = v.Text
		}
		names[i] = SanitizeName(text, newID)
	}
	return names, nil
}

// SanitizeName turns header text into a usable element name. Characters that
// cannot appear in an element name become '_', a name that cannot start an
// element gets a leading '_', and an empty name becomes "blank_" plus newID().
func SanitizeName(text string, newID func() string) string {
	var b strings.Builder
	for _, r := range text {
		if strings.ContainsRune(invalidNameChars, r) || !isNameChar(r) {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}
	name := b.String()
	if name == "" {
		return "blank_" + newID()
	}
	if first := []rune(name)[0]; !isNameStartChar(first) {
		name = "_" + name
	}
	return name
}

func isNameStartChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return isNameStartChar(r) || unicode.IsDigit(r) || r == '-' || r == '.' || r == '·' ||
		unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}
