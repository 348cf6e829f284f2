package sheetxml

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/format"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/models"
)

// ValueType is the semantic type of a classified cell.
type ValueType int

const (
	// TypeBlank is an empty or absent cell.
	TypeBlank ValueType = iota
	// TypeNumeric is a number shown without a date format.
	TypeNumeric
	// TypeDate is a valid date serial shown with a date or time format.
	TypeDate
	// TypeString is a text cell.
	TypeString
	// TypeBoolean is a TRUE or FALSE cell.
	TypeBoolean
	// TypeError is an error cell such as #DIV/0!.
	TypeError
	// TypeFormula is a formula with a text, boolean or error result.
	TypeFormula
)

// String returns the tag written to the "type" attribute.
func (t ValueType) String() string {
	switch t {
	case TypeNumeric:
		return "numeric"
	case TypeDate:
		return "date"
	case TypeString:
		return "string"
	case TypeBoolean:
		return "boolean"
	case TypeError:
		return "error"
	case TypeFormula:
		return "formula"
	}
	return "blank"
}

// CellValue is a classified cell. Exactly one payload matching Type is set;
// Text always holds the rendered value.
type CellValue struct {
	Type   ValueType
	Number float64
	Time   time.Time
	Bool   bool
	Err    models.ErrorCode
	Text   string
}

// Classifier resolves raw cells into CellValues.
type Classifier struct {
	Policy *format.Policy
	// Date1904 selects the 1904 date system for date serials.
	Date1904 bool
}

type classifyRule func(c Classifier, cell models.Cell) (CellValue, bool, error)

// Evaluated in order; the first rule that matches wins.
var classifyRules = []classifyRule{
	blankRule,
	booleanRule,
	numericRule,
	formulaTextRule,
	formulaErrorRule,
	stringRule,
	errorRule,
}

// Classify resolves a cell. present is false for a position the row does not
// store, which classifies as blank.
func (c Classifier) Classify(cell models.Cell, present bool) (CellValue, error) {
	if !present || cell == nil {
		return CellValue{Type: TypeBlank}, nil
	}
	for _, rule := range classifyRules {
		v, ok, err := rule(c, cell)
		if err != nil {
			return CellValue{}, err
		}
		if ok {
			return v, nil
		}
	}
	return CellValue{}, fmt.Errorf("%w: %s", ErrUnsupportedCellKind, cell.CellKind())
}

func blankRule(_ Classifier, cell models.Cell) (CellValue, bool, error) {
	return CellValue{Type: TypeBlank}, cell.CellKind() == models.CellBlank, nil
}

func booleanRule(_ Classifier, cell models.Cell) (CellValue, bool, error) {
	if cell.CellKind() != models.CellBoolean {
		return CellValue{}, false, nil
	}
	b, err := cell.BooleanValue()
	if err != nil {
		return CellValue{}, false, nil
	}
	return CellValue{Type: TypeBoolean, Bool: b, Text: strconv.FormatBool(b)}, true, nil
}

// numericRule covers plain numbers and numeric formula results, which are
// dates when the cell's number format displays a date or time and the value
// is a valid date serial.
func numericRule(c Classifier, cell models.Cell) (CellValue, bool, error) {
	kind := cell.CellKind()
	if kind != models.CellNumeric && kind != models.CellFormula {
		return CellValue{}, false, nil
	}
	v, err := cell.NumericValue()
	if err != nil {
		return CellValue{}, false, nil
	}

	isDate, err := cell.IsDateFormatted()
	if err != nil {
		isDate = false
	}
	if isDate {
		if t, err := format.SerialToTime(v, c.Date1904, c.Policy.Location()); err == nil {
			return CellValue{Type: TypeDate, Time: t, Number: v, Text: c.Policy.FormatDate(t)}, true, nil
		}
	}

	s, err := c.Policy.FormatNumber(v)
	if err != nil {
		return CellValue{}, false, err
	}
	return CellValue{Type: TypeNumeric, Number: v, Text: s}, true, nil
}

func formulaTextRule(_ Classifier, cell models.Cell) (CellValue, bool, error) {
	if cell.CellKind() != models.CellFormula {
		return CellValue{}, false, nil
	}
	if s, err := cell.StringValue(); err == nil {
		return CellValue{Type: TypeFormula, Text: s}, true, nil
	}
	if b, err := cell.BooleanValue(); err == nil {
		return CellValue{Type: TypeFormula, Bool: b, Text: strconv.FormatBool(b)}, true, nil
	}
	return CellValue{}, false, nil
}

func formulaErrorRule(_ Classifier, cell models.Cell) (CellValue, bool, error) {
	if cell.CellKind() != models.CellFormula {
		return CellValue{}, false, nil
	}
	code, err := cell.ErrorValue()
	if err != nil {
		return CellValue{}, false, nil
	}
	return CellValue{Type: TypeFormula, Err: code, Text: code.String()}, true, nil
}

func stringRule(_ Classifier, cell models.Cell) (CellValue, bool, error) {
	if cell.CellKind() != models.CellString {
		return CellValue{}, false, nil
	}
	s, err := cell.StringValue()
	if err != nil {
		return CellValue{}, false, nil
	}
	return CellValue{Type: TypeString, Text: s}, true, nil
}

func errorRule(_ Classifier, cell models.Cell) (CellValue, bool, error) {
	if cell.CellKind() != models.CellError {
		return CellValue{}, false, nil
	}
	code, err := cell.ErrorValue()
	if err != nil {
		return CellValue{}, false, nil
	}
	return CellValue{Type: TypeError, Err: code, Text: code.String()}, true, nil
}
