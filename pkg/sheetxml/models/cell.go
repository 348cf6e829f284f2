package models

import "fmt"

// CellKind is the storage kind of a cell.
type CellKind int

const (
	// CellUnknown is a kind no reader produces; it is never classified.
	CellUnknown CellKind = iota
	// CellNumeric holds a number, possibly a date serial.
	CellNumeric
	// CellString holds text.
	CellString
	// CellFormula holds a formula and its cached result.
	CellFormula
	// CellBlank is stored but empty.
	CellBlank
	// CellBoolean holds TRUE or FALSE.
	CellBoolean
	// CellError holds an error value.
	CellError
)

// String returns the lower-case kind name.
func (k CellKind) String() string {
	switch k {
	case CellNumeric:
		return "numeric"
	case CellString:
		return "string"
	case CellFormula:
		return "formula"
	case CellBlank:
		return "blank"
	case CellBoolean:
		return "boolean"
	case CellError:
		return "error"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// ErrorCode is a spreadsheet error value, using the BIFF error codes.
type ErrorCode byte

// Error values as stored in BIFF and OOXML files.
const (
	ErrorNull        ErrorCode = 0x00
	ErrorDiv0        ErrorCode = 0x07
	ErrorValue       ErrorCode = 0x0F
	ErrorRef         ErrorCode = 0x17
	ErrorName        ErrorCode = 0x1D
	ErrorNum         ErrorCode = 0x24
	ErrorNA          ErrorCode = 0x2A
	ErrorGettingData ErrorCode = 0x2B
)

var errorNames = map[ErrorCode]string{
	ErrorNull:        "#NULL!",
	ErrorDiv0:        "#DIV/0!",
	ErrorValue:       "#VALUE!",
	ErrorRef:         "#REF!",
	ErrorName:        "#NAME?",
	ErrorNum:         "#NUM!",
	ErrorNA:          "#N/A",
	ErrorGettingData: "#GETTING_DATA",
}

// String returns the symbolic name shown in a spreadsheet, e.g. "#DIV/0!".
func (c ErrorCode) String() string {
	if name, ok := errorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("#ERR%d!", byte(c))
}

// ParseErrorCode maps a symbolic name such as "#REF!" back to its code.
func ParseErrorCode(s string) (ErrorCode, bool) {
	for code, name := range errorNames {
		if name == s {
			return code, true
		}
	}
	return 0, false
}

// CellData is a stored cell. Formula cells keep their cached result in the
// payload fields, with ResultKind naming which one is set.
type CellData struct {
	// Column is the zero-based column index.
	Column int
	// Kind is the storage kind.
	Kind CellKind
	// Number is the numeric payload.
	Number float64
	// Text is the string payload.
	Text string
	// Bool is the boolean payload.
	Bool bool
	// Err is the error payload.
	Err ErrorCode
	// DateFormatted reports whether the cell's number format shows a date or time.
	DateFormatted bool
	// Formula is the formula text, without the leading '='.
	Formula string
	// ResultKind is the kind of a formula's cached result.
	ResultKind CellKind
	// Malformed marks a formula whose number format could not be inspected.
	Malformed bool
}

// CellKind returns Kind.
func (c *CellData) CellKind() CellKind {
	return c.Kind
}

// payloadKind is the kind of value the cell carries, looking through formulas.
func (c *CellData) payloadKind() CellKind {
	if c.Kind == CellFormula {
		return c.ResultKind
	}
	return c.Kind
}

// NumericValue returns the number of a numeric cell or numeric formula result.
func (c *CellData) NumericValue() (float64, error) {
	if c.payloadKind() != CellNumeric {
		return 0, c.wrongKind("numeric")
	}
	return c.Number, nil
}

// StringValue returns the text of a string cell or string formula result.
// Blank cells yield "".
func (c *CellData) StringValue() (string, error) {
	switch c.payloadKind() {
	case CellString:
		return c.Text, nil
	case CellBlank:
		return "", nil
	}
	return "", c.wrongKind("string")
}

// BooleanValue returns the value of a boolean cell or boolean formula result.
func (c *CellData) BooleanValue() (bool, error) {
	if c.payloadKind() != CellBoolean {
		return false, c.wrongKind("boolean")
	}
	return c.Bool, nil
}

// ErrorValue returns the code of an error cell or error formula result.
func (c *CellData) ErrorValue() (ErrorCode, error) {
	if c.payloadKind() != CellError {
		return 0, c.wrongKind("error")
	}
	return c.Err, nil
}

// IsDateFormatted returns DateFormatted, failing for a Malformed formula.
func (c *CellData) IsDateFormatted() (bool, error) {
	if c.Malformed {
		return false, fmt.Errorf("cannot inspect formula %q", c.Formula)
	}
	return c.DateFormatted, nil
}

func (c *CellData) wrongKind(want string) error {
	if c.Kind == CellFormula {
		return fmt.Errorf("cannot get a %s value from a formula cell with a %s result", want, c.payloadKind())
	}
	return fmt.Errorf("cannot get a %s value from a %s cell", want, c.Kind)
}
