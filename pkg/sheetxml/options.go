// Package sheetxml converts spreadsheet workbooks into an XML element tree.
package sheetxml

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/format"
)

// Naming selects how cell elements are named.
type Naming string

const (
	// NamingSimple names every cell element "cell".
	NamingSimple Naming = "simple"
	// NamingColumnLetter names cell elements after their column (A, B, ..., AA).
	NamingColumnLetter Naming = "column-letter"
	// NamingHeaderRow names cell elements after the text of a header row.
	NamingHeaderRow Naming = "header-row"
)

// ParseNaming parses a naming strategy name. An empty string selects NamingSimple.
func ParseNaming(s string) (Naming, error) {
	switch Naming(strings.ToLower(strings.TrimSpace(s))) {
	case "", NamingSimple:
		return NamingSimple, nil
	case NamingColumnLetter:
		return NamingColumnLetter, nil
	case NamingHeaderRow:
		return NamingHeaderRow, nil
	}
	return "", fmt.Errorf("%w: unknown naming %q (must be simple, column-letter, or header-row)", ErrInvalidArgument, s)
}

// Style controls the shape of the generated document.
type Style struct {
	// EmitTypeAttr adds a "type" attribute to each cell element. Default false.
	EmitTypeAttr *bool
	// EmitRowNumberAttr adds a "number" attribute to each row element. Default false.
	EmitRowNumberAttr *bool
	// EmitCellPositionAttr adds a "position" attribute such as "B3" to each
	// cell element. Default false.
	EmitCellPositionAttr *bool
	// Naming selects the cell element naming strategy. Default NamingSimple.
	Naming Naming
	// HeaderRow is the 1-based header row used by NamingHeaderRow. Default 1.
	HeaderRow *int
	// DateFormat is the date pattern. Default format.DefaultDatePattern.
	DateFormat string
	// NumberFormat is the optional decimal pattern, e.g. "0.###E0".
	NumberFormat string
	// XMLEncoding is the explicit output encoding.
	XMLEncoding string
}

// ShouldEmitType returns whether to add type attributes.
func (s Style) ShouldEmitType() bool {
	return s.EmitTypeAttr != nil && *s.EmitTypeAttr
}

// ShouldEmitRowNumber returns whether to add row number attributes.
func (s Style) ShouldEmitRowNumber() bool {
	return s.EmitRowNumberAttr != nil && *s.EmitRowNumberAttr
}

// ShouldEmitCellPosition returns whether to add cell position attributes.
func (s Style) ShouldEmitCellPosition() bool {
	return s.EmitCellPositionAttr != nil && *s.EmitCellPositionAttr
}

// NamingStrategy returns the configured naming, defaulting to NamingSimple.
func (s Style) NamingStrategy() Naming {
	if s.Naming == "" {
		return NamingSimple
	}
	return s.Naming
}

// HeaderRowNumber returns the 1-based header row, defaulting to 1.
func (s Style) HeaderRowNumber() int {
	if s.HeaderRow != nil {
		return *s.HeaderRow
	}
	return 1
}

// Options configures a conversion.
type Options struct {
	// Style controls naming, formatting and attribute emission.
	Style Style
	// IgnoreNullRows skips absent rows instead of failing. Default false.
	IgnoreNullRows *bool
	// Location is the time zone date cells are read and rendered in. Default UTC.
	Location *time.Location
	// Logger receives trace output. If nil, nothing is logged.
	Logger *logrus.Logger
	// IDGenerator produces the suffix for blank header names.
	// If nil, a random UUID without dashes is used.
	IDGenerator func() string
}

// DefaultOptions returns default conversion options.
func DefaultOptions() Options {
	return Options{
		Style: Style{Naming: NamingSimple},
	}
}

// ShouldIgnoreNullRows returns whether absent rows are skipped.
func (o Options) ShouldIgnoreNullRows() bool {
	return o.IgnoreNullRows != nil && *o.IgnoreNullRows
}

// Policy compiles the formatting part of the options.
func (o Options) Policy() (*format.Policy, error) {
	return format.New(format.Config{
		DatePattern:   o.Style.DateFormat,
		NumberPattern: o.Style.NumberFormat,
		Location:      o.Location,
	})
}

// Encoding resolves the output encoding against the caller's current encoding.
func (o Options) Encoding(inherited string) string {
	return format.ResolveEncoding(o.Style.XMLEncoding, inherited)
}

func (o Options) logger() *logrus.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (o Options) idGenerator() func() string {
	if o.IDGenerator != nil {
		return o.IDGenerator
	}
	return func() string {
		return strings.ReplaceAll(uuid.NewString(), "-", "")
	}
}

// Bool returns a pointer to v, for the optional Options fields.
func Bool(v bool) *bool {
	return &v
}

// Int returns a pointer to v, for the optional Options fields.
func Int(v int) *int {
	return &v
}
