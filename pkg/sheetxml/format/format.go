// Package format renders cell values as text. A Policy holds a compiled date
// pattern, an optional compiled number pattern and the time zone dates are
// shown in. Patterns use the familiar spreadsheet/JVM pattern letters
// ("yyyy-MM-dd'T'HH:mm:ssZ", "#,##0.00", "0.###E0").
package format

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/errs"
)

// DefaultDatePattern is used when no date pattern is configured.
const DefaultDatePattern = "yyyy-MM-dd'T'HH:mm:ssZ"

// DefaultEncoding is the output encoding used when none is configured or inherited.
const DefaultEncoding = "UTF-8"

// Config holds the uncompiled formatting settings.
type Config struct {
	// DatePattern is the date/time pattern; empty means DefaultDatePattern.
	DatePattern string
	// NumberPattern is the decimal pattern; empty means shortest round-trip output.
	NumberPattern string
	// Location is the time zone dates are rendered in; nil means UTC.
	Location *time.Location
}

// Policy formats numbers and dates. It is immutable once built and may be
// shared between goroutines.
type Policy struct {
	date     datePattern
	number   *numberPattern
	location *time.Location
}

// New compiles cfg into a Policy.
func New(cfg Config) (*Policy, error) {
	datePat := cfg.DatePattern
	if datePat == "" {
		datePat = DefaultDatePattern
	}
	dp, err := compileDatePattern(datePat)
	if err != nil {
		return nil, fmt.Errorf("%w: date pattern %q: %v", errs.ErrInvalidArgument, datePat, err)
	}

	p := &Policy{date: dp, location: cfg.Location}
	if p.location == nil {
		p.location = time.UTC
	}

	if cfg.NumberPattern != "" {
		np, err := compileNumberPattern(cfg.NumberPattern)
		if err != nil {
			return nil, fmt.Errorf("%w: number pattern %q: %v", errs.ErrInvalidArgument, cfg.NumberPattern, err)
		}
		p.number = np
	}
	return p, nil
}

// Default returns a Policy with the default date pattern, no number pattern and UTC.
func Default() *Policy {
	p, err := New(Config{})
	if err != nil {
		panic(err)
	}
	return p
}

// Location returns the time zone dates are rendered in.
func (p *Policy) Location() *time.Location {
	return p.location
}

// FormatNumber renders v with the configured number pattern, or as the
// shortest decimal string that parses back to v when no pattern is set.
func (p *Policy) FormatNumber(v float64) (string, error) {
	if math.IsNaN(v) {
		return "", fmt.Errorf("%w: not a number", errs.ErrInvalidArgument)
	}
	if p.number != nil {
		return p.number.format(v), nil
	}
	return shortest(v), nil
}

// FormatDate renders t in the policy's time zone using the date pattern.
func (p *Policy) FormatDate(t time.Time) string {
	return p.date.format(t.In(p.location))
}

// ResolveEncoding picks the output encoding: explicit if set, else inherited
// if set, else DefaultEncoding.
func ResolveEncoding(explicit, inherited string) string {
	if explicit != "" {
		return explicit
	}
	if inherited != "" {
		return inherited
	}
	return DefaultEncoding
}

// shortest uses plain notation for moderate magnitudes and exponent notation
// outside [1e-6, 1e21).
func shortest(v float64) string {
	a := math.Abs(v)
	if a == 0 || (a >= 1e-6 && a < 1e21) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
