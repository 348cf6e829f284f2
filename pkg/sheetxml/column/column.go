// Package column converts between zero-based column indexes and
// spreadsheet-style column names (A, B, ..., Z, AA, AB, ...).
package column

import (
	"fmt"
	"math"

	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/errs"
)

// MaxIndex is the zero-based index of the last column of a modern worksheet ("XFD").
const MaxIndex = 16383

// Name returns the column name for a zero-based index, e.g. 0 -> "A",
// 27 -> "AB", 16383 -> "XFD". Indexes past MaxIndex keep counting in the same
// bijective base-26 system. A negative index yields "".
func Name(index int) string {
	if index < 0 {
		return ""
	}
	var buf [16]byte
	pos := len(buf)
	n := index + 1
	for n > 0 {
		digit := (n - 1) % 26
		pos--
		buf[pos] = byte('A' + digit)
		n = (n - digit) / 26
	}
	return string(buf[pos:])
}

// Index returns the zero-based index for a column name. Lower-case letters are
// accepted. An empty name or one containing anything but letters fails with
// errs.ErrInvalidArgument.
func Index(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty column name", errs.ErrInvalidArgument)
	}
	result := 0
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		default:
			return 0, fmt.Errorf("%w: invalid column name %q", errs.ErrInvalidArgument, name)
		}
		if result > (math.MaxInt-26)/26 {
			return 0, fmt.Errorf("%w: column name %q is too long", errs.ErrInvalidArgument, name)
		}
		result = result*26 + int(c-'A'+1)
	}
	return result - 1, nil
}

// Cell returns the A1-style reference of a zero-based column and a 1-based row.
func Cell(index, row int) string {
	return fmt.Sprintf("%s%d", Name(index), row)
}
