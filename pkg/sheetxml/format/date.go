package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vjeantet/jodaTime"
)

type dateToken struct {
	letter  rune // 0 for literal text
	count   int
	literal string
}

type datePattern []dateToken

const dateLetters = "GyYMLwWDdFEuaHkKhmsSzZX"

func compileDatePattern(pattern string) (datePattern, error) {
	var tokens datePattern
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, dateToken{literal: lit.String()})
			lit.Reset()
		}
	}

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\'':
			if i+1 < len(runes) && runes[i+1] == '\'' {
				lit.WriteRune('\'')
				i++
				continue
			}
			j := i + 1
			for ; j < len(runes); j++ {
				if runes[j] == '\'' {
					if j+1 < len(runes) && runes[j+1] == '\'' {
						lit.WriteRune('\'')
						j++
						continue
					}
					break
				}
				lit.WriteRune(runes[j])
			}
			if j >= len(runes) {
				return nil, errors.New("unterminated quote")
			}
			i = j
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			if !strings.ContainsRune(dateLetters, r) {
				return nil, fmt.Errorf("illegal pattern character %q", r)
			}
			n := 1
			for i+n < len(runes) && runes[i+n] == r {
				n++
			}
			if r == 'X' && n > 3 {
				return nil, errors.New("too many pattern letters: X")
			}
			flush()
			tokens = append(tokens, dateToken{letter: r, count: n})
			i += n - 1
		default:
			lit.WriteRune(r)
		}
	}
	flush()
	return tokens, nil
}

func (dp datePattern) format(t time.Time) string {
	var b strings.Builder
	for _, tok := range dp {
		if tok.letter == 0 {
			b.WriteString(tok.literal)
			continue
		}
		b.WriteString(formatField(t, tok.letter, tok.count))
	}
	return b.String()
}

// jodaLetters maps pattern letters to the Joda letter with the same meaning,
// and the largest count Joda renders the same way. Longer runs of a numeric
// field are zero-padded; longer runs of a text field render like the maximum.
var jodaLetters = map[rune]struct {
	letter   rune
	maxCount int
}{
	'y': {'y', 4},
	'M': {'M', 4},
	'L': {'M', 4},
	'D': {'D', 3},
	'd': {'d', 2},
	'E': {'E', 4},
	'a': {'a', 1},
	'H': {'H', 2},
	'k': {'k', 2},
	'K': {'K', 2},
	'h': {'h', 2},
	'm': {'m', 2},
	's': {'s', 2},
	'Z': {'Z', 1},
}

func formatField(t time.Time, letter rune, count int) string {
	if j, ok := jodaLetters[letter]; ok {
		n := min(count, j.maxCount)
		s := jodaTime.Format(strings.Repeat(string(j.letter), n), t)
		if count > n && isDigits(s) {
			s = strings.Repeat("0", count-len(s)) + s
		}
		return s
	}

	// Letters Joda lacks or defines differently.
	switch letter {
	case 'G':
		if t.Year() <= 0 {
			return "BC"
		}
		return "AD"
	case 'Y':
		year, _ := weekOfYear(t)
		return formatYear(year, count)
	case 'w':
		_, week := weekOfYear(t)
		return pad(week, count)
	case 'W':
		first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		return pad((t.Day()-1+int(first.Weekday()))/7+1, count)
	case 'F':
		return pad((t.Day()-1)/7+1, count)
	case 'u':
		wd := int(t.Weekday())
		if wd == 0 {
			wd = 7
		}
		return pad(wd, count)
	case 'S':
		return pad(t.Nanosecond()/int(time.Millisecond), count)
	case 'z':
		return t.Format("MST")
	case 'X':
		_, offset := t.Zone()
		if offset == 0 {
			return "Z"
		}
		switch count {
		case 1:
			return zoneOffset(t, false, true)
		case 2:
			return zoneOffset(t, false, false)
		}
		return zoneOffset(t, true, false)
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func formatYear(year, count int) string {
	if count == 2 {
		return pad(((year%100)+100)%100, 2)
	}
	return pad(year, count)
}

// weekOfYear numbers weeks starting on Sunday, week 1 being the week that
// contains January 1st.
func weekOfYear(t time.Time) (year, week int) {
	y := t.Year()
	day := time.Date(y, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	nextJan1 := time.Date(y+1, 1, 1, 0, 0, 0, 0, time.UTC)
	startOfNext := nextJan1.AddDate(0, 0, -int(nextJan1.Weekday()))
	if !day.Before(startOfNext) {
		return y + 1, 1
	}
	jan1 := time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC)
	return y, (day.YearDay()-1+int(jan1.Weekday()))/7 + 1
}

func zoneOffset(t time.Time, colon, hoursOnly bool) string {
	_, offset := t.Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	hh := pad(offset/3600, 2)
	if hoursOnly {
		return sign + hh
	}
	mm := pad((offset%3600)/60, 2)
	if colon {
		return sign + hh + ":" + mm
	}
	return sign + hh + mm
}

func pad(n, width int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.Itoa(n)
	for len(s) < width {
		s = "0" + s
	}
	if neg {
		return "-" + s
	}
	return s
}
