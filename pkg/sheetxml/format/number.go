package format

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// numberPattern is a compiled decimal pattern. Only the prefix and suffix of
// an explicit negative sub-pattern are used.
type numberPattern struct {
	posPrefix, posSuffix string
	negPrefix, negSuffix string
	hasNeg               bool

	multiplier       float64
	minInt, maxInt   int
	minFrac, maxFrac int
	grouping         int
	decimalShown     bool

	scientific bool
	minExp     int
}

type subPattern struct {
	prefix, suffix string
	multiplier     float64

	hashInt, zeroInt   int
	zeroFrac, hashFrac int
	grouping           int
	decimalShown       bool
	scientific         bool
	minExp             int
}

func compileNumberPattern(pattern string) (*numberPattern, error) {
	pos, neg, hasNeg, err := splitSubPatterns(pattern)
	if err != nil {
		return nil, err
	}
	sp, err := parseSubPattern(pos)
	if err != nil {
		return nil, err
	}
	np := &numberPattern{
		posPrefix:    sp.prefix,
		posSuffix:    sp.suffix,
		multiplier:   sp.multiplier,
		minInt:       sp.zeroInt,
		maxInt:       sp.zeroInt + sp.hashInt,
		minFrac:      sp.zeroFrac,
		maxFrac:      sp.zeroFrac + sp.hashFrac,
		grouping:     sp.grouping,
		decimalShown: sp.decimalShown,
		scientific:   sp.scientific,
		minExp:       sp.minExp,
	}
	if hasNeg {
		nsp, err := parseSubPattern(neg)
		if err != nil {
			return nil, err
		}
		np.hasNeg = true
		np.negPrefix = nsp.prefix
		np.negSuffix = nsp.suffix
	}
	return np, nil
}

// splitSubPatterns splits on the first unquoted ';'.
func splitSubPatterns(pattern string) (pos, neg string, hasNeg bool, err error) {
	inQuote := false
	for i, r := range pattern {
		switch {
		case r == '\'':
			inQuote = !inQuote
		case r == ';' && !inQuote:
			if i == len(pattern)-1 {
				return pattern[:i], "", false, nil
			}
			return pattern[:i], pattern[i+1:], true, nil
		}
	}
	if inQuote {
		return "", "", false, errors.New("unterminated quote")
	}
	return pattern, "", false, nil
}

func parseSubPattern(s string) (subPattern, error) {
	const (
		phasePrefix = iota
		phaseNumber
		phaseSuffix
	)
	sp := subPattern{multiplier: 1}
	var affix strings.Builder
	phase := phasePrefix
	inFraction, inExponent := false, false
	sawGroup, groupCount := false, 0

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if phase == phaseNumber {
			switch {
			case r == '#' && !inExponent:
				if inFraction {
					sp.hashFrac++
					continue
				}
				if sp.zeroInt > 0 {
					return sp, errors.New("'#' after '0' in integer part")
				}
				sp.hashInt++
				groupCount++
				continue
			case r == '0':
				switch {
				case inExponent:
					sp.minExp++
				case inFraction:
					if sp.hashFrac > 0 {
						return sp, errors.New("'0' after '#' in fraction part")
					}
					sp.zeroFrac++
				default:
					sp.zeroInt++
					groupCount++
				}
				continue
			case r == ',' && !inFraction && !inExponent:
				sawGroup, groupCount = true, 0
				continue
			case r == '.' && !inFraction && !inExponent:
				inFraction = true
				continue
			case r == 'E' && !inExponent:
				inExponent = true
				sp.scientific = true
				continue
			}
			sp.prefix = affix.String()
			affix.Reset()
			phase = phaseSuffix
		}

		switch {
		case r == '\'':
			if i+1 < len(runes) && runes[i+1] == '\'' {
				affix.WriteRune('\'')
				i++
				continue
			}
			j := i + 1
			for ; j < len(runes); j++ {
				if runes[j] == '\'' {
					if j+1 < len(runes) && runes[j+1] == '\'' {
						affix.WriteRune('\'')
						j++
						continue
					}
					break
				}
				affix.WriteRune(runes[j])
			}
			if j >= len(runes) {
				return sp, errors.New("unterminated quote")
			}
			i = j
		case r == '%':
			sp.multiplier = 100
			affix.WriteRune(r)
		case r == '‰':
			sp.multiplier = 1000
			affix.WriteRune(r)
		case phase == phasePrefix && strings.ContainsRune("#0,.", r):
			phase = phaseNumber
			i--
		case phase == phaseSuffix && strings.ContainsRune("#0,.E", r):
			return sp, errors.New("malformed pattern: digits after suffix")
		default:
			affix.WriteRune(r)
		}
	}

	switch phase {
	case phasePrefix:
		return sp, errors.New("no digits in pattern")
	case phaseNumber:
		sp.prefix = affix.String()
	default:
		sp.suffix = affix.String()
	}
	if sp.hashInt+sp.zeroInt+sp.zeroFrac+sp.hashFrac == 0 {
		return sp, errors.New("no digits in pattern")
	}
	if inExponent && sp.minExp == 0 {
		return sp, errors.New("exponent without digits")
	}
	if sawGroup {
		if groupCount == 0 {
			return sp, errors.New("grouping separator at end of integer part")
		}
		sp.grouping = groupCount
	}
	sp.decimalShown = inFraction && sp.zeroFrac+sp.hashFrac == 0
	return sp, nil
}

func (p *numberPattern) format(v float64) string {
	neg := v < 0 || (v == 0 && math.Signbit(v))
	abs := math.Abs(v) * p.multiplier

	var body string
	switch {
	case math.IsInf(abs, 0):
		body = "∞"
	case p.scientific:
		body = p.formatScientific(abs)
	default:
		body = p.formatFixed(abs)
	}

	if neg {
		if p.hasNeg {
			return p.negPrefix + body + p.negSuffix
		}
		return "-" + p.posPrefix + body + p.posSuffix
	}
	return p.posPrefix + body + p.posSuffix
}

func (p *numberPattern) formatFixed(abs float64) string {
	s := strconv.FormatFloat(abs, 'f', p.maxFrac, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	frac = trimFraction(frac, p.minFrac)

	if intPart == "0" && p.minInt == 0 {
		intPart = ""
	}
	for len(intPart) < p.minInt {
		intPart = "0" + intPart
	}
	if intPart == "" && frac == "" {
		intPart = "0"
	}
	intPart = group(intPart, p.grouping)

	if frac != "" || p.decimalShown {
		return intPart + "." + frac
	}
	return intPart
}

// formatScientific keeps minInt integer digits, or a multiple-of-maxInt
// exponent when maxInt > minInt and maxInt > 1.
func (p *numberPattern) formatScientific(abs float64) string {
	engineering := p.maxInt > p.minInt && p.maxInt > 1
	sig := p.minInt + p.maxFrac
	if engineering && p.minInt == 0 {
		sig = 1 + p.maxFrac
	}
	if sig < 1 {
		sig = 1
	}

	s := strconv.FormatFloat(abs, 'e', sig-1, 64)
	mant, expStr, _ := strings.Cut(s, "e")
	exp, _ := strconv.Atoi(expStr)
	digits := strings.Replace(mant, ".", "", 1)

	intDigits := p.minInt
	var e int
	switch {
	case abs == 0:
		if engineering || intDigits == 0 {
			intDigits = 1
		}
		e = 0
	case engineering:
		e = floorDiv(exp, p.maxInt) * p.maxInt
		intDigits = exp - e + 1
	default:
		e = exp - intDigits + 1
	}

	for len(digits) < intDigits {
		digits += "0"
	}
	intPart := digits[:intDigits]
	frac := trimFraction(digits[intDigits:], p.minFrac)
	for len(frac) < p.minFrac {
		frac += "0"
	}

	out := intPart
	if frac != "" || p.decimalShown {
		out += "." + frac
	}
	if out == "" {
		out = "0"
	}

	expAbs := e
	sign := ""
	if e < 0 {
		expAbs, sign = -e, "-"
	}
	es := strconv.Itoa(expAbs)
	for len(es) < p.minExp {
		es = "0" + es
	}
	return out + "E" + sign + es
}

func trimFraction(frac string, min int) string {
	for len(frac) > min && frac[len(frac)-1] == '0' {
		frac = frac[:len(frac)-1]
	}
	return frac
}

func group(digits string, size int) string {
	if size <= 0 || len(digits) <= size {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % size
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += size {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+size])
	}
	return b.String()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
