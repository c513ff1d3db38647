package numbering

import (
	"fmt"
	"strconv"
	"strings"
)

// Format is a numeral format (w:numFmt).
type Format string

const (
	FormatDecimal                 Format = "decimal"
	FormatLowerRoman              Format = "lowerRoman"
	FormatUpperRoman              Format = "upperRoman"
	FormatLowerLetter             Format = "lowerLetter"
	FormatUpperLetter             Format = "upperLetter"
	FormatBullet                  Format = "bullet"
	FormatOrdinal                 Format = "ordinal"
	FormatOrdinalText             Format = "ordinalText"
	FormatCardinalText            Format = "cardinalText"
	FormatDecimalZero             Format = "decimalZero"
	FormatNone                    Format = "none"
	FormatDecimalEnclosedParen    Format = "decimalEnclosedParen"
	FormatDecimalEnclosedFullstop Format = "decimalEnclosedFullstop"
	FormatDecimalEnclosedCircle   Format = "decimalEnclosedCircle"
	FormatNumberInDash            Format = "numberInDash"
	FormatChicago                 Format = "chicago"
)

// decimalZeroWidth is the minimum width of decimalZero numbers.
const decimalZeroWidth = 2

var known = map[Format]bool{
	FormatDecimal: true, FormatLowerRoman: true, FormatUpperRoman: true,
	FormatLowerLetter: true, FormatUpperLetter: true, FormatBullet: true,
	FormatOrdinal: true, FormatOrdinalText: true, FormatCardinalText: true,
	FormatDecimalZero: true, FormatNone: true,
	FormatDecimalEnclosedParen: true, FormatDecimalEnclosedFullstop: true,
	FormatDecimalEnclosedCircle: true, FormatNumberInDash: true, FormatChicago: true,
}

// ParseFormat maps a w:numFmt value to a Format. Unknown or empty names
// fall back to decimal; ok reports whether the name was recognised.
func ParseFormat(s string) (f Format, ok bool) {
	f = Format(s)
	if known[f] {
		return f, true
	}
	return FormatDecimal, false
}

// FormatValue renders n in format f. Bullet and none render as empty
// strings since their marker text comes from the level template.
func FormatValue(f Format, n int) string {
	switch f {
	case FormatDecimal:
		return strconv.Itoa(n)
	case FormatLowerRoman:
		return roman(n, false)
	case FormatUpperRoman:
		return roman(n, true)
	case FormatLowerLetter:
		return letters(n, false)
	case FormatUpperLetter:
		return letters(n, true)
	case FormatOrdinal:
		return ordinal(n)
	case FormatOrdinalText:
		if n >= 1 && n <= len(ordinalWords) {
			return ordinalWords[n-1]
		}
		return ordinal(n)
	case FormatCardinalText:
		if n >= 1 && n <= len(cardinalWords) {
			return cardinalWords[n-1]
		}
		return strconv.Itoa(n)
	case FormatDecimalZero:
		if n < 0 {
			return strconv.Itoa(n)
		}
		return fmt.Sprintf("%0*d", decimalZeroWidth, n)
	case FormatDecimalEnclosedParen:
		return "(" + strconv.Itoa(n) + ")"
	case FormatDecimalEnclosedFullstop:
		return strconv.Itoa(n) + "."
	case FormatDecimalEnclosedCircle:
		if n >= 1 && n <= 20 {
			return string(rune(0x2460 + n - 1))
		}
		return strconv.Itoa(n)
	case FormatNumberInDash:
		return "- " + strconv.Itoa(n) + " -"
	case FormatChicago:
		return chicago(n)
	case FormatBullet, FormatNone:
		return ""
	}
	return strconv.Itoa(n)
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// roman encodes n with subtractive notation. Values below 1 fall back to
// decimal.
func roman(n int, upper bool) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var sb strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			sb.WriteString(r.symbol)
			n -= r.value
		}
	}
	if upper {
		return strings.ToUpper(sb.String())
	}
	return sb.String()
}

// letters encodes n in bijective base 26: 1 -> a, 26 -> z, 27 -> aa.
func letters(n int, upper bool) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	base := byte('a')
	if upper {
		base = 'A'
	}
	var buf []byte
	for n > 0 {
		n--
		buf = append(buf, base+byte(n%26))
		n /= 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

func ordinal(n int) string {
	suffix := "th"
	abs := n
	if abs < 0 {
		abs = -abs
	}
	switch abs % 100 {
	case 11, 12, 13:
	default:
		switch abs % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// chicago cycles *, †, ‡, § and doubles the symbol every pass.
func chicago(n int) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	symbols := []string{"*", "†", "‡", "§"}
	return strings.Repeat(symbols[(n-1)%4], (n-1)/4+1)
}

var cardinalWords = []string{
	"One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten",
	"Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen",
	"Eighteen", "Nineteen", "Twenty",
}

var ordinalWords = []string{
	"First", "Second", "Third", "Fourth", "Fifth", "Sixth", "Seventh", "Eighth",
	"Ninth", "Tenth", "Eleventh", "Twelfth", "Thirteenth", "Fourteenth",
	"Fifteenth", "Sixteenth", "Seventeenth", "Eighteenth", "Nineteenth", "Twentieth",
}
