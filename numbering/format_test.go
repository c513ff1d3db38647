package numbering

import "testing"

func TestFormatValue(t *testing.T) {
	tests := []struct {
		format Format
		n      int
		want   string
	}{
		{FormatDecimal, 1, "1"},
		{FormatDecimal, 42, "42"},
		{FormatLowerRoman, 1, "i"},
		{FormatLowerRoman, 4, "iv"},
		{FormatLowerRoman, 9, "ix"},
		{FormatLowerRoman, 40, "xl"},
		{FormatLowerRoman, 1994, "mcmxciv"},
		{FormatUpperRoman, 2024, "MMXXIV"},
		{FormatLowerRoman, 0, "0"},
		{FormatUpperRoman, -3, "-3"},
		{FormatLowerLetter, 1, "a"},
		{FormatLowerLetter, 26, "z"},
		{FormatLowerLetter, 27, "aa"},
		{FormatLowerLetter, 28, "ab"},
		{FormatLowerLetter, 52, "az"},
		{FormatLowerLetter, 53, "ba"},
		{FormatLowerLetter, 702, "zz"},
		{FormatLowerLetter, 703, "aaa"},
		{FormatUpperLetter, 3, "C"},
		{FormatUpperLetter, 0, "0"},
		{FormatOrdinal, 1, "1st"},
		{FormatOrdinal, 2, "2nd"},
		{FormatOrdinal, 3, "3rd"},
		{FormatOrdinal, 4, "4th"},
		{FormatOrdinal, 11, "11th"},
		{FormatOrdinal, 12, "12th"},
		{FormatOrdinal, 13, "13th"},
		{FormatOrdinal, 21, "21st"},
		{FormatOrdinal, 112, "112th"},
		{FormatOrdinal, 123, "123rd"},
		{FormatOrdinalText, 1, "First"},
		{FormatOrdinalText, 20, "Twentieth"},
		{FormatOrdinalText, 21, "21st"},
		{FormatCardinalText, 3, "Three"},
		{FormatCardinalText, 20, "Twenty"},
		{FormatCardinalText, 21, "21"},
		{FormatCardinalText, 0, "0"},
		{FormatDecimalZero, 1, "01"},
		{FormatDecimalZero, 10, "10"},
		{FormatDecimalZero, 100, "100"},
		{FormatNone, 5, ""},
		{FormatBullet, 5, ""},
		{FormatDecimalEnclosedParen, 2, "(2)"},
		{FormatDecimalEnclosedCircle, 1, "①"},
		{FormatDecimalEnclosedCircle, 21, "21"},
		{FormatNumberInDash, 7, "- 7 -"},
		{FormatChicago, 1, "*"},
		{FormatChicago, 4, "§"},
		{FormatChicago, 5, "**"},
		{Format("hebrew2"), 7, "7"},
		{Format(""), 7, "7"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format)+"/"+tt.want, func(t *testing.T) {
			if got := FormatValue(tt.format, tt.n); got != tt.want {
				t.Errorf("FormatValue(%s, %d) = %q, want %q", tt.format, tt.n, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, ok := ParseFormat("upperRoman"); !ok || f != FormatUpperRoman {
		t.Errorf("ParseFormat(upperRoman) = %v, %v", f, ok)
	}
	if f, ok := ParseFormat("japaneseCounting"); ok || f != FormatDecimal {
		t.Errorf("ParseFormat(japaneseCounting) = %v, %v; want decimal, false", f, ok)
	}
}
