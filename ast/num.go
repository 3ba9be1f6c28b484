package ast

import (
	"math"
	"strconv"
	"strings"
)

// NewNum builds a numeric literal from its source lexeme. A lexeme with a
// decimal point is a floating literal; anything else is an integer.
func NewNum(lexeme string) (*Num, error) {
	if strings.Contains(lexeme, ".") {
		f, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return nil, err
		}
		return &Num{Kind: NumFloat, Float: f, Text: formatFloat(f)}, nil
	}
	i, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return nil, err
	}
	return &Num{Kind: NumInt, Int: i, Text: strconv.FormatInt(i, 10)}, nil
}

// formatFloat always keeps a fractional part so that 3.0 is not confused
// with the integer 3. Magnitudes from 1e16 up and below 1e-4 use exponent
// form, e.g. 1e+20.
func formatFloat(f float64) string {
	if abs := math.Abs(f); abs >= 1e16 || (abs != 0 && abs < 1e-4) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}
