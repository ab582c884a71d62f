package number

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

var realSyntax = regexp.MustCompile(`^[+-]?(\d+/\d+|\d+\.?\d*([eE][+-]?\d+)?|\.\d+([eE][+-]?\d+)?)$`)

// Parse reads a number literal: an optional #e or #i exactness prefix,
// then a real (integer, n/d fraction, decimal with optional exponent,
// +inf.0, -inf.0, +nan.0) or a rectangular complex a+bi. It reports
// false if text is not a number.
func Parse(text string) (Number, bool) {
	var exactness byte
	s := text
	if len(s) >= 2 && s[0] == '#' {
		switch s[1] {
		case 'e', 'E':
			exactness = 'e'
		case 'i', 'I':
			exactness = 'i'
		default:
			return Number{}, false
		}
		s = s[2:]
	}
	if r, ok := parseReal(s, exactness); ok {
		return FromReal(r), true
	}
	if !strings.HasSuffix(s, "i") {
		return Number{}, false
	}
	body := s[:len(s)-1]
	k := imagStart(body)
	if k < 0 {
		return Number{}, false
	}
	re := Real{}
	if k > 0 {
		r, ok := parseReal(body[:k], exactness)
		if !ok {
			return Number{}, false
		}
		re = r
	}
	imText := body[k:]
	if imText == "+" || imText == "-" {
		imText += "1"
	}
	im, ok := parseReal(imText, exactness)
	if !ok {
		return Number{}, false
	}
	return MakeRectangular(re, im), true
}

// imagStart returns the index of the sign that starts the imaginary part,
// skipping signs that belong to an exponent.
func imagStart(body string) int {
	for i := len(body) - 1; i > 0; i-- {
		if (body[i] == '+' || body[i] == '-') && body[i-1] != 'e' && body[i-1] != 'E' {
			return i
		}
	}
	if body != "" && (body[0] == '+' || body[0] == '-') {
		return 0
	}
	return -1
}

func parseReal(s string, exactness byte) (Real, bool) {
	switch s {
	case "+inf.0":
		return RealFloat(math.Inf(1)), exactness != 'e'
	case "-inf.0":
		return RealFloat(math.Inf(-1)), exactness != 'e'
	case "+nan.0", "-nan.0":
		return RealFloat(math.NaN()), exactness != 'e'
	}
	if !realSyntax.MatchString(s) {
		return Real{}, false
	}
	decimal := strings.ContainsAny(s, ".eE")
	if exactness == 'e' || (exactness == 0 && !decimal) {
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			return Real{}, false
		}
		return Real{r: r}, true
	}
	if strings.Contains(s, "/") {
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			return Real{}, false
		}
		f, _ := r.Float64()
		return RealFloat(f), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !math.IsInf(f, 0) {
		return Real{}, false
	}
	return RealFloat(f), true
}
