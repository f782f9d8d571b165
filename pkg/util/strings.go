package util

import (
	"strconv"
	"strings"
)

// ParseFloat parses a numeric CSV cell. Thousands separators and
// surrounding whitespace are tolerated; blanks and dashes read as missing.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || strings.EqualFold(s, "n/a") {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
