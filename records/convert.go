package records

import (
	"strconv"
	"strings"
	"time"
)

// Date layouts accepted by parseDate, unambiguous 4-digit-year forms first.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"Jan 2, 2006",
}

// cleanNumber strips the formatting found in exported spreadsheets before
// numeric parsing: currency symbols, thousands separators, and accounting
// negatives like "(123.45)".
func cleanNumber(s string) string {
	s = strings.TrimSpace(s)

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if neg && s != "" {
		s = "-" + s
	}
	return s
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(cleanNumber(s))
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(cleanNumber(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
