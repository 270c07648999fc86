package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eaip/passport-core/pkg/core/domain"
)

// Cell normalization for spreadsheet-shaped input. Uploaded workbooks mix
// numeric cells with strings carrying locale formatting: thin or regular
// spaces as thousand separators, NBSP, comma as the decimal mark.

// NormalizeNumber coerces a cell value into a float64. String cells are
// stripped of space-like separators and the decimal comma is replaced
// before parsing. Empty strings and non-numeric cells report false.
func NormalizeNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		s = strings.NewReplacer(" ", "", " ", "", " ", "", ",", ".").Replace(s)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// NormalizeMonth resolves a cell to a month number 1..12. Accepts bare
// numbers and localized month names, including truncated forms frequently
// seen in audit templates (янв, фев).
func NormalizeMonth(v any, aliases map[string]int) (int, bool) {
	if aliases == nil {
		aliases = domain.DefaultMonthAliases()
	}
	switch m := v.(type) {
	case int:
		if m >= 1 && m <= 12 {
			return m, true
		}
		return 0, false
	case float64:
		n := int(m)
		if float64(n) == m && n >= 1 && n <= 12 {
			return n, true
		}
		return 0, false
	case string:
		s := strings.ToLower(strings.TrimSpace(m))
		if s == "" {
			return 0, false
		}
		if n, err := strconv.Atoi(s); err == nil {
			if n >= 1 && n <= 12 {
				return n, true
			}
			return 0, false
		}
		for alias, n := range aliases {
			// Matches both "январь 2023" and the truncated "янв".
			if strings.HasPrefix(s, alias) || (len([]rune(s)) >= 3 && strings.HasPrefix(alias, s)) {
				return n, true
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

// MonthToQuarter maps a month 1..12 onto its calendar quarter.
func MonthToQuarter(month int) int {
	return (month-1)/3 + 1
}

// QuarterKey renders the canonical period key, e.g. "2023-Q1".
func QuarterKey(year, quarter int) string {
	return fmt.Sprintf("%d-Q%d", year, quarter)
}

// MonthKey renders the canonical monthly key, e.g. "2023-05".
func MonthKey(year, month int) string {
	return fmt.Sprintf("%d-%02d", year, month)
}

// YearMarker reports whether a cell is a bare year inside the accepted
// window. Templates with month-number rows carry the year as a standalone
// section header above them.
func YearMarker(v any, minYear, maxYear int) (int, bool) {
	var year int
	switch y := v.(type) {
	case int:
		year = y
	case float64:
		if float64(int(y)) != y {
			return 0, false
		}
		year = int(y)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(y))
		if err != nil {
			return 0, false
		}
		year = n
	default:
		return 0, false
	}
	if year < minYear || year > maxYear {
		return 0, false
	}
	return year, true
}

// QuarterLabel recognizes quarter row labels: "q1".."q4", "1 квартал",
// "квартал 2". Reports the quarter number on match.
func QuarterLabel(v any) (int, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 2 && s[0] == 'q' && s[1] >= '1' && s[1] <= '4' {
		return int(s[1] - '0'), true
	}
	if strings.Contains(s, "квартал") {
		for q := 1; q <= 4; q++ {
			if strings.Contains(s, strconv.Itoa(q)) {
				return q, true
			}
		}
	}
	return 0, false
}
