package extract

import (
	"strings"
	"time"
)

// Thai month tables. Receipt emails from Thai-localized vendors carry dates
// with either the full month name or the dotted abbreviation; both map to the
// same month number.
var thaiMonthFull = map[string]string{
	"มกราคม":     "Jan",
	"กุมภาพันธ์": "Feb",
	"มีนาคม":     "Mar",
	"เมษายน":     "Apr",
	"พฤษภาคม":    "May",
	"มิถุนายน":   "Jun",
	"กรกฎาคม":    "Jul",
	"สิงหาคม":    "Aug",
	"กันยายน":    "Sep",
	"ตุลาคม":     "Oct",
	"พฤศจิกายน":  "Nov",
	"ธันวาคม":    "Dec",
}

var thaiMonthAbbrev = map[string]string{
	"ม.ค.":  "Jan",
	"ก.พ.":  "Feb",
	"มี.ค.": "Mar",
	"เม.ย.": "Apr",
	"พ.ค.":  "May",
	"มิ.ย.": "Jun",
	"ก.ค.":  "Jul",
	"ส.ค.":  "Aug",
	"ก.ย.":  "Sep",
	"ต.ค.":  "Oct",
	"พ.ย.":  "Nov",
	"ธ.ค.":  "Dec",
}

// normalizeThaiMonths rewrites any Thai month name or abbreviation in s to
// its English three-letter form so the string parses with a standard layout.
// Full names go first: the dotted abbreviations never collide with them, but
// a longer match must not be clipped by a shorter one.
func normalizeThaiMonths(s string) string {
	for th, en := range thaiMonthFull {
		if strings.Contains(s, th) {
			return strings.Replace(s, th, en, 1)
		}
	}
	for th, en := range thaiMonthAbbrev {
		if strings.Contains(s, th) {
			return strings.Replace(s, th, en, 1)
		}
	}
	return s
}

// parseVendorDate parses a matched date string against a known layout,
// translating Thai month names first. Malformed input is never an error at
// this level: the caller keeps its seed date when ok is false.
func parseVendorDate(value, layout string) (t time.Time, ok bool) {
	value = strings.TrimSpace(normalizeThaiMonths(value))
	parsed, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
