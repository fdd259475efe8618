package xl

import (
	"time"

	"github.com/xuri/nfp"
)

// excelEpoch is the day immediately before the 1900 date system begins
// (serial 1 == 1900-01-01, so excelEpoch itself is serial 0 == 1899-12-31).
var excelEpoch = time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)

// XLDateTime converts between the SpreadsheetML 1900-date-system serial
// day count and a calendar time. The 1900 system has the well-known
// 1900-02-29 anomaly: Excel treats 1900 as a leap year, so serial 60
// nominally falls on a date that never existed (its real-calendar
// equivalent collapses onto 1900-02-28, serial 59). Any serial >= 60 is
// shifted back one day before the calendar conversion, then back, so
// that 1900-03-01 correctly comes out as serial 61.
type XLDateTime struct {
	t time.Time
}

// NewXLDateTime wraps a calendar time as an XLDateTime.
func NewXLDateTime(t time.Time) XLDateTime { return XLDateTime{t: t.UTC()} }

// Time returns the wrapped calendar time.
func (d XLDateTime) Time() time.Time { return d.t }

// Serial returns the 1900-date-system day-count (with a fractional part
// for the time of day) for this date.
func (d XLDateTime) Serial() float64 {
	t := d.t
	days := float64(t.Sub(excelEpoch)) / float64(24*time.Hour)
	if days >= 60 {
		days++ // reinsert the phantom Feb 29 1900 slot
	}
	return days
}

// SerialToXLDateTime converts a 1900-date-system serial value (integer
// part is the day count, fractional part is the time of day) to a
// calendar time.
func SerialToXLDateTime(serial float64) XLDateTime {
	adj := serial
	if serial >= 60 {
		adj-- // skip the non-existent 1900-02-29
	}
	whole := int64(adj)
	frac := adj - float64(whole)
	t := excelEpoch.Add(time.Duration(whole) * 24 * time.Hour)
	if frac > 0 {
		t = t.Add(time.Duration(frac*24*60*60*1e9) * time.Nanosecond)
	}
	return NewXLDateTime(t)
}

// builtin number-format ids that ECMA-376 reserves for date/time display.
var builtinDateFormatIDs = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// IsDateFormat reports whether a cell's number format (built-in id, or a
// custom code when id falls outside the reserved built-in range) denotes
// a date/time display, per spec.md's "Date" encoding rule.
func IsDateFormat(numFmtID int, code string) bool {
	if builtinDateFormatIDs[numFmtID] {
		return true
	}
	if numFmtID != 0 && numFmtID < 164 {
		// reserved built-in id that isn't one of the date ones above
		return false
	}
	if code == "" {
		return false
	}
	if dt, ok := tokenizeIsDate(code); ok {
		return dt
	}
	return scanDateTokens(code)
}

// tokenizeIsDate asks xuri/nfp's format-code tokenizer whether any section
// of the code contains date/time tokens. Returns ok=false if the code
// fails to tokenize into any section, in which case the caller falls back
// to scanDateTokens.
func tokenizeIsDate(code string) (isDate bool, ok bool) {
	ps := nfp.NumberFormatParser()
	sections := ps.Parse(code)
	if len(sections) == 0 {
		return false, false
	}
	for _, sec := range sections {
		for _, tok := range sec.Items {
			if tok.TType == nfp.TokenTypeDateTimes {
				return true, true
			}
		}
	}
	return false, true
}

// scanDateTokens is the hand-scanned fallback, mirroring the widely used
// approach of scanning unquoted, non-bracketed format code characters for
// date/time tokens (d, m, y, h, s) while skipping literal text in quotes
// and escape/color/condition segments in brackets.
func scanDateTokens(code string) bool {
	inQuotes := false
	inBrackets := false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == '[':
			inBrackets = true
		case ch == ']':
			inBrackets = false
		case inQuotes || inBrackets:
			// skip
		case ch == '\\' && i+1 < len(code):
			i++ // skip escaped literal
		default:
			switch ch {
			case 'd', 'D', 'm', 'M', 'y', 'Y', 'h', 'H', 's', 'S':
				return true
			case 'g', 'G', '0', '#', '?', '%', '@':
				// numeric/general/text tokens: keep scanning, not decisive
			}
		}
	}
	return false
}
