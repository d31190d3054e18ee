package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const isoLayout = "2006-01-02"

var (
	isoDatePattern   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	slashDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	dashDatePattern  = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
	serialPattern    = regexp.MustCompile(`^(\d{5})(\.\d+)?$`)

	fallbackDateLayouts = []string{
		"2006/01/02",
		"2006/1/2",
		"2 Jan 2006",
		"2 January 2006",
		"2-Jan-2006",
		"Jan 2, 2006",
		"January 2, 2006",
		"Mon, 2 Jan 2006",
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}

	spreadsheetEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
)

// NormalizeDate returns raw as an ISO YYYY-MM-DD date. Day-first patterns are
// chosen explicitly; there is no locale guessing between DD and MM.
func NormalizeDate(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if m := isoDatePattern.FindStringSubmatch(raw); m != nil {
		return calendarDate(m[1], m[2], m[3])
	}
	if m := slashDatePattern.FindStringSubmatch(raw); m != nil {
		return calendarDate(m[3], m[2], m[1])
	}
	if m := dashDatePattern.FindStringSubmatch(raw); m != nil {
		return calendarDate(m[3], m[2], m[1])
	}

	for _, layout := range fallbackDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			s := t.Format(isoLayout)
			return &s
		}
	}

	// Unformatted spreadsheet cells carry dates as day serials.
	if m := serialPattern.FindStringSubmatch(raw); m != nil {
		days, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		s := spreadsheetEpoch.AddDate(0, 0, days).Format(isoLayout)
		return &s
	}

	return nil
}

func calendarDate(year, month, day string) *string {
	y, errY := strconv.Atoi(year)
	m, errM := strconv.Atoi(month)
	d, errD := strconv.Atoi(day)
	if errY != nil || errM != nil || errD != nil || y < 1 {
		return nil
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return nil
	}
	s := t.Format(isoLayout)
	return &s
}

var numberCleaner = strings.NewReplacer("$", "", ",", "", " ", "")

// NormalizeNumber strips currency symbols and thousands separators and parses
// the rest as a finite float.
func NormalizeNumber(raw string) *float64 {
	cleaned := numberCleaner.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func NormalizeInt(raw string) *int {
	v := NormalizeNumber(raw)
	if v == nil || *v != math.Trunc(*v) || *v > math.MaxInt32 || *v < math.MinInt32 {
		return nil
	}
	n := int(*v)
	return &n
}

// TitleCase lowercases raw and capitalizes each whitespace-delimited token.
func TitleCase(raw string) string {
	tokens := strings.Fields(strings.ToLower(raw))
	for i, token := range tokens {
		r, size := utf8.DecodeRuneInString(token)
		tokens[i] = string(unicode.ToTitle(r)) + token[size:]
	}
	return strings.Join(tokens, " ")
}

// NormalizeEnum maps raw onto the closed vocabulary, ignoring case and
// punctuation. An unmatched non-blank value, punctuation-only included, is
// replaced by def and reported through the second return value; a blank
// value takes def silently.
func NormalizeEnum(raw string, vocabulary []string, def string) (string, bool) {
	if strings.TrimSpace(raw) == "" {
		return def, false
	}
	key := NormalizeKey(raw)
	if key == "" {
		return def, true
	}
	for _, v := range vocabulary {
		if NormalizeKey(v) == key {
			return v, false
		}
	}
	return def, true
}

// NormalizePhone keeps digits and a leading plus sign.
func NormalizePhone(raw string) *string {
	var b strings.Builder
	digits := 0
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			digits++
		}
	}
	if digits < 7 {
		return nil
	}
	s := b.String()
	return &s
}

// NormalizeEmail lowercases raw and returns nil unless it is a valid address.
func NormalizeEmail(raw string) *string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || !ValidEmail(email) {
		return nil
	}
	return &email
}

// Text trims raw and returns nil when nothing is left.
func Text(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}

// SplitAddress splits "street, suburb" on the first comma. It is a best-effort
// heuristic: ok is false when there is no comma or no suburb after it.
func SplitAddress(address string) (street, suburb string, ok bool) {
	head, tail, found := strings.Cut(address, ",")
	if !found {
		return strings.TrimSpace(address), "", false
	}
	street = strings.TrimSpace(head)
	if next, _, more := strings.Cut(tail, ","); more {
		tail = next
	}
	suburb = strings.TrimSpace(tail)
	return street, suburb, suburb != ""
}
