package receipt

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/anoushkasinn/Spend.Sense/internal/model"
)

var (
	numericDate = regexp.MustCompile(`(\d{1,2})[/\-](\d{1,2})[/\-](\d{2,4})`)
	namedDate   = regexp.MustCompile(`(?i)(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+(\d{2,4})`)
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// FindDate returns the first date-looking text, numeric forms first.
func FindDate(text string) (raw string, day, month, year string, ok bool) {
	if m := numericDate.FindStringSubmatch(text); m != nil {
		return m[0], m[1], m[2], m[3], true
	}
	if m := namedDate.FindStringSubmatch(text); m != nil {
		return m[0], m[1], m[2], m[3], true
	}
	return "", "", "", "", false
}

// ExtractDate finds the first date in text and parses it day-first. The raw
// match is returned even when it does not name a real calendar day.
func ExtractDate(text string) (*model.Date, string) {
	raw, dayStr, monthStr, yearStr, ok := FindDate(text)
	if !ok {
		return nil, ""
	}

	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return nil, raw
	}

	var month time.Month
	if n, err := strconv.Atoi(monthStr); err == nil {
		month = time.Month(n)
	} else {
		month = monthsByPrefix[strings.ToLower(monthStr[:3])]
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil, raw
	}
	switch len(yearStr) {
	case 2:
		year += 2000
	case 4:
	default:
		return nil, raw
	}

	if month < time.January || month > time.December || day < 1 {
		return nil, raw
	}
	d := model.NewDate(year, month, day)
	// time.Date normalizes overflow such as 31/02; reject it instead.
	if d.Day() != day || d.Month() != month {
		return nil, raw
	}
	return &d, raw
}
