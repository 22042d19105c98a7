package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var yearRe = regexp.MustCompile(`(19|20)\d{2}`)

var monthIndex = map[string]int{
	"JANUARY":   0,
	"FEBRUARY":  1,
	"MARCH":     2,
	"APRIL":     3,
	"MAY":       4,
	"JUNE":      5,
	"JULY":      6,
	"AUGUST":    7,
	"SEPTEMBER": 8,
	"OCTOBER":   9,
	"NOVEMBER":  10,
	"DECEMBER":  11,
}

// ParseDispensingMonth normalizes a free-text dispensing month cell such
// as "January 2025" or "DECEMBER" into an uppercase month name and a
// four-digit year. When the cell omits the year it is inferred from now:
// a month later in the calendar than the current one can only refer to
// the previous year, since schedules are issued after the month they
// cover. Schedules older than ~11 months are mis-dated by this rule; the
// template gives nothing better to go on.
func ParseDispensingMonth(raw string, now time.Time) (string, int) {
	fields := strings.Fields(strings.TrimSpace(raw))
	month := ""
	if len(fields) > 0 {
		month = strings.ToUpper(fields[0])
	}

	if m := yearRe.FindString(raw); m != "" {
		year, _ := strconv.Atoi(m)
		return month, year
	}

	currentYear := now.Year()
	idx, known := monthIndex[month]
	if !known {
		return month, currentYear
	}
	if idx > int(now.Month())-1 {
		return month, currentYear - 1
	}
	return month, currentYear
}
