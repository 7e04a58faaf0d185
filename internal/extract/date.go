package extract

import (
	"strconv"
	"strings"
	"time"
)

// Genitive month names as they appear in the site's date blocks.
var monthsGenitive = map[string]time.Month{
	"января":   time.January,
	"февраля":  time.February,
	"марта":    time.March,
	"апреля":   time.April,
	"мая":      time.May,
	"июня":     time.June,
	"июля":     time.July,
	"августа":  time.August,
	"сентября": time.September,
	"октября":  time.October,
	"ноября":   time.November,
	"декабря":  time.December,
}

// NormalizeDate parses a Russian locale-formatted date string such as
// "2 мая 2024, 15:30" or "02 мая 2024 г." into a UTC time. The time of day
// is optional. Unparsable input yields ok=false rather than a fabricated
// date.
func NormalizeDate(raw string) (time.Time, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	cleaned = strings.NewReplacer(",", " ", "г.", " ").Replace(cleaned)
	fields := strings.Fields(cleaned)
	if len(fields) < 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(fields[0])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	month, ok := monthsGenitive[fields[1]]
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(fields[2])
	if err != nil || year < 1900 {
		return time.Time{}, false
	}

	hour, minute := 0, 0
	if len(fields) >= 4 {
		if h, m, ok := parseClock(fields[3]); ok {
			hour, minute = h, m
		}
	}

	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC), true
}

func parseClock(raw string) (int, int, bool) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
