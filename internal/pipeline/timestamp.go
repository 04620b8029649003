package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"solar_telemetry"
)

// Accepted raw time shapes, e.g. "25/08/01,22:48:08-20" (yy/mm/dd) or
// "2025/08/01,22:48:08". Trailing characters after the seconds field are
// ignored. The date-only sibling lets a record with a broken time but a
// well-formed date still group by day.
var (
	timestampRe = regexp.MustCompile(`(\d{2,4})/(\d{2})/(\d{2}),(\d{2}):(\d{2}):(\d{2})`)
	dateRe      = regexp.MustCompile(`(\d{2,4})/(\d{2})/(\d{2})`)
	timeOfDayRe = regexp.MustCompile(`,(\d{2}:\d{2}:\d{2})`)
	isoDateRe   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

// expandYear prefixes two-digit years with "20". No other century logic.
func expandYear(y string) string {
	if len(y) == 2 {
		return "20" + y
	}
	return y
}

// ToInstant parses the raw time text into a tagged instant. Fields are
// taken as local wall-clock values, no timezone conversion. Text that
// does not match yields Known=false with a zero Wall value.
func ToInstant(text string) solar_telemetry.Instant {
	m := timestampRe.FindStringSubmatch(text)
	if m == nil {
		return solar_telemetry.Instant{}
	}
	year, _ := strconv.Atoi(expandYear(m[1]))
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	second, _ := strconv.Atoi(m[6])

	return solar_telemetry.Instant{
		Wall:  time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local),
		Known: true,
	}
}

// ToDateKey derives the canonical YYYY-MM-DD grouping key. Text without
// a parseable date triplet maps to the sentinel unknown-date key.
func ToDateKey(text string) string {
	m := dateRe.FindStringSubmatch(text)
	if m == nil {
		return solar_telemetry.UnknownDateKey
	}
	return fmt.Sprintf("%s-%s-%s", expandYear(m[1]), m[2], m[3])
}

// TimeOfDay extracts the HH:MM:SS component of the raw time text, or ""
// when absent.
func TimeOfDay(text string) string {
	m := timeOfDayRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// DisplayDate renders an ISO date key as DD/MM/YYYY for labels. The
// sentinel key passes through unchanged.
func DisplayDate(dateKey string) string {
	m := isoDateRe.FindStringSubmatch(dateKey)
	if m == nil {
		return dateKey
	}
	return fmt.Sprintf("%s/%s/%s", m[3], m[2], m[1])
}
