package civil

import (
	"fmt"
	"strings"
	"time"
)

const (
	// Layout is the local civil form used in all user-facing fields.
	Layout = "2006-01-02 15:04:05"

	// DateLayout is the date-only form accepted for all-day dates.
	DateLayout = "2006-01-02"

	// remoteLayout is the wire form the Dida365 API expects on writes.
	remoteLayout = "2006-01-02T15:04:05.000-0700"
)

// Beijing is the fixed civil zone for all conversions. Dida365 is a Chinese
// service; it has no daylight saving rules.
var Beijing = time.FixedZone("Asia/Shanghai", 8*60*60)

// Now returns the current time in the Beijing civil zone, regardless of the
// host process's local zone.
func Now() time.Time {
	return time.Now().In(Beijing)
}

// ToRemote converts a local civil string ("YYYY-MM-DD" or
// "YYYY-MM-DD HH:MM:SS") into the wire form with a +0800 marker. A missing
// time component defaults to midnight. Input that cannot be parsed is
// returned unchanged.
func ToRemote(s string) string {
	if s == "" {
		return s
	}

	var t time.Time
	var err error
	if strings.Contains(s, " ") && len(s) > len(DateLayout) {
		t, err = time.ParseInLocation(Layout, s, Beijing)
	} else {
		t, err = time.ParseInLocation(DateLayout, s, Beijing)
	}
	if err != nil {
		return s
	}

	return t.Format(remoteLayout)
}

// FromRemote converts a wire timestamp into the local civil form. Fractional
// seconds are discarded. A UTC marker (Z or +0000) shifts the value into
// Beijing time; a +0800 marker is taken as already local. Input that cannot
// be parsed is returned unchanged.
func FromRemote(s string) string {
	if s == "" {
		return s
	}

	t, ok := Parse(s)
	if !ok {
		return s
	}

	return t.Format(Layout)
}

// Parse accepts either the wire form or the local civil form (disambiguated
// by the presence of a 'T' separator) and returns the instant in the Beijing
// zone. The second return value reports whether parsing succeeded.
func Parse(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	// Local form: "YYYY-MM-DD HH:MM:SS".
	if strings.Contains(s, " ") && !strings.Contains(s, "T") {
		t, err := time.ParseInLocation(Layout, s, Beijing)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	isUTC := strings.Contains(s, "+0000") || strings.HasSuffix(s, "Z")
	isBeijing := strings.Contains(s, "+0800")

	clean := s
	if i := strings.Index(clean, "."); i >= 0 {
		clean = clean[:i]
	}
	clean = strings.NewReplacer("+0800", "", "+0000", "", "Z", "").Replace(clean)

	datePart, timePart, _ := strings.Cut(clean, "T")
	if timePart == "" {
		timePart = "00:00:00"
	}
	if strings.Count(timePart, ":") == 1 {
		timePart += ":00"
	}

	t, err := time.ParseInLocation(Layout, datePart+" "+timePart, Beijing)
	if err != nil {
		return time.Time{}, false
	}

	if isUTC && !isBeijing {
		t = t.Add(8 * time.Hour)
	}

	return t, true
}

// FormatDueDate converts a due date like FromRemote, with one domain rule on
// top: the API stores an all-day due date as midnight of the following day,
// so a value landing exactly on local midnight is advanced by one day.
// Input that cannot be parsed is returned unchanged.
func FormatDueDate(s string) string {
	if s == "" {
		return s
	}

	t, ok := Parse(s)
	if !ok {
		return s
	}

	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		t = t.AddDate(0, 0, 1)
	}

	return t.Format(Layout)
}

// IsToday reports whether the date portion of s falls on today's Beijing
// date. Unparseable input is never today.
func IsToday(s string) bool {
	return IsTodayAt(s, time.Now())
}

// IsYesterday reports whether the date portion of s falls on yesterday's
// Beijing date.
func IsYesterday(s string) bool {
	return IsYesterdayAt(s, time.Now())
}

// WithinLast7Days reports whether the date portion of s is on or after the
// Beijing date seven days ago. Today is inclusive; there is no upper bound.
func WithinLast7Days(s string) bool {
	return WithinLast7DaysAt(s, time.Now())
}

// IsTodayAt is IsToday with an explicit reference time.
func IsTodayAt(s string, now time.Time) bool {
	t, ok := Parse(s)
	if !ok {
		return false
	}
	return DateOnly(t).Equal(DateOnly(now))
}

// IsYesterdayAt is IsYesterday with an explicit reference time.
func IsYesterdayAt(s string, now time.Time) bool {
	t, ok := Parse(s)
	if !ok {
		return false
	}
	return DateOnly(t).Equal(DateOnly(now).AddDate(0, 0, -1))
}

// WithinLast7DaysAt is WithinLast7Days with an explicit reference time.
func WithinLast7DaysAt(s string, now time.Time) bool {
	t, ok := Parse(s)
	if !ok {
		return false
	}
	return !DateOnly(t).Before(DateOnly(now).AddDate(0, 0, -7))
}

// DateOnly truncates t to midnight of its Beijing calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.In(Beijing).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, Beijing)
}

// FormatFriendly renders a timestamp as a relative age ("just now",
// "5 minutes ago", ...) and falls back to the absolute date once the value
// is a week old. Unparseable input is returned unchanged; empty input stays
// empty.
func FormatFriendly(s string) string {
	return formatFriendlyAt(s, time.Now())
}

func formatFriendlyAt(s string, now time.Time) string {
	if s == "" {
		return ""
	}

	t, ok := Parse(s)
	if !ok {
		return s
	}

	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}

	return t.In(Beijing).Format(DateLayout)
}
