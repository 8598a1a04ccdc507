package util

import (
    "strconv"
    "time"
)

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t, true
    }
    if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
        return t, true
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
        return time.Unix(ts, 0), true
    }
    return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
    if t, ok := ParseTime(s); ok {
        return t
    }
    return def
}

// DayKey maps an epoch-seconds timestamp to its UTC day index, so bars from
// different intraday offsets land on the same calendar day.
func DayKey(ts int64) int64 {
    return ts / 86400
}

// IsWeekend reports whether t falls on Saturday or Sunday (UTC).
func IsWeekend(t time.Time) bool {
    wd := t.UTC().Weekday()
    return wd == time.Saturday || wd == time.Sunday
}
