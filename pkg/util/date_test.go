package util

import (
    "strconv"
    "testing"
    "time"
)

func TestParseTimeRFC3339(t *testing.T) {
    s := "2024-10-10T10:10:10Z"
    got, ok := ParseTime(s)
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.UTC().Format(time.RFC3339) != s {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParseTimeUnix(t *testing.T) {
    ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
    got, ok := ParseTime(strconv.FormatInt(ts, 10))
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Unix() != ts {
        t.Fatalf("unexpected unix %v", got.Unix())
    }
}

func TestParseTimeDefault(t *testing.T) {
    def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
    got := ParseTimeDefault("", def)
    if !got.Equal(def) {
        t.Fatalf("expected default")
    }
}

func TestDayKeySameDay(t *testing.T) {
    morning := time.Date(2024, 10, 10, 1, 0, 0, 0, time.UTC).Unix()
    evening := time.Date(2024, 10, 10, 23, 0, 0, 0, time.UTC).Unix()
    if DayKey(morning) != DayKey(evening) {
        t.Fatalf("expected same day key")
    }
    nextDay := time.Date(2024, 10, 11, 1, 0, 0, 0, time.UTC).Unix()
    if DayKey(morning) == DayKey(nextDay) {
        t.Fatalf("expected different day keys")
    }
}

func TestIsWeekend(t *testing.T) {
    sat := time.Date(2024, 10, 12, 12, 0, 0, 0, time.UTC)
    if !IsWeekend(sat) {
        t.Fatalf("expected saturday to be weekend")
    }
    thu := time.Date(2024, 10, 10, 12, 0, 0, 0, time.UTC)
    if IsWeekend(thu) {
        t.Fatalf("expected thursday to be weekday")
    }
}