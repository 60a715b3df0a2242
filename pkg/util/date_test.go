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

func TestParseTimeOffsetWithMicros(t *testing.T) {
    got, ok := ParseTime("2024-10-10T10:10:10.123456+00:00")
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.UTC().Format("2006-01-02 15:04:05") != "2024-10-10 10:10:10" {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParseTimeZoneless(t *testing.T) {
    for _, s := range []string{"2024-10-10T10:10:10.5", "2024-10-10 10:10:10"} {
        got, ok := ParseTime(s)
        if !ok {
            t.Fatalf("%q: expected ok", s)
        }
        if got.Location() != time.UTC || got.Hour() != 10 {
            t.Fatalf("%q: unexpected time %v", s, got)
        }
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

func TestParseTimeGarbage(t *testing.T) {
    if _, ok := ParseTime("yesterday"); ok {
        t.Fatalf("expected failure")
    }
}

func TestParseDurationDefault(t *testing.T) {
    cases := map[string]time.Duration{
        "":    time.Minute,
        "15s": 15 * time.Second,
        "30":  30 * time.Second,
        "x":   time.Minute,
    }
    for in, want := range cases {
        if got := ParseDurationDefault(in, time.Minute); got != want {
            t.Fatalf("%q: got %v want %v", in, got, want)
        }
    }
}
