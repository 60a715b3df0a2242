package util

import (
    "strconv"
    "time"
)

// Zoneless layouts are read as UTC, which is what the status service emits.
// A browser's Date parser would read them as local time instead.
var layouts = []string{
    time.RFC3339,
    time.RFC3339Nano,
    "2006-01-02T15:04:05.999999999",
    "2006-01-02 15:04:05.999999999",
    "2006-01-02 15:04:05",
}

// ParseTime tries RFC3339, RFC3339Nano, zoneless ISO layouts, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    for _, layout := range layouts {
        if t, err := time.Parse(layout, s); err == nil {
            return t, true
        }
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
        return time.Unix(ts, 0), true
    }
    return time.Time{}, false
}

// ParseDurationDefault parses a Go duration ("15s") or plain seconds ("15"), or returns def.
func ParseDurationDefault(s string, def time.Duration) time.Duration {
    if s == "" {
        return def
    }
    if d, err := time.ParseDuration(s); err == nil {
        return d
    }
    if n, err := strconv.Atoi(s); err == nil {
        return time.Duration(n) * time.Second
    }
    return def
}

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
    if s == "" {
        return def
    }
    v, err := strconv.Atoi(s)
    if err != nil {
        return def
    }
    return v
}
