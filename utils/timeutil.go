package utils

import (
	"fmt"
	"strings"
	"time"
)

// NaiveLayout adalah format waktu tanpa zona yang dipakai di seluruh API.
const NaiveLayout = "2006-01-02T15:04:05"

var naiveInputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// StripOffset membuang informasi zona waktu dan mempertahankan jam dinding.
// 10:00+02:00 menjadi 10:00 (UTC), bukan 08:00.
func StripOffset(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ParseNaive mem-parsing timestamp dengan atau tanpa sufiks zona, lalu
// membuang sufiks tersebut.
func ParseNaive(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range naiveInputLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return StripOffset(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q, expected %s with optional offset", value, NaiveLayout)
}

// FormatNaive menampilkan waktu tanpa offset.
func FormatNaive(t time.Time) string {
	return StripOffset(t).Format(NaiveLayout)
}
