package utils

import (
	"fmt"
	"strconv"
	"time"
)

// Event dates historically arrived in several shapes: a native timestamp, a
// serialized {seconds} value, or a string. NormalizeDate converts any of them
// to a UTC time.Time at the store boundary so display and comparison code
// only ever sees one representation.
func NormalizeDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d.UTC(), nil
	case int64:
		return time.Unix(d, 0).UTC(), nil
	case float64:
		return time.Unix(int64(d), 0).UTC(), nil
	case map[string]any:
		if secs, ok := d["seconds"]; ok {
			return NormalizeDate(secs)
		}
		return time.Time{}, fmt.Errorf("unrecognized date object %v", d)
	case string:
		if secs, err := strconv.ParseInt(d, 10, 64); err == nil {
			return time.Unix(secs, 0).UTC(), nil
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
			if t, err := time.Parse(layout, d); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date string %q", d)
	default:
		return time.Time{}, fmt.Errorf("unsupported date type %T", v)
	}
}

// DayKey truncates a timestamp to calendar-day granularity in UTC.
func DayKey(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return DayKey(a).Equal(DayKey(b))
}
