package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDateFromTime(t *testing.T) {
	in := time.Date(2026, 9, 12, 22, 30, 0, 0, time.FixedZone("SAST", 2*3600))
	got, err := NormalizeDate(in)
	assert.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, got.Equal(in))
}

func TestNormalizeDateFromUnixSeconds(t *testing.T) {
	want := time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC)
	secs := want.Unix()

	fromInt, err := NormalizeDate(secs)
	assert.NoError(t, err)
	assert.True(t, fromInt.Equal(want))

	fromFloat, err := NormalizeDate(float64(secs))
	assert.NoError(t, err)
	assert.True(t, fromFloat.Equal(want))

	fromString, err := NormalizeDate("1789243200")
	assert.NoError(t, err)
	assert.Equal(t, int64(1789243200), fromString.Unix())
}

func TestNormalizeDateFromSecondsObject(t *testing.T) {
	want := time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC)
	got, err := NormalizeDate(map[string]any{"seconds": float64(want.Unix())})
	assert.NoError(t, err)
	assert.True(t, got.Equal(want))

	_, err = NormalizeDate(map[string]any{"nanos": 12})
	assert.Error(t, err)
}

func TestNormalizeDateFromStrings(t *testing.T) {
	cases := []string{
		"2026-09-12T20:00:00Z",
		"2026-09-12T20:00",
		"2026-09-12",
	}
	for _, c := range cases {
		got, err := NormalizeDate(c)
		assert.NoError(t, err, c)
		assert.Equal(t, 2026, got.Year(), c)
		assert.Equal(t, time.September, got.Month(), c)
		assert.Equal(t, 12, got.Day(), c)
	}

	_, err := NormalizeDate("next friday")
	assert.Error(t, err)
	_, err = NormalizeDate(struct{}{})
	assert.Error(t, err)
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, 9, 12, 0, 0, 1, 0, time.UTC)
	night := time.Date(2026, 9, 12, 23, 59, 59, 0, time.UTC)
	nextDay := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(morning, night))
	assert.False(t, SameDay(night, nextDay))
}

func TestDayKeyNormalizesZone(t *testing.T) {
	// 23:30 SAST on the 12th is 21:30 UTC on the 12th
	sast := time.Date(2026, 9, 12, 23, 30, 0, 0, time.FixedZone("SAST", 2*3600))
	assert.Equal(t, 12, DayKey(sast).Day())
	assert.Equal(t, 0, DayKey(sast).Hour())
}
