package booking

import (
	"testing"
	"time"

	"github.com/SMT2501/kasiBeats/models"

	"github.com/stretchr/testify/assert"
)

func bookingOn(date time.Time, status string) models.Booking {
	return models.Booking{
		BookingID: "b-" + date.Format("20060102"),
		Date:      date,
		Status:    status,
	}
}

func TestConflictsOnSameDay(t *testing.T) {
	day := time.Date(2026, 9, 12, 21, 30, 0, 0, time.UTC)
	existing := []models.Booking{
		bookingOn(time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC), models.BookingAccepted),
	}

	conflicts := ConflictsOn(existing, day)
	assert.Len(t, conflicts, 1)
}

func TestConflictsOnAdjacentDaysAreFree(t *testing.T) {
	existing := []models.Booking{
		bookingOn(time.Date(2026, 9, 12, 23, 59, 0, 0, time.UTC), models.BookingAccepted),
	}

	before := time.Date(2026, 9, 11, 23, 0, 0, 0, time.UTC)
	after := time.Date(2026, 9, 13, 0, 1, 0, 0, time.UTC)
	assert.Empty(t, ConflictsOn(existing, before))
	assert.Empty(t, ConflictsOn(existing, after))
}

func TestConflictsIgnoreRejected(t *testing.T) {
	day := time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC)
	existing := []models.Booking{
		bookingOn(day, models.BookingRejected),
	}

	assert.Empty(t, ConflictsOn(existing, day))
}

func TestConflictsIgnorePending(t *testing.T) {
	day := time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC)
	existing := []models.Booking{
		bookingOn(day, models.BookingPending),
	}

	assert.Empty(t, ConflictsOn(existing, day))
}

func TestGroupByDaySortsAndBuckets(t *testing.T) {
	d1 := time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC)
	d1Later := time.Date(2026, 9, 12, 23, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 9, 5, 18, 0, 0, 0, time.UTC)

	schedule := GroupByDay([]models.Booking{
		bookingOn(d1, models.BookingAccepted),
		bookingOn(d2, models.BookingAccepted),
		bookingOn(d1Later, models.BookingPending),
	})

	assert.Len(t, schedule, 2)
	assert.Equal(t, "2026-09-05", schedule[0].Day)
	assert.Equal(t, "2026-09-12", schedule[1].Day)
	assert.Len(t, schedule[0].Bookings, 1)
	assert.Len(t, schedule[1].Bookings, 2)
}

func TestGroupByDayEmpty(t *testing.T) {
	assert.Empty(t, GroupByDay(nil))
}
