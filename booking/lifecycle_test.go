package booking

import (
	"testing"
	"time"

	"github.com/SMT2501/kasiBeats/models"
	"github.com/SMT2501/kasiBeats/utils"

	"github.com/stretchr/testify/assert"
)

// Walks a booking through request, accept and payout, tracking the event
// rosters the same way the store-side $addToSet/$pull mutations do.
func TestBookingLifecycle(t *testing.T) {
	event := models.Event{
		EventID:     "e1",
		OrganizerID: "org-1",
		Name:        "Kasi Vibes",
		Date:        time.Date(2026, 10, 3, 20, 0, 0, 0, time.UTC),
		PendingDJs:  []string{},
		DJsBooked:   []string{},
	}
	dj := models.User{
		UserID: "dj-p",
		Role:   models.RoleDJ,
		DJ:     &models.DJProfile{Price: 2000, Conditions: "deposit upfront"},
	}

	b := newBooking(event, dj, event.OrganizerID)
	assert.Equal(t, models.BookingPending, b.Status)
	assert.False(t, b.Paid)
	assert.Equal(t, 2000.0, b.Price)
	assert.Equal(t, "deposit upfront", b.Conditions)
	assert.Equal(t, event.Name, b.EventName)
	assert.True(t, b.Date.Equal(event.Date))
	assert.Equal(t, event.OrganizerID, b.RequestedBy)

	event.PendingDJs = utils.AddToSet(event.PendingDJs, b.DJID)
	assert.Equal(t, []string{"dj-p"}, event.PendingDJs)

	// accept: promote pending -> booked; only the DJ side can consent
	assert.ErrorIs(t, CanAcceptBy(b, event.OrganizerID), ErrOwnRequest)
	assert.NoError(t, CanAcceptBy(b, b.DJID))
	assert.NoError(t, CanAccept(b))
	b.Status = models.BookingAccepted
	event.DJsBooked = utils.AddToSet(event.DJsBooked, b.DJID)
	event.PendingDJs = utils.RemoveFromSet(event.PendingDJs, b.DJID)
	assert.Equal(t, []string{"dj-p"}, event.DJsBooked)
	assert.Empty(t, event.PendingDJs)

	// decided bookings cannot be re-decided or cancelled
	assert.Error(t, CanAccept(b))
	assert.Error(t, CanReject(b))
	assert.Error(t, CanCancel(b))

	// pay, then pay again: flag stays, earnings unchanged
	assert.NoError(t, CanMarkPaid(b))
	b.Paid = true
	assert.NoError(t, CanMarkPaid(b))
	assert.Equal(t, 2000.0, Earnings([]models.Booking{b}))
	assert.Equal(t, 2000.0, PaidEarnings([]models.Booking{b}))
}

// Two pending bookings for the same event and DJ coexist; each is decided
// on its own and the roster stays a set.
func TestDuplicatePendingBookings(t *testing.T) {
	event := models.Event{
		EventID:     "e1",
		OrganizerID: "org-1",
		Name:        "Kasi Vibes",
		Date:        time.Date(2026, 10, 3, 20, 0, 0, 0, time.UTC),
	}
	dj := models.User{UserID: "dj-p", Role: models.RoleDJ, DJ: &models.DJProfile{Price: 1500}}

	first := newBooking(event, dj, event.OrganizerID)
	second := newBooking(event, dj, event.OrganizerID)

	assert.NotEqual(t, first.BookingID, second.BookingID)
	assert.Equal(t, models.BookingPending, first.Status)
	assert.Equal(t, models.BookingPending, second.Status)

	// roster membership is set-like even when added twice
	pending := utils.AddToSet(nil, first.DJID)
	pending = utils.AddToSet(pending, second.DJID)
	assert.Equal(t, []string{"dj-p"}, pending)

	// rejecting one leaves the other decidable
	assert.NoError(t, CanReject(first))
	first.Status = models.BookingRejected
	assert.NoError(t, CanAccept(second))
}

// Cancelling one of two pending bookings for the same pair keeps the DJ
// on pending_djs; the roster entry goes only with the last one.
func TestCancelWithDuplicatePendingKeepsRoster(t *testing.T) {
	pending := utils.AddToSet(nil, "dj-p")

	// first cancel: one pending booking for the pair survives
	assert.False(t, releasePendingSlot(1))
	assert.Equal(t, []string{"dj-p"}, pending)

	// second cancel: none left, the roster entry goes too
	assert.True(t, releasePendingSlot(0))
	pending = utils.RemoveFromSet(pending, "dj-p")
	assert.Empty(t, pending)
}
