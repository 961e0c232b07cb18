package booking

import (
	"testing"
	"time"

	"github.com/SMT2501/kasiBeats/models"

	"github.com/stretchr/testify/assert"
)

func sampleBooking(status string) models.Booking {
	return models.Booking{
		BookingID:   "b123",
		EventID:     "e1",
		DJID:        "dj1",
		OrganizerID: "org1",
		EventName:   "Kasi Vibes",
		Date:        time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC),
		Price:       1500,
		Status:      status,
	}
}

func TestCanAcceptOnlyPending(t *testing.T) {
	assert.NoError(t, CanAccept(sampleBooking(models.BookingPending)))
	assert.ErrorIs(t, CanAccept(sampleBooking(models.BookingAccepted)), ErrAlreadyDecided)
	assert.ErrorIs(t, CanAccept(sampleBooking(models.BookingRejected)), ErrAlreadyDecided)
}

func TestCanRejectOnlyPending(t *testing.T) {
	assert.NoError(t, CanReject(sampleBooking(models.BookingPending)))
	assert.ErrorIs(t, CanReject(sampleBooking(models.BookingAccepted)), ErrAlreadyDecided)
	assert.ErrorIs(t, CanReject(sampleBooking(models.BookingRejected)), ErrAlreadyDecided)
}

func TestCanCancelOnlyPending(t *testing.T) {
	assert.NoError(t, CanCancel(sampleBooking(models.BookingPending)))
	assert.ErrorIs(t, CanCancel(sampleBooking(models.BookingAccepted)), ErrNotPending)
	assert.ErrorIs(t, CanCancel(sampleBooking(models.BookingRejected)), ErrNotPending)
}

func TestCanMarkPaidOnlyAccepted(t *testing.T) {
	assert.ErrorIs(t, CanMarkPaid(sampleBooking(models.BookingPending)), ErrNotAccepted)
	assert.ErrorIs(t, CanMarkPaid(sampleBooking(models.BookingRejected)), ErrNotAccepted)
	assert.NoError(t, CanMarkPaid(sampleBooking(models.BookingAccepted)))

	// an already-paid booking may still be marked paid, the flag just stays
	paid := sampleBooking(models.BookingAccepted)
	paid.Paid = true
	assert.NoError(t, CanMarkPaid(paid))
}

func TestDeciderFor(t *testing.T) {
	b := sampleBooking(models.BookingPending)
	assert.NoError(t, DeciderFor(b, "dj1"))
	assert.NoError(t, DeciderFor(b, "org1"))
	assert.ErrorIs(t, DeciderFor(b, "someone-else"), ErrNotYours)
}

func TestAcceptorIsTheCounterpart(t *testing.T) {
	// organizer booked the DJ: only the DJ can accept
	b := sampleBooking(models.BookingPending)
	b.RequestedBy = "org1"
	assert.Equal(t, "dj1", AcceptorFor(b))
	assert.NoError(t, CanAcceptBy(b, "dj1"))
	assert.ErrorIs(t, CanAcceptBy(b, "org1"), ErrOwnRequest)

	// DJ asked to play: only the organizer can accept
	req := sampleBooking(models.BookingPending)
	req.RequestedBy = "dj1"
	assert.Equal(t, "org1", AcceptorFor(req))
	assert.NoError(t, CanAcceptBy(req, "org1"))
	assert.ErrorIs(t, CanAcceptBy(req, "dj1"), ErrOwnRequest)
}

func TestRejectOpenToBothSides(t *testing.T) {
	b := sampleBooking(models.BookingPending)
	b.RequestedBy = "org1"

	// either party on the booking may reject, including the initiator
	assert.NoError(t, DeciderFor(b, "org1"))
	assert.NoError(t, DeciderFor(b, "dj1"))
	assert.NoError(t, CanReject(b))
}

func TestEarningsSumsAcceptedOnly(t *testing.T) {
	accepted := sampleBooking(models.BookingAccepted)
	pending := sampleBooking(models.BookingPending)
	pending.Price = 900
	rejected := sampleBooking(models.BookingRejected)
	rejected.Price = 5000

	assert.Equal(t, 1500.0, Earnings([]models.Booking{accepted, pending, rejected}))
	assert.Equal(t, 0.0, Earnings(nil))
}

func TestEarningsOrderIndependent(t *testing.T) {
	a := sampleBooking(models.BookingAccepted)
	a.Price = 700
	b := sampleBooking(models.BookingAccepted)
	b.Price = 1100
	c := sampleBooking(models.BookingPending)
	c.Price = 400

	forward := Earnings([]models.Booking{a, b, c})
	backward := Earnings([]models.Booking{c, b, a})
	assert.Equal(t, forward, backward)
	assert.Equal(t, 1800.0, forward)
}

func TestPaidEarnings(t *testing.T) {
	paid := sampleBooking(models.BookingAccepted)
	paid.Paid = true
	paid.Price = 1000
	unpaid := sampleBooking(models.BookingAccepted)
	unpaid.Price = 600

	bookings := []models.Booking{paid, unpaid}
	assert.Equal(t, 1000.0, PaidEarnings(bookings))
	assert.Equal(t, 1600.0, Earnings(bookings))
}
