package booking

import (
	"errors"

	"github.com/SMT2501/kasiBeats/models"
)

// Transition rules for a booking. Decisions apply to pending bookings
// only; payment applies to accepted bookings only and is idempotent.
var (
	ErrAlreadyDecided = errors.New("booking already decided")
	ErrNotPending     = errors.New("booking is not pending")
	ErrNotAccepted    = errors.New("booking is not accepted")
	ErrNotYours       = errors.New("booking does not involve you")
	ErrOwnRequest     = errors.New("only the other party can accept")
)

// CanAccept reports whether b may move from pending to accepted.
func CanAccept(b models.Booking) error {
	if b.Status != models.BookingPending {
		return ErrAlreadyDecided
	}
	return nil
}

// CanReject reports whether b may move from pending to rejected.
func CanReject(b models.Booking) error {
	if b.Status != models.BookingPending {
		return ErrAlreadyDecided
	}
	return nil
}

// CanCancel reports whether b may be withdrawn. Only undecided bookings
// can be cancelled; an accepted booking is a commitment on both sides.
func CanCancel(b models.Booking) error {
	if b.Status != models.BookingPending {
		return ErrNotPending
	}
	return nil
}

// CanMarkPaid reports whether b may be flagged paid. Repeat calls on an
// already-paid booking are allowed; the flag just stays set.
func CanMarkPaid(b models.Booking) error {
	if b.Status != models.BookingAccepted {
		return ErrNotAccepted
	}
	return nil
}

// DeciderFor returns an error unless userID is a party on b. Rejection
// is open to either side; acceptance is further gated by CanAcceptBy.
func DeciderFor(b models.Booking, userID string) error {
	if userID != b.DJID && userID != b.OrganizerID {
		return ErrNotYours
	}
	return nil
}

// AcceptorFor returns the user whose consent moves b to accepted: the
// party who did not initiate it. The DJ accepts organizer-initiated
// bookings; the organizer accepts DJ requests.
func AcceptorFor(b models.Booking) string {
	if b.RequestedBy == b.DJID {
		return b.OrganizerID
	}
	return b.DJID
}

// CanAcceptBy reports whether userID may accept b. Accepting your own
// request would put a DJ on the booked roster without the counterpart's
// consent, so only the other party can.
func CanAcceptBy(b models.Booking, userID string) error {
	if AcceptorFor(b) != userID {
		return ErrOwnRequest
	}
	return nil
}

// releasePendingSlot reports whether cancelling one booking should pull
// the DJ off the event's pending roster. Duplicate pending bookings for
// the same pair share one roster entry, so it stays while any survive.
func releasePendingSlot(otherPending int64) bool {
	return otherPending == 0
}

// Earnings sums the price of accepted bookings. Order of the input does
// not matter and non-accepted bookings contribute nothing.
func Earnings(bookings []models.Booking) float64 {
	var total float64
	for _, b := range bookings {
		if b.Status == models.BookingAccepted {
			total += b.Price
		}
	}
	return total
}

// PaidEarnings sums only the accepted bookings already paid out.
func PaidEarnings(bookings []models.Booking) float64 {
	var total float64
	for _, b := range bookings {
		if b.Status == models.BookingAccepted && b.Paid {
			total += b.Price
		}
	}
	return total
}
