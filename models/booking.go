package models

import "time"

// Booking statuses. Pending is the only non-terminal state.
const (
	BookingPending  = "pending"
	BookingAccepted = "accepted"
	BookingRejected = "rejected"
)

// Booking links one DJ to one event. EventName, Date, Price and Conditions
// are snapshots taken at request time (event name/date from the event, rate
// and terms from the DJ profile) so the record stays meaningful if either
// side edits later. RequestedBy records who initiated, so acceptance can
// be restricted to the other party.
type Booking struct {
	BookingID   string    `json:"bookingid" bson:"bookingid"`
	EventID     string    `json:"eventId" bson:"eventid"`
	DJID        string    `json:"djId" bson:"djid"`
	OrganizerID string    `json:"organizerId" bson:"organizerid"`
	RequestedBy string    `json:"requestedBy" bson:"requested_by"`
	EventName   string    `json:"eventName" bson:"event_name"`
	Date        time.Time `json:"date" bson:"date"`
	Price       float64   `json:"price" bson:"price"`
	Conditions  string    `json:"conditions,omitempty" bson:"conditions,omitempty"`
	Status      string    `json:"status" bson:"status"`
	Paid        bool      `json:"paid" bson:"paid"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

// BookingView is a booking joined with its event for display.
type BookingView struct {
	Booking  `bson:",inline"`
	Location string `json:"location,omitempty" bson:"-"`
	DJName   string `json:"djName,omitempty" bson:"-"`
}
