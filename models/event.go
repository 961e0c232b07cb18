package models

import "time"

// Event is one bookable occurrence. PendingDJs, DJsBooked, TicketsSold and
// Revenue are denormalized write-through caches of facts derivable from the
// bookings/tickets collections; they are mutated alongside booking and
// payment writes and never re-derived on read.
type Event struct {
	EventID         string    `json:"eventid" bson:"eventid"`
	OrganizerID     string    `json:"organizerId" bson:"organizerid"`
	Name            string    `json:"name" bson:"name"`
	Date            time.Time `json:"date" bson:"date"`
	Location        string    `json:"location" bson:"location"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty"`
	BannerImage     string    `json:"bannerImage,omitempty" bson:"banner_image,omitempty"`
	TicketPrice     float64   `json:"ticketPrice" bson:"ticket_price"`
	TicketQuantity  int       `json:"ticketQuantity" bson:"ticket_quantity"`
	Capacity        int       `json:"capacity" bson:"capacity"`
	TicketsSold     int       `json:"ticketsSold" bson:"tickets_sold"`
	Revenue         float64   `json:"revenue" bson:"revenue"`
	DJsBooked       []string  `json:"djsBooked" bson:"djs_booked"`
	PendingDJs      []string  `json:"pendingDjs" bson:"pending_djs"`
	AllowDJRequests bool      `json:"allowDjRequests" bson:"allow_dj_requests"`
	CreatedAt       time.Time `json:"createdAt" bson:"created_at"`
}

// SoldOut reports whether sales have reached (or passed) the ticket limit.
// Display-only: sales are not blocked at write time.
func (e *Event) SoldOut() bool {
	return e.TicketQuantity > 0 && e.TicketsSold >= e.TicketQuantity
}
