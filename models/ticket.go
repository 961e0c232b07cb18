package models

import "time"

const (
	TicketConfirmed = "confirmed"
	TicketCancelled = "cancelled"
)

// Ticket is one completed purchase, created by the payment success callback.
type Ticket struct {
	TicketID     string    `json:"ticketid" bson:"ticketid"`
	EventID      string    `json:"eventId" bson:"eventid"`
	UserID       string    `json:"userId" bson:"userid"`
	UniqueCode   string    `json:"uniqueCode" bson:"unique_code"`
	Status       string    `json:"status" bson:"status"`
	SessionID    string    `json:"-" bson:"session_id,omitempty"`
	PurchaseDate time.Time `json:"purchaseDate" bson:"purchase_date"`
}
