package events

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/SMT2501/kasiBeats/db"
	"github.com/SMT2501/kasiBeats/models"
	"github.com/SMT2501/kasiBeats/notifications"
	"github.com/SMT2501/kasiBeats/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DeleteEvent cancels an event the caller owns. Ticket holders and every
// DJ attached to a booking get notified, then the event and its bookings
// are removed. There is no multi-document transaction here; if a step
// fails partway the notifications may outlive the documents, which is
// acceptable for an advisory cascade.
func DeleteEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ident, ok := utils.GetIdentity(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	eventID := ps.ByName("eventid")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var event models.Event
	err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Event not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}
	if event.OrganizerID != ident.UserID {
		utils.RespondWithError(w, http.StatusForbidden, "Not your event")
		return
	}

	recipients := collectCascadeRecipients(ctx, eventID)

	if _, err := db.BookingsCollection.DeleteMany(ctx, bson.M{"eventid": eventID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove bookings")
		return
	}
	if _, err := db.EventsCollection.DeleteOne(ctx, bson.M{"eventid": eventID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}
	dropCached(eventID)

	_, err = db.TicketsCollection.UpdateMany(ctx,
		bson.M{"eventid": eventID, "status": models.TicketConfirmed},
		bson.M{"$set": bson.M{"status": models.TicketCancelled}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel tickets")
		return
	}

	notifications.SendMany(ctx, recipients, "Event cancelled: "+event.Name)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// collectCascadeRecipients gathers everyone affected by a cancellation:
// holders of confirmed tickets plus DJs on any booking for the event.
func collectCascadeRecipients(ctx context.Context, eventID string) []string {
	var recipients []string

	cursor, err := db.TicketsCollection.Find(ctx, bson.M{
		"eventid": eventID,
		"status":  models.TicketConfirmed,
	})
	if err == nil {
		var tickets []models.Ticket
		if cursor.All(ctx, &tickets) == nil {
			for _, t := range tickets {
				recipients = append(recipients, t.UserID)
			}
		}
	}

	cursor, err = db.BookingsCollection.Find(ctx, bson.M{"eventid": eventID})
	if err == nil {
		var bookings []models.Booking
		if cursor.All(ctx, &bookings) == nil {
			for _, b := range bookings {
				recipients = append(recipients, b.DJID)
			}
		}
	}

	return recipients
}
