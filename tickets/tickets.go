package tickets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/SMT2501/kasiBeats/db"
	"github.com/SMT2501/kasiBeats/models"
	"github.com/SMT2501/kasiBeats/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetMyTickets lists the caller's tickets, newest purchase first.
func GetMyTickets(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestingUserID, ok := utils.GetUserIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"purchase_date": -1})
	cursor, err := db.TicketsCollection.Find(ctx, bson.M{"userid": requestingUserID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch tickets")
		return
	}
	defer cursor.Close(ctx)

	tickets := []models.Ticket{}
	if err := cursor.All(ctx, &tickets); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode tickets")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, tickets)
}

// VerifyTicket validates a scanned QR payload at the door. Only the event
// organizer can scan for their event.
func VerifyTicket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ident, ok := utils.GetIdentity(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Payload string `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Payload == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "payload is required")
		return
	}

	eventID, ticketID, uniqueCode, err := VerifyTicketQR(input.Payload)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var event models.Event
	if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if event.OrganizerID != ident.UserID {
		utils.RespondWithError(w, http.StatusForbidden, "Not your event")
		return
	}

	var ticket models.Ticket
	err = db.TicketsCollection.FindOne(ctx, bson.M{
		"ticketid":    ticketID,
		"eventid":     eventID,
		"unique_code": uniqueCode,
	}).Decode(&ticket)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Ticket not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify ticket")
		return
	}
	if ticket.Status != models.TicketConfirmed {
		utils.RespondWithError(w, http.StatusConflict, "Ticket is "+ticket.Status)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"valid":  true,
		"ticket": ticket,
	})
}
