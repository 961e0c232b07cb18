package pay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/SMT2501/kasiBeats/db"
	"github.com/SMT2501/kasiBeats/events"
	"github.com/SMT2501/kasiBeats/models"
	"github.com/SMT2501/kasiBeats/notifications"
	"github.com/SMT2501/kasiBeats/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/stripe/stripe-go/v82"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateCheckoutSession opens a Stripe Checkout session for event tickets.
// The event id, buyer and quantity ride along as session metadata so the
// success callback can finish the sale.
func CreateCheckoutSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestingUserID, ok := utils.GetUserIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		EventID  string `json:"eventId"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.EventID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "eventId is required")
		return
	}
	if input.Quantity < 1 {
		input.Quantity = 1
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var event models.Event
	err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": input.EventID}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Event not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}
	if event.SoldOut() {
		utils.RespondWithError(w, http.StatusConflict, "Event is sold out")
		return
	}

	sc := GetStripeClient()
	appHost := os.Getenv("APP_HOST")
	successURL := fmt.Sprintf("%s/checkout/success?session_id={CHECKOUT_SESSION_ID}", appHost)
	cancelURL := fmt.Sprintf("%s/events/%s", appHost, event.EventID)

	metadata := map[string]string{
		"eventId":   event.EventID,
		"eventName": event.Name,
		"userId":    requestingUserID,
		"quantity":  strconv.Itoa(input.Quantity),
	}

	createParams := stripe.CheckoutSessionCreateParams{
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		UIMode:     stripe.String("hosted"),
		Mode:       stripe.String("payment"),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency:   stripe.String("zar"),
					UnitAmount: stripe.Int64(int64(event.TicketPrice * 100)),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String("Ticket: " + event.Name),
					},
				},
				Quantity: stripe.Int64(int64(input.Quantity)),
			},
		},
		Metadata: metadata,
	}
	createParams.SetIdempotencyKey(utils.GetUUID())

	checkoutSession, err := sc.V1CheckoutSessions.Create(ctx, &createParams)
	if err != nil {
		log.Printf("pay: checkout session create failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to start checkout")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"sessionId": checkoutSession.ID,
		"url":       checkoutSession.URL,
	})
}

// PaymentSuccess completes a sale after Stripe redirects back. The session
// is re-fetched from Stripe; client-supplied ids alone never mint tickets.
// Re-posting an already-consumed session returns the existing tickets.
func PaymentSuccess(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sc := GetStripeClient()
	session, err := sc.V1CheckoutSessions.Retrieve(ctx, sessionID, &stripe.CheckoutSessionRetrieveParams{})
	if err != nil {
		log.Printf("pay: session retrieve failed: %v", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to verify payment")
		return
	}
	if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		utils.RespondWithError(w, http.StatusPaymentRequired, "Payment not completed")
		return
	}

	eventID := session.Metadata["eventId"]
	eventName := session.Metadata["eventName"]
	userID := session.Metadata["userId"]
	quantity, _ := strconv.Atoi(session.Metadata["quantity"])
	if eventID == "" || userID == "" || quantity < 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "Malformed session metadata")
		return
	}

	// Sessions are single-use: the first completion records the sale,
	// later retries just return the tickets already minted.
	existing := []models.Ticket{}
	if cursor, err := db.TicketsCollection.Find(ctx, bson.M{"session_id": sessionID}); err == nil {
		_ = cursor.All(ctx, &existing)
	}
	if len(existing) > 0 {
		utils.RespondWithJSON(w, http.StatusOK, existing)
		return
	}

	tickets := make([]models.Ticket, 0, quantity)
	docs := make([]interface{}, 0, quantity)
	for i := 0; i < quantity; i++ {
		t := models.Ticket{
			TicketID:     "t" + utils.GenerateID(12),
			EventID:      eventID,
			UserID:       userID,
			UniqueCode:   utils.GenerateRandomDigitString(8),
			Status:       models.TicketConfirmed,
			SessionID:    sessionID,
			PurchaseDate: time.Now(),
		}
		tickets = append(tickets, t)
		docs = append(docs, t)
	}

	if _, err := db.TicketsCollection.InsertMany(ctx, docs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record tickets")
		return
	}

	amount := float64(session.AmountTotal) / 100
	if err := events.RecordTicketSale(ctx, eventID, quantity, amount); err != nil {
		log.Printf("pay: failed to bump sale counters for %s: %v", eventID, err)
	}

	if err := notifications.Send(ctx, userID,
		fmt.Sprintf("Your tickets for %s are confirmed", eventName)); err != nil {
		log.Printf("pay: notify failed: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, tickets)
}
