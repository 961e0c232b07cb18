package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/SMT2501/kasiBeats/db"
	"github.com/SMT2501/kasiBeats/events"
	"github.com/SMT2501/kasiBeats/models"
	"github.com/SMT2501/kasiBeats/notifications"
	"github.com/SMT2501/kasiBeats/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newBooking snapshots the event and DJ profile into a fresh pending
// booking. Duplicate pending bookings for the same (event, dj) pair are
// allowed; each is decided independently.
func newBooking(event models.Event, dj models.User, requestedBy string) models.Booking {
	b := models.Booking{
		BookingID:   "b" + utils.GenerateID(12),
		EventID:     event.EventID,
		DJID:        dj.UserID,
		OrganizerID: event.OrganizerID,
		RequestedBy: requestedBy,
		EventName:   event.Name,
		Date:        event.Date,
		Status:      models.BookingPending,
		Paid:        false,
		CreatedAt:   time.Now(),
	}
	if dj.DJ != nil {
		b.Price = dj.DJ.Price
		b.Conditions = dj.DJ.Conditions
	}
	return b
}

func loadEvent(ctx context.Context, eventID string) (models.Event, error) {
	var event models.Event
	err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event)
	return event, err
}

func loadDJ(ctx context.Context, djID string) (models.User, error) {
	var dj models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": djID, "role": models.RoleDJ}).Decode(&dj)
	return dj, err
}

// CreateBooking is the organizer-initiated flow: book a DJ for your event.
func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ident, ok := utils.GetIdentity(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		EventID         string `json:"eventId"`
		DJID            string `json:"djId"`
		AgreeConditions bool   `json:"agreeConditions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.EventID == "" || input.DJID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "eventId and djId are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	event, err := loadEvent(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Event not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}
	if event.OrganizerID != ident.UserID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the event organizer can book DJs")
		return
	}

	dj, err := loadDJ(ctx, input.DJID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "DJ not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch DJ")
		return
	}

	// Booking a DJ who set conditions means agreeing to them up front.
	if dj.DJ != nil && dj.DJ.Conditions != "" && !input.AgreeConditions {
		utils.RespondWithError(w, http.StatusBadRequest, "You must agree to the DJ's conditions")
		return
	}

	// Advisory only: a date clash is reported but never blocks the booking.
	conflicts := dayConflicts(ctx, dj.UserID, event.Date)

	b := newBooking(event, dj, ident.UserID)
	if _, err := db.BookingsCollection.InsertOne(ctx, b); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	if err := events.AddPendingDJ(ctx, event.EventID, dj.UserID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update event roster")
		return
	}

	if err := notifications.Send(ctx, dj.UserID,
		fmt.Sprintf("You have a booking request for %s", event.Name)); err != nil {
		log.Printf("booking: notify failed: %v", err)
	}

	Broadcast(event.EventID, "booking_created", b)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"booking":   b,
		"conflicts": conflicts,
	})
}

// RequestBooking is the DJ-initiated flow: ask to play at an event that
// accepts requests.
func RequestBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ident, ok := utils.GetIdentity(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if ident.Role != models.RoleDJ {
		utils.RespondWithError(w, http.StatusForbidden, "Only DJs can request bookings")
		return
	}

	var input struct {
		EventID string `json:"eventId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.EventID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "eventId is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	event, err := loadEvent(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Event not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}
	if !event.AllowDJRequests {
		utils.RespondWithError(w, http.StatusForbidden, "Event does not accept DJ requests")
		return
	}

	dj, err := loadDJ(ctx, ident.UserID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	conflicts := dayConflicts(ctx, dj.UserID, event.Date)

	b := newBooking(event, dj, dj.UserID)
	if _, err := db.BookingsCollection.InsertOne(ctx, b); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	if err := events.AddPendingDJ(ctx, event.EventID, dj.UserID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update event roster")
		return
	}

	if err := notifications.Send(ctx, event.OrganizerID,
		fmt.Sprintf("%s wants to play at %s", dj.Username, event.Name)); err != nil {
		log.Printf("booking: notify failed: %v", err)
	}

	Broadcast(event.EventID, "booking_requested", b)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"booking":   b,
		"conflicts": conflicts,
	})
}

// AcceptBooking moves a pending booking to accepted and promotes the DJ
// onto the event's booked roster.
func AcceptBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	decideBooking(w, r, ps.ByName("bookingid"), models.BookingAccepted)
}

// RejectBooking moves a pending booking to rejected and clears the DJ
// from the pending roster.
func RejectBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	decideBooking(w, r, ps.ByName("bookingid"), models.BookingRejected)
}

func decideBooking(w http.ResponseWriter, r *http.Request, bookingID, decision string) {
	ident, ok := utils.GetIdentity(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var b models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch booking")
		return
	}

	if err := DeciderFor(b, ident.UserID); err != nil {
		utils.RespondWithError(w, http.StatusForbidden, "You are not part of this booking")
		return
	}
	if decision == models.BookingAccepted {
		if err := CanAcceptBy(b, ident.UserID); err != nil {
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
			return
		}
		err = CanAccept(b)
	} else {
		err = CanReject(b)
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	}

	// Guard the write on the current status so two racing decisions
	// cannot both land.
	res, err := db.BookingsCollection.UpdateOne(ctx,
		bson.M{"bookingid": bookingID, "status": models.BookingPending},
		bson.M{"$set": bson.M{"status": decision}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update booking")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, "booking already decided")
		return
	}
	b.Status = decision

	if decision == models.BookingAccepted {
		err = events.PromoteDJ(ctx, b.EventID, b.DJID)
	} else {
		err = events.RemovePendingDJ(ctx, b.EventID, b.DJID)
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update event roster")
		return
	}

	recipient := b.DJID
	if ident.UserID == b.DJID {
		recipient = b.OrganizerID
	}
	verb := "accepted"
	if decision == models.BookingRejected {
		verb = "rejected"
	}
	if err := notifications.Send(ctx, recipient,
		fmt.Sprintf("Your booking for %s was %s", b.EventName, verb)); err != nil {
		log.Printf("booking: notify failed: %v", err)
	}

	Broadcast(b.EventID, "booking_"+verb, b)
	utils.RespondWithJSON(w, http.StatusOK, b)
}

// CancelBooking withdraws a pending booking. Only the organizer who
// issued it may cancel; decided bookings stay as a record.
func CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ident, ok := utils.GetIdentity(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	bookingID := ps.ByName("bookingid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var b models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch booking")
		return
	}

	if b.OrganizerID != ident.UserID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the organizer can cancel a booking")
		return
	}
	if err := CanCancel(b); err != nil {
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	}

	if _, err := db.BookingsCollection.DeleteOne(ctx, bson.M{"bookingid": bookingID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel booking")
		return
	}

	// Remove from the pending roster only if no other pending booking
	// for the same pair remains.
	count, err := db.BookingsCollection.CountDocuments(ctx, bson.M{
		"eventid": b.EventID,
		"djid":    b.DJID,
		"status":  models.BookingPending,
	})
	if err == nil && releasePendingSlot(count) {
		if err := events.RemovePendingDJ(ctx, b.EventID, b.DJID); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update event roster")
			return
		}
	}

	if err := notifications.Send(ctx, b.DJID,
		fmt.Sprintf("Booking request for %s was withdrawn", b.EventName)); err != nil {
		log.Printf("booking: notify failed: %v", err)
	}

	Broadcast(b.EventID, "booking_cancelled", b)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// MarkBookingPaid flags an accepted booking as paid out. Idempotent:
// paying an already-paid booking succeeds without side effects.
func MarkBookingPaid(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ident, ok := utils.GetIdentity(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	bookingID := ps.ByName("bookingid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var b models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch booking")
		return
	}

	if b.OrganizerID != ident.UserID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the organizer can mark a booking paid")
		return
	}
	if err := CanMarkPaid(b); err != nil {
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	}

	alreadyPaid := b.Paid
	if !alreadyPaid {
		_, err = db.BookingsCollection.UpdateOne(ctx,
			bson.M{"bookingid": bookingID},
			bson.M{"$set": bson.M{"paid": true}},
		)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update booking")
			return
		}
		b.Paid = true

		if err := notifications.Send(ctx, b.DJID,
			fmt.Sprintf("Payment for %s is confirmed", b.EventName)); err != nil {
			log.Printf("booking: notify failed: %v", err)
		}
		Broadcast(b.EventID, "booking_paid", b)
	}

	utils.RespondWithJSON(w, http.StatusOK, b)
}

// GetBookings lists the caller's bookings: the DJ side sees bookings
// where they perform, the organizer side sees bookings on their events.
// ?eventid= narrows to one event, ?status= to one status.
func GetBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ident, ok := utils.GetIdentity(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if ident.Role == models.RoleDJ {
		filter["djid"] = ident.UserID
	} else {
		filter["organizerid"] = ident.UserID
	}
	if eventID := r.URL.Query().Get("eventid"); eventID != "" {
		filter["eventid"] = eventID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := db.BookingsCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode bookings")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, joinEvents(ctx, bookings))
}

// joinEvents decorates bookings with event location and DJ name where the
// referenced documents still exist. Missing references degrade to the
// snapshot fields on the booking itself.
func joinEvents(ctx context.Context, bookings []models.Booking) []models.BookingView {
	views := make([]models.BookingView, 0, len(bookings))

	eventIDs := make([]string, 0, len(bookings))
	djIDs := make([]string, 0, len(bookings))
	for _, b := range bookings {
		eventIDs = append(eventIDs, b.EventID)
		djIDs = append(djIDs, b.DJID)
	}

	locations := map[string]string{}
	if cursor, err := db.EventsCollection.Find(ctx, bson.M{"eventid": bson.M{"$in": eventIDs}}); err == nil {
		var evs []models.Event
		if cursor.All(ctx, &evs) == nil {
			for _, e := range evs {
				locations[e.EventID] = e.Location
			}
		}
	}

	names := map[string]string{}
	if cursor, err := db.UserCollection.Find(ctx, bson.M{"userid": bson.M{"$in": djIDs}}); err == nil {
		var users []models.User
		if cursor.All(ctx, &users) == nil {
			for _, u := range users {
				names[u.UserID] = u.Username
			}
		}
	}

	for _, b := range bookings {
		views = append(views, models.BookingView{
			Booking:  b,
			Location: locations[b.EventID],
			DJName:   names[b.DJID],
		})
	}
	return views
}

// GetEarnings reports the calling DJ's totals over accepted bookings.
func GetEarnings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ident, ok := utils.GetIdentity(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if ident.Role != models.RoleDJ {
		utils.RespondWithError(w, http.StatusForbidden, "Earnings are for DJ accounts")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.BookingsCollection.Find(ctx, bson.M{
		"djid":   ident.UserID,
		"status": models.BookingAccepted,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode bookings")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"total":    Earnings(bookings),
		"paid":     PaidEarnings(bookings),
		"pending":  Earnings(bookings) - PaidEarnings(bookings),
		"bookings": len(bookings),
	})
}
