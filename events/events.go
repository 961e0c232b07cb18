package events

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/SMT2501/kasiBeats/db"
	"github.com/SMT2501/kasiBeats/models"
	"github.com/SMT2501/kasiBeats/rdx"
	"github.com/SMT2501/kasiBeats/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateEvent creates an event owned by the calling organizer. Accepts
// multipart form data so the banner image can ride along.
func CreateEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ident, ok := utils.GetIdentity(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if ident.Role != models.RoleOrganizer {
		utils.RespondWithError(w, http.StatusForbidden, "Only organizers can create events")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form")
		return
	}

	name := r.FormValue("name")
	location := r.FormValue("location")
	dateStr := r.FormValue("date")
	if name == "" || location == "" || dateStr == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	date, err := utils.NormalizeDate(dateStr)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid event date")
		return
	}

	ticketPrice, _ := strconv.ParseFloat(r.FormValue("ticket_price"), 64)
	ticketQuantity, _ := strconv.Atoi(r.FormValue("ticket_quantity"))
	capacity, _ := strconv.Atoi(r.FormValue("capacity"))
	if ticketPrice < 0 || ticketQuantity < 0 || capacity < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Negative values not allowed")
		return
	}

	event := models.Event{
		EventID:         "e" + utils.GenerateID(12),
		OrganizerID:     ident.UserID,
		Name:            name,
		Date:            date,
		Location:        location,
		Description:     r.FormValue("description"),
		TicketPrice:     ticketPrice,
		TicketQuantity:  ticketQuantity,
		Capacity:        capacity,
		TicketsSold:     0,
		Revenue:         0,
		DJsBooked:       []string{},
		PendingDJs:      []string{},
		AllowDJRequests: r.FormValue("allow_dj_requests") == "true",
		CreatedAt:       time.Now(),
	}

	if file, _, err := r.FormFile("banner_image"); err == nil {
		defer file.Close()
		bannerName, err := utils.SaveImageWithThumb(file, "./static/eventpic", event.EventID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Failed to save banner image")
			return
		}
		event.BannerImage = bannerName
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.EventsCollection.InsertOne(ctx, event); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, event)
}

// GetEvents lists events, newest date first, with page/limit pagination.
// ?organizerid= narrows to one organizer's events.
func GetEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if organizerID := r.URL.Query().Get("organizerid"); organizerID != "" {
		filter["organizerid"] = organizerID
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 50 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.M{"date": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := db.EventsCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode events")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, events)
}

// GetEvent returns a single event by id, served from the redis cache
// when a fresh copy is there.
func GetEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	if cached, err := rdx.RdxGet("event:" + eventID); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
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

	if data, err := json.Marshal(event); err == nil {
		if err := rdx.SetWithExpiry("event:"+eventID, string(data), 10*time.Minute); err != nil {
			log.Printf("events: cache set failed for %s: %v", eventID, err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, event)
}

// EditEvent updates fields on an event the caller owns. Capacity counters
// (tickets_sold, revenue) and the DJ rosters are never editable here.
func EditEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ident, ok := utils.GetIdentity(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	eventID := ps.ByName("eventid")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form")
		return
	}

	updates := bson.M{}
	if name := r.FormValue("name"); name != "" {
		updates["name"] = name
	}
	if location := r.FormValue("location"); location != "" {
		updates["location"] = location
	}
	if description := r.FormValue("description"); description != "" {
		updates["description"] = description
	}
	if dateStr := r.FormValue("date"); dateStr != "" {
		date, err := utils.NormalizeDate(dateStr)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid event date")
			return
		}
		updates["date"] = date
	}
	if priceStr := r.FormValue("ticket_price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid ticket price")
			return
		}
		updates["ticket_price"] = price
	}
	if qtyStr := r.FormValue("ticket_quantity"); qtyStr != "" {
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid ticket quantity")
			return
		}
		updates["ticket_quantity"] = qty
	}
	if capStr := r.FormValue("capacity"); capStr != "" {
		capVal, err := strconv.Atoi(capStr)
		if err != nil || capVal < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid capacity")
			return
		}
		updates["capacity"] = capVal
	}
	if allow := r.FormValue("allow_dj_requests"); allow != "" {
		updates["allow_dj_requests"] = allow == "true"
	}

	if file, _, err := r.FormFile("banner_image"); err == nil {
		defer file.Close()
		bannerName, err := utils.SaveImageWithThumb(file, "./static/eventpic", eventID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Failed to save banner image")
			return
		}
		updates["banner_image"] = bannerName
	}

	if len(updates) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.EventsCollection.UpdateOne(ctx,
		bson.M{"eventid": eventID, "organizerid": ident.UserID},
		bson.M{"$set": updates},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update event")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found or not yours")
		return
	}

	dropCached(eventID)

	var event models.Event
	if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, event)
}

// dropCached evicts an event from the redis cache after any write that
// changes the document.
func dropCached(eventID string) {
	if err := rdx.RdxDel("event:" + eventID); err != nil {
		log.Printf("events: cache drop failed for %s: %v", eventID, err)
	}
}
