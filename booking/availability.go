package booking

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/SMT2501/kasiBeats/db"
	"github.com/SMT2501/kasiBeats/models"
	"github.com/SMT2501/kasiBeats/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// ConflictsOn returns the bookings that clash with the given date at day
// granularity. Only accepted bookings count; a pending request is not a
// commitment yet and a rejected one never blocks a date.
func ConflictsOn(bookings []models.Booking, date time.Time) []models.Booking {
	var conflicts []models.Booking
	for _, b := range bookings {
		if b.Status != models.BookingAccepted {
			continue
		}
		if utils.SameDay(b.Date, date) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}

// CheckAvailability answers whether a DJ is free on a date. The check is
// advisory: a conflict is reported but never blocks a new booking.
func CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	djID := r.URL.Query().Get("djid")
	dateStr := r.URL.Query().Get("date")
	if djID == "" || dateStr == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "djid and date are required")
		return
	}

	date, err := utils.NormalizeDate(dateStr)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	bookings, err := activeBookingsFor(ctx, djID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}

	conflicts := ConflictsOn(bookings, date)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"available": len(conflicts) == 0,
		"conflicts": conflicts,
	})
}

// GetCalendar returns the calling DJ's bookings grouped by day, for the
// availability calendar view.
func GetCalendar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ident, ok := utils.GetIdentity(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if ident.Role != models.RoleDJ {
		utils.RespondWithError(w, http.StatusForbidden, "Calendar is for DJ accounts")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	bookings, err := activeBookingsFor(ctx, ident.UserID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, GroupByDay(bookings))
}

// GroupByDay buckets bookings under their day key, days sorted ascending.
func GroupByDay(bookings []models.Booking) []DaySchedule {
	buckets := map[time.Time][]models.Booking{}
	for _, b := range bookings {
		key := utils.DayKey(b.Date)
		buckets[key] = append(buckets[key], b)
	}

	days := make([]time.Time, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	schedule := make([]DaySchedule, 0, len(days))
	for _, day := range days {
		schedule = append(schedule, DaySchedule{
			Day:      day.Format("2006-01-02"),
			Bookings: buckets[day],
		})
	}
	return schedule
}

type DaySchedule struct {
	Day      string           `json:"day"`
	Bookings []models.Booking `json:"bookings"`
}

// dayConflicts is the advisory lookup used by the create flows; a fetch
// failure degrades to no conflicts rather than failing the booking.
func dayConflicts(ctx context.Context, djID string, date time.Time) []models.Booking {
	bookings, err := activeBookingsFor(ctx, djID)
	if err != nil {
		return nil
	}
	return ConflictsOn(bookings, date)
}

func activeBookingsFor(ctx context.Context, djID string) ([]models.Booking, error) {
	cursor, err := db.BookingsCollection.Find(ctx, bson.M{
		"djid":   djID,
		"status": bson.M{"$in": []string{models.BookingPending, models.BookingAccepted}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
