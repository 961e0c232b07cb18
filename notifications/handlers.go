package notifications

import (
	"context"
	"net/http"
	"time"

	"github.com/SMT2501/kasiBeats/db"
	"github.com/SMT2501/kasiBeats/models"
	"github.com/SMT2501/kasiBeats/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetNotifications returns the caller's notifications, newest first.
func GetNotifications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestingUserID, ok := utils.GetUserIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(100)
	cursor, err := db.NotificationsCollection.Find(ctx, bson.M{"userid": requestingUserID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}
	defer cursor.Close(ctx)

	notifs := []models.Notification{}
	if err := cursor.All(ctx, &notifs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode notifications")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, notifs)
}

// MarkNotificationRead flips a single notification to read. Only the
// recipient can mark their own notifications.
func MarkNotificationRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestingUserID, ok := utils.GetUserIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.NotificationsCollection.UpdateOne(ctx,
		bson.M{"notificationid": ps.ByName("notifid"), "userid": requestingUserID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update notification")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Notification not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// MarkAllNotificationsRead clears the caller's unread badge in one shot.
func MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestingUserID, ok := utils.GetUserIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err := db.NotificationsCollection.UpdateMany(ctx,
		bson.M{"userid": requestingUserID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update notifications")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
