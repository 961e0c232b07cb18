package notifications

import (
	"context"
	"log"
	"time"

	"github.com/SMT2501/kasiBeats/db"
	"github.com/SMT2501/kasiBeats/models"
	"github.com/SMT2501/kasiBeats/mq"
	"github.com/SMT2501/kasiBeats/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// Send records a notification for userID and attempts a best-effort push.
// The notification document always lands first; push failures are logged
// and never surfaced to the caller.
func Send(ctx context.Context, userID, message string) error {
	notif := models.Notification{
		NotificationID: utils.GenerateID(14),
		UserID:         userID,
		Message:        message,
		Read:           false,
		CreatedAt:      time.Now(),
	}

	_, err := db.NotificationsCollection.InsertOne(ctx, notif)
	if err != nil {
		return err
	}

	go pushTo(userID, message)
	return nil
}

// SendMany fans a message out to a set of recipients, skipping duplicates.
func SendMany(ctx context.Context, userIDs []string, message string) {
	seen := make(map[string]bool, len(userIDs))
	for _, uid := range userIDs {
		if uid == "" || seen[uid] {
			continue
		}
		seen[uid] = true
		if err := Send(ctx, uid, message); err != nil {
			log.Printf("notifications: failed to notify %s: %v", uid, err)
		}
	}
}

func pushTo(userID, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user)
	if err != nil {
		log.Printf("notifications: push lookup for %s failed: %v", userID, err)
		return
	}
	if user.FCMToken == "" {
		return
	}

	mq.EmitPush(ctx, models.PushMessage{
		Token: user.FCMToken,
		Title: "KasiBeats",
		Body:  message,
	})
}
