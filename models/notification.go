package models

import "time"

type Notification struct {
	NotificationID string    `json:"notificationid" bson:"notificationid"`
	UserID         string    `json:"userId" bson:"userid"`
	Message        string    `json:"message" bson:"message"`
	Read           bool      `json:"read" bson:"read"`
	CreatedAt      time.Time `json:"createdAt" bson:"created_at"`
}

// PushMessage is the payload published to the push delivery worker.
type PushMessage struct {
	Token string `json:"token"`
	Title string `json:"title"`
	Body  string `json:"body"`
}
