package db

import (
	"context"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection          *mongo.Collection
	EventsCollection        *mongo.Collection
	BookingsCollection      *mongo.Collection
	TicketsCollection       *mongo.Collection
	NotificationsCollection *mongo.Collection
	PostsCollection         *mongo.Collection
	CommentsCollection      *mongo.Collection
	LikesCollection         *mongo.Collection
	Client                  *mongo.Client
)

// Init connects to MongoDB and binds the collection handles. Called once
// from main; feature packages stay importable in tests without a live store.
func Init(ctx context.Context) error {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	Client = client

	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "kasibeats"
	}

	database := client.Database(dbName)
	UserCollection = database.Collection("users")
	EventsCollection = database.Collection("events")
	BookingsCollection = database.Collection("bookings")
	TicketsCollection = database.Collection("tickets")
	NotificationsCollection = database.Collection("notifications")
	PostsCollection = database.Collection("posts")
	CommentsCollection = database.Collection("comments")
	LikesCollection = database.Collection("likes")
	return nil
}

func Close(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
