package models

import "time"

type Post struct {
	PostID    string    `json:"postid" bson:"postid"`
	UserID    string    `json:"userId" bson:"userid"`
	Username  string    `json:"username" bson:"username"`
	Content   string    `json:"content" bson:"content"`
	MediaURL  string    `json:"mediaUrl,omitempty" bson:"media_url,omitempty"`
	Likes     int64     `json:"likes" bson:"likes"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

type Comment struct {
	CommentID string    `json:"commentid" bson:"commentid"`
	PostID    string    `json:"postId" bson:"postid"`
	UserID    string    `json:"userId" bson:"userid"`
	Username  string    `json:"username" bson:"username"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

type Like struct {
	PostID    string    `json:"postId" bson:"postid"`
	UserID    string    `json:"userId" bson:"userid"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
