package feed

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/SMT2501/kasiBeats/db"
	"github.com/SMT2501/kasiBeats/globals"
	"github.com/SMT2501/kasiBeats/models"
	"github.com/SMT2501/kasiBeats/rdx"
	"github.com/SMT2501/kasiBeats/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func likeCountKey(postID string) string {
	return "like:count:post:" + postID
}

// LikePost records a like. The per-post counter lives in Redis and is
// flushed back to the post document by the background worker, so the
// document count may lag by one flush interval.
func LikePost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestingUserID, ok := utils.GetUserIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	postID := ps.ByName("postid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := db.PostsCollection.FindOne(ctx, bson.M{"postid": postID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Post not found")
		return
	}

	like := models.Like{
		PostID:    postID,
		UserID:    requestingUserID,
		CreatedAt: time.Now(),
	}
	err := db.LikesCollection.FindOne(ctx, bson.M{"postid": postID, "userid": requestingUserID}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Already liked")
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check like")
		return
	}

	if _, err := db.LikesCollection.InsertOne(ctx, like); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record like")
		return
	}

	count, err := bumpLikeCount(ctx, postID, 1)
	if err != nil {
		log.Printf("feed: like counter bump failed: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"liked": true, "likes": count})
}

// UnlikePost removes a like and decrements the counter.
func UnlikePost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestingUserID, ok := utils.GetUserIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	postID := ps.ByName("postid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.LikesCollection.DeleteOne(ctx, bson.M{"postid": postID, "userid": requestingUserID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove like")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Like not found")
		return
	}

	count, err := bumpLikeCount(ctx, postID, -1)
	if err != nil {
		log.Printf("feed: like counter bump failed: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"liked": false, "likes": count})
}

// bumpLikeCount adjusts the Redis counter, seeding it from the post
// document on first touch.
func bumpLikeCount(ctx context.Context, postID string, delta int64) (int64, error) {
	key := likeCountKey(postID)

	exists, err := rdx.Conn.Exists(globals.Ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		var post models.Post
		if err := db.PostsCollection.FindOne(ctx, bson.M{"postid": postID}).Decode(&post); err == nil {
			if err := rdx.Conn.SetNX(globals.Ctx, key, post.Likes, 0).Err(); err != nil {
				return 0, err
			}
		}
	}

	return rdx.Conn.IncrBy(globals.Ctx, key, delta).Result()
}
