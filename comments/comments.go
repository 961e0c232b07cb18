package comments

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/SMT2501/kasiBeats/db"
	"github.com/SMT2501/kasiBeats/models"
	"github.com/SMT2501/kasiBeats/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddComment attaches a comment to a feed post.
func AddComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ident, ok := utils.GetIdentity(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	postID := ps.ByName("postid")

	var input struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Content == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "content is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := db.PostsCollection.FindOne(ctx, bson.M{"postid": postID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Post not found")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": ident.UserID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	comment := models.Comment{
		CommentID: "c" + utils.GenerateID(12),
		PostID:    postID,
		UserID:    ident.UserID,
		Username:  user.Username,
		Content:   input.Content,
		CreatedAt: time.Now(),
	}

	if _, err := db.CommentsCollection.InsertOne(ctx, comment); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add comment")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, comment)
}

// GetComments lists a post's comments oldest first.
func GetComments(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cursor, err := db.CommentsCollection.Find(ctx, bson.M{"postid": ps.ByName("postid")}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch comments")
		return
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode comments")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, comments)
}

// DeleteComment removes the caller's own comment.
func DeleteComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestingUserID, ok := utils.GetUserIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.CommentsCollection.DeleteOne(ctx, bson.M{
		"commentid": ps.ByName("commentid"),
		"userid":    requestingUserID,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete comment")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Comment not found or not yours")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
