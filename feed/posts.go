package feed

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/SMT2501/kasiBeats/db"
	"github.com/SMT2501/kasiBeats/models"
	"github.com/SMT2501/kasiBeats/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreatePost publishes a post to the community feed. Multipart so an
// image can come along with the text.
func CreatePost(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ident, ok := utils.GetIdentity(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form")
		return
	}

	content := r.FormValue("content")
	if content == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "content is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": ident.UserID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	post := models.Post{
		PostID:    "p" + utils.GenerateID(12),
		UserID:    ident.UserID,
		Username:  user.Username,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if file, _, err := r.FormFile("media"); err == nil {
		defer file.Close()
		mediaName, err := utils.SaveImageWithThumb(file, "./static/postpic", post.PostID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Failed to save media")
			return
		}
		post.MediaURL = mediaName
	}

	if _, err := db.PostsCollection.InsertOne(ctx, post); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create post")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, post)
}

// GetPosts lists feed posts, newest first. ?userid= narrows to one author.
func GetPosts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if userID := r.URL.Query().Get("userid"); userID != "" {
		filter["userid"] = userID
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
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := db.PostsCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode posts")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, posts)
}

// GetPost returns one post by id.
func GetPost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var post models.Post
	err := db.PostsCollection.FindOne(ctx, bson.M{"postid": ps.ByName("postid")}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Post not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch post")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, post)
}

// DeletePost removes the caller's own post.
func DeletePost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestingUserID, ok := utils.GetUserIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.PostsCollection.DeleteOne(ctx, bson.M{
		"postid": ps.ByName("postid"),
		"userid": requestingUserID,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete post")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Post not found or not yours")
		return
	}

	_, _ = db.CommentsCollection.DeleteMany(ctx, bson.M{"postid": ps.ByName("postid")})
	_, _ = db.LikesCollection.DeleteMany(ctx, bson.M{"postid": ps.ByName("postid")})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
