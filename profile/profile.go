package profile

import (
	"context"
	"encoding/json"
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

// GetProfile returns the authenticated user's own profile.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestingUserID, ok := utils.GetUserIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": requestingUserID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user.Password = ""
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// GetUserProfile returns a public view of another user's profile.
func GetUserProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": ps.ByName("userid")}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user.Password = ""
	user.Email = ""
	user.FCMToken = ""
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// EditProfile updates the caller's profile. Accepts multipart form data so
// the profile picture can come along with the text fields. DJ rate and
// conditions are accepted only for accounts with the dj role.
func EditProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ident, ok := utils.GetIdentity(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form")
		return
	}

	updates := bson.M{}
	if bio := r.FormValue("bio"); bio != "" {
		updates["bio"] = bio
	}
	if username := r.FormValue("username"); username != "" {
		updates["username"] = username
	}

	if ident.Role == models.RoleDJ {
		if priceStr := r.FormValue("price"); priceStr != "" {
			price, err := strconv.ParseFloat(priceStr, 64)
			if err != nil || price < 0 {
				utils.RespondWithError(w, http.StatusBadRequest, "Invalid price")
				return
			}
			updates["dj.price"] = price
		}
		if conditions := r.FormValue("conditions"); conditions != "" {
			updates["dj.conditions"] = conditions
		}
	}

	if file, _, err := r.FormFile("profile_picture"); err == nil {
		defer file.Close()
		pictureName, err := utils.SaveImageWithThumb(file, "./static/userpic", ident.UserID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Failed to save profile picture")
			return
		}
		updates["profile_picture"] = pictureName
	}

	if len(updates) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": ident.UserID},
		bson.M{"$set": updates},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": ident.UserID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	user.Password = ""
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// RegisterFCMToken stores the device push token for the caller.
func RegisterFCMToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestingUserID, ok := utils.GetUserIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Token == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": requestingUserID},
		bson.M{"$set": bson.M{"fcm_token": input.Token}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// GetDJs lists performers for the booking directory. Supports ?search=
// against the username plus page/limit pagination.
func GetDJs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{"role": models.RoleDJ}
	if search := r.URL.Query().Get("search"); search != "" {
		filter["username"] = bson.M{"$regex": search, "$options": "i"}
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
		SetSort(bson.M{"username": 1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := db.UserCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch DJs")
		return
	}
	defer cursor.Close(ctx)

	djs := []models.PublicDJ{}
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			continue
		}
		dj := models.PublicDJ{
			UserID:         user.UserID,
			Username:       user.Username,
			Bio:            user.Bio,
			ProfilePicture: user.ProfilePicture,
		}
		if user.DJ != nil {
			dj.Price = user.DJ.Price
			dj.Conditions = user.DJ.Conditions
		}
		djs = append(djs, dj)
	}

	utils.RespondWithJSON(w, http.StatusOK, djs)
}
