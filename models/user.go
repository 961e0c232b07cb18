package models

import "time"

// Roles form a closed set; DJ-specific fields live on DJProfile so they
// cannot leak onto organizer or viewer records.
const (
	RoleDJ        = "dj"
	RoleOrganizer = "organizer"
	RoleViewer    = "viewer"
)

func ValidRole(role string) bool {
	switch role {
	case RoleDJ, RoleOrganizer, RoleViewer:
		return true
	}
	return false
}

// DJProfile is the performer-only payload: booking rate and the terms an
// organizer agrees to when booking.
type DJProfile struct {
	Price      float64 `json:"price" bson:"price"`
	Conditions string  `json:"conditions" bson:"conditions"`
}

type User struct {
	UserID         string     `json:"userid" bson:"userid"`
	Username       string     `json:"username" bson:"username"`
	Email          string     `json:"email" bson:"email"`
	Password       string     `json:"password,omitempty" bson:"password"`
	Role           string     `json:"role" bson:"role"`
	Bio            string     `json:"bio,omitempty" bson:"bio,omitempty"`
	ProfilePicture string     `json:"profilePicture,omitempty" bson:"profile_picture,omitempty"`
	DJ             *DJProfile `json:"dj,omitempty" bson:"dj,omitempty"`
	FCMToken       string     `json:"-" bson:"fcm_token,omitempty"`
	RefreshToken   string     `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry  time.Time  `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin      time.Time  `json:"-" bson:"last_login,omitempty"`
	CreatedAt      time.Time  `json:"createdAt" bson:"created_at"`
}

// PublicDJ is the directory view of a performer: enough for an organizer
// to pick a DJ and see the rate and conditions they would agree to.
type PublicDJ struct {
	UserID         string  `json:"userid" bson:"userid"`
	Username       string  `json:"username" bson:"username"`
	Bio            string  `json:"bio,omitempty" bson:"bio,omitempty"`
	ProfilePicture string  `json:"profilePicture,omitempty" bson:"profile_picture,omitempty"`
	Price          float64 `json:"price"`
	Conditions     string  `json:"conditions"`
}
