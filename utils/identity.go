package utils

import (
	"net/http"

	"github.com/SMT2501/kasiBeats/globals"
)

// Identity is the caller threaded through every handler, taken from the
// verified JWT rather than any ambient session.
type Identity struct {
	UserID string
	Role   string
}

// GetIdentity extracts the caller from the request context. The second
// return is false when the request carried no valid token.
func GetIdentity(r *http.Request) (Identity, bool) {
	ctx := r.Context()
	id := Identity{}
	if v, ok := ctx.Value(globals.UserIDKey).(string); ok {
		id.UserID = v
	}
	if v, ok := ctx.Value(globals.RoleKey).(string); ok {
		id.Role = v
	}
	return id, id.UserID != ""
}

func GetUserIDFromRequest(r *http.Request) (string, bool) {
	id, ok := GetIdentity(r)
	return id.UserID, ok
}
