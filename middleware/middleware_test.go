package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SMT2501/kasiBeats/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, userID, role string, ttl time.Duration) string {
	t.Helper()
	claims := Claims{
		Username: "tester",
		UserID:   userID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	require.NoError(t, err)
	return token
}

func TestAuthenticateSetsIdentity(t *testing.T) {
	var gotUserID, gotRole string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
		gotRole, _ = r.Context().Value(globals.RoleKey).(string)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", "dj", time.Hour))
	rec := httptest.NewRecorder()

	handler(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", gotUserID)
	assert.Equal(t, "dj", gotRole)
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rec := httptest.NewRecorder()

	handler(rec, req, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsBadFormat(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", signToken(t, "u1", "dj", time.Hour)) // no Bearer prefix
	rec := httptest.NewRecorder()

	handler(rec, req, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", "dj", -time.Minute))
	rec := httptest.NewRecorder()

	handler(rec, req, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func wsUpgradeRequest(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	return req
}

func TestAuthenticateWebsocketTokenParam(t *testing.T) {
	var gotUserID string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
		w.WriteHeader(http.StatusOK)
	})

	token := signToken(t, "u1", "dj", time.Hour)
	rec := httptest.NewRecorder()
	handler(rec, wsUpgradeRequest("/ws/events/e1/bookings?token="+token), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", gotUserID)
}

func TestAuthenticateWebsocketRejectsMissingToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not run")
	})

	rec := httptest.NewRecorder()
	handler(rec, wsUpgradeRequest("/ws/events/e1/bookings"), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestValidateJWT(t *testing.T) {
	claims, err := ValidateJWT(signToken(t, "u1", "organizer", time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "organizer", claims.Role)

	// Bearer prefix is accepted too
	claims, err = ValidateJWT("Bearer " + signToken(t, "u2", "dj", time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "u2", claims.UserID)

	_, err = ValidateJWT("")
	assert.Error(t, err)
	_, err = ValidateJWT(signToken(t, "u1", "dj", -time.Minute))
	assert.Error(t, err)
}

func TestOptionalAuthWithoutToken(t *testing.T) {
	ran := false
	handler := OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ran = true
		_, hasID := r.Context().Value(globals.UserIDKey).(string)
		assert.False(t, hasID)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	rec := httptest.NewRecorder()

	handler(rec, req, nil)
	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, rec.Code)
}
