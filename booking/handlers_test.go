package booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SMT2501/kasiBeats/globals"
	"github.com/SMT2501/kasiBeats/models"

	"github.com/stretchr/testify/assert"
)

func authedRequest(method, target, body, userID, role string) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(r.Context(), globals.UserIDKey, userID)
	ctx = context.WithValue(ctx, globals.RoleKey, role)
	return r.WithContext(ctx)
}

func TestCreateBookingRequiresAuth(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{}`))

	CreateBooking(rec, req, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateBookingValidatesBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/bookings", `{"eventId":""}`, "org1", models.RoleOrganizer)

	CreateBooking(rec, req, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestBookingRequiresDJRole(t *testing.T) {
	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/bookings/request", `{"eventId":"e1"}`, "org1", models.RoleOrganizer)

	RequestBooking(rec, req, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCheckAvailabilityValidatesParams(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/availability?djid=dj1", nil)

	CheckAvailability(rec, req, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/availability?djid=dj1&date=whenever", nil)
	CheckAvailability(rec, req, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetEarningsRequiresDJRole(t *testing.T) {
	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodGet, "/api/earnings", "", "org1", models.RoleOrganizer)

	GetEarnings(rec, req, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetCalendarRequiresDJRole(t *testing.T) {
	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodGet, "/api/calendar", "", "viewer1", models.RoleViewer)

	GetCalendar(rec, req, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
