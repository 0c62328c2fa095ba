package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "studiobook/pkg/errors"
	"studiobook/pkg/logger"
	"studiobook/pkg/model"
)

type mockBookingService struct {
	confirmation *model.BookingConfirmation
	views        []*model.BookingView
	err          error

	gotEmail string
	gotTZ    string
}

func (m *mockBookingService) Book(_ context.Context, _ *model.BookingRequest) (*model.BookingConfirmation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.confirmation, nil
}

func (m *mockBookingService) ListByEmail(_ context.Context, email, targetTZ string) ([]*model.BookingView, error) {
	m.gotEmail = email
	m.gotTZ = targetTZ
	if m.err != nil {
		return nil, m.err
	}
	return m.views, nil
}

func newTestRouter(svc *mockBookingService) *httprouter.Router {
	log := logger.New(logger.Config{Level: "error", Service: "test"})
	router := httprouter.New()
	NewBookingHandler(svc, log).RegisterRoutes(router)
	return router
}

func TestBook_Created(t *testing.T) {
	svc := &mockBookingService{confirmation: &model.BookingConfirmation{
		Message:       "Booking successful",
		BookingID:     7,
		ClassName:     "Yoga Flow",
		Instructor:    "Priya Sharma",
		ClassDatetime: "2026-09-15T07:00:00+05:30",
		ClientName:    "John Doe",
		ClientEmail:   "john@example.com",
	}}
	router := newTestRouter(svc)

	body := `{"class_id": 1, "client_name": "John Doe", "client_email": "john@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/book", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var got model.BookingConfirmation
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if got.BookingID != 7 || got.Message != "Booking successful" {
		t.Errorf("unexpected confirmation: %+v", got)
	}
}

func TestBook_MalformedBody(t *testing.T) {
	router := newTestRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/book", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
}

func TestBook_ErrorPropagation(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"no slots", apperrors.NoSlots(1), http.StatusBadRequest, apperrors.CodeNoSlots},
		{"duplicate", apperrors.DuplicateBooking(1), http.StatusBadRequest, apperrors.CodeDuplicate},
		{"class not found", apperrors.NotFoundWithID("Class", 99), http.StatusNotFound, apperrors.CodeNotFound},
		{"validation", apperrors.Validation("Booking validation failed", nil), http.StatusUnprocessableEntity, apperrors.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockBookingService{err: tt.err})

			body := `{"class_id": 1, "client_name": "John Doe", "client_email": "john@example.com"}`
			req := httptest.NewRequest(http.MethodPost, "/book", strings.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.code) {
				t.Errorf("expected body to carry code %s, got %s", tt.code, rec.Body.String())
			}
		})
	}
}

func TestBook_InternalErrorHidesCause(t *testing.T) {
	router := newTestRouter(&mockBookingService{
		err: apperrors.Internal("Failed to create booking", nil),
	})

	body := `{"class_id": 1, "client_name": "John Doe", "client_email": "john@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/book", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "Failed to create booking") {
		t.Error("internal detail must not reach the client")
	}
}

func TestHistory(t *testing.T) {
	svc := &mockBookingService{views: []*model.BookingView{
		{
			ID:            1,
			ClassID:       1,
			ClassName:     "Yoga Flow",
			Instructor:    "Priya Sharma",
			ClassDatetime: "2026-09-15T01:30:00Z",
			ClientName:    "John Doe",
			ClientEmail:   "john@example.com",
			BookingTime:   "2026-09-14T10:00:00Z",
		},
	}}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/bookings?email=john@example.com&timezone=UTC", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if svc.gotEmail != "john@example.com" || svc.gotTZ != "UTC" {
		t.Errorf("query params not forwarded: email=%q tz=%q", svc.gotEmail, svc.gotTZ)
	}

	var got []*model.BookingView
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(got) != 1 || got[0].ClassName != "Yoga Flow" {
		t.Errorf("unexpected bookings payload: %+v", got)
	}
}

func TestHistory_EmptyList(t *testing.T) {
	router := newTestRouter(&mockBookingService{views: []*model.BookingView{}})

	req := httptest.NewRequest(http.MethodGet, "/bookings?email=nobody@example.com", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected empty JSON array, got %s", body)
	}
}

func TestHistory_InvalidEmail(t *testing.T) {
	router := newTestRouter(&mockBookingService{
		err: apperrors.Validation("Invalid email address", nil),
	})

	req := httptest.NewRequest(http.MethodGet, "/bookings?email=not-an-email", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
}
