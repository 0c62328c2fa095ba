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

type mockCatalogService struct {
	views []*model.ClassView
	err   error

	gotTZ string
}

func (m *mockCatalogService) ListUpcoming(_ context.Context, targetTZ string) ([]*model.ClassView, error) {
	m.gotTZ = targetTZ
	if m.err != nil {
		return nil, m.err
	}
	return m.views, nil
}

func newTestRouter(svc *mockCatalogService) *httprouter.Router {
	log := logger.New(logger.Config{Level: "error", Service: "test"})
	router := httprouter.New()
	NewClassHandler(svc, log).RegisterRoutes(router)
	return router
}

func TestListUpcoming(t *testing.T) {
	svc := &mockCatalogService{views: []*model.ClassView{
		{ID: 1, Name: "Yoga Flow", Instructor: "Priya Sharma", Datetime: "2026-09-15T07:00:00+05:30", TotalSlots: 20, AvailableSlots: 17},
	}}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/classes?timezone=UTC", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if svc.gotTZ != "UTC" {
		t.Errorf("timezone query param not forwarded, got %q", svc.gotTZ)
	}

	var got []*model.ClassView
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Yoga Flow" || got[0].AvailableSlots != 17 {
		t.Errorf("unexpected classes payload: %+v", got)
	}
}

func TestListUpcoming_InvalidTimezone(t *testing.T) {
	router := newTestRouter(&mockCatalogService{
		err: apperrors.InvalidTimezone("Not/AZone"),
	})

	req := httptest.NewRequest(http.MethodGet, "/classes?timezone=Not/AZone", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), apperrors.CodeInvalidTimezone) {
		t.Errorf("expected body to carry code %s, got %s", apperrors.CodeInvalidTimezone, rec.Body.String())
	}
}

func TestListUpcoming_EmptyCatalog(t *testing.T) {
	router := newTestRouter(&mockCatalogService{views: []*model.ClassView{}})

	req := httptest.NewRequest(http.MethodGet, "/classes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected empty JSON array, got %s", body)
	}
}
