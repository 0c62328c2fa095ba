package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"studiobook/pkg/config"
	apperrors "studiobook/pkg/errors"
	"studiobook/pkg/logger"
	"studiobook/pkg/model"
	"studiobook/pkg/timezone"
)

type mockClassRepo struct {
	classes  []*model.ClassSession
	err      error
	gotAfter time.Time
}

func (m *mockClassRepo) FindUpcoming(_ context.Context, after time.Time) ([]*model.ClassSession, error) {
	m.gotAfter = after
	if m.err != nil {
		return nil, m.err
	}
	return m.classes, nil
}

func newTestCatalog(t *testing.T, repo *mockClassRepo) CatalogService {
	t.Helper()

	log := logger.New(logger.Config{Level: "error", Service: "test"})
	cfg := &config.Config{Log: log}

	converter, err := timezone.NewConverter("Asia/Kolkata")
	if err != nil {
		t.Fatalf("unexpected error creating converter: %v", err)
	}

	return NewCatalogService(repo, converter, cfg)
}

func TestListUpcoming(t *testing.T) {
	start := time.Date(2026, 9, 15, 1, 30, 0, 0, time.UTC)
	repo := &mockClassRepo{classes: []*model.ClassSession{
		{ID: 1, Name: "Yoga Flow", Instructor: "Priya Sharma", StartTime: start, TotalSlots: 20, BookedSlots: 3},
		{ID: 2, Name: "Zumba Dance", Instructor: "Rahul Kumar", StartTime: start.Add(2 * time.Hour), TotalSlots: 25, BookedSlots: 25},
	}}
	svc := newTestCatalog(t, repo)

	views, err := svc.ListUpcoming(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 classes, got %d", len(views))
	}

	first := views[0]
	if first.ID != 1 || first.Name != "Yoga Flow" || first.Instructor != "Priya Sharma" {
		t.Errorf("unexpected class view: %+v", first)
	}
	if first.AvailableSlots != 17 {
		t.Errorf("expected 17 available slots, got %d", first.AvailableSlots)
	}
	if !strings.HasSuffix(first.Datetime, "+05:30") {
		t.Errorf("expected studio-local datetime by default, got %s", first.Datetime)
	}

	// Full classes stay listed with zero availability.
	if views[1].AvailableSlots != 0 {
		t.Errorf("expected 0 available slots, got %d", views[1].AvailableSlots)
	}
}

func TestListUpcoming_TargetTimezone(t *testing.T) {
	start := time.Date(2026, 9, 15, 1, 30, 0, 0, time.UTC)
	repo := &mockClassRepo{classes: []*model.ClassSession{
		{ID: 1, Name: "Yoga Flow", Instructor: "Priya Sharma", StartTime: start, TotalSlots: 20},
	}}
	svc := newTestCatalog(t, repo)

	views, err := svc.ListUpcoming(context.Background(), "UTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := views[0].Datetime; got != "2026-09-15T01:30:00Z" {
		t.Errorf("expected UTC datetime, got %s", got)
	}
}

func TestListUpcoming_CutoffIsNow(t *testing.T) {
	repo := &mockClassRepo{}
	svc := newTestCatalog(t, repo)

	before := time.Now()
	if _, err := svc.ListUpcoming(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after := time.Now()

	// Already-started classes must be filtered out against the current
	// instant, not a stale or zero cutoff.
	if repo.gotAfter.Before(before) || repo.gotAfter.After(after) {
		t.Errorf("expected cutoff between %v and %v, got %v", before, after, repo.gotAfter)
	}
}

func TestListUpcoming_Empty(t *testing.T) {
	svc := newTestCatalog(t, &mockClassRepo{})

	views, err := svc.ListUpcoming(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if views == nil || len(views) != 0 {
		t.Errorf("expected empty non-nil result, got %v", views)
	}
}

func TestListUpcoming_InvalidTimezone(t *testing.T) {
	repo := &mockClassRepo{classes: []*model.ClassSession{
		{ID: 1, Name: "Yoga Flow", StartTime: time.Now().Add(time.Hour), TotalSlots: 20},
	}}
	svc := newTestCatalog(t, repo)

	_, err := svc.ListUpcoming(context.Background(), "Not/AZone")
	if err == nil {
		t.Fatal("expected invalid timezone to fail")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.CodeInvalidTimezone {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidTimezone, appErr.Code)
	}
}

func TestListUpcoming_StoreFailure(t *testing.T) {
	svc := newTestCatalog(t, &mockClassRepo{err: errors.New("connection reset")})

	_, err := svc.ListUpcoming(context.Background(), "")
	if err == nil {
		t.Fatal("expected store failure to surface")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.CodeInternal {
		t.Errorf("expected code %s, got %s", apperrors.CodeInternal, appErr.Code)
	}
}
