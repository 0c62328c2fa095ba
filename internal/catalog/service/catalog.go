package service

import (
	"context"
	"time"

	"studiobook/internal/catalog/repository"
	"studiobook/pkg/config"
	apperrors "studiobook/pkg/errors"
	"studiobook/pkg/model"
	"studiobook/pkg/timezone"
)

type CatalogService interface {
	ListUpcoming(ctx context.Context, targetTZ string) ([]*model.ClassView, error)
}

type catalogService struct {
	repo      repository.ClassRepository
	converter *timezone.Converter
	cfg       *config.Config
}

func NewCatalogService(repo repository.ClassRepository, converter *timezone.Converter, cfg *config.Config) CatalogService {
	return &catalogService{
		repo:      repo,
		converter: converter,
		cfg:       cfg,
	}
}

// ListUpcoming returns the bookable catalog: classes that have not started
// yet, localized to the requested timezone. Read-only.
func (s *catalogService) ListUpcoming(ctx context.Context, targetTZ string) ([]*model.ClassView, error) {
	classes, err := s.repo.FindUpcoming(ctx, time.Now())
	if err != nil {
		s.cfg.Log.Error("Failed to list upcoming classes", "error", err)
		return nil, apperrors.Internal("Failed to retrieve classes", err)
	}

	views := make([]*model.ClassView, 0, len(classes))
	for _, class := range classes {
		localized, err := s.converter.Localize(class.StartTime, targetTZ)
		if err != nil {
			return nil, err
		}

		views = append(views, &model.ClassView{
			ID:             class.ID,
			Name:           class.Name,
			Instructor:     class.Instructor,
			Datetime:       localized,
			TotalSlots:     class.TotalSlots,
			AvailableSlots: class.AvailableSlots(),
		})
	}

	return views, nil
}
