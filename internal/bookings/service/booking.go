package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "studiobook/internal/bookings/errors"
	"studiobook/internal/bookings/repository"
	"studiobook/internal/bookings/validator"
	"studiobook/pkg/config"
	apperrors "studiobook/pkg/errors"
	"studiobook/pkg/events"
	"studiobook/pkg/model"
	"studiobook/pkg/sanitizer"
	"studiobook/pkg/timezone"
)

type BookingService interface {
	Book(ctx context.Context, req *model.BookingRequest) (*model.BookingConfirmation, error)
	ListByEmail(ctx context.Context, email string, targetTZ string) ([]*model.BookingView, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	converter *timezone.Converter
	publisher events.Publisher
	cfg       *config.Config
	locks     *classLocks
}

func NewBookingService(
	repo repository.BookingRepository,
	bookingValidator *validator.BookingValidator,
	converter *timezone.Converter,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: bookingValidator,
		converter: converter,
		publisher: publisher,
		cfg:       cfg,
		locks:     newClassLocks(),
	}
}

// Book reserves one slot. All checks and both writes run under the per-class
// lock and a single store transaction: either the booking lands and
// booked_slots moves with it, or neither does.
func (s *bookingService) Book(ctx context.Context, req *model.BookingRequest) (*model.BookingConfirmation, error) {
	s.sanitize(req)
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	release := s.locks.Acquire(req.ClassID)
	defer release()

	var booking *model.Booking
	var class *model.ClassSession

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		var err error
		class, err = s.repo.FindClassByID(sessCtx, req.ClassID)
		if err != nil {
			if errors.Is(err, bookingserrors.ErrClassNotFound) {
				return apperrors.NotFoundWithID("Class", req.ClassID)
			}
			return apperrors.Internal("Failed to load class", err)
		}

		// Past classes are unbookable and indistinguishable from missing
		// ones as far as the client contract goes.
		if !class.StartTime.After(time.Now()) {
			return apperrors.NotFoundWithID("Class", req.ClassID)
		}

		if class.AvailableSlots() <= 0 {
			return apperrors.NoSlots(req.ClassID)
		}

		exists, err := s.repo.HasBooking(sessCtx, req.ClassID, req.ClientEmail)
		if err != nil {
			return apperrors.Internal("Failed to check existing bookings", err)
		}
		if exists {
			return apperrors.DuplicateBooking(req.ClassID)
		}

		id, err := s.repo.NextBookingID(sessCtx)
		if err != nil {
			return apperrors.Internal("Failed to allocate booking id", err)
		}

		booking = &model.Booking{
			ID:          id,
			ClassID:     req.ClassID,
			ClientName:  req.ClientName,
			ClientEmail: req.ClientEmail,
			BookingTime: time.Now().UTC().Truncate(time.Millisecond),
		}

		if err := s.repo.InsertBooking(sessCtx, booking); err != nil {
			if errors.Is(err, bookingserrors.ErrDuplicateBooking) {
				return apperrors.DuplicateBooking(req.ClassID)
			}
			return apperrors.Internal("Failed to create booking", err)
		}

		if err := s.repo.IncrementBookedSlots(sessCtx, req.ClassID); err != nil {
			if errors.Is(err, bookingserrors.ErrClassFull) {
				return apperrors.NoSlots(req.ClassID)
			}
			return apperrors.Internal("Failed to update class slots", err)
		}

		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Booking rejected",
			"class_id", req.ClassID,
			"client_email", req.ClientEmail,
			"error", err,
		)
		return nil, err
	}

	classDatetime, err := s.converter.Localize(class.StartTime, "")
	if err != nil {
		return nil, apperrors.Internal("Failed to format class time", err)
	}

	s.cfg.Log.Info("Booking created",
		"booking_id", booking.ID,
		"class_id", class.ID,
		"client_email", booking.ClientEmail,
	)

	s.publishCreated(booking, class)

	return &model.BookingConfirmation{
		Message:       "Booking successful",
		BookingID:     booking.ID,
		ClassName:     class.Name,
		Instructor:    class.Instructor,
		ClassDatetime: classDatetime,
		ClientName:    booking.ClientName,
		ClientEmail:   booking.ClientEmail,
	}, nil
}

func (s *bookingService) ListByEmail(ctx context.Context, email string, targetTZ string) ([]*model.BookingView, error) {
	email = sanitizer.NormalizeEmail(email)
	if err := s.validator.ValidateEmail(email); err != nil {
		return nil, apperrors.Validation("Invalid email address", map[string]any{"error": err.Error()})
	}

	bookings, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "client_email", email, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	if len(bookings) == 0 {
		return []*model.BookingView{}, nil
	}

	classIDs := make([]int64, 0, len(bookings))
	seen := make(map[int64]bool, len(bookings))
	for _, b := range bookings {
		if !seen[b.ClassID] {
			seen[b.ClassID] = true
			classIDs = append(classIDs, b.ClassID)
		}
	}

	classes, err := s.repo.FindClassesByIDs(ctx, classIDs)
	if err != nil {
		s.cfg.Log.Error("Failed to load classes for bookings", "client_email", email, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	views := make([]*model.BookingView, 0, len(bookings))
	for _, b := range bookings {
		class, ok := classes[b.ClassID]
		if !ok {
			// Should not happen: classes are never deleted.
			s.cfg.Log.Error("Booking references missing class",
				"booking_id", b.ID,
				"class_id", b.ClassID,
			)
			return nil, apperrors.Internal("Failed to retrieve bookings", bookingserrors.ErrInvalidBookingRef)
		}

		classDatetime, err := s.converter.Localize(class.StartTime, targetTZ)
		if err != nil {
			return nil, err
		}
		bookingTime, err := s.converter.Localize(b.BookingTime, targetTZ)
		if err != nil {
			return nil, err
		}

		views = append(views, &model.BookingView{
			ID:            b.ID,
			ClassID:       b.ClassID,
			ClassName:     class.Name,
			Instructor:    class.Instructor,
			ClassDatetime: classDatetime,
			ClientName:    b.ClientName,
			ClientEmail:   b.ClientEmail,
			BookingTime:   bookingTime,
		})
	}

	return views, nil
}

func (s *bookingService) sanitize(req *model.BookingRequest) {
	req.ClientName = sanitizer.TrimAndNormalize(req.ClientName)
	req.ClientEmail = sanitizer.NormalizeEmail(req.ClientEmail)
}

// publishCreated emits the booking event without holding up the response.
// Publish failures are logged and dropped; the booking already committed.
func (s *bookingService) publishCreated(booking *model.Booking, class *model.ClassSession) {
	event := events.BookingCreated{
		BookingID:   booking.ID,
		ClassID:     class.ID,
		ClassName:   class.Name,
		ClientEmail: booking.ClientEmail,
		BookingTime: booking.BookingTime,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.publisher.PublishBookingCreated(ctx, event); err != nil {
			s.cfg.Log.Error("Failed to publish booking event",
				"booking_id", event.BookingID,
				"error", err,
			)
		}
	}()
}
