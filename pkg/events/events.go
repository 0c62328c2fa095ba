package events

import (
	"context"
	"time"
)

const TypeBookingCreated = "booking.created"

// BookingCreated is emitted after a booking transaction commits. Downstream
// consumers (confirmation mail, analytics) are outside this service.
type BookingCreated struct {
	BookingID   int64     `json:"booking_id"`
	ClassID     int64     `json:"class_id"`
	ClassName   string    `json:"class_name"`
	ClientEmail string    `json:"client_email"`
	BookingTime time.Time `json:"booking_time"`
}

type Publisher interface {
	PublishBookingCreated(ctx context.Context, event BookingCreated) error
	Close() error
}

// NoopPublisher is used when no kafka brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishBookingCreated(context.Context, BookingCreated) error { return nil }
func (NoopPublisher) Close() error                                                { return nil }
