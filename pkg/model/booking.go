package model

import (
	"time"
)

// Booking is one reserved slot. Bookings are insert-only; cancellation is
// out of scope, so every stored booking counts against its class capacity.
type Booking struct {
	ID          int64     `json:"id" bson:"_id"`
	ClassID     int64     `json:"class_id" bson:"class_id"`
	ClientName  string    `json:"client_name" bson:"client_name"`
	ClientEmail string    `json:"client_email" bson:"client_email"`
	BookingTime time.Time `json:"booking_time" bson:"booking_time"`
}

// BookingRequest is the POST /book payload.
type BookingRequest struct {
	ClassID     int64  `json:"class_id" validate:"required,min=1"`
	ClientName  string `json:"client_name" validate:"required,notblank,max=100"`
	ClientEmail string `json:"client_email" validate:"required,email"`
}

// BookingConfirmation echoes the created booking together with denormalized
// class details so clients do not need a second lookup.
type BookingConfirmation struct {
	Message       string `json:"message"`
	BookingID     int64  `json:"booking_id"`
	ClassName     string `json:"class_name"`
	Instructor    string `json:"instructor"`
	ClassDatetime string `json:"class_datetime"`
	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email"`
}

// BookingView is one GET /bookings entry, joined with class metadata and
// localized to the requested timezone.
type BookingView struct {
	ID            int64  `json:"id"`
	ClassID       int64  `json:"class_id"`
	ClassName     string `json:"class_name"`
	Instructor    string `json:"instructor"`
	ClassDatetime string `json:"class_datetime"`
	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email"`
	BookingTime   string `json:"booking_time"`
}
