package errors

import "errors"

var (
	ErrClassNotFound     = errors.New("class not found")
	ErrClassFull         = errors.New("class has no available slots")
	ErrDuplicateBooking  = errors.New("booking already exists for this class and email")
	ErrInvalidBookingRef = errors.New("booking references a missing class")
)
