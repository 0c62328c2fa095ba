package model

import (
	"time"
)

// ClassSession is a scheduled class in the studio catalog. Sessions are
// seeded at startup; the only field that ever changes afterwards is
// BookedSlots, and only through the booking transaction.
type ClassSession struct {
	ID          int64     `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Instructor  string    `json:"instructor" bson:"instructor" validate:"required,min=2,max=100"`
	StartTime   time.Time `json:"start_time" bson:"start_time" validate:"required"`
	TotalSlots  int       `json:"total_slots" bson:"total_slots" validate:"required,min=1,max=500"`
	BookedSlots int       `json:"booked_slots" bson:"booked_slots" validate:"min=0"`
}

func (c *ClassSession) AvailableSlots() int {
	return c.TotalSlots - c.BookedSlots
}

// ClassView is the shape returned by GET /classes, with the start time
// already localized to the requested timezone.
type ClassView struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Instructor     string `json:"instructor"`
	Datetime       string `json:"datetime"`
	TotalSlots     int    `json:"total_slots"`
	AvailableSlots int    `json:"available_slots"`
}
