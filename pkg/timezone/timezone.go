// Package timezone localizes stored instants for display. Class times are
// stored studio-local; clients may ask for any IANA zone and the offset is
// resolved per instant, so daylight-saving transitions come out right.
package timezone

import (
	"time"

	apperrors "studiobook/pkg/errors"
)

type Converter struct {
	studio *time.Location
}

// NewConverter validates the studio reference timezone once at startup.
func NewConverter(studioTZ string) (*Converter, error) {
	loc, err := time.LoadLocation(studioTZ)
	if err != nil {
		return nil, apperrors.InvalidTimezone(studioTZ)
	}
	return &Converter{studio: loc}, nil
}

func (c *Converter) Studio() *time.Location {
	return c.studio
}

// Localize formats the instant as RFC3339 in the target zone. An empty target
// falls back to the studio timezone. Unknown identifiers return a typed
// 400-class error rather than bubbling up as an internal failure.
func (c *Converter) Localize(t time.Time, target string) (string, error) {
	loc := c.studio
	if target != "" {
		l, err := time.LoadLocation(target)
		if err != nil {
			return "", apperrors.InvalidTimezone(target)
		}
		loc = l
	}
	return t.In(loc).Format(time.RFC3339), nil
}
