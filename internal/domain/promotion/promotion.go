// Package promotion holds the buy-N-get-M promotion rules and the read-only
// catalog they are served from.
package promotion

import (
	"time"

	"github.com/go-faster/errors"
)

// ErrInvalidDateRange is returned when a promotion's start date falls after
// its end date.
var ErrInvalidDateRange = errors.New("promotion start date is after end date")

// Promotion grants Get free units for every Buy paid units, within an
// inclusive date window.
type Promotion struct {
	Name  string
	Buy   int
	Get   int
	Start time.Time
	End   time.Time
}

// New validates the rule parameters and returns the promotion.
func New(name string, buy, get int, start, end time.Time) (Promotion, error) {
	if name == "" {
		return Promotion{}, errors.New("promotion name is empty")
	}
	if buy <= 0 || get <= 0 {
		return Promotion{}, errors.Errorf("promotion %s: buy and get quantities must be positive", name)
	}
	start, end = dateOf(start), dateOf(end)
	if start.After(end) {
		return Promotion{}, errors.Wrapf(ErrInvalidDateRange, "promotion %s", name)
	}

	return Promotion{
		Name:  name,
		Buy:   buy,
		Get:   get,
		Start: start,
		End:   end,
	}, nil
}

// BundleSize is the number of units that completes one promotion bundle.
func (p Promotion) BundleSize() int {
	return p.Buy + p.Get
}

// FreeUnits is the number of units gifted per completed bundle.
func (p Promotion) FreeUnits() int {
	return p.Get
}

// ActiveOn reports whether the promotion applies on the given date.
// Both window bounds are inclusive.
func (p Promotion) ActiveOn(date time.Time) bool {
	day := dateOf(date)
	return !day.Before(p.Start) && !day.After(p.End)
}

// dateOf strips the time-of-day component so window checks compare calendar
// days regardless of clock or zone.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
