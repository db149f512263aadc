package igc

import (
	"errors"
	"time"
)

// ErrEmptyTrack signals a flight without any position fixes.
var ErrEmptyTrack = errors.New("tracklog contains no points")

// Point is a single position fix. Time is the UTC time-of-day of the fix.
type Point struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
	Time      time.Duration
}

// At combines the time-of-day with the flight date into a UTC timestamp.
func (p Point) At(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Add(p.Time)
}

// Tracklog keeps fixes in recording order: first is takeoff, last is landing.
type Tracklog []Point

// PointCount returns number of fixes.
func (t Tracklog) PointCount() int {
	return len(t)
}

// Takeoff returns the first recorded fix.
func (t Tracklog) Takeoff() (Point, error) {
	if len(t) == 0 {
		return Point{}, ErrEmptyTrack
	}
	return t[0], nil
}

// Landing returns the last recorded fix.
func (t Tracklog) Landing() (Point, error) {
	if len(t) == 0 {
		return Point{}, ErrEmptyTrack
	}
	return t[len(t)-1], nil
}

// Highest returns the fix with the maximum altitude. Ties keep the earliest fix.
func (t Tracklog) Highest() (Point, error) {
	if len(t) == 0 {
		return Point{}, ErrEmptyTrack
	}
	best := t[0]
	for _, p := range t[1:] {
		if p.Altitude > best.Altitude {
			best = p
		}
	}
	return best, nil
}

// Lowest returns the fix with the minimum altitude. Ties keep the earliest fix.
func (t Tracklog) Lowest() (Point, error) {
	if len(t) == 0 {
		return Point{}, ErrEmptyTrack
	}
	best := t[0]
	for _, p := range t[1:] {
		if p.Altitude < best.Altitude {
			best = p
		}
	}
	return best, nil
}

// Bounds returns the first and last timestamps of the flight on the given date.
func (t Tracklog) Bounds(date time.Time) (time.Time, time.Time) {
	if len(t) == 0 {
		return time.Time{}, time.Time{}
	}
	return t[0].At(date), t[len(t)-1].At(date)
}
