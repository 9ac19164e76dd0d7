package astro

import (
	"errors"
	"time"
)

var (
	// ErrUnsupportedBody means the source has no mapping for the requested body.
	ErrUnsupportedBody = errors.New("astro: unsupported body")

	// ErrEphemerisUnavailable means the source failed for a valid body/time,
	// e.g. a date outside the model's validity range.
	ErrEphemerisUnavailable = errors.New("astro: ephemeris unavailable")

	// ErrInvalidInstant means the requested date/time could not be normalized
	// to a single instant.
	ErrInvalidInstant = errors.New("astro: invalid instant")

	// ErrEmptyChart means a tally was requested over zero weighted bodies.
	ErrEmptyChart = errors.New("astro: no bodies to aggregate")
)

// Source supplies geocentric ecliptic longitudes. Implementations must be
// deterministic: identical (body, t) inputs yield identical output, with no
// hidden randomness. Failed lookups return typed errors, never a default 0°.
type Source interface {
	// EclipticLongitude returns the tropical ecliptic longitude in degrees
	// [0,360) for the body at t.
	EclipticLongitude(body Body, t time.Time) (float64, error)
}

// SpeedSource is an optional extension for sources that can report the
// signed daily motion directly. When available it replaces the forward
// difference used by the retrograde detector.
type SpeedSource interface {
	DailyMotion(body Body, t time.Time) (float64, error)
}

// FixedSource serves canned longitudes, primarily for tests. Positions do
// not vary with time unless Motions supplies a per-body daily rate.
type FixedSource struct {
	Longitudes map[Body]float64
	Motions    map[Body]float64 // optional deg/day, applied relative to Epoch
	Epoch      time.Time
}

func (s *FixedSource) EclipticLongitude(body Body, t time.Time) (float64, error) {
	lon, ok := s.Longitudes[body]
	if !ok {
		return 0, ErrUnsupportedBody
	}
	if rate, ok := s.Motions[body]; ok && !s.Epoch.IsZero() {
		days := t.Sub(s.Epoch).Hours() / 24
		lon += rate * days
	}
	return Normalize(lon), nil
}
