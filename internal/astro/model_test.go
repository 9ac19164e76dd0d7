package astro

import (
	"errors"
	"testing"
	"time"
)

func TestModelSourceDeterministic(t *testing.T) {
	src := NewModelSource()
	at := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)

	for _, b := range Bodies {
		lon1, err := src.EclipticLongitude(b, at)
		if err != nil {
			t.Fatalf("%s: %v", b, err)
		}
		lon2, err := src.EclipticLongitude(b, at)
		if err != nil {
			t.Fatalf("%s: %v", b, err)
		}
		if lon1 != lon2 {
			t.Fatalf("%s: %v != %v on repeat call", b, lon1, lon2)
		}
		if lon1 < 0 || lon1 >= 360 {
			t.Fatalf("%s: longitude %v out of [0,360)", b, lon1)
		}
	}
}

// The Sun crosses 0° Aries at the March equinox. 2024-03-20 03:06 UTC is the
// equinox instant; at the reference noon the Sun sits a fraction of a degree
// into Aries.
func TestModelSunAtEquinox(t *testing.T) {
	src := NewModelSource()
	lon, err := src.EclipticLongitude(Sun, time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	pos := ResolveSign(lon)
	if pos.Sign != Aries || pos.Degree > 1 {
		t.Fatalf("Sun at 2024 equinox noon: lon=%v sign=%v deg=%d, want early Aries", lon, pos.Sign, pos.Degree)
	}
}

func TestModelSunInCapricornMidJanuary(t *testing.T) {
	src := NewModelSource()
	lon, err := src.EclipticLongitude(Sun, time.Date(2024, time.January, 11, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if pos := ResolveSign(lon); pos.Sign != Capricorn {
		t.Fatalf("Sun on 2024-01-11: lon=%v sign=%v, want Capricorn", lon, pos.Sign)
	}
}

// 2024-01-11 is a new moon: Sun and Moon longitudes nearly coincide.
func TestModelNewMoonElongation(t *testing.T) {
	src := NewModelSource()
	at := time.Date(2024, time.January, 11, 12, 0, 0, 0, time.UTC)

	sunLon, err := src.EclipticLongitude(Sun, at)
	if err != nil {
		t.Fatal(err)
	}
	moonLon, err := src.EclipticLongitude(Moon, at)
	if err != nil {
		t.Fatal(err)
	}
	if sep := Separation(sunLon, moonLon); sep > 5 {
		t.Fatalf("new moon elongation %v°, want near 0", sep)
	}
}

// The Moon covers roughly 13° of longitude per day.
func TestModelMoonDailyMotion(t *testing.T) {
	src := NewModelSource()
	at := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	lon1, err := src.EclipticLongitude(Moon, at)
	if err != nil {
		t.Fatal(err)
	}
	lon2, err := src.EclipticLongitude(Moon, at.Add(24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	delta := signedDelta(lon1, lon2)
	if delta < 11 || delta > 16 {
		t.Fatalf("moon daily motion %v°, want 11-16", delta)
	}
}

// Outer planets move slowly; Neptune under a hundredth of a degree per day.
func TestModelOuterPlanetMotionSmall(t *testing.T) {
	src := NewModelSource()
	at := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	lon1, err := src.EclipticLongitude(Neptune, at)
	if err != nil {
		t.Fatal(err)
	}
	lon2, err := src.EclipticLongitude(Neptune, at.Add(24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	delta := signedDelta(lon1, lon2)
	if delta > 0.05 || delta < -0.05 {
		t.Fatalf("neptune daily motion %v°, want |delta| < 0.05", delta)
	}
}

func TestModelRejectsUnknownBody(t *testing.T) {
	src := NewModelSource()
	_, err := src.EclipticLongitude(Body("Ceres"), testInstant)
	if !errors.Is(err, ErrUnsupportedBody) {
		t.Fatalf("expected ErrUnsupportedBody, got %v", err)
	}
}

func TestModelRejectsOutOfRangeDate(t *testing.T) {
	src := NewModelSource()
	_, err := src.EclipticLongitude(Sun, time.Date(1492, time.October, 12, 12, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrEphemerisUnavailable) {
		t.Fatalf("expected ErrEphemerisUnavailable, got %v", err)
	}
}

func TestModelRejectsZeroInstant(t *testing.T) {
	src := NewModelSource()
	if _, err := src.EclipticLongitude(Sun, time.Time{}); err == nil {
		t.Fatalf("zero instant must fail")
	}
}
