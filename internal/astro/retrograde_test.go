package astro

import (
	"errors"
	"testing"
	"time"
)

var testInstant = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func TestLuminariesNeverRetrograde(t *testing.T) {
	// A source moving everything backwards cannot make Sun or Moon retrograde.
	src := &FixedSource{
		Longitudes: map[Body]float64{Sun: 100, Moon: 200},
		Motions:    map[Body]float64{Sun: -1, Moon: -13},
		Epoch:      testInstant,
	}
	det := NewRetrogradeDetector(src)

	for _, b := range []Body{Sun, Moon} {
		for _, d := range []int{0, 100, 5000} {
			retro, err := det.IsRetrograde(b, testInstant.AddDate(0, 0, d))
			if err != nil {
				t.Fatalf("%s: %v", b, err)
			}
			if retro {
				t.Fatalf("%s must never be retrograde", b)
			}
		}
	}
}

func TestRetrogradeForwardDifference(t *testing.T) {
	src := &FixedSource{
		Longitudes: map[Body]float64{Mercury: 50, Mars: 120},
		Motions:    map[Body]float64{Mercury: -1.2, Mars: 0.6},
		Epoch:      testInstant,
	}
	det := NewRetrogradeDetector(src)

	retro, err := det.IsRetrograde(Mercury, testInstant)
	if err != nil {
		t.Fatal(err)
	}
	if !retro {
		t.Fatalf("Mercury moving -1.2°/day should be retrograde")
	}

	retro, err = det.IsRetrograde(Mars, testInstant)
	if err != nil {
		t.Fatal(err)
	}
	if retro {
		t.Fatalf("Mars moving +0.6°/day should be direct")
	}
}

// Retrograde motion across the 0°/360° boundary must not be mistaken for a
// huge forward jump.
func TestRetrogradeWraparound(t *testing.T) {
	src := &FixedSource{
		Longitudes: map[Body]float64{Mercury: 0.5},
		Motions:    map[Body]float64{Mercury: -1.0},
		Epoch:      testInstant,
	}
	det := NewRetrogradeDetector(src)

	retro, err := det.IsRetrograde(Mercury, testInstant)
	if err != nil {
		t.Fatal(err)
	}
	if !retro {
		t.Fatalf("motion 0.5° -> 359.5° should classify as retrograde")
	}

	// And direct motion across the boundary stays direct.
	src.Longitudes[Mercury] = 359.5
	src.Motions[Mercury] = 1.0
	retro, err = det.IsRetrograde(Mercury, testInstant)
	if err != nil {
		t.Fatal(err)
	}
	if retro {
		t.Fatalf("motion 359.5° -> 0.5° should classify as direct")
	}
}

func TestRetrogradePropagatesSourceError(t *testing.T) {
	det := NewRetrogradeDetector(&FixedSource{Longitudes: map[Body]float64{}})
	_, err := det.IsRetrograde(Mercury, testInstant)
	if !errors.Is(err, ErrUnsupportedBody) {
		t.Fatalf("expected ErrUnsupportedBody, got %v", err)
	}
}

func TestSignedDelta(t *testing.T) {
	cases := []struct{ from, to, want float64 }{
		{10, 12, 2},
		{12, 10, -2},
		{359, 1, 2},
		{1, 359, -2},
		{0, 180, 180},
	}
	for _, c := range cases {
		if got := signedDelta(c.from, c.to); got != c.want {
			t.Fatalf("signedDelta(%v,%v) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
