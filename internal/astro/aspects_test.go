package astro

import (
	"testing"

	"StarChart/internal/domain/models"
)

func bodiesAt(lons map[string]float64, order ...string) []models.CelestialBody {
	out := make([]models.CelestialBody, 0, len(order))
	for _, name := range order {
		out = append(out, models.CelestialBody{Name: name, Longitude: lons[name], Weight: 1})
	}
	return out
}

func TestSeparationSymmetricAndBounded(t *testing.T) {
	pairs := [][2]float64{
		{10, 130}, {5, 355}, {0, 180}, {0, 181}, {359, 1}, {90, 270.5},
	}
	for _, p := range pairs {
		ab := Separation(p[0], p[1])
		ba := Separation(p[1], p[0])
		if ab != ba {
			t.Fatalf("separation not symmetric: %v vs %v", ab, ba)
		}
		if ab < 0 || ab > 180 {
			t.Fatalf("separation %v out of [0,180] for %v", ab, p)
		}
	}
}

func TestTrineExact(t *testing.T) {
	e := NewAspectEngine(false)
	got := e.Compute(bodiesAt(map[string]float64{"Sun": 10, "Mars": 130}, "Sun", "Mars"))
	if len(got) != 1 {
		t.Fatalf("expected 1 aspect, got %d", len(got))
	}
	a := got[0]
	if a.Type != string(Trine) || a.Angle != 120 || a.Orb != 0 {
		t.Fatalf("unexpected aspect %+v", a)
	}
	if a.Influence != "harmonious" {
		t.Fatalf("trine influence %q", a.Influence)
	}
}

// A 10° separation across the 0° boundary is outside the 8° conjunction orb,
// so no aspect may be reported.
func TestConjunctionOrbBoundary(t *testing.T) {
	e := NewAspectEngine(false)
	got := e.Compute(bodiesAt(map[string]float64{"Sun": 5, "Venus": 355}, "Sun", "Venus"))
	if len(got) != 0 {
		t.Fatalf("expected no aspect at 10° separation, got %+v", got)
	}

	// At 7.9° the pair is inside orb.
	got = e.Compute(bodiesAt(map[string]float64{"Sun": 4, "Venus": 356.1}, "Sun", "Venus"))
	if len(got) != 1 || got[0].Type != string(Conjunction) {
		t.Fatalf("expected conjunction inside orb, got %+v", got)
	}
}

func TestAtMostOneAspectPerPair(t *testing.T) {
	e := NewAspectEngine(true)
	bodies := bodiesAt(map[string]float64{
		"Sun": 0, "Moon": 28, "Mercury": 61, "Venus": 92, "Mars": 178,
	}, "Sun", "Moon", "Mercury", "Venus", "Mars")

	got := e.Compute(bodies)
	seen := make(map[[2]string]int)
	for _, a := range got {
		seen[[2]string{a.BodyA, a.BodyB}]++
		if seen[[2]string{a.BodyA, a.BodyB}] > 1 {
			t.Fatalf("pair %s-%s reported twice", a.BodyA, a.BodyB)
		}
		// canonical ordering: never the reversed pair too
		if seen[[2]string{a.BodyB, a.BodyA}] > 0 {
			t.Fatalf("pair %s-%s reported in both orders", a.BodyA, a.BodyB)
		}
	}
}

func TestMajorAspectsWinOverMinor(t *testing.T) {
	// 28° misses every major aspect and falls inside semisextile orb.
	e := NewAspectEngine(true)
	got := e.Compute(bodiesAt(map[string]float64{"Sun": 0, "Moon": 28}, "Sun", "Moon"))
	if len(got) != 1 || got[0].Type != string(Semisextile) {
		t.Fatalf("expected semisextile, got %+v", got)
	}

	// 6° is inside conjunction orb; the major table is walked first.
	got = e.Compute(bodiesAt(map[string]float64{"Sun": 0, "Moon": 6}, "Sun", "Moon"))
	if len(got) != 1 || got[0].Type != string(Conjunction) {
		t.Fatalf("expected conjunction, got %+v", got)
	}
}

func TestMinorAspectsExcludedByDefault(t *testing.T) {
	e := NewAspectEngine(false)
	got := e.Compute(bodiesAt(map[string]float64{"Sun": 0, "Moon": 150}, "Sun", "Moon"))
	if len(got) != 0 {
		t.Fatalf("quincunx should not be reported without minor aspects: %+v", got)
	}
}

func TestAspectOutputOrderStable(t *testing.T) {
	e := NewAspectEngine(false)
	bodies := bodiesAt(map[string]float64{
		"Sun": 0, "Moon": 120, "Mercury": 240,
	}, "Sun", "Moon", "Mercury")

	got := e.Compute(bodies)
	if len(got) != 3 {
		t.Fatalf("expected grand trine (3 aspects), got %d", len(got))
	}
	wantPairs := [][2]string{{"Sun", "Moon"}, {"Sun", "Mercury"}, {"Moon", "Mercury"}}
	for i, w := range wantPairs {
		if got[i].BodyA != w[0] || got[i].BodyB != w[1] {
			t.Fatalf("aspect %d is %s-%s, want %s-%s", i, got[i].BodyA, got[i].BodyB, w[0], w[1])
		}
	}
}
