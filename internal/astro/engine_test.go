package astro

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"
)

func fullFixedSource() *FixedSource {
	return &FixedSource{Longitudes: map[Body]float64{
		Sun: 10, Moon: 100, Mercury: 15, Venus: 40, Mars: 205,
		Jupiter: 130, Saturn: 310, Uranus: 55, Neptune: 355, Pluto: 295,
	}}
}

func TestEngineRejectsZeroInstant(t *testing.T) {
	eng := NewEngine(fullFixedSource(), DefaultParams())
	_, err := eng.Compute(context.Background(), Request{})
	if !errors.Is(err, ErrInvalidInstant) {
		t.Fatalf("expected ErrInvalidInstant, got %v", err)
	}
}

func TestEngineHonorsContextCancel(t *testing.T) {
	eng := NewEngine(fullFixedSource(), DefaultParams())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := eng.Compute(ctx, Request{Instant: testInstant}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNormalizeInstant(t *testing.T) {
	midnight := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	got := NormalizeInstant(midnight)
	if got.Hour() != ReferenceHour {
		t.Fatalf("bare date resolved to hour %d, want %d", got.Hour(), ReferenceHour)
	}

	timed := time.Date(2024, time.March, 20, 18, 30, 0, 0, time.UTC)
	if got := NormalizeInstant(timed); !got.Equal(timed) {
		t.Fatalf("explicit time %v changed to %v", timed, got)
	}
}

func TestEngineTropicalChart(t *testing.T) {
	eng := NewEngine(fullFixedSource(), DefaultParams())
	chart, err := eng.Compute(context.Background(), Request{Instant: testInstant})
	if err != nil {
		t.Fatal(err)
	}

	if len(chart.Planets) != len(Bodies) {
		t.Fatalf("got %d planets, want %d", len(chart.Planets), len(Bodies))
	}
	if chart.Errors != nil {
		t.Fatalf("unexpected errors: %v", chart.Errors)
	}
	if chart.Sidereal {
		t.Fatal("tropical chart flagged sidereal")
	}

	sun := chart.Planets["Sun"]
	if sun.Sign != "Aries" || sun.Degree != 10 {
		t.Fatalf("Sun at 10°: sign=%s deg=%d", sun.Sign, sun.Degree)
	}
	if chart.MoonPhase == nil {
		t.Fatal("moon phase missing")
	}
	if chart.Elements == nil || chart.Modalities == nil {
		t.Fatal("distributions missing")
	}
}

// Sidereal mode shifts every longitude by the ayanamsa: a Sun at tropical
// 20° Aries lands in sidereal Pisces.
func TestEngineSiderealShift(t *testing.T) {
	src := &FixedSource{Longitudes: map[Body]float64{Sun: 20, Moon: 100}}
	eng := NewEngine(src, DefaultParams())

	chart, err := eng.Compute(context.Background(), Request{Instant: testInstant, Sidereal: true})
	if err != nil {
		t.Fatal(err)
	}
	if !chart.Sidereal {
		t.Fatal("chart not flagged sidereal")
	}
	if chart.Ayanamsa != DefaultAyanamsa {
		t.Fatalf("ayanamsa %v, want %v", chart.Ayanamsa, DefaultAyanamsa)
	}

	sun := chart.Planets["Sun"]
	if math.Abs(sun.Longitude-355.9) > 1e-9 {
		t.Fatalf("sidereal Sun longitude %v, want 355.9", sun.Longitude)
	}
	if sun.Sign != "Pisces" {
		t.Fatalf("sidereal Sun sign %s, want Pisces", sun.Sign)
	}
}

// A failing body is reported in Errors and omitted; the rest of the chart is
// still computed over the survivors.
func TestEnginePartialFailure(t *testing.T) {
	src := &FixedSource{Longitudes: map[Body]float64{
		Sun: 20, Moon: 20, Mercury: 110,
	}}
	eng := NewEngine(src, DefaultParams())

	chart, err := eng.Compute(context.Background(), Request{Instant: testInstant})
	if err != nil {
		t.Fatal(err)
	}

	if len(chart.Planets) != 3 {
		t.Fatalf("got %d planets, want 3", len(chart.Planets))
	}
	for _, missing := range []string{"Venus", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune", "Pluto"} {
		msg, ok := chart.Errors[missing]
		if !ok {
			t.Fatalf("no error recorded for %s", missing)
		}
		if msg != ErrUnsupportedBody.Error() {
			t.Fatalf("%s error = %q", missing, msg)
		}
		if _, ok := chart.Planets[missing]; ok {
			t.Fatalf("%s present despite failure", missing)
		}
	}

	// Sun-Moon conjunction, Sun-Mercury and Moon-Mercury squares.
	if len(chart.Aspects) != 3 {
		t.Fatalf("got %d aspects over survivors, want 3", len(chart.Aspects))
	}
	if chart.Elements == nil {
		t.Fatal("distributions missing despite survivors")
	}
}

func TestEngineInterpretFlag(t *testing.T) {
	src := &FixedSource{Longitudes: map[Body]float64{Sun: 10, Moon: 10}}
	eng := NewEngine(src, DefaultParams())

	plain, err := eng.Compute(context.Background(), Request{Instant: testInstant})
	if err != nil {
		t.Fatal(err)
	}
	if plain.Planets["Sun"].Interpretation != "" {
		t.Fatal("interpretation present without the flag")
	}

	rich, err := eng.Compute(context.Background(), Request{Instant: testInstant, Interpret: true})
	if err != nil {
		t.Fatal(err)
	}
	if rich.Planets["Sun"].Interpretation == "" {
		t.Fatal("planet interpretation missing")
	}
	if len(rich.Aspects) == 0 || rich.Aspects[0].Interpretation == "" {
		t.Fatal("aspect interpretation missing")
	}
}

func TestEngineIdempotent(t *testing.T) {
	eng := NewEngine(NewModelSource(), DefaultParams())
	req := Request{Instant: time.Date(2024, time.January, 11, 0, 0, 0, 0, time.UTC)}

	first, err := eng.Compute(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := eng.Compute(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated computation diverged")
	}
}

func TestEngineNewMoonScenario(t *testing.T) {
	eng := NewEngine(NewModelSource(), DefaultParams())
	chart, err := eng.Compute(context.Background(), Request{
		Instant: time.Date(2024, time.January, 11, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	if chart.Date != "2024-01-11" {
		t.Fatalf("chart date %s", chart.Date)
	}
	if chart.MoonPhase == nil || chart.MoonPhase.Name != "New Moon" {
		t.Fatalf("moon phase = %+v, want New Moon", chart.MoonPhase)
	}
	if chart.Planets["Sun"].Sign != "Capricorn" {
		t.Fatalf("Sun sign %s, want Capricorn", chart.Planets["Sun"].Sign)
	}
}

func TestEngineMinorAspectsOptIn(t *testing.T) {
	src := &FixedSource{Longitudes: map[Body]float64{Sun: 0, Moon: 150}}
	params := DefaultParams()
	params.IncludeMinor = true
	eng := NewEngine(src, params)

	chart, err := eng.Compute(context.Background(), Request{Instant: testInstant})
	if err != nil {
		t.Fatal(err)
	}
	if len(chart.Aspects) != 1 || chart.Aspects[0].Type != string(Quincunx) {
		t.Fatalf("aspects = %+v, want one quincunx", chart.Aspects)
	}
}
