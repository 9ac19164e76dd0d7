package astro

import (
	"context"
	"time"

	"StarChart/internal/domain/models"
)

// DefaultAyanamsa is the fixed Lahiri-style correction subtracted from
// tropical longitudes in sidereal mode.
const DefaultAyanamsa = 24.1

// ReferenceHour is the fixed UTC hour a bare calendar date resolves to, so
// repeated requests for the same day are deterministic and comparable.
const ReferenceHour = 12

// Params fixes the numeric tables the engine computes with. Variants of the
// same chart logic historically diverged on exactly these values, so they
// are explicit here rather than scattered.
type Params struct {
	Ayanamsa     float64
	WeightScheme WeightScheme
	IncludeMinor bool // extend the aspect table with minor aspects
}

// DefaultParams returns the documented production defaults.
func DefaultParams() Params {
	return Params{
		Ayanamsa:     DefaultAyanamsa,
		WeightScheme: WeightTiered,
		IncludeMinor: false,
	}
}

// Request is one chart computation input.
type Request struct {
	Instant   time.Time // already normalized to a single instant
	Sidereal  bool
	Interpret bool
}

// Engine merges all computation stages into one Chart. It holds no mutable
// state; concurrent Compute calls are safe.
type Engine struct {
	src     Source
	retro   *RetrogradeDetector
	aspects *AspectEngine
	moon    *MoonPhaseCalculator
	params  Params
}

func NewEngine(src Source, params Params) *Engine {
	if params.Ayanamsa == 0 {
		params.Ayanamsa = DefaultAyanamsa
	}
	if params.WeightScheme == "" {
		params.WeightScheme = WeightTiered
	}
	return &Engine{
		src:     src,
		retro:   NewRetrogradeDetector(src),
		aspects: NewAspectEngine(params.IncludeMinor),
		moon:    NewMoonPhaseCalculator(src),
		params:  params,
	}
}

// Params returns the engine's fixed numeric tables.
func (e *Engine) Params() Params { return e.params }

// NormalizeInstant resolves a calendar date to the fixed reference hour.
// Inputs that already carry a time of day are kept as-is.
func NormalizeInstant(t time.Time) time.Time {
	t = t.UTC()
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return time.Date(t.Year(), t.Month(), t.Day(), ReferenceHour, 0, 0, 0, time.UTC)
	}
	return t
}

// Compute runs the full pipeline for one request. Per-body source failures
// are collected into Chart.Errors and the body is omitted; they never
// default to a fallback position. Moon phase failures are likewise isolated.
// A zero instant is the only hard failure.
func (e *Engine) Compute(ctx context.Context, req Request) (*models.Chart, error) {
	if req.Instant.IsZero() {
		return nil, ErrInvalidInstant
	}
	instant := NormalizeInstant(req.Instant)

	chart := &models.Chart{
		Date:     instant.Format("2006-01-02"),
		Sidereal: req.Sidereal,
		Ayanamsa: e.params.Ayanamsa,
		Planets:  make(map[string]models.CelestialBody, len(Bodies)),
		Errors:   make(map[string]string),
	}

	ordered := make([]models.CelestialBody, 0, len(Bodies))
	for _, body := range Bodies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cb, err := e.computeBody(body, instant, req.Sidereal)
		if err != nil {
			chart.Errors[string(body)] = err.Error()
			continue
		}
		chart.Planets[string(body)] = cb
		ordered = append(ordered, cb)
	}

	chart.Aspects = e.aspects.Compute(ordered)

	if len(ordered) > 0 {
		elements, modalities, err := Aggregate(ordered)
		if err != nil {
			chart.Errors["distribution"] = err.Error()
		} else {
			chart.Elements = elements
			chart.Modalities = modalities
		}
	}

	phase, err := e.moon.Compute(instant)
	if err != nil {
		chart.Errors["moonPhase"] = err.Error()
	} else {
		chart.MoonPhase = &phase
	}

	if req.Interpret {
		Annotate(chart)
	}

	if len(chart.Errors) == 0 {
		chart.Errors = nil
	}
	return chart, nil
}

func (e *Engine) computeBody(body Body, instant time.Time, sidereal bool) (models.CelestialBody, error) {
	lon, err := e.src.EclipticLongitude(body, instant)
	if err != nil {
		return models.CelestialBody{}, err
	}
	if sidereal {
		lon = Normalize(lon - e.params.Ayanamsa)
	}

	cb := models.CelestialBody{
		Name:      string(body),
		Longitude: lon,
		Weight:    WeightFor(body, e.params.WeightScheme),
	}

	pos := ResolveSign(lon)
	cb.Sign = pos.Sign.String()
	cb.Degree = pos.Degree
	cb.Minute = pos.Minute

	// Retrograde state is frame independent; the ayanamsa shifts every
	// longitude equally and cancels out of the motion delta.
	if !body.Luminary() {
		speed, err := e.retro.DailyMotion(body, instant)
		if err != nil {
			return models.CelestialBody{}, err
		}
		cb.Speed = speed
		cb.Retrograde = speed < 0
	}
	return cb, nil
}
