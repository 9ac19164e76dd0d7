package astro

import (
	"math"

	"StarChart/internal/domain/models"
)

// AspectType names a recognized angular relationship.
type AspectType string

const (
	Conjunction    AspectType = "conjunction"
	Opposition     AspectType = "opposition"
	Trine          AspectType = "trine"
	Square         AspectType = "square"
	Sextile        AspectType = "sextile"
	Semisextile    AspectType = "semisextile"
	Quincunx       AspectType = "quincunx"
	Semisquare     AspectType = "semisquare"
	Sesquiquadrate AspectType = "sesquiquadrate"
)

// AspectDef is one row of the classification table.
type AspectDef struct {
	Type      AspectType
	Angle     float64 // exact angle, degrees
	Orb       float64 // max allowed deviation
	Influence string
}

// MajorAspects is the exact-aspect table in priority order. Orbs follow the
// ephemeris job that seeded the original dataset: 8/8/8/7/6.
var MajorAspects = []AspectDef{
	{Conjunction, 0, 8, "strong"},
	{Opposition, 180, 8, "challenging"},
	{Trine, 120, 8, "harmonious"},
	{Square, 90, 7, "challenging"},
	{Sextile, 60, 6, "favorable"},
}

// MinorAspects extend the table with tighter 3° orbs. They are only walked
// after every major aspect has missed, so priority stays deterministic.
var MinorAspects = []AspectDef{
	{Semisextile, 30, 3, "mild"},
	{Quincunx, 150, 3, "mild"},
	{Semisquare, 45, 3, "challenging"},
	{Sesquiquadrate, 135, 3, "challenging"},
}

// AspectEngine classifies pairwise separations against a fixed table.
type AspectEngine struct {
	defs []AspectDef
}

// NewAspectEngine builds an engine over the major table, optionally extended
// with minor aspects.
func NewAspectEngine(includeMinor bool) *AspectEngine {
	defs := make([]AspectDef, 0, len(MajorAspects)+len(MinorAspects))
	defs = append(defs, MajorAspects...)
	if includeMinor {
		defs = append(defs, MinorAspects...)
	}
	return &AspectEngine{defs: defs}
}

// Separation returns the shortest arc between two longitudes, in [0,180].
func Separation(lonA, lonB float64) float64 {
	angle := math.Abs(Normalize(lonA) - Normalize(lonB))
	if angle > 180 {
		angle = 360 - angle
	}
	return angle
}

// classify returns the first table row the separation falls within orb of.
func (e *AspectEngine) classify(angle float64) (AspectDef, float64, bool) {
	for _, def := range e.defs {
		orb := math.Abs(angle - def.Angle)
		if orb <= def.Orb {
			return def, orb, true
		}
	}
	return AspectDef{}, 0, false
}

// Compute walks every unordered pair (i<j) in input order and emits at most
// one aspect per pair. Output order is stable: outer loop i, inner loop j.
func (e *AspectEngine) Compute(bodies []models.CelestialBody) []models.Aspect {
	var out []models.Aspect
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			angle := Separation(bodies[i].Longitude, bodies[j].Longitude)
			def, orb, ok := e.classify(angle)
			if !ok {
				continue
			}
			out = append(out, models.Aspect{
				BodyA:     bodies[i].Name,
				BodyB:     bodies[j].Name,
				Type:      string(def.Type),
				Angle:     angle,
				Orb:       orb,
				Influence: def.Influence,
			})
		}
	}
	return out
}
