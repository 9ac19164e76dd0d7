package models

import "time"

// CelestialBody is one tracked body's computed state for a chart instant.
// Note: no transport (json naming follows the public API contract).
type CelestialBody struct {
	Name           string  `json:"name"`
	Longitude      float64 `json:"longitude"` // ecliptic degrees, [0,360)
	Sign           string  `json:"sign"`
	Degree         int     `json:"degree"` // whole degrees within sign, 0-29
	Minute         int     `json:"minute"` // arc minutes, 0-59
	Retrograde     bool    `json:"retrograde"`
	Speed          float64 `json:"speed,omitempty"` // signed daily motion, deg/day
	Weight         int     `json:"weight"`
	Interpretation string  `json:"interpretation,omitempty"`
}

// Aspect is a classified angular relationship between two distinct bodies.
// BodyA/BodyB are canonicalized by body-list order so (A,B) never repeats as (B,A).
type Aspect struct {
	BodyA          string  `json:"bodyA"`
	BodyB          string  `json:"bodyB"`
	Type           string  `json:"type"`
	Angle          float64 `json:"angle"` // observed shortest-arc separation, [0,180]
	Orb            float64 `json:"orb"`   // absolute deviation from the exact angle
	Influence      string  `json:"influence"`
	Interpretation string  `json:"interpretation,omitempty"`
}

// MoonPhase describes lunar illumination at a chart instant.
// PhaseValue is the normalized lunation age in [0,1): 0 = new, 0.5 = full.
type MoonPhase struct {
	Name         string  `json:"name"`
	PhaseValue   float64 `json:"phaseValue"`
	Illumination float64 `json:"illumination"` // fraction, 0.0-1.0
	Waxing       bool    `json:"isWaxing"`
}

// BalanceEntry is one bucket of an elemental or modal tally.
type BalanceEntry struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ElementalBalance maps fire/earth/air/water to weighted tallies.
type ElementalBalance map[string]BalanceEntry

// ModalBalance maps cardinal/fixed/mutable to weighted tallies.
type ModalBalance map[string]BalanceEntry

// Chart is the full computed result for one (date, sidereal) request.
// Bodies whose position lookup failed are absent from Planets and recorded
// in Errors; the rest of the chart is computed over the surviving set.
type Chart struct {
	Date       string                   `json:"date"` // YYYY-MM-DD
	Sidereal   bool                     `json:"sidereal"`
	Ayanamsa   float64                  `json:"ayanamsa"`
	Planets    map[string]CelestialBody `json:"planets"`
	MoonPhase  *MoonPhase               `json:"moonPhase,omitempty"`
	Aspects    []Aspect                 `json:"aspects"`
	Elements   ElementalBalance         `json:"elements"`
	Modalities ModalBalance             `json:"modalities"`
	Errors     map[string]string        `json:"errors,omitempty"`
}

// Snapshot is the archived daily ephemeris row derived from a Chart.
// This is a denormalized write model for the archive backends, not the
// unit of truth; charts are always recomputable from the date alone.
type Snapshot struct {
	Date              time.Time         `json:"date"`
	Sidereal          bool              `json:"sidereal"`
	MoonPhaseValue    float64           `json:"moon_phase"`
	MoonPhaseName     string            `json:"moon_phase_name"`
	Signs             map[string]string `json:"signs"` // body name -> sign
	MercuryRetrograde bool              `json:"mercury_retrograde"`
	AspectCount       int               `json:"aspect_count"`
	DominantElement   string            `json:"dominant_element"`
	Payload           []byte            `json:"payload,omitempty"` // full Chart JSON
	ComputedAt        time.Time         `json:"computed_at"`
}
