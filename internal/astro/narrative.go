package astro

import (
	"fmt"

	"StarChart/internal/domain/models"
)

// Static interpretation tables. Texts compose a per-body role with a
// per-sign theme, so every (body, sign) pairing resolves deterministically
// without a 120-entry literal table.

var bodyRoles = map[Body]string{
	Sun:     "core identity and vitality",
	Moon:    "emotional instincts and inner life",
	Mercury: "thinking and communication",
	Venus:   "affection and values",
	Mars:    "drive and assertion",
	Jupiter: "growth and opportunity",
	Saturn:  "discipline and structure",
	Uranus:  "innovation and disruption",
	Neptune: "imagination and dissolution",
	Pluto:   "transformation and power",
}

var signThemes = [12]string{
	"bold, pioneering initiative",
	"steady, sensual persistence",
	"curious, adaptable exchange",
	"protective, nurturing feeling",
	"expressive, confident warmth",
	"precise, analytical service",
	"balanced, relational harmony",
	"intense, probing depth",
	"expansive, philosophical reach",
	"ambitious, pragmatic climb",
	"inventive, humanitarian vision",
	"empathic, dissolving flow",
}

var aspectTexts = map[AspectType]string{
	Conjunction:    "their energies fuse and amplify each other",
	Opposition:     "their energies pull against each other and demand balance",
	Trine:          "their energies flow together with ease",
	Square:         "their energies clash and generate productive friction",
	Sextile:        "their energies cooperate when given an opening",
	Semisextile:    "their energies connect faintly across adjacent signs",
	Quincunx:       "their energies require constant adjustment",
	Semisquare:     "their energies irritate each other in passing",
	Sesquiquadrate: "their energies strain toward an unstable release",
}

// InterpretPlacement returns the static text for a body in a sign.
func InterpretPlacement(body Body, sign Sign) string {
	role, ok := bodyRoles[body]
	if !ok || sign < 0 || sign > 11 {
		return ""
	}
	return fmt.Sprintf("%s in %s: %s expressed through %s",
		body, sign, role, signThemes[sign])
}

// InterpretAspect returns the static text for an aspect between two bodies.
func InterpretAspect(bodyA, bodyB string, typ AspectType) string {
	text, ok := aspectTexts[typ]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s %s %s: %s", bodyA, typ, bodyB, text)
}

// Annotate fills the interpretation fields of an already-computed chart in
// place. Safe to apply to charts rehydrated from a cache or archive.
func Annotate(chart *models.Chart) {
	for name, cb := range chart.Planets {
		cb.Interpretation = InterpretPlacement(Body(name), ResolveSign(cb.Longitude).Sign)
		chart.Planets[name] = cb
	}
	for i := range chart.Aspects {
		a := &chart.Aspects[i]
		a.Interpretation = InterpretAspect(a.BodyA, a.BodyB, AspectType(a.Type))
	}
}
