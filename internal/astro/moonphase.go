package astro

import (
	"math"
	"time"

	"StarChart/internal/domain/models"
)

// ReferenceNewMoon is a recent known lunation start (2024-01-11 11:57 UTC),
// used by the synodic fallback when the position source cannot supply the
// Sun and Moon.
var ReferenceNewMoon = time.Date(2024, time.January, 11, 11, 57, 0, 0, time.UTC)

// SynodicMonth is the mean interval between new moons, in days.
const SynodicMonth = 29.53058867

// Named phase thresholds on the normalized lunation age. The table is walked
// in order; the first bucket containing the age wins. New Moon wraps around
// through 1.0, so it is handled ahead of the table.
var phaseThresholds = []struct {
	upTo float64
	name string
}{
	{0.22, "Waxing Crescent"},
	{0.28, "First Quarter"},
	{0.47, "Waxing Gibbous"},
	{0.53, "Full Moon"},
	{0.72, "Waning Gibbous"},
	{0.78, "Last Quarter"},
	{0.97, "Waning Crescent"},
}

// PhaseName maps a normalized lunation age in [0,1) to its named phase.
func PhaseName(ageFraction float64) string {
	if ageFraction < 0.03 || ageFraction > 0.97 {
		return "New Moon"
	}
	for _, th := range phaseThresholds {
		if ageFraction < th.upTo {
			return th.name
		}
	}
	return "New Moon"
}

// MoonPhaseCalculator derives lunation age and illumination for an instant.
type MoonPhaseCalculator struct {
	src Source
}

func NewMoonPhaseCalculator(src Source) *MoonPhaseCalculator {
	return &MoonPhaseCalculator{src: src}
}

// Compute returns the moon phase at t. The preferred path derives the phase
// angle from the Sun/Moon elongation reported by the source; if either body
// is unavailable the synodic-cycle approximation takes over, so a partial
// source never blocks phase data.
func (c *MoonPhaseCalculator) Compute(t time.Time) (models.MoonPhase, error) {
	if t.IsZero() {
		return models.MoonPhase{}, ErrInvalidInstant
	}

	age, ok := c.elongationAge(t)
	if !ok {
		age = synodicAge(t)
	}
	return fromAge(age), nil
}

// elongationAge computes the lunation age from the Moon-Sun elongation.
func (c *MoonPhaseCalculator) elongationAge(t time.Time) (float64, bool) {
	if c.src == nil {
		return 0, false
	}
	sunLon, err := c.src.EclipticLongitude(Sun, t)
	if err != nil {
		return 0, false
	}
	moonLon, err := c.src.EclipticLongitude(Moon, t)
	if err != nil {
		return 0, false
	}
	return Normalize(moonLon-sunLon) / 360, true
}

// synodicAge computes the lunation age from the reference new moon.
func synodicAge(t time.Time) float64 {
	days := t.Sub(ReferenceNewMoon).Hours() / 24
	age := math.Mod(days/SynodicMonth, 1)
	if age < 0 {
		age += 1
	}
	return age
}

func fromAge(age float64) models.MoonPhase {
	angle := age * 2 * math.Pi
	return models.MoonPhase{
		Name:         PhaseName(age),
		PhaseValue:   age,
		Illumination: 0.5 * (1 - math.Cos(angle)),
		Waxing:       age < 0.5,
	}
}
