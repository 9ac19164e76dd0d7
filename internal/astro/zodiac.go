package astro

import "math"

// Sign is one of the 12 zodiac signs, in zodiacal order from Aries.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer",
	"Leo", "Virgo", "Libra", "Scorpio",
	"Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

func (s Sign) String() string {
	if s < 0 || s > 11 {
		return "unknown"
	}
	return signNames[s]
}

// Element groups signs into fire/earth/air/water.
type Element string

const (
	Fire  Element = "fire"
	Earth Element = "earth"
	Air   Element = "air"
	Water Element = "water"
)

// Modality groups signs into cardinal/fixed/mutable.
type Modality string

const (
	Cardinal Modality = "cardinal"
	Fixed    Modality = "fixed"
	Mutable  Modality = "mutable"
)

// Signs repeat fire-earth-air-water and cardinal-fixed-mutable in zodiacal order.
var signElements = [12]Element{
	Fire, Earth, Air, Water,
	Fire, Earth, Air, Water,
	Fire, Earth, Air, Water,
}

var signModalities = [12]Modality{
	Cardinal, Fixed, Mutable,
	Cardinal, Fixed, Mutable,
	Cardinal, Fixed, Mutable,
	Cardinal, Fixed, Mutable,
}

// ElementOf returns the element of a sign.
func (s Sign) ElementOf() Element { return signElements[s] }

// ModalityOf returns the modality of a sign.
func (s Sign) ModalityOf() Modality { return signModalities[s] }

// SignPosition locates a longitude inside its zodiac sign.
type SignPosition struct {
	Sign   Sign
	Degree int // whole degrees within sign, 0-29
	Minute int // arc minutes of the fractional degree, 0-59
}

// Normalize maps any angle in degrees into [0,360).
func Normalize(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// ResolveSign maps an ecliptic longitude to its sign, degree and arc minute.
// The input is normalized first, so callers may pass any angle.
func ResolveSign(longitude float64) SignPosition {
	lon := Normalize(longitude)
	return SignPosition{
		Sign:   Sign(int(lon/30) % 12),
		Degree: int(math.Mod(lon, 30)),
		Minute: int(math.Mod(lon, 1) * 60),
	}
}
