package astro

// Body identifies a tracked celestial body.
type Body string

const (
	Sun     Body = "Sun"
	Moon    Body = "Moon"
	Mercury Body = "Mercury"
	Venus   Body = "Venus"
	Mars    Body = "Mars"
	Jupiter Body = "Jupiter"
	Saturn  Body = "Saturn"
	Uranus  Body = "Uranus"
	Neptune Body = "Neptune"
	Pluto   Body = "Pluto"
)

// Bodies is the canonical tracked set. Order is significant: aspect pairs
// and chart output follow it, so results stay stable across runs.
var Bodies = []Body{
	Sun, Moon, Mercury, Venus, Mars,
	Jupiter, Saturn, Uranus, Neptune, Pluto,
}

var bodySet = func() map[Body]struct{} {
	m := make(map[Body]struct{}, len(Bodies))
	for _, b := range Bodies {
		m[b] = struct{}{}
	}
	return m
}()

// Known reports whether b is one of the tracked bodies.
func Known(b Body) bool {
	_, ok := bodySet[b]
	return ok
}

// Luminary reports whether the body is the Sun or the Moon.
// Luminaries never show retrograde motion in geocentric longitude.
func (b Body) Luminary() bool {
	return b == Sun || b == Moon
}
