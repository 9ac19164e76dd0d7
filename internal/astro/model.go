package astro

import (
	"fmt"
	"math"
	"time"
)

// ModelSource computes geocentric ecliptic longitudes from mean orbital
// elements (low-precision analytic series, not ephemeris-grade). Accuracy is
// on the order of arc minutes for the Sun and a fraction of a degree for the
// Moon and planets, which is sufficient for sign, aspect and phase work.
// Valid roughly 1800-2200; outside that range lookups fail rather than
// degrade silently.
type ModelSource struct{}

func NewModelSource() *ModelSource { return &ModelSource{} }

// modelEpoch is day 0.0 of the element series: 2000 Jan 0.0 UT.
var modelEpoch = time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC)

const (
	minModelYear = 1800
	maxModelYear = 2200
)

func daysSinceEpoch(t time.Time) float64 {
	return t.Sub(modelEpoch).Hours() / 24
}

// Degree-argument trig helpers keep the element series readable.
func sind(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }
func cosd(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }
func atan2d(y, x float64) float64 { return math.Atan2(y, x) * 180 / math.Pi }

// elements holds mean orbital elements at day d: ascending node, inclination,
// argument of perihelion, semi-major axis (AU), eccentricity, mean anomaly.
type elements struct {
	n, i, w, a, e, m float64
}

func planetElements(body Body, d float64) (elements, bool) {
	switch body {
	case Mercury:
		return elements{
			n: 48.3313 + 3.24587e-5*d,
			i: 7.0047 + 5.00e-8*d,
			w: 29.1241 + 1.01444e-5*d,
			a: 0.387098,
			e: 0.205635 + 5.59e-10*d,
			m: 168.6562 + 4.0923344368*d,
		}, true
	case Venus:
		return elements{
			n: 76.6799 + 2.46590e-5*d,
			i: 3.3946 + 2.75e-8*d,
			w: 54.8910 + 1.38374e-5*d,
			a: 0.723330,
			e: 0.006773 - 1.302e-9*d,
			m: 48.0052 + 1.6021302244*d,
		}, true
	case Mars:
		return elements{
			n: 49.5574 + 2.11081e-5*d,
			i: 1.8497 - 1.78e-8*d,
			w: 286.5016 + 2.92961e-5*d,
			a: 1.523688,
			e: 0.093405 + 2.516e-9*d,
			m: 18.6021 + 0.5240207766*d,
		}, true
	case Jupiter:
		return elements{
			n: 100.4542 + 2.76854e-5*d,
			i: 1.3030 - 1.557e-7*d,
			w: 273.8777 + 1.64505e-5*d,
			a: 5.20256,
			e: 0.048498 + 4.469e-9*d,
			m: 19.8950 + 0.0830853001*d,
		}, true
	case Saturn:
		return elements{
			n: 113.6634 + 2.38980e-5*d,
			i: 2.4886 - 1.081e-7*d,
			w: 339.3939 + 2.97661e-5*d,
			a: 9.55475,
			e: 0.055546 - 9.499e-9*d,
			m: 316.9670 + 0.0334442282*d,
		}, true
	case Uranus:
		return elements{
			n: 74.0005 + 1.3978e-5*d,
			i: 0.7733 + 1.9e-8*d,
			w: 96.6612 + 3.0565e-5*d,
			a: 19.18171 - 1.55e-8*d,
			e: 0.047318 + 7.45e-9*d,
			m: 142.5905 + 0.011725806*d,
		}, true
	case Neptune:
		return elements{
			n: 131.7806 + 3.0173e-5*d,
			i: 1.7700 - 2.55e-7*d,
			w: 272.8461 - 6.027e-6*d,
			a: 30.05826 + 3.313e-8*d,
			e: 0.008606 + 2.15e-9*d,
			m: 260.2471 + 0.005995147*d,
		}, true
	}
	return elements{}, false
}

// solveKepler iterates the eccentric anomaly until it converges below
// 0.0005 degrees. Eccentricities here are small, so a few rounds suffice.
func solveKepler(m, e float64) float64 {
	ecc := m + e*(180/math.Pi)*sind(m)*(1+e*cosd(m))
	for range 20 {
		next := ecc - (ecc-e*(180/math.Pi)*sind(ecc)-m)/(1-e*cosd(ecc))
		if math.Abs(next-ecc) < 5e-4 {
			return next
		}
		ecc = next
	}
	return ecc
}

// sunState returns the Sun's geocentric ecliptic longitude and the Earth-Sun
// distance in AU at day d.
func sunState(d float64) (lon, r float64) {
	w := 282.9404 + 4.70935e-5*d
	e := 0.016709 - 1.151e-9*d
	m := Normalize(356.0470 + 0.9856002585*d)

	ecc := solveKepler(m, e)
	xv := cosd(ecc) - e
	yv := math.Sqrt(1-e*e) * sind(ecc)
	v := atan2d(yv, xv)
	r = math.Sqrt(xv*xv + yv*yv)
	return Normalize(v + w), r
}

// moonLongitude returns the Moon's geocentric ecliptic longitude at day d,
// including the dominant perturbation terms (evection, variation, yearly
// equation and the next tier of corrections).
func moonLongitude(d float64) float64 {
	n := 125.1228 - 0.0529538083*d
	const i = 5.1454
	w := 318.0634 + 0.1643573223*d
	const a = 60.2666 // Earth radii
	const e = 0.054900
	m := Normalize(115.3654 + 13.0649929509*d)

	ecc := solveKepler(m, e)
	xv := a * (cosd(ecc) - e)
	yv := a * math.Sqrt(1-e*e) * sind(ecc)
	v := atan2d(yv, xv)
	r := math.Sqrt(xv*xv + yv*yv)

	xh := r * (cosd(n)*cosd(v+w) - sind(n)*sind(v+w)*cosd(i))
	yh := r * (sind(n)*cosd(v+w) + cosd(n)*sind(v+w)*cosd(i))
	lon := atan2d(yh, xh)

	// Fundamental arguments for the perturbation series.
	ms := Normalize(356.0470 + 0.9856002585*d) // Sun mean anomaly
	ws := 282.9404 + 4.70935e-5*d              // Sun argument of perihelion
	ls := ms + ws                              // Sun mean longitude
	lm := m + w + n                            // Moon mean longitude
	dd := lm - ls                              // mean elongation
	// f := lm - n is only needed for latitude terms, which we don't compute.

	lon += -1.274*sind(m-2*dd) +
		0.658*sind(2*dd) -
		0.186*sind(ms) -
		0.059*sind(2*m-2*dd) -
		0.057*sind(m-2*dd+ms) +
		0.053*sind(m+2*dd) +
		0.046*sind(2*dd-ms) +
		0.041*sind(m-ms) -
		0.035*sind(dd) -
		0.031*sind(m+ms)

	return Normalize(lon)
}

// plutoState returns Pluto's heliocentric longitude, latitude and distance
// from a periodic series fitted for 1900-2100.
func plutoState(d float64) (lon, lat, r float64) {
	s := 50.03 + 0.033459652*d
	p := 238.95 + 0.003968789*d

	lon = 238.9508 + 0.00400703*d -
		19.799*sind(p) + 19.848*cosd(p) +
		0.897*sind(2*p) - 4.956*cosd(2*p) +
		0.610*sind(3*p) + 1.211*cosd(3*p) -
		0.341*sind(4*p) - 0.190*cosd(4*p) +
		0.128*sind(5*p) - 0.034*cosd(5*p) -
		0.038*sind(6*p) + 0.031*cosd(6*p) +
		0.020*sind(s-p) - 0.010*cosd(s-p)

	lat = -3.9082 -
		5.453*sind(p) - 14.975*cosd(p) +
		3.527*sind(2*p) + 1.673*cosd(2*p) -
		1.051*sind(3*p) + 0.328*cosd(3*p) +
		0.179*sind(4*p) - 0.292*cosd(4*p) +
		0.019*sind(5*p) + 0.100*cosd(5*p) -
		0.031*sind(6*p) - 0.026*cosd(6*p) +
		0.011*cosd(s-p)

	r = 40.72 +
		6.68*sind(p) + 6.90*cosd(p) -
		1.18*sind(2*p) - 0.03*cosd(2*p) +
		0.15*sind(3*p) - 0.14*cosd(3*p)
	return lon, lat, r
}

// planetLongitude converts heliocentric elements to a geocentric ecliptic
// longitude by adding the Sun's geocentric position vector.
func (s *ModelSource) planetLongitude(body Body, d float64) (float64, error) {
	var lonH, latH, rH float64

	if body == Pluto {
		lonH, latH, rH = plutoState(d)
	} else {
		el, ok := planetElements(body, d)
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnsupportedBody, body)
		}
		ecc := solveKepler(Normalize(el.m), el.e)
		xv := el.a * (cosd(ecc) - el.e)
		yv := el.a * math.Sqrt(1-el.e*el.e) * sind(ecc)
		v := atan2d(yv, xv)
		r := math.Sqrt(xv*xv + yv*yv)

		xh := r * (cosd(el.n)*cosd(v+el.w) - sind(el.n)*sind(v+el.w)*cosd(el.i))
		yh := r * (sind(el.n)*cosd(v+el.w) + cosd(el.n)*sind(v+el.w)*cosd(el.i))
		zh := r * sind(v+el.w) * sind(el.i)

		lonH = atan2d(yh, xh)
		latH = atan2d(zh, math.Sqrt(xh*xh+yh*yh))
		rH = r

		lonH += jovianPerturbations(body, d)
	}

	// Heliocentric rectangular, then shift by the Sun's geocentric vector.
	xh := rH * cosd(lonH) * cosd(latH)
	yh := rH * sind(lonH) * cosd(latH)

	sunLon, sunR := sunState(d)
	xg := xh + sunR*cosd(sunLon)
	yg := yh + sunR*sind(sunLon)

	return Normalize(atan2d(yg, xg)), nil
}

// jovianPerturbations returns the major mutual Jupiter/Saturn longitude
// corrections. Uranus terms are below the model's overall accuracy and are
// omitted.
func jovianPerturbations(body Body, d float64) float64 {
	mj := Normalize(19.8950 + 0.0830853001*d)
	ms := Normalize(316.9670 + 0.0334442282*d)

	switch body {
	case Jupiter:
		return -0.332*sind(2*mj-5*ms-67.6) -
			0.056*sind(2*mj-2*ms+21) +
			0.042*sind(3*mj-5*ms+21) -
			0.036*sind(mj-2*ms) +
			0.022*cosd(mj-ms) +
			0.023*sind(2*mj-3*ms+52) -
			0.016*sind(mj-5*ms-69)
	case Saturn:
		return 0.812*sind(2*mj-5*ms-67.6) -
			0.229*cosd(2*mj-4*ms-2) +
			0.119*sind(mj-2*ms-3) +
			0.046*sind(2*mj-6*ms-69) +
			0.014*sind(mj-3*ms+32)
	}
	return 0
}

// EclipticLongitude implements Source.
func (s *ModelSource) EclipticLongitude(body Body, t time.Time) (float64, error) {
	if !Known(body) {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedBody, body)
	}
	if t.IsZero() {
		return 0, ErrInvalidInstant
	}
	if y := t.UTC().Year(); y < minModelYear || y > maxModelYear {
		return 0, fmt.Errorf("%w: year %d outside model range %d-%d",
			ErrEphemerisUnavailable, y, minModelYear, maxModelYear)
	}

	d := daysSinceEpoch(t.UTC())
	switch body {
	case Sun:
		lon, _ := sunState(d)
		return lon, nil
	case Moon:
		return moonLongitude(d), nil
	default:
		return s.planetLongitude(body, d)
	}
}
