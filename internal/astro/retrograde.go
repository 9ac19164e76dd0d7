package astro

import "time"

// RetrogradeDetector classifies direct vs retrograde motion. When the source
// reports daily motion directly, the sign of the speed decides; otherwise a
// 1-day forward difference of longitude is used. The forward difference is a
// deliberate approximation: near stationary points it can misclassify by up
// to a day.
type RetrogradeDetector struct {
	src Source
}

func NewRetrogradeDetector(src Source) *RetrogradeDetector {
	return &RetrogradeDetector{src: src}
}

// signedDelta folds a longitude difference into (-180,180], so motion across
// the 0°/360° boundary keeps its true direction.
func signedDelta(from, to float64) float64 {
	delta := to - from
	if delta > 180 {
		delta -= 360
	}
	if delta < -180 {
		delta += 360
	}
	return delta
}

// DailyMotion returns the signed daily motion in degrees for the body at t.
func (r *RetrogradeDetector) DailyMotion(body Body, t time.Time) (float64, error) {
	if ss, ok := r.src.(SpeedSource); ok {
		return ss.DailyMotion(body, t)
	}
	lon1, err := r.src.EclipticLongitude(body, t)
	if err != nil {
		return 0, err
	}
	lon2, err := r.src.EclipticLongitude(body, t.Add(24*time.Hour))
	if err != nil {
		return 0, err
	}
	return signedDelta(lon1, lon2), nil
}

// IsRetrograde reports whether the body appears to move backwards along the
// ecliptic at t. Always false for the Sun and Moon.
func (r *RetrogradeDetector) IsRetrograde(body Body, t time.Time) (bool, error) {
	if body.Luminary() {
		return false, nil
	}
	speed, err := r.DailyMotion(body, t)
	if err != nil {
		return false, err
	}
	return speed < 0, nil
}
