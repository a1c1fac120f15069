package ephemeris

import (
	"context"
	"math"
	"time"

	"github.com/sankalpsthakur/astronova-sub001/internal/domain/ephemeris"
)

// ApproxProvider computes low-precision sidereal longitudes for the Sun,
// Moon and lunar nodes from truncated series (roughly 0.1° for the Moon,
// better for the Sun). It exists solely for generic planetary-display
// features when the precision engine is down; dasha timing never consumes
// it.
type ApproxProvider struct{}

func NewApproxProvider() *ApproxProvider {
	return &ApproxProvider{}
}

// PositionsAt computes approximate sidereal longitudes for the given UTC
// instant. Latitude and longitude are accepted for interface compatibility;
// geocentric longitudes do not depend on the observation place at this
// precision.
func (p *ApproxProvider) PositionsAt(ctx context.Context, instant time.Time, latitude, longitude float64) (*ephemeris.Positions, error) {
	t := julianCenturies(instant)
	ayan := lahiriAyanamsa(t)

	sun := normalize(sunTropicalLongitude(t) - ayan)
	moon := normalize(moonTropicalLongitude(t) - ayan)
	rahu := normalize(meanLunarNode(t) - ayan)

	return &ephemeris.Positions{
		Instant: instant.UTC(),
		Longitudes: map[ephemeris.Body]float64{
			ephemeris.BodySun:  sun,
			ephemeris.BodyMoon: moon,
			ephemeris.BodyRahu: rahu,
			ephemeris.BodyKetu: normalize(rahu + 180),
		},
	}, nil
}

// julianCenturies returns the time in Julian centuries from J2000.0 (TT
// approximated by UT; the difference is irrelevant at this precision).
func julianCenturies(t time.Time) float64 {
	u := t.UTC()
	year, month, day := u.Year(), int(u.Month()), u.Day()

	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	jdn := day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045

	dayFraction := (float64(u.Hour())-12)/24 +
		float64(u.Minute())/1440 +
		(float64(u.Second())+float64(u.Nanosecond())/1e9)/86400

	jd := float64(jdn) + dayFraction
	return (jd - 2451545.0) / 36525.0
}

// sunTropicalLongitude is the Sun's apparent tropical longitude: mean
// longitude plus the equation of center.
func sunTropicalLongitude(t float64) float64 {
	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := rad(357.52911 + 35999.05029*t - 0.0001537*t*t)
	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(m) +
		(0.019993-0.000101*t)*math.Sin(2*m) +
		0.000289*math.Sin(3*m)
	return l0 + c
}

// moonTropicalLongitude evaluates the largest periodic terms of the lunar
// longitude series on top of the mean longitude.
func moonTropicalLongitude(t float64) float64 {
	lp := 218.3164477 + 481267.88123421*t - 0.0015786*t*t // mean longitude
	d := rad(297.8501921 + 445267.1114034*t - 0.0018819*t*t)  // mean elongation
	m := rad(357.5291092 + 35999.0502909*t - 0.0001536*t*t)   // sun mean anomaly
	mp := rad(134.9633964 + 477198.8675055*t + 0.0087414*t*t) // moon mean anomaly
	f := rad(93.2720950 + 483202.0175233*t - 0.0036539*t*t)   // argument of latitude

	lon := lp +
		6.288774*math.Sin(mp) +
		1.274027*math.Sin(2*d-mp) +
		0.658314*math.Sin(2*d) +
		0.213618*math.Sin(2*mp) -
		0.185116*math.Sin(m) -
		0.114332*math.Sin(2*f) +
		0.058793*math.Sin(2*d-2*mp) +
		0.057066*math.Sin(2*d-m-mp) +
		0.053322*math.Sin(2*d+mp) +
		0.045758*math.Sin(2*d-m)
	return lon
}

// meanLunarNode is the mean ascending node (Rahu), which regresses through
// the zodiac.
func meanLunarNode(t float64) float64 {
	return 125.0445479 - 1934.1362891*t + 0.0020754*t*t
}

// lahiriAyanamsa approximates the Lahiri ayanamsa: ~23.853° at J2000,
// increasing by the precession rate of ~50.29″ per year.
func lahiriAyanamsa(t float64) float64 {
	return 23.85306 + 1.39697*t
}

func rad(deg float64) float64 {
	return deg * math.Pi / 180
}

func normalize(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	// A tiny negative remainder plus 360 rounds to exactly 360.
	if m >= 360 {
		m -= 360
	}
	return m
}
