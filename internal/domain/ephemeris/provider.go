package ephemeris

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable signals that the high-precision ephemeris engine could not
// be reached or returned an unusable response. Callers must propagate this
// distinctly from validation failures; the dasha computation never
// substitutes an approximate longitude when it sees this error.
var ErrUnavailable = errors.New("ephemeris engine unavailable")

// Body identifies a graha whose position the provider reports.
type Body string

const (
	BodySun     Body = "sun"
	BodyMoon    Body = "moon"
	BodyMercury Body = "mercury"
	BodyVenus   Body = "venus"
	BodyMars    Body = "mars"
	BodyJupiter Body = "jupiter"
	BodySaturn  Body = "saturn"
	BodyRahu    Body = "rahu"
	BodyKetu    Body = "ketu"
)

// Positions holds sidereal ecliptic longitudes in degrees [0, 360) for one
// instant and place.
type Positions struct {
	Instant    time.Time
	Longitudes map[Body]float64
}

// Longitude returns the reported longitude for a body, if present.
func (p *Positions) Longitude(b Body) (float64, bool) {
	deg, ok := p.Longitudes[b]
	return deg, ok
}

// Provider supplies sidereal planetary longitudes for a UTC instant and an
// observation place. This decouples the application from the concrete
// ephemeris engine and its caching layer.
type Provider interface {
	PositionsAt(ctx context.Context, instant time.Time, latitude, longitude float64) (*Positions, error)
}
