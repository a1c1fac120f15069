package app

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors surfaced to the boundary. Each wraps ErrValidation so
// the boundary can classify without enumerating every variant.
var (
	ErrValidation = errors.New("validation error")

	ErrMissingBirthDate   = fmt.Errorf("%w: birth date is required", ErrValidation)
	ErrInvalidBirthDate   = fmt.Errorf("%w: birth date must be YYYY-MM-DD", ErrValidation)
	ErrMissingBirthTime   = fmt.Errorf("%w: birth time is required", ErrValidation)
	ErrInvalidBirthTime   = fmt.Errorf("%w: birth time must be HH:MM", ErrValidation)
	ErrUnknownTimezone    = fmt.Errorf("%w: unrecognized IANA timezone name", ErrValidation)
	ErrInvalidTargetDate  = fmt.Errorf("%w: target date must be YYYY-MM-DD", ErrValidation)
	ErrMissingCoordinates = fmt.Errorf("%w: latitude and longitude are required", ErrValidation)
	ErrInvalidCoordinates = fmt.Errorf("%w: latitude must be within [-90,90] and longitude within [-180,180]", ErrValidation)
)

// IsValidation reports whether err belongs to the validation error class
// ("your input was wrong"), as opposed to a dependency or internal failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// BirthDetails carries caller-supplied birth data. Latitude/Longitude are
// required when the Moon longitude must come from an ephemeris lookup;
// MoonLongitude, when set, bypasses the lookup entirely.
type BirthDetails struct {
	Date          string   // YYYY-MM-DD, required
	Time          string   // HH:MM; defaultable only where the entry point allows it
	Timezone      string   // IANA name; empty means UTC
	Latitude      *float64 // degrees north
	Longitude     *float64 // degrees east
	MoonLongitude *float64 // sidereal degrees, optional override
}

// normalizeBirth validates the birth fields and converts the wall-clock
// birth moment to a UTC instant. A missing time becomes midnight only when
// allowMissingTime is set; a missing timezone always means UTC, never a
// guess from coordinates.
func normalizeBirth(d BirthDetails, allowMissingTime bool) (time.Time, error) {
	if d.Date == "" {
		return time.Time{}, ErrMissingBirthDate
	}
	date, err := time.Parse("2006-01-02", d.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w (got %q)", ErrInvalidBirthDate, d.Date)
	}

	clock := d.Time
	if clock == "" {
		if !allowMissingTime {
			return time.Time{}, ErrMissingBirthTime
		}
		clock = "00:00"
	}
	hm, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w (got %q)", ErrInvalidBirthTime, clock)
	}

	zone := d.Timezone
	if zone == "" {
		zone = "UTC"
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w (got %q)", ErrUnknownTimezone, zone)
	}

	local := time.Date(date.Year(), date.Month(), date.Day(), hm.Hour(), hm.Minute(), 0, 0, loc)
	return local.UTC(), nil
}

// validateCoordinates checks that both coordinates are present and within
// range, returning their values.
func validateCoordinates(d BirthDetails) (float64, float64, error) {
	if d.Latitude == nil || d.Longitude == nil {
		return 0, 0, ErrMissingCoordinates
	}
	lat, lon := *d.Latitude, *d.Longitude
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("%w (got %.4f, %.4f)", ErrInvalidCoordinates, lat, lon)
	}
	return lat, lon, nil
}

// parseTargetDate resolves the target instant: midnight UTC of the given
// date, or of the current UTC date when empty.
func parseTargetDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		u := now.UTC()
		return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w (got %q)", ErrInvalidTargetDate, s)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC), nil
}
