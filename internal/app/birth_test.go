package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func TestNormalizeBirthConvertsWallClockToUTC(t *testing.T) {
	got, err := normalizeBirth(BirthDetails{
		Date:     "1990-01-15",
		Time:     "14:30",
		Timezone: "Asia/Kolkata",
	}, false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 1, 15, 9, 0, 0, 0, time.UTC), got)
}

func TestNormalizeBirthDefaultsTimezoneToUTC(t *testing.T) {
	omitted, err := normalizeBirth(BirthDetails{Date: "1990-01-15", Time: "14:30"}, false)
	require.NoError(t, err)
	explicit, err := normalizeBirth(BirthDetails{Date: "1990-01-15", Time: "14:30", Timezone: "UTC"}, false)
	require.NoError(t, err)

	assert.Equal(t, explicit, omitted)
	assert.Equal(t, time.Date(1990, 1, 15, 14, 30, 0, 0, time.UTC), omitted)
}

func TestNormalizeBirthMissingTime(t *testing.T) {
	// Midnight default applies only where the entry point allows it.
	got, err := normalizeBirth(BirthDetails{Date: "1990-01-15"}, true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = normalizeBirth(BirthDetails{Date: "1990-01-15"}, false)
	assert.ErrorIs(t, err, ErrMissingBirthTime)
}

func TestNormalizeBirthValidation(t *testing.T) {
	tests := []struct {
		name    string
		details BirthDetails
		wantErr error
	}{
		{"missing date", BirthDetails{Time: "14:30"}, ErrMissingBirthDate},
		{"malformed date", BirthDetails{Date: "15-01-1990", Time: "14:30"}, ErrInvalidBirthDate},
		{"malformed time", BirthDetails{Date: "1990-01-15", Time: "2pm"}, ErrInvalidBirthTime},
		{"unknown timezone", BirthDetails{Date: "1990-01-15", Time: "14:30", Timezone: "Mars/Olympus_Mons"}, ErrUnknownTimezone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := normalizeBirth(tc.details, false)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.True(t, IsValidation(err), "should classify as validation error")
		})
	}
}

func TestValidateCoordinates(t *testing.T) {
	_, _, err := validateCoordinates(BirthDetails{})
	assert.ErrorIs(t, err, ErrMissingCoordinates)

	_, _, err = validateCoordinates(BirthDetails{Latitude: f64(19.0760)})
	assert.ErrorIs(t, err, ErrMissingCoordinates)

	_, _, err = validateCoordinates(BirthDetails{Latitude: f64(91), Longitude: f64(0)})
	assert.ErrorIs(t, err, ErrInvalidCoordinates)

	_, _, err = validateCoordinates(BirthDetails{Latitude: f64(0), Longitude: f64(-181)})
	assert.ErrorIs(t, err, ErrInvalidCoordinates)

	lat, lon, err := validateCoordinates(BirthDetails{Latitude: f64(19.0760), Longitude: f64(72.8777)})
	require.NoError(t, err)
	assert.Equal(t, 19.0760, lat)
	assert.Equal(t, 72.8777, lon)
}

func TestParseTargetDate(t *testing.T) {
	now := time.Date(2025, 3, 10, 17, 45, 0, 0, time.UTC)

	got, err := parseTargetDate("", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), got, "empty target defaults to the current UTC date")

	got, err = parseTargetDate("2025-01-01", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = parseTargetDate("01/01/2025", now)
	assert.ErrorIs(t, err, ErrInvalidTargetDate)
}
