package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sankalpsthakur/astronova-sub001/internal/app"
	"github.com/sankalpsthakur/astronova-sub001/internal/domain/ephemeris"
	"github.com/sankalpsthakur/astronova-sub001/internal/domain/profile"
	idb "github.com/sankalpsthakur/astronova-sub001/internal/infra/database"
	iephem "github.com/sankalpsthakur/astronova-sub001/internal/infra/ephemeris"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedProvider struct {
	moon float64
	err  error
}

func (p *fixedProvider) PositionsAt(ctx context.Context, instant time.Time, lat, lon float64) (*ephemeris.Positions, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &ephemeris.Positions{
		Instant:    instant,
		Longitudes: map[ephemeris.Body]float64{ephemeris.BodyMoon: p.moon},
	}, nil
}

type memProfileRepo struct {
	profiles map[uuid.UUID]*profile.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[uuid.UUID]*profile.Profile)}
}

func (r *memProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.profiles[p.ID] = p
	return nil
}

func (r *memProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, idb.ErrProfileNotFound
	}
	return p, nil
}

func (r *memProfileRepo) List(ctx context.Context) ([]*profile.Profile, error) {
	out := make([]*profile.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (r *memProfileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.profiles[id]; !ok {
		return idb.ErrProfileNotFound
	}
	delete(r.profiles, id)
	return nil
}

func newTestMux(provider ephemeris.Provider) *http.ServeMux {
	log := logrus.NewEntry(logrus.New())
	dashas := app.NewDashaService(provider, log)
	profiles := app.NewProfileService(newMemProfileRepo(), dashas, log)
	planets := app.NewPlanetService(provider, iephem.NewApproxProvider(), log)
	return NewHandler(dashas, profiles, planets, log).Routes()
}

const exampleQuery = "birth_date=1990-01-15&birth_time=14:30&timezone=Asia/Kolkata" +
	"&latitude=19.0760&longitude=72.8777&target_date=2025-01-01&include_all_levels=true"

func doRequest(t *testing.T, mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestGetCurrentDasha(t *testing.T) {
	mux := newTestMux(&fixedProvider{moon: 142.218})

	rec := doRequest(t, mux, http.MethodGet, "/api/v1/dasha/current?"+exampleQuery, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp app.CurrentPeriodResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Rahu", resp.Mahadasha.Lord)
	assert.Equal(t, "2019-09-18", resp.Mahadasha.StartDate)
	assert.Equal(t, "Saturn", resp.Antardasha.Lord)
}

func TestGetCurrentDashaValidation(t *testing.T) {
	mux := newTestMux(&fixedProvider{moon: 142.218})

	tests := []struct {
		name  string
		query string
	}{
		{"missing birth date", "birth_time=14:30&latitude=19&longitude=72"},
		{"unknown timezone", "birth_date=1990-01-15&timezone=Nowhere/At_All&latitude=19&longitude=72"},
		{"malformed target date", "birth_date=1990-01-15&latitude=19&longitude=72&target_date=01/01/2025"},
		{"non-numeric latitude", "birth_date=1990-01-15&latitude=north&longitude=72"},
		{"missing coordinates", "birth_date=1990-01-15"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, mux, http.MethodGet, "/api/v1/dasha/current?"+tc.query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestEphemerisOutageMapsTo503(t *testing.T) {
	mux := newTestMux(&fixedProvider{err: ephemeris.ErrUnavailable})

	rec := doRequest(t, mux, http.MethodGet, "/api/v1/dasha/current?"+exampleQuery, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "ErrUnavailable", "internals must not leak")
}

func TestEntryPointsAgreeOverHTTP(t *testing.T) {
	mux := newTestMux(&fixedProvider{moon: 142.218})

	getRec := doRequest(t, mux, http.MethodGet, "/api/v1/dasha/current?"+exampleQuery, "")
	require.Equal(t, http.StatusOK, getRec.Code)

	postRec := doRequest(t, mux, http.MethodPost, "/api/v1/dasha/detail", `{
		"birth": {
			"date": "1990-01-15",
			"time": "14:30",
			"timezone": "Asia/Kolkata",
			"latitude": 19.0760,
			"longitude": 72.8777
		},
		"targetDate": "2025-01-01"
	}`)
	require.Equal(t, http.StatusOK, postRec.Code, postRec.Body.String())

	var fromGet app.CurrentPeriodResponse
	var fromPost app.DashaDetailResponse
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &fromGet))
	require.NoError(t, json.Unmarshal(postRec.Body.Bytes(), &fromPost))

	assert.Equal(t, fromGet.Mahadasha, fromPost.Mahadasha)
	assert.Equal(t, fromGet.Antardasha, fromPost.Antardasha)
	assert.Equal(t, fromGet.Pratyantardasha, fromPost.Pratyantardasha)
}

func TestDashaDetailMalformedBody(t *testing.T) {
	mux := newTestMux(&fixedProvider{moon: 142.218})
	rec := doRequest(t, mux, http.MethodPost, "/api/v1/dasha/detail", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileLifecycle(t *testing.T) {
	mux := newTestMux(&fixedProvider{moon: 142.218})

	createRec := doRequest(t, mux, http.MethodPost, "/api/v1/profiles", `{
		"name": "Example",
		"birth": {
			"date": "1990-01-15",
			"time": "14:30",
			"timezone": "Asia/Kolkata",
			"latitude": 19.0760,
			"longitude": 72.8777
		}
	}`)
	require.Equal(t, http.StatusCreated, createRec.Code, createRec.Body.String())

	var created profile.Profile
	require.NoError(t, json.Unmarshal(createRec.Body.Bytes(), &created))
	require.NotEqual(t, uuid.Nil, created.ID)

	getRec := doRequest(t, mux, http.MethodGet, "/api/v1/profiles/"+created.ID.String(), "")
	assert.Equal(t, http.StatusOK, getRec.Code)

	dashaRec := doRequest(t, mux, http.MethodGet,
		"/api/v1/profiles/"+created.ID.String()+"/dasha?target_date=2025-01-01", "")
	require.Equal(t, http.StatusOK, dashaRec.Code, dashaRec.Body.String())
	var detail app.DashaDetailResponse
	require.NoError(t, json.Unmarshal(dashaRec.Body.Bytes(), &detail))
	assert.Equal(t, "Rahu", detail.Mahadasha.Lord)
	require.NotNil(t, detail.Transitions)
	assert.Equal(t, 4642, detail.Transitions.Mahadasha.Days)

	deleteRec := doRequest(t, mux, http.MethodDelete, "/api/v1/profiles/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, deleteRec.Code)

	missingRec := doRequest(t, mux, http.MethodGet, "/api/v1/profiles/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, missingRec.Code)
}

func TestProfileValidation(t *testing.T) {
	mux := newTestMux(&fixedProvider{moon: 142.218})

	rec := doRequest(t, mux, http.MethodPost, "/api/v1/profiles", `{
		"birth": {"date": "1990-01-15", "time": "14:30", "latitude": 19, "longitude": 72}
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing name")

	rec = doRequest(t, mux, http.MethodGet, "/api/v1/profiles/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlanetsFallsBackToApproximate(t *testing.T) {
	mux := newTestMux(&fixedProvider{err: ephemeris.ErrUnavailable})

	rec := doRequest(t, mux, http.MethodGet,
		"/api/v1/planets?at=1990-01-15T09:00:00Z&latitude=19.0760&longitude=72.8777", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Approximate bool               `json:"approximate"`
		Positions   map[string]float64 `json:"positions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Approximate)
	assert.InDelta(t, 142.158, resp.Positions["moon"], 1e-2)
}

func TestHealthz(t *testing.T) {
	mux := newTestMux(&fixedProvider{moon: 142.218})
	rec := doRequest(t, mux, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
