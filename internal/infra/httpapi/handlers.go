package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sankalpsthakur/astronova-sub001/internal/app"
	"github.com/sankalpsthakur/astronova-sub001/internal/domain/ephemeris"
	idb "github.com/sankalpsthakur/astronova-sub001/internal/infra/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Handler translates HTTP requests into application calls and application
// errors back into the caller-facing taxonomy: validation failures are
// 400s, an ephemeris outage is a 503 distinct from bad input, everything
// else is a logged 500 with no internals leaked.
type Handler struct {
	dashas   *app.DashaService
	profiles *app.ProfileService
	planets  *app.PlanetService
	logger   *logrus.Entry
}

func NewHandler(dashas *app.DashaService, profiles *app.ProfileService, planets *app.PlanetService, logger *logrus.Entry) *Handler {
	return &Handler{
		dashas:   dashas,
		profiles: profiles,
		planets:  planets,
		logger:   logger,
	}
}

// Routes builds the service mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.HandleFunc("GET /api/v1/dasha/current", h.handleCurrentDasha)
	mux.HandleFunc("POST /api/v1/dasha/detail", h.handleDashaDetail)
	mux.HandleFunc("GET /api/v1/planets", h.handlePlanets)
	mux.HandleFunc("POST /api/v1/profiles", h.handleCreateProfile)
	mux.HandleFunc("GET /api/v1/profiles", h.handleListProfiles)
	mux.HandleFunc("GET /api/v1/profiles/{id}", h.handleGetProfile)
	mux.HandleFunc("DELETE /api/v1/profiles/{id}", h.handleDeleteProfile)
	mux.HandleFunc("GET /api/v1/profiles/{id}/dasha", h.handleProfileDasha)
	return mux
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleCurrentDasha(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := app.CurrentPeriodRequest{
		BirthDate:        q.Get("birth_date"),
		BirthTime:        q.Get("birth_time"),
		Timezone:         q.Get("timezone"),
		TargetDate:       q.Get("target_date"),
		IncludeAllLevels: boolParam(q.Get("include_all_levels")),
		IncludeDebug:     boolParam(q.Get("include_debug")),
		IncludeEducation: boolParam(q.Get("include_education")),
	}

	var err error
	if req.Latitude, err = floatParam(q.Get("latitude")); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Longitude, err = floatParam(q.Get("longitude")); err != nil {
		h.writeError(w, r, err)
		return
	}

	resp, err := h.dashas.CurrentPeriod(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// dashaDetailBody is the wire shape of the structured entry point.
type dashaDetailBody struct {
	Birth struct {
		Date          string   `json:"date"`
		Time          string   `json:"time"`
		Timezone      string   `json:"timezone"`
		Latitude      *float64 `json:"latitude"`
		Longitude     *float64 `json:"longitude"`
		MoonLongitude *float64 `json:"moonLongitude"`
	} `json:"birth"`
	TargetDate         string `json:"targetDate"`
	IncludeTransitions bool   `json:"includeTransitions"`
	IncludeEducation   bool   `json:"includeEducation"`
	NumFuturePeriods   int    `json:"numFuturePeriods"`
}

func (h *Handler) handleDashaDetail(w http.ResponseWriter, r *http.Request) {
	var body dashaDetailBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed JSON body"})
		return
	}

	resp, err := h.dashas.DashaDetail(r.Context(), app.DashaDetailRequest{
		Birth: app.BirthDetails{
			Date:          body.Birth.Date,
			Time:          body.Birth.Time,
			Timezone:      body.Birth.Timezone,
			Latitude:      body.Birth.Latitude,
			Longitude:     body.Birth.Longitude,
			MoonLongitude: body.Birth.MoonLongitude,
		},
		TargetDate:         body.TargetDate,
		IncludeTransitions: body.IncludeTransitions,
		IncludeEducation:   body.IncludeEducation,
		NumFuturePeriods:   body.NumFuturePeriods,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePlanets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	at := time.Now().UTC()
	if raw := q.Get("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "at must be RFC3339"})
			return
		}
		at = parsed.UTC()
	}
	lat, err := floatParam(q.Get("latitude"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	lon, err := floatParam(q.Get("longitude"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var latV, lonV float64
	if lat != nil {
		latV = *lat
	}
	if lon != nil {
		lonV = *lon
	}

	positions, approximate, err := h.planets.Positions(r.Context(), at, latV, lonV)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"instant":     positions.Instant.Format(time.RFC3339),
		"positions":   positions.Longitudes,
		"approximate": approximate,
	})
}

// createProfileBody is the wire shape for saving a profile.
type createProfileBody struct {
	Name  string `json:"name"`
	Birth struct {
		Date      string   `json:"date"`
		Time      string   `json:"time"`
		Timezone  string   `json:"timezone"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"birth"`
}

func (h *Handler) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var body createProfileBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed JSON body"})
		return
	}

	p, err := h.profiles.CreateProfile(r.Context(), app.CreateProfileRequest{
		Name: body.Name,
		Birth: app.BirthDetails{
			Date:      body.Birth.Date,
			Time:      body.Birth.Time,
			Timezone:  body.Birth.Timezone,
			Latitude:  body.Birth.Latitude,
			Longitude: body.Birth.Longitude,
		},
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.ListProfiles(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	p, err := h.profiles.GetProfile(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	if err := h.profiles.DeleteProfile(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleProfileDasha(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	numFuture := 0
	if raw := q.Get("num_future_periods"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "num_future_periods must be a non-negative integer"})
			return
		}
		numFuture = n
	}

	resp, err := h.profiles.DashaForProfile(r.Context(), id, q.Get("target_date"), numFuture)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) profileID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "profile id must be a UUID"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case app.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, ephemeris.ErrUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "calculation engine temporarily unavailable"})
	case errors.Is(err, idb.ErrProfileNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
	default:
		h.logger.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"query":  r.URL.RawQuery,
		}).WithError(err).Error("Unexpected error handling request")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func boolParam(raw string) bool {
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}

// floatParam parses an optional coordinate query parameter. Presence and
// range checks belong to the application layer; this only rejects values
// that are not numbers at all.
func floatParam(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, app.ErrInvalidCoordinates
	}
	return &v, nil
}
