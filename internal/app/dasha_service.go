package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sankalpsthakur/astronova-sub001/internal/domain/dasha"
	"github.com/sankalpsthakur/astronova-sub001/internal/domain/ephemeris"

	"github.com/sirupsen/logrus"
)

// DashaService computes Vimshottari period views for the two boundary
// entry points. All computation is pure; the only collaborator is the
// ephemeris provider supplying the birth Moon longitude.
type DashaService struct {
	provider ephemeris.Provider
	logger   *logrus.Entry
	now      func() time.Time
}

func NewDashaService(provider ephemeris.Provider, logger *logrus.Entry) *DashaService {
	return &DashaService{
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
}

// CurrentPeriodRequest is the component-wise entry point, shaped for
// query parameters. Time defaults to midnight and timezone to UTC when
// absent.
type CurrentPeriodRequest struct {
	BirthDate  string
	BirthTime  string
	Timezone   string
	Latitude   *float64
	Longitude  *float64
	TargetDate string

	IncludeAllLevels bool // include start/end boundaries below the mahadasha
	IncludeDebug     bool
	IncludeEducation bool
}

// DashaDetailRequest is the structured entry point. Birth time is required
// here; there is no midnight default.
type DashaDetailRequest struct {
	Birth      BirthDetails
	TargetDate string

	IncludeTransitions bool
	IncludeEducation   bool
	NumFuturePeriods   int
}

// PeriodView is the boundary representation of one period. Start/End are
// RFC3339 UTC instants; StartDate/EndDate are their UTC calendar dates.
type PeriodView struct {
	Lord      string `json:"lord"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// RemainingView is the countdown to the end of one period level.
type RemainingView struct {
	Days    int     `json:"days"`
	Months  float64 `json:"months"`
	Years   float64 `json:"years"`
	EndDate string  `json:"endDate"`
}

// TransitionView groups countdowns for the current-period stack. The
// detail entry point always exposes all three levels, so their countdowns
// always travel together.
type TransitionView struct {
	Mahadasha       RemainingView `json:"mahadasha"`
	Antardasha      RemainingView `json:"antardasha"`
	Pratyantardasha RemainingView `json:"pratyantardasha"`
}

// DebugInfo surfaces intermediate resolver values for inspection. It adds
// no computation of its own.
type DebugInfo struct {
	MoonLongitude   float64 `json:"moonLongitude"`
	NakshatraIndex  int     `json:"nakshatraIndex"`
	Nakshatra       string  `json:"nakshatra"`
	StartingLord    string  `json:"startingLord"`
	BalanceYears    float64 `json:"balanceYears"`
	BirthInstantUTC string  `json:"birthInstantUtc"`
	TargetInstant   string  `json:"targetInstantUtc"`
}

// CurrentPeriodResponse is the minimal current-period view.
type CurrentPeriodResponse struct {
	Mahadasha       PeriodView        `json:"mahadasha"`
	Antardasha      PeriodView        `json:"antardasha"`
	Pratyantardasha PeriodView        `json:"pratyantardasha"`
	Debug           *DebugInfo        `json:"debug,omitempty"`
	Education       map[string]string `json:"education,omitempty"`
}

// DashaDetailResponse is the complete view: current stack plus future
// mahadashas and optional transition data.
type DashaDetailResponse struct {
	Mahadasha       PeriodView        `json:"mahadasha"`
	Antardasha      PeriodView        `json:"antardasha"`
	Pratyantardasha PeriodView        `json:"pratyantardasha"`
	FuturePeriods   []PeriodView      `json:"futurePeriods,omitempty"`
	Transitions     *TransitionView   `json:"transitions,omitempty"`
	Education       map[string]string `json:"education,omitempty"`
}

// defaultFuturePeriods bounds forward projection when the caller does not
// ask for a specific count.
const (
	defaultFuturePeriods = 3
	maxFuturePeriods     = 9
)

// CurrentPeriod resolves the period stack for the component-wise entry
// point.
func (s *DashaService) CurrentPeriod(ctx context.Context, req CurrentPeriodRequest) (*CurrentPeriodResponse, error) {
	birth := BirthDetails{
		Date:      req.BirthDate,
		Time:      req.BirthTime,
		Timezone:  req.Timezone,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	stack, anchor, target, err := s.resolveStack(ctx, birth, req.TargetDate, true)
	if err != nil {
		return nil, err
	}

	resp := &CurrentPeriodResponse{
		Mahadasha:       periodView(stack[0], true),
		Antardasha:      periodView(stack[1], req.IncludeAllLevels),
		Pratyantardasha: periodView(stack[2], req.IncludeAllLevels),
	}
	if req.IncludeDebug {
		resp.Debug = debugInfo(anchor, target)
	}
	if req.IncludeEducation {
		resp.Education = educationPayload(stack)
	}
	return resp, nil
}

// DashaDetail resolves the complete view for the structured entry point.
func (s *DashaService) DashaDetail(ctx context.Context, req DashaDetailRequest) (*DashaDetailResponse, error) {
	stack, _, target, err := s.resolveStack(ctx, req.Birth, req.TargetDate, false)
	if err != nil {
		return nil, err
	}

	numFuture := req.NumFuturePeriods
	if numFuture <= 0 {
		numFuture = defaultFuturePeriods
	}
	if numFuture > maxFuturePeriods {
		numFuture = maxFuturePeriods
	}

	resp := &DashaDetailResponse{
		Mahadasha:       periodView(stack[0], true),
		Antardasha:      periodView(stack[1], true),
		Pratyantardasha: periodView(stack[2], true),
	}
	for _, p := range dasha.FutureMahadashas(stack[0], numFuture) {
		resp.FuturePeriods = append(resp.FuturePeriods, periodView(p, true))
	}
	if req.IncludeTransitions {
		resp.Transitions = &TransitionView{
			Mahadasha:       remainingView(stack[0], target),
			Antardasha:      remainingView(stack[1], target),
			Pratyantardasha: remainingView(stack[2], target),
		}
	}
	if req.IncludeEducation {
		resp.Education = educationPayload(stack)
	}
	return resp, nil
}

// resolveStack runs the shared pipeline both entry points funnel through:
// normalize birth data, obtain the birth Moon longitude, locate the
// three-level period stack at the target instant. Using one path for both
// entry points is what guarantees their byte-identical agreement.
func (s *DashaService) resolveStack(ctx context.Context, birth BirthDetails, targetDate string, allowMissingTime bool) (dasha.PeriodStack, dasha.Anchor, time.Time, error) {
	var anchor dasha.Anchor

	birthUTC, err := normalizeBirth(birth, allowMissingTime)
	if err != nil {
		return nil, anchor, time.Time{}, err
	}
	target, err := parseTargetDate(targetDate, s.now())
	if err != nil {
		return nil, anchor, time.Time{}, err
	}

	moonLongitude, err := s.birthMoonLongitude(ctx, birth, birthUTC)
	if err != nil {
		return nil, anchor, time.Time{}, err
	}

	anchor = dasha.Anchor{Birth: birthUTC, MoonLongitude: moonLongitude}
	stack, err := dasha.Locate(anchor, target, int(dasha.LevelPratyantardasha))
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"birth_utc":      birthUTC.Format(time.RFC3339),
			"moon_longitude": moonLongitude,
			"target":         target.Format(time.RFC3339),
		}).WithError(err).Error("Failed to locate period stack")
		return nil, anchor, time.Time{}, err
	}
	return stack, anchor, target, nil
}

// birthMoonLongitude returns the sidereal Moon longitude for the birth
// instant, from the caller's override or the precision ephemeris provider.
// There is no approximate fallback here: an engine outage propagates as a
// distinct dependency error rather than producing a plausible but wrong
// dasha sequence.
func (s *DashaService) birthMoonLongitude(ctx context.Context, birth BirthDetails, birthUTC time.Time) (float64, error) {
	if birth.MoonLongitude != nil {
		return *birth.MoonLongitude, nil
	}

	lat, lon, err := validateCoordinates(birth)
	if err != nil {
		return 0, err
	}

	positions, err := s.provider.PositionsAt(ctx, birthUTC, lat, lon)
	if err != nil {
		return 0, fmt.Errorf("fetching birth positions: %w", err)
	}
	moon, ok := positions.Longitude(ephemeris.BodyMoon)
	if !ok {
		return 0, fmt.Errorf("birth positions missing moon longitude: %w", ephemeris.ErrUnavailable)
	}
	return moon, nil
}

// periodView formats one period for the boundary. When boundaries is
// false only the lord is exposed.
func periodView(p dasha.Period, boundaries bool) PeriodView {
	view := PeriodView{Lord: string(p.Lord)}
	if boundaries {
		view.Start = p.Start.UTC().Format(time.RFC3339)
		view.End = p.End.UTC().Format(time.RFC3339)
		view.StartDate = p.Start.UTC().Format("2006-01-02")
		view.EndDate = p.End.UTC().Format("2006-01-02")
	}
	return view
}

func remainingView(p dasha.Period, target time.Time) RemainingView {
	r := dasha.RemainingAt(p, target)
	return RemainingView{
		Days:    r.Days,
		Months:  r.Months,
		Years:   r.Years,
		EndDate: p.End.UTC().Format("2006-01-02"),
	}
}

func debugInfo(anchor dasha.Anchor, target time.Time) *DebugInfo {
	sp := dasha.ResolveStartingPeriod(anchor.MoonLongitude)
	return &DebugInfo{
		MoonLongitude:   dasha.NormalizeLongitude(anchor.MoonLongitude),
		NakshatraIndex:  sp.NakshatraIndex,
		Nakshatra:       sp.NakshatraName,
		StartingLord:    string(sp.Lord),
		BalanceYears:    sp.BalanceYears,
		BirthInstantUTC: anchor.Birth.Format(time.RFC3339),
		TargetInstant:   target.Format(time.RFC3339),
	}
}
