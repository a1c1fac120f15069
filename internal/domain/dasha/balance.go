package dasha

// StartingPeriod describes the mahadasha already running at the birth
// instant, derived from the Moon's position within its nakshatra.
type StartingPeriod struct {
	Lord                 Lord
	NakshatraIndex       int
	NakshatraName        string
	DegreesIntoNakshatra float64
	FractionElapsed      float64
	BalanceYears         float64
}

// ResolveStartingPeriod converts a sidereal Moon longitude (any real degree
// value; normalized here, so callers must not pre-normalize inconsistently)
// into the lord governing birth and the unexpired balance of that first
// mahadasha.
//
// A longitude exactly on a nakshatra boundary yields the full duration of
// the new nakshatra's lord: the boundary belongs to the period that starts
// there.
func ResolveStartingPeriod(moonLongitude float64) StartingPeriod {
	lon := NormalizeLongitude(moonLongitude)
	idx := NakshatraIndex(lon)
	lord := NakshatraLord(idx)

	degreesIn := lon - NakshatraSpan*float64(idx)
	fractionElapsed := degreesIn / NakshatraSpan

	return StartingPeriod{
		Lord:                 lord,
		NakshatraIndex:       idx,
		NakshatraName:        NakshatraName(idx),
		DegreesIntoNakshatra: degreesIn,
		FractionElapsed:      fractionElapsed,
		BalanceYears:         lord.Years() * (1 - fractionElapsed),
	}
}
