package dasha

import "time"

// FirstMahadasha returns the mahadasha running at the anchor's birth
// instant. Its end is birth + balance; its start is pushed back by the
// already-elapsed portion, so the period began before birth.
func FirstMahadasha(a Anchor) Period {
	sp := ResolveStartingPeriod(a.MoonLongitude)
	end := a.Birth.Add(yearsToDuration(sp.BalanceYears))
	return Period{
		Lord:  sp.Lord,
		Level: LevelMahadasha,
		Start: end.Add(-yearsToDuration(sp.Lord.Years())),
		End:   end,
	}
}

// NextMahadasha returns the mahadasha immediately following p. Its start is
// p's end, which keeps the chain gapless by construction.
func NextMahadasha(p Period) Period {
	lord := p.Lord.Next()
	return Period{
		Lord:  lord,
		Level: LevelMahadasha,
		Start: p.End,
		End:   p.End.Add(yearsToDuration(lord.Years())),
	}
}

// PrevMahadasha returns the mahadasha immediately preceding p. The chain
// extends backward cyclically, so neighbors exist for any instant.
func PrevMahadasha(p Period) Period {
	lord := p.Lord.Prev()
	return Period{
		Lord:  lord,
		Level: LevelMahadasha,
		Start: p.Start.Add(-yearsToDuration(lord.Years())),
		End:   p.Start,
	}
}

// subLords returns the nine sub-period lords for a parent ruled by lord:
// the parent's own lord first, then the rest of the cycle in order.
func subLords(parent Lord) [9]Lord {
	var lords [9]Lord
	start := lordIndex[parent]
	for k := 0; k < 9; k++ {
		lords[k] = LordCycle[(start+k)%9]
	}
	return lords
}

// SubPeriods divides a parent period among the nine lords proportionally:
// sub-period k for lord M gets duration D * years(M) / 120 of the parent
// duration D. The same rule applies at every depth, so antardashas,
// pratyantardashas and any deeper level all come from this one function.
//
// Boundaries are derived from cumulative year sums and the final boundary
// is the parent end itself, so a sub-chain is gapless and sums exactly to
// its parent with no accumulated drift.
func SubPeriods(parent Period) []Period {
	lords := subLords(parent.Lord)
	total := float64(parent.Duration())

	periods := make([]Period, 0, 9)
	start := parent.Start
	cumYears := 0.0
	for k, lord := range lords {
		cumYears += lord.Years()
		end := parent.End
		if k < len(lords)-1 {
			end = parent.Start.Add(time.Duration(total * cumYears / TotalCycleYears))
		}
		periods = append(periods, Period{
			Lord:  lord,
			Level: parent.Level + 1,
			Start: start,
			End:   end,
		})
		start = end
	}
	return periods
}
