package dasha

// Lord is one of the nine grahas that rule Vimshottari periods.
type Lord string

const (
	Ketu    Lord = "Ketu"
	Venus   Lord = "Venus"
	Sun     Lord = "Sun"
	Moon    Lord = "Moon"
	Mars    Lord = "Mars"
	Rahu    Lord = "Rahu"
	Jupiter Lord = "Jupiter"
	Saturn  Lord = "Saturn"
	Mercury Lord = "Mercury"
)

// TotalCycleYears is the full length of one Vimshottari cycle.
const TotalCycleYears = 120.0

// LordCycle is the fixed Vimshottari ordering of the nine lords. The 27
// nakshatras map onto this sequence repeated three times.
var LordCycle = [9]Lord{Ketu, Venus, Sun, Moon, Mars, Rahu, Jupiter, Saturn, Mercury}

// lordYears holds each lord's full mahadasha duration in years. The values
// sum to TotalCycleYears.
var lordYears = map[Lord]float64{
	Ketu:    7,
	Venus:   20,
	Sun:     6,
	Moon:    10,
	Mars:    7,
	Rahu:    18,
	Jupiter: 16,
	Saturn:  19,
	Mercury: 17,
}

var lordIndex = map[Lord]int{
	Ketu:    0,
	Venus:   1,
	Sun:     2,
	Moon:    3,
	Mars:    4,
	Rahu:    5,
	Jupiter: 6,
	Saturn:  7,
	Mercury: 8,
}

// Years returns the lord's full mahadasha duration in years.
func (l Lord) Years() float64 {
	return lordYears[l]
}

// Next returns the lord that follows l in the Vimshottari ordering.
func (l Lord) Next() Lord {
	return LordCycle[(lordIndex[l]+1)%9]
}

// Prev returns the lord that precedes l in the Vimshottari ordering.
func (l Lord) Prev() Lord {
	return LordCycle[(lordIndex[l]+8)%9]
}
