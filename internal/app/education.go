package app

import "github.com/sankalpsthakur/astronova-sub001/internal/domain/dasha"

// Static explainer text surfaced when a caller asks for the education
// payload. These are structural descriptions of the period system, not
// generated horoscope text.
var levelEducation = map[string]string{
	"mahadasha":       "The mahadasha is the outermost planetary period. Each of the nine lords rules one mahadasha in a fixed order, and the full cycle spans 120 years.",
	"antardasha":      "Each mahadasha is divided among all nine lords in proportion to their cycle lengths. The first antardasha belongs to the mahadasha lord itself.",
	"pratyantardasha": "Each antardasha subdivides again by the same proportional rule, giving the third and finest level commonly consulted.",
}

var lordEducation = map[dasha.Lord]string{
	dasha.Ketu:    "Ketu rules a 7-year mahadasha.",
	dasha.Venus:   "Venus rules a 20-year mahadasha, the longest in the cycle.",
	dasha.Sun:     "The Sun rules a 6-year mahadasha, the shortest in the cycle.",
	dasha.Moon:    "The Moon rules a 10-year mahadasha.",
	dasha.Mars:    "Mars rules a 7-year mahadasha.",
	dasha.Rahu:    "Rahu rules an 18-year mahadasha.",
	dasha.Jupiter: "Jupiter rules a 16-year mahadasha.",
	dasha.Saturn:  "Saturn rules a 19-year mahadasha.",
	dasha.Mercury: "Mercury rules a 17-year mahadasha.",
}

// educationPayload assembles the level explainers plus a line for the
// currently running mahadasha lord.
func educationPayload(stack dasha.PeriodStack) map[string]string {
	payload := make(map[string]string, len(levelEducation)+1)
	for key, text := range levelEducation {
		payload[key] = text
	}
	if len(stack) > 0 {
		payload["currentLord"] = lordEducation[stack[0].Lord]
	}
	return payload
}
