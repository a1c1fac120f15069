package dasha

import "math"

// NakshatraCount is the number of equal lunar-mansion arcs in the zodiac.
const NakshatraCount = 27

// NakshatraSpan is the angular width of one nakshatra in degrees (13°20′).
const NakshatraSpan = 360.0 / NakshatraCount

var nakshatraNames = [NakshatraCount]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni",
	"Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha", "Anuradha",
	"Jyeshtha", "Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana",
	"Dhanishta", "Shatabhisha", "Purva Bhadrapada", "Uttara Bhadrapada",
	"Revati",
}

// NormalizeLongitude maps any real degree value into [0, 360). Adding 360
// to a tiny negative remainder rounds to exactly 360, so the result is
// folded once more to keep the range half-open.
func NormalizeLongitude(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	if m >= 360 {
		m -= 360
	}
	return m
}

// NakshatraIndex returns the index (0–26) of the nakshatra containing the
// given ecliptic longitude. A longitude exactly on a span boundary belongs
// to the nakshatra that starts there, not the one that ends there.
func NakshatraIndex(longitude float64) int {
	return int(NormalizeLongitude(longitude)/NakshatraSpan) % NakshatraCount
}

// NakshatraName returns the traditional name for a nakshatra index.
func NakshatraName(index int) string {
	return nakshatraNames[((index%NakshatraCount)+NakshatraCount)%NakshatraCount]
}

// NakshatraLord returns the Vimshottari lord ruling a nakshatra index. The
// nine-lord cycle repeats three times across the 27 nakshatras.
func NakshatraLord(index int) Lord {
	return LordCycle[((index%9)+9)%9]
}
