package profile

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a saved set of birth data that dasha queries can be run
// against without resending the birth moment each time. Date, time and
// timezone are stored as submitted (wall-clock semantics); the UTC birth
// instant is derived at query time.
type Profile struct {
	ID        uuid.UUID
	Name      string
	BirthDate string // YYYY-MM-DD
	BirthTime string // HH:MM
	Timezone  string // IANA zone name
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
