package profile

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the operations for persisting and retrieving birth
// profiles.
type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
