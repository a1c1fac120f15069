package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sankalpsthakur/astronova-sub001/internal/domain/profile"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// ErrProfileNotFound is returned when no profile exists for the given ID.
var ErrProfileNotFound = fmt.Errorf("profile not found")

type PostgresProfileRepository struct {
	db *sql.DB
}

func NewPostgresProfileRepository(db *sql.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) Create(ctx context.Context, p *profile.Profile) error {
	query := `INSERT INTO profiles (id, name, birth_date, birth_time, timezone, latitude, longitude)
               VALUES ($1, $2, $3, $4, $5, $6, $7)
               RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.BirthDate, p.BirthTime, p.Timezone, p.Latitude, p.Longitude,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating profile: %w", err)
	}
	return nil
}

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	query := `SELECT id, name, birth_date, birth_time, timezone, latitude, longitude, created_at, updated_at
               FROM profiles WHERE id = $1`
	p := &profile.Profile{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.BirthDate, &p.BirthTime, &p.Timezone,
		&p.Latitude, &p.Longitude, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("error getting profile by ID: %w", err)
	}
	return p, nil
}

func (r *PostgresProfileRepository) List(ctx context.Context) ([]*profile.Profile, error) {
	query := `SELECT id, name, birth_date, birth_time, timezone, latitude, longitude, created_at, updated_at
               FROM profiles ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p := &profile.Profile{}
		if err := rows.Scan(
			&p.ID, &p.Name, &p.BirthDate, &p.BirthTime, &p.Timezone,
			&p.Latitude, &p.Longitude, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}
	return profiles, nil
}

func (r *PostgresProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted rows: %w", err)
	}
	if affected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
