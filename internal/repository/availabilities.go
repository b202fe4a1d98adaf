package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shift-planner/backend/internal/domain"
	"github.com/shift-planner/backend/internal/scheduling"
)

func (r *Repository) FindAvailabilities(ctx context.Context, ownerID int64, date string) ([]*domain.Availability, error) {
	query := `
		SELECT id, owner_id, date, start_at, end_at, timezone, created_at, version
		FROM availabilities
		WHERE owner_id = $1 AND date = $2
		ORDER BY start_at
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, ownerID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	availabilities := make([]*domain.Availability, 0)
	for rows.Next() {
		availability := &domain.Availability{}
		dst := []any{&availability.ID, &availability.OwnerID, &availability.Date, &availability.Start, &availability.End, &availability.Timezone, &availability.CreatedAt, &availability.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		availability.Start = availability.Start.UTC()
		availability.End = availability.End.UTC()
		availabilities = append(availabilities, availability)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return availabilities, nil
}

func (r *Repository) FindAvailabilitiesOnDate(ctx context.Context, date string) ([]*domain.Availability, error) {
	query := `
		SELECT id, owner_id, date, start_at, end_at, timezone, created_at, version
		FROM availabilities
		WHERE date = $1
		ORDER BY owner_id, start_at
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	availabilities := make([]*domain.Availability, 0)
	for rows.Next() {
		availability := &domain.Availability{}
		dst := []any{&availability.ID, &availability.OwnerID, &availability.Date, &availability.Start, &availability.End, &availability.Timezone, &availability.CreatedAt, &availability.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		availability.Start = availability.Start.UTC()
		availability.End = availability.End.UTC()
		availabilities = append(availabilities, availability)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return availabilities, nil
}

func (r *Repository) GetAvailability(ctx context.Context, id int64) (*domain.Availability, error) {
	query := `
		SELECT owner_id, date, start_at, end_at, timezone, created_at, version
		FROM availabilities WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	availability := &domain.Availability{}
	availability.ID = id

	dst := []any{&availability.OwnerID, &availability.Date, &availability.Start, &availability.End, &availability.Timezone, &availability.CreatedAt, &availability.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, scheduling.ErrNotFound
		}
		return nil, err
	}
	availability.Start = availability.Start.UTC()
	availability.End = availability.End.UTC()

	return availability, nil
}

func (r *Repository) InsertAvailability(ctx context.Context, availability *domain.Availability) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// serialize writers for this owner+date at the database as well; the
	// lock is released when the transaction ends
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1 || '/' || $2))`, availability.OwnerID, availability.Date); err != nil {
		return err
	}

	query := `
		INSERT INTO availabilities (owner_id, date, start_at, end_at, timezone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{availability.OwnerID, availability.Date, availability.Start, availability.End, availability.Timezone}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&availability.ID, &availability.CreatedAt, &availability.Version); err != nil {
		return overlapConstraintError(err)
	}

	return tx.Commit()
}

func (r *Repository) UpdateAvailability(ctx context.Context, availability *domain.Availability) error {
	query := `
		UPDATE availabilities
		SET
			date = $1,
			start_at = $2,
			end_at = $3,
			timezone = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{availability.Date, availability.Start, availability.End, availability.Timezone, availability.ID, availability.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&availability.CreatedAt, &availability.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return scheduling.ErrNotFound
		}
		return overlapConstraintError(err)
	}

	return nil
}

func (r *Repository) DeleteAvailability(ctx context.Context, id int64) error {
	query := `
		DELETE FROM availabilities WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

// AllAvailabilities backs the admin listing endpoint.
func (r *Repository) AllAvailabilities(ctx context.Context) ([]*domain.Availability, error) {
	query := `
		SELECT id, owner_id, date, start_at, end_at, timezone, created_at, version
		FROM availabilities
		ORDER BY date, owner_id, start_at
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	availabilities := make([]*domain.Availability, 0)
	for rows.Next() {
		availability := &domain.Availability{}
		dst := []any{&availability.ID, &availability.OwnerID, &availability.Date, &availability.Start, &availability.End, &availability.Timezone, &availability.CreatedAt, &availability.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		availability.Start = availability.Start.UTC()
		availability.End = availability.End.UTC()
		availabilities = append(availabilities, availability)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return availabilities, nil
}

// FindAvailabilitiesByOwner returns every window an owner has declared,
// newest date first; used by the employee "my availability" view.
func (r *Repository) FindAvailabilitiesByOwner(ctx context.Context, ownerID int64) ([]*domain.Availability, error) {
	query := `
		SELECT id, owner_id, date, start_at, end_at, timezone, created_at, version
		FROM availabilities
		WHERE owner_id = $1
		ORDER BY date DESC, start_at
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	availabilities := make([]*domain.Availability, 0)
	for rows.Next() {
		availability := &domain.Availability{}
		dst := []any{&availability.ID, &availability.OwnerID, &availability.Date, &availability.Start, &availability.End, &availability.Timezone, &availability.CreatedAt, &availability.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		availability.Start = availability.Start.UTC()
		availability.End = availability.End.UTC()
		availabilities = append(availabilities, availability)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return availabilities, nil
}

// overlapConstraintError translates a fired exclusion constraint into the
// overlap rejection the validators would have produced, so a write that
// slips past the application-level check still reports cleanly.
func overlapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.ConstraintName {
	case "availabilities_no_overlap":
		return &scheduling.Error{Kind: scheduling.KindAvailabilityOverlap, Message: "availability overlaps an existing window"}
	case "shifts_no_overlap":
		return &scheduling.Error{Kind: scheduling.KindShiftOverlap, Message: "shift overlaps an existing shift"}
	default:
		return err
	}
}
