package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shift-planner/backend/internal/domain"
	"github.com/shift-planner/backend/internal/scheduling"
)

func (r *Repository) FindShifts(ctx context.Context, ownerID int64, date string) ([]*domain.Shift, error) {
	query := `
		SELECT id, owner_id, date, start_at, end_at, timezone, created_at, version
		FROM shifts
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

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{}
		dst := []any{&shift.ID, &shift.OwnerID, &shift.Date, &shift.Start, &shift.End, &shift.Timezone, &shift.CreatedAt, &shift.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shift.Start = shift.Start.UTC()
		shift.End = shift.End.UTC()
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) GetShift(ctx context.Context, id int64) (*domain.Shift, error) {
	query := `
		SELECT owner_id, date, start_at, end_at, timezone, created_at, version
		FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	shift := &domain.Shift{}
	shift.ID = id

	dst := []any{&shift.OwnerID, &shift.Date, &shift.Start, &shift.End, &shift.Timezone, &shift.CreatedAt, &shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, scheduling.ErrNotFound
		}
		return nil, err
	}
	shift.Start = shift.Start.UTC()
	shift.End = shift.End.UTC()

	return shift, nil
}

func (r *Repository) InsertShift(ctx context.Context, shift *domain.Shift) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1 || '/' || $2))`, shift.OwnerID, shift.Date); err != nil {
		return err
	}

	query := `
		INSERT INTO shifts (owner_id, date, start_at, end_at, timezone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{shift.OwnerID, shift.Date, shift.Start, shift.End, shift.Timezone}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
		return overlapConstraintError(err)
	}

	return tx.Commit()
}

func (r *Repository) DeleteShift(ctx context.Context, id int64) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) AllShifts(ctx context.Context) ([]*domain.Shift, error) {
	query := `
		SELECT id, owner_id, date, start_at, end_at, timezone, created_at, version
		FROM shifts
		ORDER BY date, owner_id, start_at
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{}
		dst := []any{&shift.ID, &shift.OwnerID, &shift.Date, &shift.Start, &shift.End, &shift.Timezone, &shift.CreatedAt, &shift.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shift.Start = shift.Start.UTC()
		shift.End = shift.End.UTC()
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) FindShiftsByOwner(ctx context.Context, ownerID int64) ([]*domain.Shift, error) {
	query := `
		SELECT id, owner_id, date, start_at, end_at, timezone, created_at, version
		FROM shifts
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

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{}
		dst := []any{&shift.ID, &shift.OwnerID, &shift.Date, &shift.Start, &shift.End, &shift.Timezone, &shift.CreatedAt, &shift.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shift.Start = shift.Start.UTC()
		shift.End = shift.End.UTC()
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}
