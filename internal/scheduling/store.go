package scheduling

import (
	"context"
	"errors"

	"github.com/shift-planner/backend/internal/domain"
)

// ErrNotFound is returned by a Store when a record does not exist.
var ErrNotFound = errors.New("scheduling: record not found")

// Store is the persistence collaborator the validators run against. The
// find methods must return a snapshot that is consistent with any insert
// the validator subsequently performs for the same owner+date; the
// validators additionally serialize themselves per owner+date, so a Store
// implementation only needs ordinary transactional semantics.
type Store interface {
	FindAvailabilities(ctx context.Context, ownerID int64, date string) ([]*domain.Availability, error)
	FindAvailabilitiesOnDate(ctx context.Context, date string) ([]*domain.Availability, error)
	GetAvailability(ctx context.Context, id int64) (*domain.Availability, error)
	InsertAvailability(ctx context.Context, availability *domain.Availability) error
	UpdateAvailability(ctx context.Context, availability *domain.Availability) error
	DeleteAvailability(ctx context.Context, id int64) error

	FindShifts(ctx context.Context, ownerID int64, date string) ([]*domain.Shift, error)
	GetShift(ctx context.Context, id int64) (*domain.Shift, error)
	InsertShift(ctx context.Context, shift *domain.Shift) error
	DeleteShift(ctx context.Context, id int64) error
}
