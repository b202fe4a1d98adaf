package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/shift-planner/backend/internal/domain"
)

// AvailabilityValidator accepts or rejects proposed availability windows.
// All decisions go through the two predicates on domain.Interval; nothing
// here compares instants directly.
type AvailabilityValidator struct {
	store       Store
	locks       *keyLock
	minDuration time.Duration
}

func newAvailabilityValidator(store Store, locks *keyLock, minDuration time.Duration) *AvailabilityValidator {
	return &AvailabilityValidator{
		store:       store,
		locks:       locks,
		minDuration: minDuration,
	}
}

// Create validates and persists a new availability window.
func (v *AvailabilityValidator) Create(ctx context.Context, input IntervalInput) (*domain.Availability, error) {
	return v.validateAndSave(ctx, input, 0)
}

// Update replaces the window identified by id with the given input. The old
// record is excluded from the overlap scan so an edit never conflicts with
// itself.
func (v *AvailabilityValidator) Update(ctx context.Context, id int64, input IntervalInput) (*domain.Availability, error) {
	return v.validateAndSave(ctx, input, id)
}

func (v *AvailabilityValidator) validateAndSave(ctx context.Context, input IntervalInput, excludeID int64) (*domain.Availability, error) {
	interval, err := Normalize(input)
	if err != nil {
		return nil, err
	}

	if interval.Duration() < v.minDuration {
		return nil, newError(KindAvailabilityTooShort, "availability must last at least %s, got %s", v.minDuration, interval.Duration())
	}

	release := v.locks.acquire(interval.OwnerID, interval.Date)
	defer release()

	existing, err := v.store.FindAvailabilities(ctx, interval.OwnerID, interval.Date)
	if err != nil {
		return nil, storeError(err)
	}

	for _, other := range existing {
		if other.ID == excludeID {
			continue
		}
		if interval.Overlaps(other.Interval) {
			return nil, conflictError(KindAvailabilityOverlap, other.Interval, "availability overlaps existing window %s", other.Span())
		}
	}

	availability := &domain.Availability{Interval: interval}

	if excludeID != 0 {
		old, err := v.store.GetAvailability(ctx, excludeID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, err
			}
			return nil, storeError(err)
		}
		availability.ID = excludeID
		availability.Version = old.Version
		availability.CreatedAt = old.CreatedAt
		if err := v.store.UpdateAvailability(ctx, availability); err != nil {
			return nil, storeError(err)
		}
		return availability, nil
	}

	if err := v.store.InsertAvailability(ctx, availability); err != nil {
		return nil, storeError(err)
	}
	return availability, nil
}

// Covering reports every owner's windows on the input's date that fully
// contain the requested range, so an admin can see who could take a shift
// at those times before assigning it. Read only, no lock needed.
func (v *AvailabilityValidator) Covering(ctx context.Context, input IntervalInput) ([]*domain.Availability, error) {
	interval, err := Normalize(input)
	if err != nil {
		return nil, err
	}

	windows, err := v.store.FindAvailabilitiesOnDate(ctx, interval.Date)
	if err != nil {
		return nil, storeError(err)
	}

	covering := make([]*domain.Availability, 0)
	for _, window := range windows {
		if window.Contains(interval) {
			covering = append(covering, window)
		}
	}
	return covering, nil
}

// Delete removes an availability window. A window with a shift still nested
// inside it cannot be deleted; the shift has to be removed first. Blocking
// is the only policy, there is no cascading delete.
func (v *AvailabilityValidator) Delete(ctx context.Context, id int64) error {
	availability, err := v.store.GetAvailability(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return storeError(err)
	}

	release := v.locks.acquire(availability.OwnerID, availability.Date)
	defer release()

	shifts, err := v.store.FindShifts(ctx, availability.OwnerID, availability.Date)
	if err != nil {
		return storeError(err)
	}

	for _, shift := range shifts {
		if availability.Contains(shift.Interval) {
			return conflictError(KindAvailabilityHasDependentShift, shift.Interval, "shift %s depends on this window, delete the shift first", shift.Span())
		}
	}

	if err := v.store.DeleteAvailability(ctx, id); err != nil {
		return storeError(err)
	}
	return nil
}
