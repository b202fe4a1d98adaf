package scheduling

import (
	"context"
	"errors"

	"github.com/shift-planner/backend/internal/domain"
)

// ShiftValidator accepts or rejects proposed shift assignments. A shift is
// only accepted when it nests inside one of the owner's availability
// windows for the date and stays clear of every other shift the owner
// already has on that date.
type ShiftValidator struct {
	store Store
	locks *keyLock
}

func newShiftValidator(store Store, locks *keyLock) *ShiftValidator {
	return &ShiftValidator{store: store, locks: locks}
}

// Create validates and persists a new shift.
func (v *ShiftValidator) Create(ctx context.Context, input IntervalInput) (*domain.Shift, error) {
	interval, err := Normalize(input)
	if err != nil {
		return nil, err
	}

	release := v.locks.acquire(interval.OwnerID, interval.Date)
	defer release()

	availabilities, err := v.store.FindAvailabilities(ctx, interval.OwnerID, interval.Date)
	if err != nil {
		return nil, storeError(err)
	}

	if len(availabilities) == 0 {
		return nil, newError(KindNoAvailability, "owner has no availability on %s", interval.Date)
	}

	contained := false
	for _, availability := range availabilities {
		if availability.Contains(interval) {
			contained = true
			break
		}
	}
	if !contained {
		return nil, newError(KindOutsideAvailability, "shift %s falls outside every availability window on %s", interval.Span(), interval.Date)
	}

	shifts, err := v.store.FindShifts(ctx, interval.OwnerID, interval.Date)
	if err != nil {
		return nil, storeError(err)
	}

	for _, other := range shifts {
		if interval.Overlaps(other.Interval) {
			return nil, conflictError(KindShiftOverlap, other.Interval, "shift overlaps existing shift %s", other.Span())
		}
	}

	shift := &domain.Shift{Interval: interval}
	if err := v.store.InsertShift(ctx, shift); err != nil {
		return nil, storeError(err)
	}
	return shift, nil
}

// Delete removes a shift by ID. Shifts are never edited; a correction is a
// delete followed by a create.
func (v *ShiftValidator) Delete(ctx context.Context, id int64) error {
	shift, err := v.store.GetShift(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return storeError(err)
	}

	if err := v.store.DeleteShift(ctx, shift.ID); err != nil {
		return storeError(err)
	}
	return nil
}
