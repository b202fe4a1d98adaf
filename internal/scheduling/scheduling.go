// Package scheduling is the temporal interval validation engine: it decides
// whether a proposed availability window or shift assignment is acceptable
// given the intervals that already exist for that owner and date.
package scheduling

import "time"

// NewValidators builds the two validators over one shared lock table, so
// availability and shift writes for the same owner+date serialize against
// each other as well as among themselves.
func NewValidators(store Store, minAvailability time.Duration) (*AvailabilityValidator, *ShiftValidator) {
	locks := newKeyLock()
	return newAvailabilityValidator(store, locks, minAvailability), newShiftValidator(store, locks)
}
