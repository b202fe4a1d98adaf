package scheduling

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAvailability(t *testing.T, av *AvailabilityValidator, date, start, end string) {
	t.Helper()
	_, err := av.Create(context.Background(), availabilityInput(date, start, end))
	require.NoError(t, err)
}

func TestShiftCreate(t *testing.T) {
	t.Run("shift inside availability is accepted", func(t *testing.T) {
		store := newMemoryStore()
		av, sv := NewValidators(store, 4*time.Hour)
		seedAvailability(t, av, "2024-03-04", "08:00", "16:00")

		shift, err := sv.Create(context.Background(), availabilityInput("2024-03-04", "09:00", "12:00"))
		require.NoError(t, err)
		assert.NotZero(t, shift.ID)
	})

	t.Run("shift spanning the whole window is accepted", func(t *testing.T) {
		store := newMemoryStore()
		av, sv := NewValidators(store, 4*time.Hour)
		seedAvailability(t, av, "2024-03-04", "08:00", "16:00")

		_, err := sv.Create(context.Background(), availabilityInput("2024-03-04", "08:00", "16:00"))
		require.NoError(t, err)
	})

	t.Run("no availability on the date", func(t *testing.T) {
		store := newMemoryStore()
		_, sv := NewValidators(store, 4*time.Hour)

		_, err := sv.Create(context.Background(), availabilityInput("2024-03-04", "09:00", "12:00"))
		assert.Equal(t, KindNoAvailability, KindOf(err))
	})

	t.Run("shift outside availability is rejected", func(t *testing.T) {
		store := newMemoryStore()
		av, sv := NewValidators(store, 4*time.Hour)
		seedAvailability(t, av, "2024-03-04", "08:00", "16:00")

		_, err := sv.Create(context.Background(), availabilityInput("2024-03-04", "17:00", "19:00"))
		assert.Equal(t, KindOutsideAvailability, KindOf(err))
	})

	t.Run("shift straddling the window edge is rejected", func(t *testing.T) {
		store := newMemoryStore()
		av, sv := NewValidators(store, 4*time.Hour)
		seedAvailability(t, av, "2024-03-04", "08:00", "16:00")

		_, err := sv.Create(context.Background(), availabilityInput("2024-03-04", "15:00", "17:00"))
		assert.Equal(t, KindOutsideAvailability, KindOf(err))
	})

	t.Run("shift spanning two adjacent windows is rejected", func(t *testing.T) {
		// containment requires a single window; two touching windows do
		// not merge
		store := newMemoryStore()
		av, sv := NewValidators(store, 4*time.Hour)
		seedAvailability(t, av, "2024-03-04", "08:00", "12:00")
		seedAvailability(t, av, "2024-03-04", "12:00", "16:00")

		_, err := sv.Create(context.Background(), availabilityInput("2024-03-04", "10:00", "14:00"))
		assert.Equal(t, KindOutsideAvailability, KindOf(err))
	})

	t.Run("overlapping shift is rejected and names the conflict", func(t *testing.T) {
		store := newMemoryStore()
		av, sv := NewValidators(store, 4*time.Hour)
		seedAvailability(t, av, "2024-03-04", "08:00", "16:00")

		first, err := sv.Create(context.Background(), availabilityInput("2024-03-04", "09:00", "12:00"))
		require.NoError(t, err)

		_, err = sv.Create(context.Background(), availabilityInput("2024-03-04", "11:00", "13:00"))
		require.Error(t, err)
		assert.Equal(t, KindShiftOverlap, KindOf(err))

		var schedErr *Error
		require.ErrorAs(t, err, &schedErr)
		require.NotNil(t, schedErr.Conflict)
		assert.Equal(t, first.Start, schedErr.Conflict.Start)
	})

	t.Run("back to back shifts are accepted", func(t *testing.T) {
		store := newMemoryStore()
		av, sv := NewValidators(store, 4*time.Hour)
		seedAvailability(t, av, "2024-03-04", "08:00", "16:00")

		_, err := sv.Create(context.Background(), availabilityInput("2024-03-04", "09:00", "12:00"))
		require.NoError(t, err)
		_, err = sv.Create(context.Background(), availabilityInput("2024-03-04", "12:00", "15:00"))
		require.NoError(t, err)
	})

	t.Run("invalid input is rejected before any store access", func(t *testing.T) {
		store := newMemoryStore()
		store.failWith = errors.New("must not be reached")
		_, sv := NewValidators(store, 4*time.Hour)

		_, err := sv.Create(context.Background(), IntervalInput{OwnerID: alice, Date: "bad", StartTime: "09:00", EndTime: "12:00", Timezone: "UTC"})
		assert.Equal(t, KindInvalidIntervalInput, KindOf(err))
	})

	t.Run("store failure surfaces as StoreUnavailable", func(t *testing.T) {
		store := newMemoryStore()
		store.failWith = errors.New("connection refused")
		_, sv := NewValidators(store, 4*time.Hour)

		_, err := sv.Create(context.Background(), availabilityInput("2024-03-04", "09:00", "12:00"))
		assert.Equal(t, KindStoreUnavailable, KindOf(err))
	})
}

func TestShiftDelete(t *testing.T) {
	t.Run("existing shift deletes", func(t *testing.T) {
		store := newMemoryStore()
		av, sv := NewValidators(store, 4*time.Hour)
		seedAvailability(t, av, "2024-03-04", "08:00", "16:00")

		shift, err := sv.Create(context.Background(), availabilityInput("2024-03-04", "09:00", "12:00"))
		require.NoError(t, err)
		require.NoError(t, sv.Delete(context.Background(), shift.ID))
		assert.Empty(t, store.shifts)
	})

	t.Run("missing shift reports not found", func(t *testing.T) {
		store := newMemoryStore()
		_, sv := NewValidators(store, 4*time.Hour)
		assert.ErrorIs(t, sv.Delete(context.Background(), 42), ErrNotFound)
	})
}

// Same race property as for availability: two concurrent overlapping shift
// assignments must end with exactly one acceptance.
func TestShiftCreateRace(t *testing.T) {
	store := newMemoryStore()
	av, sv := NewValidators(store, 4*time.Hour)
	seedAvailability(t, av, "2024-03-04", "08:00", "16:00")
	store.checkDelay = func() { time.Sleep(10 * time.Millisecond) }

	var wg sync.WaitGroup
	errs := make([]error, 2)
	inputs := []IntervalInput{
		availabilityInput("2024-03-04", "09:00", "12:00"),
		availabilityInput("2024-03-04", "11:00", "13:00"),
	}

	for i := range inputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = sv.Create(context.Background(), inputs[i])
		}(i)
	}
	wg.Wait()

	accepted, rejected := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			accepted++
		case KindOf(err) == KindShiftOverlap:
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, rejected)
	assert.Len(t, store.shifts, 1)
}
