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

const alice int64 = 1

func availabilityInput(date, start, end string) IntervalInput {
	return IntervalInput{
		OwnerID:   alice,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Timezone:  "UTC",
	}
}

func TestAvailabilityCreate(t *testing.T) {
	t.Run("valid window is accepted", func(t *testing.T) {
		store := newMemoryStore()
		av, _ := NewValidators(store, 4*time.Hour)

		created, err := av.Create(context.Background(), availabilityInput("2024-03-04", "08:00", "16:00"))
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, 8*time.Hour, created.Duration())
	})

	t.Run("too short window is rejected", func(t *testing.T) {
		store := newMemoryStore()
		av, _ := NewValidators(store, 4*time.Hour)

		_, err := av.Create(context.Background(), availabilityInput("2024-03-04", "09:00", "10:30"))
		require.Error(t, err)
		assert.Equal(t, KindAvailabilityTooShort, KindOf(err))
		assert.Empty(t, store.availabilities, "nothing must be persisted on rejection")
	})

	t.Run("overlapping window is rejected and names the conflict", func(t *testing.T) {
		store := newMemoryStore()
		av, _ := NewValidators(store, 4*time.Hour)

		existing, err := av.Create(context.Background(), availabilityInput("2024-03-04", "08:00", "16:00"))
		require.NoError(t, err)

		_, err = av.Create(context.Background(), availabilityInput("2024-03-04", "15:00", "20:00"))
		require.Error(t, err)
		assert.Equal(t, KindAvailabilityOverlap, KindOf(err))

		var schedErr *Error
		require.ErrorAs(t, err, &schedErr)
		require.NotNil(t, schedErr.Conflict)
		assert.Equal(t, existing.Start, schedErr.Conflict.Start)
	})

	t.Run("adjacent window is accepted", func(t *testing.T) {
		store := newMemoryStore()
		av, _ := NewValidators(store, 4*time.Hour)

		_, err := av.Create(context.Background(), availabilityInput("2024-03-04", "08:00", "16:00"))
		require.NoError(t, err)

		// touches the existing window at 16:00 exactly, no shared instant
		_, err = av.Create(context.Background(), availabilityInput("2024-03-04", "16:00", "20:00"))
		require.NoError(t, err)
	})

	t.Run("same span on another date is accepted", func(t *testing.T) {
		store := newMemoryStore()
		av, _ := NewValidators(store, 4*time.Hour)

		_, err := av.Create(context.Background(), availabilityInput("2024-03-04", "08:00", "16:00"))
		require.NoError(t, err)
		_, err = av.Create(context.Background(), availabilityInput("2024-03-05", "08:00", "16:00"))
		require.NoError(t, err)
	})

	t.Run("exact duplicate is rejected", func(t *testing.T) {
		store := newMemoryStore()
		av, _ := NewValidators(store, 4*time.Hour)

		_, err := av.Create(context.Background(), availabilityInput("2024-03-04", "08:00", "16:00"))
		require.NoError(t, err)
		_, err = av.Create(context.Background(), availabilityInput("2024-03-04", "08:00", "16:00"))
		assert.Equal(t, KindAvailabilityOverlap, KindOf(err))
	})

	t.Run("overnight window is accepted", func(t *testing.T) {
		store := newMemoryStore()
		av, _ := NewValidators(store, 4*time.Hour)

		created, err := av.Create(context.Background(), availabilityInput("2024-01-01", "22:00", "02:00"))
		require.NoError(t, err)
		assert.Equal(t, 4*time.Hour, created.Duration())
	})

	t.Run("store failure surfaces as StoreUnavailable", func(t *testing.T) {
		store := newMemoryStore()
		store.failWith = errors.New("connection refused")
		av, _ := NewValidators(store, 4*time.Hour)

		_, err := av.Create(context.Background(), availabilityInput("2024-03-04", "08:00", "16:00"))
		require.Error(t, err)
		assert.Equal(t, KindStoreUnavailable, KindOf(err))
		assert.ErrorContains(t, errors.Unwrap(err), "connection refused")
	})
}

func TestAvailabilityUpdate(t *testing.T) {
	t.Run("edit does not conflict with itself", func(t *testing.T) {
		store := newMemoryStore()
		av, _ := NewValidators(store, 4*time.Hour)

		created, err := av.Create(context.Background(), availabilityInput("2024-03-04", "08:00", "16:00"))
		require.NoError(t, err)

		updated, err := av.Update(context.Background(), created.ID, availabilityInput("2024-03-04", "09:00", "17:00"))
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Len(t, store.availabilities, 1)
	})

	t.Run("edit still conflicts with other windows", func(t *testing.T) {
		store := newMemoryStore()
		av, _ := NewValidators(store, 4*time.Hour)

		created, err := av.Create(context.Background(), availabilityInput("2024-03-04", "08:00", "12:00"))
		require.NoError(t, err)
		_, err = av.Create(context.Background(), availabilityInput("2024-03-04", "14:00", "20:00"))
		require.NoError(t, err)

		_, err = av.Update(context.Background(), created.ID, availabilityInput("2024-03-04", "08:00", "15:00"))
		assert.Equal(t, KindAvailabilityOverlap, KindOf(err))
	})

	t.Run("edit of a missing window reports not found", func(t *testing.T) {
		store := newMemoryStore()
		av, _ := NewValidators(store, 4*time.Hour)

		_, err := av.Update(context.Background(), 42, availabilityInput("2024-03-04", "08:00", "16:00"))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAvailabilityCovering(t *testing.T) {
	rangeInput := func(date, start, end string) IntervalInput {
		return IntervalInput{Date: date, StartTime: start, EndTime: end, Timezone: "UTC"}
	}

	t.Run("returns every owner's windows containing the range", func(t *testing.T) {
		store := newMemoryStore()
		av, _ := NewValidators(store, 4*time.Hour)

		_, err := av.Create(context.Background(), availabilityInput("2024-03-04", "08:00", "16:00"))
		require.NoError(t, err)
		_, err = av.Create(context.Background(), IntervalInput{OwnerID: 2, Date: "2024-03-04", StartTime: "10:00", EndTime: "18:00", Timezone: "UTC"})
		require.NoError(t, err)
		_, err = av.Create(context.Background(), IntervalInput{OwnerID: 3, Date: "2024-03-04", StartTime: "13:00", EndTime: "20:00", Timezone: "UTC"})
		require.NoError(t, err)

		covering, err := av.Covering(context.Background(), rangeInput("2024-03-04", "10:00", "14:00"))
		require.NoError(t, err)
		require.Len(t, covering, 2)

		owners := []int64{covering[0].OwnerID, covering[1].OwnerID}
		assert.ElementsMatch(t, []int64{alice, 2}, owners)
	})

	t.Run("window sharing a boundary with the range still covers", func(t *testing.T) {
		store := newMemoryStore()
		av, _ := NewValidators(store, 4*time.Hour)

		_, err := av.Create(context.Background(), availabilityInput("2024-03-04", "08:00", "16:00"))
		require.NoError(t, err)

		covering, err := av.Covering(context.Background(), rangeInput("2024-03-04", "08:00", "16:00"))
		require.NoError(t, err)
		assert.Len(t, covering, 1)
	})

	t.Run("no window covers the range", func(t *testing.T) {
		store := newMemoryStore()
		av, _ := NewValidators(store, 4*time.Hour)

		_, err := av.Create(context.Background(), availabilityInput("2024-03-04", "08:00", "12:00"))
		require.NoError(t, err)

		covering, err := av.Covering(context.Background(), rangeInput("2024-03-04", "10:00", "14:00"))
		require.NoError(t, err)
		assert.Empty(t, covering)
	})

	t.Run("invalid range is rejected", func(t *testing.T) {
		store := newMemoryStore()
		av, _ := NewValidators(store, 4*time.Hour)

		_, err := av.Covering(context.Background(), rangeInput("bad-date", "10:00", "14:00"))
		assert.Equal(t, KindInvalidIntervalInput, KindOf(err))
	})
}

func TestAvailabilityDelete(t *testing.T) {
	t.Run("window without shifts deletes", func(t *testing.T) {
		store := newMemoryStore()
		av, _ := NewValidators(store, 4*time.Hour)

		created, err := av.Create(context.Background(), availabilityInput("2024-03-04", "08:00", "16:00"))
		require.NoError(t, err)
		require.NoError(t, av.Delete(context.Background(), created.ID))
		assert.Empty(t, store.availabilities)
	})

	t.Run("window with a dependent shift is blocked", func(t *testing.T) {
		store := newMemoryStore()
		av, sv := NewValidators(store, 4*time.Hour)

		created, err := av.Create(context.Background(), availabilityInput("2024-03-04", "08:00", "16:00"))
		require.NoError(t, err)
		_, err = sv.Create(context.Background(), availabilityInput("2024-03-04", "09:00", "12:00"))
		require.NoError(t, err)

		err = av.Delete(context.Background(), created.ID)
		require.Error(t, err)
		assert.Equal(t, KindAvailabilityHasDependentShift, KindOf(err))
		assert.Len(t, store.availabilities, 1, "blocked delete must leave the window in place")
	})

	t.Run("missing window reports not found", func(t *testing.T) {
		store := newMemoryStore()
		av, _ := NewValidators(store, 4*time.Hour)
		assert.ErrorIs(t, av.Delete(context.Background(), 42), ErrNotFound)
	})
}

// Two concurrent overlapping requests for the same owner+date must end with
// exactly one acceptance, never two. The store delay widens the race window
// between the validator's read and its write.
func TestAvailabilityCreateRace(t *testing.T) {
	store := newMemoryStore()
	store.checkDelay = func() { time.Sleep(10 * time.Millisecond) }
	av, _ := NewValidators(store, 4*time.Hour)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	inputs := []IntervalInput{
		availabilityInput("2024-03-04", "08:00", "16:00"),
		availabilityInput("2024-03-04", "12:00", "20:00"),
	}

	for i := range inputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = av.Create(context.Background(), inputs[i])
		}(i)
	}
	wg.Wait()

	accepted, rejected := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			accepted++
		case KindOf(err) == KindAvailabilityOverlap:
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, rejected)
	assert.Len(t, store.availabilities, 1)
}

// Requests for different owners or dates never contend; both must land.
func TestAvailabilityCreateParallelDisjointKeys(t *testing.T) {
	store := newMemoryStore()
	av, _ := NewValidators(store, 4*time.Hour)

	var wg sync.WaitGroup
	inputs := []IntervalInput{
		availabilityInput("2024-03-04", "08:00", "16:00"),
		{OwnerID: 2, Date: "2024-03-04", StartTime: "08:00", EndTime: "16:00", Timezone: "UTC"},
		availabilityInput("2024-03-05", "08:00", "16:00"),
	}
	errs := make([]error, len(inputs))

	for i := range inputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = av.Create(context.Background(), inputs[i])
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Len(t, store.availabilities, 3)
}
