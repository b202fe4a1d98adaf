package scheduling

import (
	"context"
	"sync"

	"github.com/shift-planner/backend/internal/domain"
)

// memoryStore is an in-memory Store for validator tests. checkDelay, when
// set, widens the window between the validator's read and its write so the
// concurrency tests can provoke the check-then-act race.
type memoryStore struct {
	mu             sync.Mutex
	nextID         int64
	availabilities map[int64]*domain.Availability
	shifts         map[int64]*domain.Shift
	failWith       error
	checkDelay     func()
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		availabilities: make(map[int64]*domain.Availability),
		shifts:         make(map[int64]*domain.Shift),
	}
}

func (s *memoryStore) FindAvailabilities(_ context.Context, ownerID int64, date string) ([]*domain.Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := make([]*domain.Availability, 0)
	for _, a := range s.availabilities {
		if a.OwnerID == ownerID && a.Date == date {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *memoryStore) FindAvailabilitiesOnDate(_ context.Context, date string) ([]*domain.Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := make([]*domain.Availability, 0)
	for _, a := range s.availabilities {
		if a.Date == date {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *memoryStore) GetAvailability(_ context.Context, id int64) (*domain.Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	a, ok := s.availabilities[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (s *memoryStore) InsertAvailability(_ context.Context, availability *domain.Availability) error {
	if s.checkDelay != nil {
		s.checkDelay()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.nextID++
	availability.ID = s.nextID
	copied := *availability
	s.availabilities[availability.ID] = &copied
	return nil
}

func (s *memoryStore) UpdateAvailability(_ context.Context, availability *domain.Availability) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.availabilities[availability.ID]; !ok {
		return ErrNotFound
	}
	copied := *availability
	s.availabilities[availability.ID] = &copied
	return nil
}

func (s *memoryStore) DeleteAvailability(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	delete(s.availabilities, id)
	return nil
}

func (s *memoryStore) FindShifts(_ context.Context, ownerID int64, date string) ([]*domain.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := make([]*domain.Shift, 0)
	for _, sh := range s.shifts {
		if sh.OwnerID == ownerID && sh.Date == date {
			copied := *sh
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *memoryStore) GetShift(_ context.Context, id int64) (*domain.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	sh, ok := s.shifts[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *sh
	return &copied, nil
}

func (s *memoryStore) InsertShift(_ context.Context, shift *domain.Shift) error {
	if s.checkDelay != nil {
		s.checkDelay()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.nextID++
	shift.ID = s.nextID
	copied := *shift
	s.shifts[shift.ID] = &copied
	return nil
}

func (s *memoryStore) DeleteShift(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	delete(s.shifts, id)
	return nil
}
