package scheduling

import (
	"fmt"
	"sync"
)

// keyLock serializes validation for one owner+date. Without it two
// concurrent requests can both read the same snapshot, both see no conflict
// and both commit overlapping intervals. Entries are reference counted and
// removed once the last holder releases, so the table does not grow with
// the number of distinct keys ever seen.
type keyLock struct {
	mu    sync.Mutex
	locks map[string]*keyLockEntry
}

type keyLockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyLock() *keyLock {
	return &keyLock{locks: make(map[string]*keyLockEntry)}
}

func ownerDateKey(ownerID int64, date string) string {
	return fmt.Sprintf("%d/%s", ownerID, date)
}

// acquire blocks until the owner+date key is held and returns the release
// function.
func (l *keyLock) acquire(ownerID int64, date string) func() {
	key := ownerDateKey(ownerID, date)

	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &keyLockEntry{}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}
