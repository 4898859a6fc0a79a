package dailylog

import (
	"context"
	"errors"
	"sync"

	"github.com/fitlife/fitlife-backend/internal/datekey"
)

var ErrEntryNotFound = errors.New("log entry not found")

// Service ties a store name ("workouts", "nutrition") to a persistence
// adapter. Every mutation is a read-modify-persist of the owning user's
// whole store, written back synchronously so in-memory state and the
// persisted value never diverge within one process. Writers in other
// processes race last-write-wins; that is accepted, not coordinated.
type Service struct {
	adapter   Adapter
	storeName string

	// serializes read-modify-persist cycles in this process
	mutex sync.Mutex
}

func NewService(adapter Adapter, storeName string) *Service {
	return &Service{
		adapter:   adapter,
		storeName: storeName,
	}
}

// Add appends the entry to the user's bucket for the given day and persists
// the result. The returned entry carries the assigned ID.
func (s *Service) Add(ctx context.Context, userID int, day datekey.Key, entry Entry) (Entry, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	store, err := s.adapter.ReadStore(ctx, userID, s.storeName)
	if err != nil {
		return Entry{}, err
	}

	store = store.Add(day, entry)
	dayEntries := store[day]
	added := dayEntries[len(dayEntries)-1]

	if err := s.adapter.SaveStore(ctx, userID, s.storeName, store); err != nil {
		return Entry{}, err
	}
	return added, nil
}

// Remove deletes the entry from the user's bucket for the given day and
// persists the result. Returns ErrEntryNotFound when the day or ID is
// unknown; the persisted store is left untouched in that case.
func (s *Service) Remove(ctx context.Context, userID int, day datekey.Key, entryID int64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	store, err := s.adapter.ReadStore(ctx, userID, s.storeName)
	if err != nil {
		return err
	}

	next := store.Remove(day, entryID)
	if len(next[day]) == len(store[day]) {
		return ErrEntryNotFound
	}

	return s.adapter.SaveStore(ctx, userID, s.storeName, next)
}

// EntriesFor returns the user's entries for the given day, empty when none.
func (s *Service) EntriesFor(ctx context.Context, userID int, day datekey.Key) ([]Entry, error) {
	store, err := s.adapter.ReadStore(ctx, userID, s.storeName)
	if err != nil {
		return nil, err
	}
	return store.EntriesFor(day), nil
}
