package dailylog

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryAdapter is an in-memory Adapter used in unit tests and dev setups
// where no redis is around. It round-trips stores through JSON so it keeps
// the same fail-open semantics as the redis adapter.
type MemoryAdapter struct {
	mutex  sync.Mutex
	values map[string]string
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		values: make(map[string]string),
	}
}

func (a *MemoryAdapter) SaveStore(_ context.Context, userID int, name string, store Store) error {
	storeJson, err := json.Marshal(store)
	if err != nil {
		return err
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.values[storeKey(userID, name)] = string(storeJson)
	return nil
}

func (a *MemoryAdapter) ReadStore(_ context.Context, userID int, name string) (Store, error) {
	a.mutex.Lock()
	storeJson, ok := a.values[storeKey(userID, name)]
	a.mutex.Unlock()

	if !ok {
		return NewStore(), nil
	}

	var store Store
	if err := json.Unmarshal([]byte(storeJson), &store); err != nil {
		return NewStore(), nil
	}
	if store == nil {
		store = NewStore()
	}
	return store, nil
}

func (a *MemoryAdapter) SaveScalar(_ context.Context, userID int, name string, value string) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.values[scalarKey(userID, name)] = value
	return nil
}

func (a *MemoryAdapter) ReadScalar(_ context.Context, userID int, name string) (string, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.values[scalarKey(userID, name)], nil
}

// Corrupt overwrites the stored value for (userID, name) with garbage,
// for testing the fail-open read path.
func (a *MemoryAdapter) Corrupt(userID int, name string) {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.values[storeKey(userID, name)] = "{not-json]"
}
