package dailylog

import (
	"github.com/fitlife/fitlife-backend/internal/datekey"
)

// Store is a day-bucketed log: a mapping from a date key to the ordered list
// of entries added on that day. Insertion order within a day is preserved.
//
// All operations are pure: they never mutate the receiver and return a new
// store instead, so a caller holding the previous value keeps a consistent
// snapshot.
type Store map[datekey.Key][]Entry

func NewStore() Store {
	return make(Store)
}

// EntriesFor returns the entries logged on the given day.
// Never returns nil.
func (s Store) EntriesFor(day datekey.Key) []Entry {
	entries, ok := s[day]
	if !ok {
		return []Entry{}
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Add returns a new store with the entry appended to the given day's bucket,
// creating the bucket if needed. A zero entry ID is replaced with a fresh
// timestamp-based one; the assigned entry is the last element of the
// returned day bucket.
func (s Store) Add(day datekey.Key, entry Entry) Store {
	if entry.ID == 0 {
		entry.ID = entryIDFunc()
	}

	next := s.clone()
	next[day] = append(next[day], entry)
	return next
}

// Remove returns a new store with the matching entry removed from the given
// day. When the day or the entry ID is not found, the input store is returned
// unchanged.
func (s Store) Remove(day datekey.Key, entryID int64) Store {
	entries, ok := s[day]
	if !ok {
		return s
	}

	idx := -1
	for i, e := range entries {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s
	}

	next := s.clone()
	dayEntries := make([]Entry, 0, len(entries)-1)
	dayEntries = append(dayEntries, entries[:idx]...)
	dayEntries = append(dayEntries, entries[idx+1:]...)
	if len(dayEntries) == 0 {
		delete(next, day)
	} else {
		next[day] = dayEntries
	}
	return next
}

func (s Store) clone() Store {
	next := make(Store, len(s)+1)
	for day, entries := range s {
		copied := make([]Entry, len(entries))
		copy(copied, entries)
		next[day] = copied
	}
	return next
}
