package users

import (
	"strings"
	"sync"
	"time"
)

// Store holds the authoritative in-memory set of user records. It assigns
// identifiers and timestamps; business rules live in Service.
type Store struct {
	mu     sync.RWMutex
	byID   map[int64]User
	nextID int64
	now    func() time.Time
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{
		byID:   make(map[int64]User),
		nextID: 1,
		now:    time.Now,
	}
}

// Get returns the record for id.
func (s *Store) Get(id int64) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	return u, ok
}

// All returns an unordered snapshot of every record. Ordering is the
// Service's contract.
func (s *Store) All() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, u)
	}
	return out
}

// Len reports the number of live records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// Mutate runs fn with exclusive access to the store. Check-then-write
// sequences (uniqueness check plus insert) must happen inside a single
// Mutate call.
func (s *Store) Mutate(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Tx{store: s})
}

// Tx exposes the mutation surface of the store while its lock is held.
type Tx struct {
	store *Store
}

// Len reports the number of live records under the held lock.
func (tx *Tx) Len() int {
	return len(tx.store.byID)
}

// Insert assigns the next unused id, stamps both timestamps and stores the
// record. Ids are monotonic and never reused within a process lifetime.
func (tx *Tx) Insert(u User) User {
	now := tx.store.now()
	u.ID = tx.store.nextID
	u.CreatedAt = now
	u.UpdatedAt = now
	tx.store.nextID++
	tx.store.byID[u.ID] = u
	return u
}

// Seed stores a record keeping its caller-assigned id and timestamps, and
// advances the id sequence past it so later inserts never collide.
func (tx *Tx) Seed(u User) User {
	tx.store.byID[u.ID] = u
	if u.ID >= tx.store.nextID {
		tx.store.nextID = u.ID + 1
	}
	return u
}

// Get returns the record for id under the held lock.
func (tx *Tx) Get(id int64) (User, bool) {
	u, ok := tx.store.byID[id]
	return u, ok
}

// Replace overwrites the stored record with matching id, refreshing
// UpdatedAt and preserving CreatedAt. It reports whether the id existed.
func (tx *Tx) Replace(u User) bool {
	current, ok := tx.store.byID[u.ID]
	if !ok {
		return false
	}
	u.CreatedAt = current.CreatedAt
	u.UpdatedAt = tx.store.now()
	tx.store.byID[u.ID] = u
	return true
}

// Remove deletes the record for id and reports whether it existed.
func (tx *Tx) Remove(id int64) bool {
	_, ok := tx.store.byID[id]
	delete(tx.store.byID, id)
	return ok
}

// FindByEmail returns the record whose email matches case-insensitively.
func (tx *Tx) FindByEmail(email string) (User, bool) {
	needle := strings.ToLower(email)
	for _, u := range tx.store.byID {
		if strings.ToLower(u.Email) == needle {
			return u, true
		}
	}
	return User{}, false
}
