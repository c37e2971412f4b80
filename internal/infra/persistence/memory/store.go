// Package memory is an in-process implementation of the persistence layer.
// It enforces the same uniqueness and referential rules as the PostgreSQL schema and
// backs local development (storage.driver: memory) and the usecase tests.
package memory

import (
	"maps"
	"sync"
	"time"

	"phresh/internal/domain/entity"
)

type offerKey struct {
	cleaningID int64
	userID     int64
}

// state is the full content of the store. It is copied wholesale to roll back a transaction.
type state struct {
	nextUserID     int64
	nextProfileID  int64
	nextCleaningID int64

	users     map[int64]entity.User
	profiles  map[int64]entity.Profile // keyed by user ID
	cleanings map[int64]entity.Cleaning
	offers    map[offerKey]entity.Offer
}

func newState() *state {
	return &state{
		users:     make(map[int64]entity.User),
		profiles:  make(map[int64]entity.Profile),
		cleanings: make(map[int64]entity.Cleaning),
		offers:    make(map[offerKey]entity.Offer),
	}
}

func (s *state) clone() *state {
	return &state{
		nextUserID:     s.nextUserID,
		nextProfileID:  s.nextProfileID,
		nextCleaningID: s.nextCleaningID,
		users:          maps.Clone(s.users),
		profiles:       maps.Clone(s.profiles),
		cleanings:      maps.Clone(s.cleanings),
		offers:         maps.Clone(s.offers),
	}
}

// executor is the access path a repository uses. The Store itself waits for any open
// transaction before writing; txView is the path handed to a transaction's repositories.
type executor interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
	now() time.Time
}

// Store holds all tables behind a single lock. Transactions are serialized, and writes made
// outside a transaction wait until the open one commits or rolls back.
type Store struct {
	mu    sync.RWMutex
	txMu  sync.Mutex
	clock func() time.Time
	state *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

// NewStoreWithClock creates an empty store that stamps rows with the given clock.
func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{clock: now, state: newState()}
}

func (s *Store) read(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(s.state)
}

func (s *Store) write(fn func(st *state) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	return s.writeLocked(fn)
}

func (s *Store) writeLocked(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.state)
}

func (s *Store) now() time.Time {
	return s.clock()
}

// txView is the store as seen from inside Execute, which already holds txMu.
type txView struct {
	store *Store
}

func (v txView) read(fn func(st *state) error) error {
	return v.store.read(fn)
}

func (v txView) write(fn func(st *state) error) error {
	return v.store.writeLocked(fn)
}

func (v txView) now() time.Time {
	return v.store.now()
}

func (st *state) userByUsername(username string) (entity.User, bool) {
	for _, user := range st.users {
		if user.Username == username {
			return user, true
		}
	}

	return entity.User{}, false
}
