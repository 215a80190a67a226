package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/sss654654/rentdeck/internal/gateway"
)

// Observer is a zero-argument callback invoked after every store mutation.
type Observer func()

type entry struct {
	id int
	fn Observer
}

// Store holds the current rental collection and an ordered observer
// registry. Mutations replace or patch the collection, bump LastUpdate and
// then notify every observer synchronously on the calling goroutine.
//
// The store is safe for concurrent use, but it is not reentrant: an
// observer must not mutate the store from inside its callback. The observer
// list is snapshotted before iteration, so subscribing or unsubscribing
// from inside a callback takes effect on the next notification.
type Store struct {
	mu         sync.Mutex
	rentals    []gateway.Rental
	lastUpdate time.Time
	observers  []entry
	nextID     int
}

// New returns an empty store. The zero value is also ready to use.
func New() *Store {
	return &Store{}
}

// SetAll replaces the entire tracked collection. It always notifies, even
// when the new collection is identical to the old one; there is no diffing.
func (s *Store) SetAll(rentals []gateway.Rental) {
	s.mu.Lock()
	s.rentals = cloneRentals(rentals)
	s.lastUpdate = time.Now()
	obs := s.snapshotObservers()
	s.mu.Unlock()

	notifyAll(obs)
}

// Add appends one rental to the collection and notifies.
func (s *Store) Add(rental gateway.Rental) {
	s.mu.Lock()
	s.rentals = append(s.rentals, rental)
	s.lastUpdate = time.Now()
	obs := s.snapshotObservers()
	s.mu.Unlock()

	notifyAll(obs)
}

// Update replaces the rental with the matching id. An unknown id leaves the
// collection untouched but still notifies; observers re-derive from the
// collection, so a spurious wakeup is harmless while a missed one is not.
func (s *Store) Update(id int, rental gateway.Rental) {
	s.mu.Lock()
	for i := range s.rentals {
		if s.rentals[i].ID == id {
			s.rentals[i] = rental
			break
		}
	}
	s.lastUpdate = time.Now()
	obs := s.snapshotObservers()
	s.mu.Unlock()

	notifyAll(obs)
}

// Remove drops the rental with the matching id. Like Update, an unknown id
// still notifies.
func (s *Store) Remove(id int) {
	s.mu.Lock()
	kept := s.rentals[:0]
	for _, r := range s.rentals {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.rentals = kept
	s.lastUpdate = time.Now()
	obs := s.snapshotObservers()
	s.mu.Unlock()

	notifyAll(obs)
}

// Rentals returns a copy of the current collection.
func (s *Store) Rentals() []gateway.Rental {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRentals(s.rentals)
}

// LastUpdate reports when the collection last changed.
func (s *Store) LastUpdate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdate
}

// Subscribe appends an observer to the registry and returns a function that
// removes exactly that registration. Subscribing the same callback twice
// creates two independent registrations; each needs its own unsubscribe.
// The returned function is idempotent.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, entry{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, e := range s.observers {
			if e.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// Notify invokes every currently-registered observer in registration order
// without mutating the collection.
func (s *Store) Notify() {
	s.mu.Lock()
	obs := s.snapshotObservers()
	s.mu.Unlock()

	notifyAll(obs)
}

func (s *Store) snapshotObservers() []Observer {
	if len(s.observers) == 0 {
		return nil
	}
	obs := make([]Observer, len(s.observers))
	for i, e := range s.observers {
		obs[i] = e.fn
	}
	return obs
}

// notifyAll runs observers in registration order. A panicking observer is
// contained and logged so the ones after it still run.
func notifyAll(obs []Observer) {
	for _, fn := range obs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("rental store observer panicked", "panic", r)
				}
			}()
			fn()
		}()
	}
}

func cloneRentals(rentals []gateway.Rental) []gateway.Rental {
	if len(rentals) == 0 {
		return nil
	}
	dup := make([]gateway.Rental, len(rentals))
	copy(dup, rentals)
	return dup
}
