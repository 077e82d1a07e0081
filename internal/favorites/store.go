// Package favorites owns the user's saved movies and TV shows.
//
// The whole collection is persisted as one JSON array under a single key in
// the settings store. Every write reads the collection, mutates it in memory,
// and writes it back whole; a store-level mutex serializes writers. Favorites
// are best-effort data: a missing or corrupt blob reads as empty.
package favorites

import (
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/yuseong/whattowatch/internal/storage"
)

const storageKey = "favorites"

// Store is the single authoritative favorites collection. Construct one per
// process and pass it to whoever needs it.
type Store struct {
	kv  storage.KV
	log *slog.Logger
	now func() time.Time

	mu      sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store's logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithClock overrides the timestamp source. Tests use this to control the
// addedAt ordering.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a favorites store backed by kv.
func NewStore(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:   kv,
		log:  slog.Default(),
		now:  time.Now,
		subs: make(map[int]chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the collection sorted by addedAt descending, most recent
// first. It never fails: absent or corrupt storage reads as empty.
func (s *Store) List() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load reads and sorts the collection. Callers must hold s.mu.
func (s *Store) load() []Item {
	data, ok := s.kv.Get(storageKey)
	if !ok {
		return nil
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		// Favorites are not critical data; treat a bad blob as empty.
		s.log.Error("favorites blob is corrupt, treating as empty", "error", err)
		return nil
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].AddedAt.After(items[j].AddedAt)
	})
	return items
}

// persist writes the whole collection back and notifies subscribers.
// Callers must hold s.mu.
func (s *Store) persist(items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := s.kv.Set(storageKey, data); err != nil {
		return err
	}
	s.notifyLocked()
	return nil
}

// Add appends item to the collection, stamping addedAt. Adding an item whose
// (id, mediaType) is already saved is a no-op.
func (s *Store) Add(item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	for _, existing := range items {
		if existing.ID == item.ID && existing.MediaType == item.MediaType {
			s.log.Debug("already a favorite", "title", item.Title, "key", item.Key())
			return nil
		}
	}

	item.AddedAt = s.now()
	items = append(items, item)
	if err := s.persist(items); err != nil {
		return err
	}
	s.log.Info("favorite added", "title", item.Title, "key", item.Key())
	return nil
}

// Remove deletes every entry matching (id, mediaType) and persists. The
// change notification fires even when nothing matched.
func (s *Store) Remove(id int, mediaType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	kept := items[:0]
	for _, it := range items {
		if it.ID == id && it.MediaType == mediaType {
			continue
		}
		kept = append(kept, it)
	}
	if err := s.persist(kept); err != nil {
		return err
	}
	s.log.Info("favorite removed", "id", id, "media_type", mediaType)
	return nil
}

// IsFavorite reports whether (id, mediaType) is saved.
func (s *Store) IsFavorite(id int, mediaType string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.load() {
		if it.ID == id && it.MediaType == mediaType {
			return true
		}
	}
	return false
}

// Toggle removes item if it is saved and adds it otherwise. It returns the
// new state: true when the item is now a favorite.
func (s *Store) Toggle(item Item) (bool, error) {
	if s.IsFavorite(item.ID, item.MediaType) {
		return false, s.Remove(item.ID, item.MediaType)
	}
	return true, s.Add(item)
}

// ClearAll empties the collection.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(storageKey); err != nil {
		return err
	}
	s.notifyLocked()
	s.log.Info("favorites cleared")
	return nil
}

// Count returns the number of saved items.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.load())
}

// Subscribe registers a change listener. The returned channel receives a
// coalesced signal after every persisted write; the cancel function
// unregisters it. The channel is never closed while registered.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
	return ch, cancel
}

// notifyLocked signals every subscriber without blocking. A subscriber that
// has not drained its previous signal keeps the single pending one.
func (s *Store) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
