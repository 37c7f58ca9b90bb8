package service

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/mohamadomran/Oul/internal/domain"
	"github.com/mohamadomran/Oul/internal/ports"
)

// favoritesKey is the persistence key for the favorites set.
const favoritesKey = "favorites"

// FavoritesService tracks which catalog phrases the user marked as favorite.
//
// The in-memory set is authoritative: every mutation applies immediately and
// is then written through to the store. A failed write is logged and does not
// roll the mutation back, so a storage hiccup never makes a visible favorite
// disappear mid-session. The set is re-read from storage on the next launch.
//
// Thread-safe.
type FavoritesService struct {
	logger *slog.Logger
	store  ports.KeyValueStore
	bus    ports.EventBus

	mu          sync.RWMutex
	refs        []domain.FavoriteRef
	index       map[domain.FavoriteRef]int
	initialized bool
}

// NewFavoritesService creates the favorites store. Call Initialize before use.
func NewFavoritesService(logger *slog.Logger, store ports.KeyValueStore, bus ports.EventBus) *FavoritesService {
	return &FavoritesService{
		logger: logger,
		store:  store,
		bus:    bus,
		index:  make(map[domain.FavoriteRef]int),
	}
}

// Initialize loads the persisted set. Idempotent: repeat calls are no-ops.
// A missing, unreadable or corrupt record yields an empty set, never an error.
func (s *FavoritesService) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return
	}
	s.initialized = true

	value, ok, err := s.store.GetItem(favoritesKey)
	if err != nil {
		s.logger.Warn("failed to load favorites, starting empty", slog.Any("error", err))
		return
	}
	if !ok {
		return
	}

	var refs []domain.FavoriteRef
	if err := json.Unmarshal([]byte(value), &refs); err != nil {
		s.logger.Warn("corrupt favorites record, starting empty", slog.Any("error", err))
		return
	}

	for _, ref := range refs {
		if _, dup := s.index[ref]; dup {
			continue
		}
		s.index[ref] = len(s.refs)
		s.refs = append(s.refs, ref)
	}

	s.logger.Debug("favorites loaded", slog.Int("count", len(s.refs)))
}

// IsFavorite reports whether the phrase is in the set.
func (s *FavoritesService) IsFavorite(category domain.Category, phraseID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.index[domain.FavoriteRef{Category: category, PhraseID: phraseID}]
	return ok
}

// ToggleFavorite flips the phrase's membership and returns the new state:
// true when the phrase is now a favorite. The change is persisted best-effort;
// a write failure is logged, not surfaced.
func (s *FavoritesService) ToggleFavorite(category domain.Category, phraseID string) bool {
	s.mu.Lock()

	ref := domain.FavoriteRef{Category: category, PhraseID: phraseID}
	_, exists := s.index[ref]
	if exists {
		s.removeLocked(ref)
	} else {
		s.index[ref] = len(s.refs)
		s.refs = append(s.refs, ref)
	}
	nowFavorite := !exists
	count := len(s.refs)

	s.persistLocked()
	s.mu.Unlock()

	s.bus.Publish(domain.NewFavoritesChangedEvent(count))
	return nowFavorite
}

// removeLocked drops ref, preserving the order of the remaining entries.
func (s *FavoritesService) removeLocked(ref domain.FavoriteRef) {
	pos := s.index[ref]
	s.refs = append(s.refs[:pos], s.refs[pos+1:]...)
	delete(s.index, ref)
	for i := pos; i < len(s.refs); i++ {
		s.index[s.refs[i]] = i
	}
}

// Refs returns the favorites in the order they were added.
func (s *FavoritesService) Refs() []domain.FavoriteRef {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.FavoriteRef, len(s.refs))
	copy(out, s.refs)
	return out
}

// Count returns the number of favorites.
func (s *FavoritesService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.refs)
}

// ClearAll empties the set. No-op when already empty.
func (s *FavoritesService) ClearAll() {
	s.mu.Lock()

	if len(s.refs) == 0 {
		s.mu.Unlock()
		return
	}

	s.refs = nil
	s.index = make(map[domain.FavoriteRef]int)
	s.persistLocked()
	s.mu.Unlock()

	s.bus.Publish(domain.NewFavoritesChangedEvent(0))
}

// persistLocked writes the current set through to storage. Caller holds s.mu.
func (s *FavoritesService) persistLocked() {
	data, err := json.Marshal(s.refs)
	if err != nil {
		s.logger.Error("failed to encode favorites", slog.Any("error", err))
		return
	}
	if err := s.store.SetItem(favoritesKey, string(data)); err != nil {
		s.logger.Warn("failed to persist favorites", slog.Any("error", err))
	}
}

// OnChange registers a listener invoked with the new favorite count after
// every mutation. Returns the unsubscribe function.
func (s *FavoritesService) OnChange(listener func(count int)) (unsubscribe func()) {
	id := s.bus.Subscribe(domain.EventFavoritesChanged, func(event domain.Event) {
		listener(event.(domain.FavoritesChangedEvent).Count)
	})
	return func() { s.bus.Unsubscribe(id) }
}
