package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mohamadomran/Oul/internal/domain"
	"github.com/mohamadomran/Oul/internal/ports"
)

// customPhrasesKey is the persistence key for the custom phrase list.
const customPhrasesKey = "custom_phrases"

// CustomPhraseService manages user-authored phrases. Unlike catalog phrases,
// custom phrases have no recorded audio; Speak hands their text to the TTS
// collaborator.
//
// Mutations are persisted write-through and return a StorageError on failure,
// with the in-memory list keeping the new state either way.
//
// Thread-safe.
type CustomPhraseService struct {
	logger  *slog.Logger
	store   ports.KeyValueStore
	bus     ports.EventBus
	speaker ports.Speaker

	mu          sync.RWMutex
	phrases     []domain.CustomPhrase
	initialized bool
}

// NewCustomPhraseService creates the custom phrase store. Call Initialize
// before use.
func NewCustomPhraseService(
	logger *slog.Logger,
	store ports.KeyValueStore,
	bus ports.EventBus,
	speaker ports.Speaker,
) *CustomPhraseService {
	return &CustomPhraseService{
		logger:  logger,
		store:   store,
		bus:     bus,
		speaker: speaker,
	}
}

// Initialize loads the persisted list. Idempotent; a missing or corrupt
// record yields an empty list.
func (s *CustomPhraseService) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return
	}
	s.initialized = true

	value, ok, err := s.store.GetItem(customPhrasesKey)
	if err != nil {
		s.logger.Warn("failed to load custom phrases, starting empty", slog.Any("error", err))
		return
	}
	if !ok {
		return
	}

	var phrases []domain.CustomPhrase
	if err := json.Unmarshal([]byte(value), &phrases); err != nil {
		s.logger.Warn("corrupt custom phrase record, starting empty", slog.Any("error", err))
		return
	}

	s.phrases = phrases
	s.logger.Debug("custom phrases loaded", slog.Int("count", len(phrases)))
}

// List returns the phrases in creation order.
func (s *CustomPhraseService) List() []domain.CustomPhrase {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CustomPhrase, len(s.phrases))
	copy(out, s.phrases)
	return out
}

// Add creates a phrase with a fresh id and persists the list.
// The Arabic text is required; everything else is optional.
func (s *CustomPhraseService) Add(phrase domain.CustomPhrase) (domain.CustomPhrase, error) {
	if strings.TrimSpace(phrase.ArabicText) == "" {
		return domain.CustomPhrase{}, fmt.Errorf("custom phrase needs arabic text")
	}

	phrase.ID = uuid.NewString()
	phrase.CreatedAt = time.Now().UnixMilli()
	phrase.LastUsed = 0
	phrase.UsageCount = 0
	if phrase.Language == "" {
		phrase.Language = "ar-SA"
	}

	s.mu.Lock()
	s.phrases = append(s.phrases, phrase)
	count := len(s.phrases)
	err := s.persistLocked()
	s.mu.Unlock()

	s.bus.Publish(domain.NewCustomPhrasesChangedEvent(count))
	return phrase, err
}

// Update applies a mutation to the phrase with the given id. The id and
// creation timestamp cannot be changed.
func (s *CustomPhraseService) Update(id string, apply func(phrase *domain.CustomPhrase)) error {
	s.mu.Lock()

	pos := s.findLocked(id)
	if pos < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: custom phrase %s", domain.ErrPhraseNotFound, id)
	}

	updated := s.phrases[pos]
	apply(&updated)
	updated.ID = s.phrases[pos].ID
	updated.CreatedAt = s.phrases[pos].CreatedAt
	s.phrases[pos] = updated

	count := len(s.phrases)
	err := s.persistLocked()
	s.mu.Unlock()

	s.bus.Publish(domain.NewCustomPhrasesChangedEvent(count))
	return err
}

// Delete removes the phrase with the given id.
func (s *CustomPhraseService) Delete(id string) error {
	s.mu.Lock()

	pos := s.findLocked(id)
	if pos < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: custom phrase %s", domain.ErrPhraseNotFound, id)
	}

	s.phrases = append(s.phrases[:pos], s.phrases[pos+1:]...)
	count := len(s.phrases)
	err := s.persistLocked()
	s.mu.Unlock()

	s.bus.Publish(domain.NewCustomPhrasesChangedEvent(count))
	return err
}

// RecordUsage bumps the usage counter and last-used timestamp.
// A persistence failure is logged, not surfaced: usage stats are best-effort.
func (s *CustomPhraseService) RecordUsage(id string) error {
	s.mu.Lock()

	pos := s.findLocked(id)
	if pos < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: custom phrase %s", domain.ErrPhraseNotFound, id)
	}

	s.phrases[pos].UsageCount++
	s.phrases[pos].LastUsed = time.Now().UnixMilli()
	if err := s.persistLocked(); err != nil {
		s.logger.Warn("failed to persist usage stats", slog.Any("error", err))
	}
	s.mu.Unlock()
	return nil
}

// Speak reads the phrase aloud via the TTS collaborator and records the usage.
func (s *CustomPhraseService) Speak(id string) error {
	s.mu.RLock()
	pos := s.findLocked(id)
	if pos < 0 {
		s.mu.RUnlock()
		return fmt.Errorf("%w: custom phrase %s", domain.ErrPhraseNotFound, id)
	}
	text := s.phrases[pos].ArabicText
	language := s.phrases[pos].Language
	s.mu.RUnlock()

	if err := s.speaker.Speak(text, language); err != nil {
		return fmt.Errorf("speak custom phrase: %w", err)
	}
	return s.RecordUsage(id)
}

// Count returns the number of custom phrases.
func (s *CustomPhraseService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.phrases)
}

// findLocked returns the index of the phrase with the given id, or -1.
// Caller holds s.mu.
func (s *CustomPhraseService) findLocked(id string) int {
	for i := range s.phrases {
		if s.phrases[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the list through to storage. Caller holds s.mu.
func (s *CustomPhraseService) persistLocked() error {
	data, err := json.Marshal(s.phrases)
	if err != nil {
		return domain.NewStorageError("write", customPhrasesKey, err)
	}
	if err := s.store.SetItem(customPhrasesKey, string(data)); err != nil {
		s.logger.Warn("failed to persist custom phrases", slog.Any("error", err))
		return domain.NewStorageError("write", customPhrasesKey, err)
	}
	return nil
}

// OnChange registers a listener invoked with the new phrase count after every
// mutation. Returns the unsubscribe function.
func (s *CustomPhraseService) OnChange(listener func(count int)) (unsubscribe func()) {
	id := s.bus.Subscribe(domain.EventCustomPhrasesChanged, func(event domain.Event) {
		listener(event.(domain.CustomPhrasesChangedEvent).Count)
	})
	return func() { s.bus.Unsubscribe(id) }
}
