// Package speech provides Speaker adapters.
package speech

import (
	"log/slog"

	"github.com/mohamadomran/Oul/internal/ports"
)

// NoopSpeaker is a Speaker that only logs. Used on platforms without a TTS
// engine and as the default wiring in tests.
type NoopSpeaker struct {
	logger *slog.Logger
}

// NewNoopSpeaker creates a speaker that discards utterances.
func NewNoopSpeaker(logger *slog.Logger) *NoopSpeaker {
	return &NoopSpeaker{logger: logger}
}

// Speak logs the utterance and returns nil.
func (s *NoopSpeaker) Speak(text, languageTag string) error {
	s.logger.Debug("noop speak",
		slog.String("language", languageTag),
		slog.Int("text_len", len(text)))
	return nil
}

// Stop is a no-op.
func (s *NoopSpeaker) Stop() error {
	return nil
}

var _ ports.Speaker = (*NoopSpeaker)(nil)
