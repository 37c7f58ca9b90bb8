// Package domain contains core business models and logic with no external dependencies.
// This package defines the fundamental entities of the Oul AAC application.
package domain

import (
	"encoding/json"
)

// Category identifies one of the fixed phrase categories shipped with the app.
type Category string

// The closed set of bundled categories. Custom phrases are user-authored and
// live outside the catalog (see CustomPhrase).
const (
	CategoryBasicNeeds   Category = "basic_needs"
	CategoryPain         Category = "pain"
	CategoryEmotions     Category = "emotions"
	CategoryConversation Category = "conversation"
	CategoryFamily       Category = "family"
)

// Categories returns all bundled categories in display order.
func Categories() []Category {
	return []Category{
		CategoryBasicNeeds,
		CategoryPain,
		CategoryEmotions,
		CategoryConversation,
		CategoryFamily,
	}
}

// Valid reports whether c is one of the bundled categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryBasicNeeds, CategoryPain, CategoryEmotions, CategoryConversation, CategoryFamily:
		return true
	}
	return false
}

// Icon describes how a phrase button is drawn. Newer catalog entries carry a
// (library, name, fallback) triple; older entries are a bare emoji glyph.
// The core never interprets any of these fields.
type Icon struct {
	// Library is the icon library name (e.g. "material")
	Library string `json:"library,omitempty"`

	// Name is the icon name within the library
	Name string `json:"name,omitempty"`

	// Fallback is the glyph shown when the library icon is unavailable
	Fallback string `json:"fallback,omitempty"`

	// Glyph is the legacy single-emoji form
	Glyph string `json:"-"`
}

// UnmarshalJSON accepts both the legacy string form and the object form.
func (i *Icon) UnmarshalJSON(data []byte) error {
	var glyph string
	if err := json.Unmarshal(data, &glyph); err == nil {
		*i = Icon{Glyph: glyph}
		return nil
	}

	type iconAlias Icon
	var alias iconAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*i = Icon(alias)
	return nil
}

// MarshalJSON writes the legacy string form when only a glyph is set.
func (i Icon) MarshalJSON() ([]byte, error) {
	if i.Glyph != "" && i.Library == "" && i.Name == "" && i.Fallback == "" {
		return json.Marshal(i.Glyph)
	}
	type iconAlias Icon
	return json.Marshal(iconAlias(i))
}

// Phrase is a single pre-recorded phrase from the bundled catalog.
// Phrases are authored at build time and immutable at runtime.
type Phrase struct {
	// ID is unique within the phrase's category (e.g. "pain_head")
	ID string `json:"id"`

	// ArabicText is the primary display text
	ArabicText string `json:"arabicText"`

	// EnglishText is the optional secondary display text
	EnglishText string `json:"englishText,omitempty"`

	// Icon is presentational only
	Icon Icon `json:"icon"`

	// Color is a presentational hex string
	Color string `json:"color"`

	// AudioFile is the raw audio reference, resolved to a playable path by
	// catalog.ResolveAudioPath
	AudioFile string `json:"audioFile"`

	// Category the phrase belongs to
	Category Category `json:"category"`
}

// FavoriteRef identifies a catalog phrase the user marked as favorite.
// The (Category, PhraseID) pair is the composite set key.
type FavoriteRef struct {
	Category Category `json:"category"`
	PhraseID string   `json:"phraseId"`
}

// CustomPhrase is a user-authored phrase spoken via TTS rather than a
// pre-recorded file.
type CustomPhrase struct {
	// ID is a UUID assigned at creation
	ID string `json:"id"`

	ArabicText  string `json:"arabicText"`
	EnglishText string `json:"englishText,omitempty"`

	// Icon is a user-selected emoji
	Icon string `json:"icon"`

	// Color is a user-selected hex color
	Color string `json:"color"`

	// Language is the BCP-47 tag handed to the TTS collaborator
	Language string `json:"language"`

	// CreatedAt is a unix-millisecond timestamp
	CreatedAt int64 `json:"createdAt"`

	// LastUsed is a unix-millisecond timestamp, zero if never used
	LastUsed int64 `json:"lastUsed,omitempty"`

	// UsageCount counts how often the phrase was spoken
	UsageCount int `json:"usageCount"`
}

// Settings is the persisted app configuration. A stored partial record is
// always merged on top of DefaultSettings so releases can add fields without
// corrupting previously saved state.
type Settings struct {
	// HapticFeedback enables vibration on button press
	HapticFeedback bool `json:"hapticFeedback"`

	// HighContrast enables the high-contrast color scheme
	HighContrast bool `json:"highContrast"`

	// ButtonSize is "normal", "large" or "xlarge"
	ButtonSize string `json:"buttonSize"`

	// FontSize is "normal" or "large"
	FontSize string `json:"fontSize"`

	// Volume is the playback volume (0.0 to 1.0)
	Volume float64 `json:"volume"`

	// ShareMethod selects the external share target
	ShareMethod string `json:"shareMethod"`
}

// DefaultSettings returns the compiled-in defaults.
func DefaultSettings() Settings {
	return Settings{
		HapticFeedback: true,
		HighContrast:   false,
		ButtonSize:     "normal",
		FontSize:       "normal",
		Volume:         1.0,
		ShareMethod:    "whatsapp",
	}
}

// SoundHandle is an opaque identifier for a sound loaded into the platform
// audio player.
type SoundHandle int64

// InvalidSoundHandle represents an unset or released handle.
const InvalidSoundHandle SoundHandle = 0

// PainIntensity grades a reported pain level.
type PainIntensity string

const (
	PainLight    PainIntensity = "light"
	PainModerate PainIntensity = "moderate"
	PainSevere   PainIntensity = "severe"
)
