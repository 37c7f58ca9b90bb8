package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveAudioPath(t *testing.T) {
	tests := []struct {
		name     string
		audio    string
		expected string
	}{
		{"basic needs prefix", "basic_needs_water", "basic_needs/water.mp3"},
		{"basic needs with extension", "basic_needs_water.mp3", "basic_needs/water.mp3"},
		{"emotions prefix", "emotions_happy", "emotions/happy.mp3"},
		{"emotions with extension", "emotions_sad.mp3", "emotions/sad.mp3"},
		{"conversation prefix", "conversation_hello", "conversation/hello.mp3"},
		{"conversation with extension", "conversation_goodbye.mp3", "conversation/goodbye.mp3"},
		{"pain prefix", "pain_head", "pain/head.mp3"},
		{"pain with extension", "pain_stomach.mp3", "pain/stomach.mp3"},
		{"family prefix", "family_son", "family/son.mp3"},
		{"family with extension", "family_daughter.mp3", "family/daughter.mp3"},
		{"no known prefix", "unknown_ref", "unknown_ref.mp3"},
		{"no known prefix with extension", "unknown_ref.mp3", "unknown_ref.mp3"},
		{"multi-part basename", "basic_needs_hot_tea", "basic_needs/hot_tea.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveAudioPath(tt.audio))
		})
	}
}

func TestResolveAudioPath_NeverDoublesExtension(t *testing.T) {
	// Re-applying the suffix rule to an already-resolved basename must not
	// stack ".mp3".
	assert.Equal(t, "pain/head.mp3", ResolveAudioPath("pain_head.mp3"))
	assert.Equal(t, "already.mp3", ResolveAudioPath("already.mp3"))
}
