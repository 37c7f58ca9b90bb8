package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamadomran/Oul/internal/domain"
)

func TestNew_ParsesEmbeddedData(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	require.NotNil(t, c)

	// Every bundled category must be present and non-empty.
	for _, category := range domain.Categories() {
		phrases := c.PhrasesByCategory(category)
		assert.NotEmpty(t, phrases, "category %s has no phrases", category)
	}
}

func TestCatalog_PhrasesByCategory_PreservesOrder(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	phrases := c.PhrasesByCategory(domain.CategoryBasicNeeds)
	require.NotEmpty(t, phrases)
	assert.Equal(t, "bn_water", phrases[0].ID)

	for _, p := range phrases {
		assert.Equal(t, domain.CategoryBasicNeeds, p.Category)
		assert.NotEmpty(t, p.ArabicText)
		assert.NotEmpty(t, p.AudioFile)
	}
}

func TestCatalog_PhrasesByCategory_UnknownCategory(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	phrases := c.PhrasesByCategory(domain.Category("nonsense"))
	assert.Empty(t, phrases)
}

func TestCatalog_PhrasesByCategory_ReturnsCopy(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	first := c.PhrasesByCategory(domain.CategoryPain)
	require.NotEmpty(t, first)
	first[0].ID = "mutated"

	again := c.PhrasesByCategory(domain.CategoryPain)
	assert.NotEqual(t, "mutated", again[0].ID)
}

func TestCatalog_Phrase(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	phrase, ok := c.Phrase(domain.CategoryPain, "pain_head")
	require.True(t, ok)
	assert.Equal(t, "pain_head", phrase.ID)
	assert.Equal(t, "pain_head.mp3", phrase.AudioFile)

	_, ok = c.Phrase(domain.CategoryPain, "no_such_phrase")
	assert.False(t, ok)

	_, ok = c.Phrase(domain.Category("nonsense"), "pain_head")
	assert.False(t, ok)
}

func TestCatalog_IconForms(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	// Object form carries the triple.
	water, ok := c.Phrase(domain.CategoryBasicNeeds, "bn_water")
	require.True(t, ok)
	assert.Equal(t, "material", water.Icon.Library)
	assert.Equal(t, "water-drop", water.Icon.Name)
	assert.NotEmpty(t, water.Icon.Fallback)
	assert.Empty(t, water.Icon.Glyph)

	// Legacy string form carries only the glyph.
	bathroom, ok := c.Phrase(domain.CategoryBasicNeeds, "bn_bathroom")
	require.True(t, ok)
	assert.NotEmpty(t, bathroom.Icon.Glyph)
	assert.Empty(t, bathroom.Icon.Library)
}

func TestCatalog_Count(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	total := 0
	for _, category := range domain.Categories() {
		total += len(c.PhrasesByCategory(category))
	}
	assert.Equal(t, total, c.Count())
}
