// Package catalog provides the static phrase catalog bundled with the app.
// The catalog is read-only: it is parsed once from the embedded data file and
// never mutated afterwards, so lookups need no locking.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/mohamadomran/Oul/internal/domain"
)

//go:embed data/audioPhrases.json
var audioPhrasesData []byte

// Catalog maps categories to their ordered phrase lists.
type Catalog struct {
	phrases map[domain.Category][]domain.Phrase

	// byID indexes phrases for O(1) lookups
	byID map[domain.Category]map[string]domain.Phrase
}

type catalogFile struct {
	AudioPhrases map[domain.Category][]domain.Phrase `json:"audioPhrases"`
}

// New parses the embedded catalog data.
// An error here means the bundled data file is malformed, which is a build
// defect rather than a runtime condition.
func New() (*Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(audioPhrasesData, &file); err != nil {
		return nil, fmt.Errorf("failed to parse embedded phrase catalog: %w", err)
	}

	c := &Catalog{
		phrases: file.AudioPhrases,
		byID:    make(map[domain.Category]map[string]domain.Phrase, len(file.AudioPhrases)),
	}

	for category, list := range file.AudioPhrases {
		if !category.Valid() {
			return nil, fmt.Errorf("phrase catalog contains unknown category %q", category)
		}
		index := make(map[string]domain.Phrase, len(list))
		for _, phrase := range list {
			if _, dup := index[phrase.ID]; dup {
				return nil, fmt.Errorf("duplicate phrase id %q in category %q", phrase.ID, category)
			}
			index[phrase.ID] = phrase
		}
		c.byID[category] = index
	}

	return c, nil
}

// PhrasesByCategory returns the ordered phrase list for a category.
// Unknown categories yield an empty slice, never an error.
func (c *Catalog) PhrasesByCategory(category domain.Category) []domain.Phrase {
	list := c.phrases[category]
	out := make([]domain.Phrase, len(list))
	copy(out, list)
	return out
}

// Phrase looks up a single phrase by category and id.
func (c *Catalog) Phrase(category domain.Category, id string) (domain.Phrase, bool) {
	phrase, ok := c.byID[category][id]
	return phrase, ok
}

// Count returns the total number of bundled phrases.
func (c *Catalog) Count() int {
	total := 0
	for _, list := range c.phrases {
		total += len(list)
	}
	return total
}
