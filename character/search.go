package character

import (
	"github.com/sahilm/fuzzy"
)

// Search fuzzy-filters characters by name and description for the picker.
// An empty query returns the input unchanged.
func Search(query string, characters []Character) []Character {
	if query == "" {
		return characters
	}

	targets := make([]string, len(characters))
	for i, c := range characters {
		targets[i] = c.Name + " " + c.Description
	}

	matches := fuzzy.Find(query, targets)
	filtered := make([]Character, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, characters[m.Index])
	}
	return filtered
}
