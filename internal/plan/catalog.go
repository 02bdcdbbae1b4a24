package plan

import (
	"context"
	"strings"
)

// CatalogEntry is a canonical exercise record from the exercise catalog.
type CatalogEntry struct {
	Name         string   `json:"name"`
	MuscleGroups []string `json:"muscle_groups"`
	Description  string   `json:"description"`
	FormTips     []string `json:"form_tips"`
	Equipment    []string `json:"equipment"`
	ImageURL     string   `json:"image_url,omitempty"`
}

// CatalogSource returns the catalog exercises available in an environment.
type CatalogSource interface {
	Exercises(ctx context.Context, env Environment) ([]CatalogEntry, error)
}

// CatalogSourceFunc adapts a function to CatalogSource.
type CatalogSourceFunc func(ctx context.Context, env Environment) ([]CatalogEntry, error)

// Exercises implements CatalogSource.
func (f CatalogSourceFunc) Exercises(ctx context.Context, env Environment) ([]CatalogEntry, error) {
	return f(ctx, env)
}

// Index looks catalog entries up by lowercase name and lowercase muscle group.
type Index struct {
	byName   map[string]CatalogEntry
	byMuscle map[string][]CatalogEntry
	size     int
}

// NewIndex builds an Index. A later entry with the same lowercase name
// replaces an earlier one; muscle lists keep catalog order.
func NewIndex(entries []CatalogEntry) *Index {
	idx := &Index{
		byName:   make(map[string]CatalogEntry, len(entries)),
		byMuscle: make(map[string][]CatalogEntry),
		size:     len(entries),
	}
	for _, e := range entries {
		idx.byName[strings.ToLower(e.Name)] = e
		for _, m := range e.MuscleGroups {
			key := strings.ToLower(m)
			idx.byMuscle[key] = append(idx.byMuscle[key], e)
		}
	}
	return idx
}

// Len returns the number of entries the index was built from.
func (idx *Index) Len() int { return idx.size }

// ByName returns the entry whose name matches case-insensitively.
func (idx *Index) ByName(name string) (CatalogEntry, bool) {
	e, ok := idx.byName[strings.ToLower(name)]
	return e, ok
}

// ByMuscle returns the entries tagged with a muscle group (case-insensitive).
func (idx *Index) ByMuscle(muscle string) []CatalogEntry {
	return idx.byMuscle[strings.ToLower(muscle)]
}
