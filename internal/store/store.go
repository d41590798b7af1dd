// Package store implements the ordered, in-memory collection of pet records
// together with its query, sort, statistics and JSON file persistence.
package store

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/go-ports/pets/internal/models"
)

const (
	emptyListText = "Список питомцев пуст."
	listHeader    = "Список всех питомцев:"
)

var rule = strings.Repeat("-", 40)

// Store is an ordered sequence of pet records. Insertion order is kept
// until one of the sort operations reorders it.
//
// A Store is not safe for concurrent use; callers sharing one must provide
// their own synchronization.
type Store struct {
	pets []models.Pet
}

// New returns a store holding pets in the given order.
func New(pets ...models.Pet) *Store {
	return &Store{pets: slices.Clone(pets)}
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.pets) }

// Pets returns a copy of the records in their current order.
func (s *Store) Pets() []models.Pet {
	out := make([]models.Pet, len(s.pets))
	copy(out, s.pets)
	return out
}

// Replace swaps the whole sequence for pets.
func (s *Store) Replace(pets []models.Pet) {
	s.pets = slices.Clone(pets)
}

// Add validates a new record, appends it and returns it. On error the
// sequence is left untouched.
func (s *Store) Add(name, speciesRaw string, age int) (models.Pet, error) {
	p, err := models.NewPet(name, speciesRaw, age)
	if err != nil {
		return models.Pet{}, err
	}
	s.pets = append(s.pets, p)
	return p, nil
}

// ListAll renders the records as numbered lines followed by a total.
func (s *Store) ListAll() string {
	if len(s.pets) == 0 {
		return emptyListText
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(listHeader)
	sb.WriteString("\n")
	sb.WriteString(rule)
	sb.WriteString("\n")
	for i, p := range s.pets {
		fmt.Fprintf(&sb, "%d. %s - %s, %d лет\n", i+1, p.Name(), p.Species().Label(), p.Age())
	}
	sb.WriteString(rule)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Всего: %d питомцев", len(s.pets))
	return sb.String()
}

// FindBySpecies returns the records whose species matches the query, in
// their current order. A query that does not name a recognized tag matches
// nothing.
func (s *Store) FindBySpecies(speciesRaw string) []models.Pet {
	out := make([]models.Pet, 0)
	want, ok := models.LookupSpecies(speciesRaw)
	if !ok {
		return out
	}
	for _, p := range s.pets {
		if p.Species() == want {
			out = append(out, p)
		}
	}
	return out
}

// SortByName orders records by name using byte-wise comparison. Equal names
// keep their relative order.
func (s *Store) SortByName() {
	slices.SortStableFunc(s.pets, func(a, b models.Pet) int {
		return strings.Compare(a.Name(), b.Name())
	})
}

// SortByAge orders records by age, youngest first unless descending is set.
// Equal ages keep their relative order in both directions.
func (s *Store) SortByAge(descending bool) {
	slices.SortStableFunc(s.pets, func(a, b models.Pet) int {
		if descending {
			return cmp.Compare(b.Age(), a.Age())
		}
		return cmp.Compare(a.Age(), b.Age())
	})
}

// Statistics summarizes the current records.
func (s *Store) Statistics() models.Statistics {
	return models.ComputeStatistics(s.pets)
}
