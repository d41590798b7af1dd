// Package models defines the core data types for the pet ledger.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Age bounds, inclusive.
const (
	MinAge = 0
	MaxAge = 100
)

// ErrValidation is returned when a Pet cannot be constructed from its inputs.
var ErrValidation = errors.New("invalid pet")

// Pet is a validated pet record. Values are immutable and only produced by
// NewPet or NewPetOfKind; two Pets are equal when all fields are equal.
type Pet struct {
	name    string
	species Species
	age     int
}

// NewPet builds a Pet, resolving speciesRaw with ParseSpecies.
func NewPet(name, speciesRaw string, age int) (Pet, error) {
	return NewPetOfKind(name, ParseSpecies(speciesRaw), age)
}

// NewPetOfKind builds a Pet from an already resolved species.
// The name is stored exactly as given; only the blank check trims it.
func NewPetOfKind(name string, species Species, age int) (Pet, error) {
	if strings.TrimSpace(name) == "" {
		return Pet{}, fmt.Errorf("%w: name must not be blank", ErrValidation)
	}
	if age < MinAge {
		return Pet{}, fmt.Errorf("%w: age %d is negative", ErrValidation, age)
	}
	if age > MaxAge {
		return Pet{}, fmt.Errorf("%w: age %d exceeds %d", ErrValidation, age, MaxAge)
	}
	if !species.Valid() {
		species = SpeciesOther
	}
	return Pet{name: name, species: species, age: age}, nil
}

// Name returns the pet's name as it was supplied.
func (p Pet) Name() string { return p.name }

// Species returns the pet's species tag.
func (p Pet) Species() Species { return p.species }

// Age returns the pet's age in years.
func (p Pet) Age() int { return p.age }

func (p Pet) String() string {
	return fmt.Sprintf("%s (%s, %d лет)", p.name, p.species.Label(), p.age)
}
