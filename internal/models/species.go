package models

import "strings"

// Species is a tag from the closed set of recognized animal kinds.
// The string value is the tag name used in persisted files.
type Species string

// Recognized species tags. SpeciesOther is the fallback for anything else.
const (
	SpeciesCat    Species = "CAT"
	SpeciesDog    Species = "DOG"
	SpeciesBird   Species = "BIRD"
	SpeciesFish   Species = "FISH"
	SpeciesRodent Species = "RODENT"
	SpeciesOther  Species = "OTHER"
)

// allSpecies lists the tags in declaration order.
var allSpecies = []Species{
	SpeciesCat,
	SpeciesDog,
	SpeciesBird,
	SpeciesFish,
	SpeciesRodent,
	SpeciesOther,
}

// SpeciesLabels maps each tag to its display label.
var SpeciesLabels = map[Species]string{
	SpeciesCat:    "кот",
	SpeciesDog:    "собака",
	SpeciesBird:   "птица",
	SpeciesFish:   "рыба",
	SpeciesRodent: "грызун",
	SpeciesOther:  "другое",
}

// AllSpecies returns every recognized tag in declaration order.
func AllSpecies() []Species {
	out := make([]Species, len(allSpecies))
	copy(out, allSpecies)
	return out
}

// ParseSpecies resolves free-form input to a tag. Matching is
// case-insensitive, surrounding whitespace is ignored and inner spaces
// become underscores. Unrecognized input yields SpeciesOther.
func ParseSpecies(raw string) Species {
	if s, ok := LookupSpecies(raw); ok {
		return s
	}
	return SpeciesOther
}

// LookupSpecies normalizes raw like ParseSpecies and reports whether it
// named a recognized tag.
func LookupSpecies(raw string) (Species, bool) {
	key := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(raw)), " ", "_")
	s := Species(key)
	if _, ok := SpeciesLabels[s]; !ok {
		return SpeciesOther, false
	}
	return s, true
}

// SpeciesFromTag maps an exact tag name, as written by SaveToFile, back to
// its Species. Unknown tags resolve to SpeciesOther.
func SpeciesFromTag(tag string) Species {
	s := Species(tag)
	if _, ok := SpeciesLabels[s]; !ok {
		return SpeciesOther
	}
	return s
}

// Valid reports whether s is one of the recognized tags.
func (s Species) Valid() bool {
	_, ok := SpeciesLabels[s]
	return ok
}

// Label returns the display label for s.
func (s Species) Label() string {
	if l, ok := SpeciesLabels[s]; ok {
		return l
	}
	return SpeciesLabels[SpeciesOther]
}

func (s Species) String() string { return string(s) }
