package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// SpeciesCount is the number of records holding one species tag.
type SpeciesCount struct {
	Species Species
	Count   int
}

// SpeciesCounts lists per-species totals in order of first occurrence.
// Tags without records are never present.
type SpeciesCounts []SpeciesCount

// Get returns the count for s, or 0 when s is absent.
func (sc SpeciesCounts) Get(s Species) int {
	for _, c := range sc {
		if c.Species == s {
			return c.Count
		}
	}
	return 0
}

// MarshalJSON encodes the counts as a JSON object keyed by tag, keeping
// first-occurrence order.
func (sc SpeciesCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range sc {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(c.Species))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(c.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Statistics summarizes a collection of pets. For an empty collection only
// Total is set; AverageAge and BySpecies stay nil so callers can tell
// "no data" apart from zero values.
type Statistics struct {
	Total      int           `json:"total"`
	AverageAge *float64      `json:"average_age,omitempty"`
	BySpecies  SpeciesCounts `json:"by_species,omitempty"`
}

// HasData reports whether the optional fields are populated.
func (s Statistics) HasData() bool { return s.AverageAge != nil }

// ComputeStatistics summarizes pets in their given order.
func ComputeStatistics(pets []Pet) Statistics {
	if len(pets) == 0 {
		return Statistics{Total: 0}
	}
	var sum int
	counts := make(SpeciesCounts, 0, len(allSpecies))
	index := make(map[Species]int, len(allSpecies))
	for _, p := range pets {
		sum += p.age
		if i, ok := index[p.species]; ok {
			counts[i].Count++
			continue
		}
		index[p.species] = len(counts)
		counts = append(counts, SpeciesCount{Species: p.species, Count: 1})
	}
	avg := float64(sum) / float64(len(pets))
	return Statistics{
		Total:      len(pets),
		AverageAge: &avg,
		BySpecies:  counts,
	}
}
