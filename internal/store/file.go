package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-ports/pets/internal/models"
)

var (
	// ErrNotFound is returned by LoadFromFile when the file does not exist.
	ErrNotFound = errors.New("pets: file not found")

	// ErrParse is returned by LoadFromFile when the content is not a valid
	// array of pet records.
	ErrParse = errors.New("pets: malformed pet file")

	// ErrIO is returned when the filesystem rejects a read or write.
	ErrIO = errors.New("pets: i/o failure")
)

// fileRecord is the on-disk shape of one pet. Field order is the key order
// written to the file.
type fileRecord struct {
	Name    string `json:"name"`
	Species string `json:"species"`
	Age     int    `json:"age"`
}

// Encode renders pets in the persisted JSON format.
func Encode(pets []models.Pet) ([]byte, error) {
	records := make([]fileRecord, 0, len(pets))
	for _, p := range pets {
		records = append(records, fileRecord{
			Name:    p.Name(),
			Species: p.Species().String(),
			Age:     p.Age(),
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses the persisted JSON format. Record keys must be spelled
// exactly name, species and age. A species that is missing, not a string or
// not a recognized tag resolves to models.SpeciesOther.
func Decode(data []byte) ([]models.Pet, error) {
	var records []map[string]json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if records == nil {
		// A JSON null is not an array of records.
		return nil, fmt.Errorf("%w: expected an array of records", ErrParse)
	}

	pets := make([]models.Pet, 0, len(records))
	for i, r := range records {
		var (
			name string
			age  int
		)
		if err := field(r, "name", &name); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrParse, i, err)
		}
		if err := field(r, "age", &age); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrParse, i, err)
		}
		p, err := models.NewPetOfKind(name, speciesOf(r["species"]), age)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrParse, i, err)
		}
		pets = append(pets, p)
	}
	return pets, nil
}

// field decodes the required key of a record into dst. A null value counts
// as missing.
func field(record map[string]json.RawMessage, key string, dst any) error {
	raw, ok := record[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fmt.Errorf("missing %s", key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

func speciesOf(raw json.RawMessage) models.Species {
	var tag string
	if raw == nil || json.Unmarshal(raw, &tag) != nil {
		return models.SpeciesOther
	}
	return models.SpeciesFromTag(tag)
}

// SaveToFile writes every record to path, replacing any existing file.
// The write goes to a temporary file in the same directory which is then
// renamed over path, so readers never observe a partial file.
func (s *Store) SaveToFile(path string) error {
	data, err := Encode(s.pets)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrIO, err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// LoadFromFile replaces the records with the contents of path. On any error
// the current records are kept.
func (s *Store) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	pets, err := Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	s.pets = pets
	return nil
}

// writeFileAtomic writes data using the temp-file, fsync, rename pattern.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pets-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil { // #nosec G302 -- pet records are not secret
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
