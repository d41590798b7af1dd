// Package service implements the pets Service orchestrator that wires together
// configuration, the record store, its JSON file, the SQLite mirror, JSONPath
// queries and Markdown reports.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-ports/pets/internal/config"
	"github.com/go-ports/pets/internal/db"
	"github.com/go-ports/pets/internal/markdown"
	"github.com/go-ports/pets/internal/models"
	"github.com/go-ports/pets/internal/query"
	"github.com/go-ports/pets/internal/store"
)

// SortOrder selects how Sort reorders the records.
type SortOrder string

const (
	SortByName    SortOrder = "name"
	SortByAge     SortOrder = "age"
	SortByAgeDesc SortOrder = "age-desc"
)

// ErrUnknownSortOrder is returned by ParseSortOrder for unsupported names.
var ErrUnknownSortOrder = errors.New("unknown sort order")

// ParseSortOrder maps a user-supplied name to a SortOrder.
func ParseSortOrder(raw string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(raw))) {
	case SortByName:
		return SortByName, nil
	case SortByAge:
		return SortByAge, nil
	case SortByAgeDesc, "age_desc", "agedesc":
		return SortByAgeDesc, nil
	}
	return "", fmt.Errorf("%w %q (want name, age or age-desc)", ErrUnknownSortOrder, raw)
}

// demoPets is the sample ledger added by Demo.
var demoPets = []struct {
	name    string
	species models.Species
	age     int
}{
	{"Барсик", models.SpeciesCat, 3},
	{"Шарик", models.SpeciesDog, 5},
	{"Мурка", models.SpeciesCat, 2},
	{"Кеша", models.SpeciesBird, 1},
	{"Рекс", models.SpeciesDog, 4},
}

// Service orchestrates all pet ledger operations.
//
// Service methods are safe for concurrent use; access to the underlying
// store is serialized.
type Service struct {
	Home     string
	DataFile string
	Config   *config.PetsConfig
	Logger   *slog.Logger

	store    *store.Store
	autoSave bool
	mu       sync.Mutex
}

// New initialises a Service for the ledger chosen by config.ResolvePaths.
// home and dataFile are the --home and --file overrides; empty means unset.
// An existing data file is loaded; a missing one yields an empty ledger.
func New(home, dataFile string) (*Service, error) {
	return NewWithLogOutput(home, dataFile, os.Stderr)
}

// NewWithLogOutput is New with log records written to w.
func NewWithLogOutput(home, dataFile string, w io.Writer) (*Service, error) {
	paths, err := config.ResolvePaths(home, dataFile)
	if err != nil {
		return nil, fmt.Errorf("service.New: load config: %w", err)
	}

	if err := os.MkdirAll(paths.Home, 0o755); err != nil {
		return nil, fmt.Errorf("service.New: create home: %w", err)
	}

	s := &Service{
		Home:     paths.Home,
		DataFile: paths.DataFile,
		Config:   paths.Config,
		Logger:   newLogger(paths.Config.Log, w),
		store:    store.New(),
		autoSave: true,
	}
	s.Logger.Debug("resolved ledger",
		"home", paths.Home, "home_source", paths.HomeSource,
		"data_file", paths.DataFile, "data_file_source", paths.DataFileSource)

	if err := s.store.LoadFromFile(s.DataFile); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("service.New: %w", err)
		}
		s.Logger.Debug("data file not found, starting empty", "path", s.DataFile)
	} else {
		s.Logger.Info("loaded pets", "path", s.DataFile, "count", s.store.Len())
	}

	return s, nil
}

func newLogger(lc config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: lc.SlogLevel()}
	if lc.JSON() {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// SetAutoSave controls whether Add, Sort, Demo, Import and ImportDB write
// the data file. With auto-save off their changes stay in memory until Save.
// Auto-save is on for a new Service.
func (s *Service) SetAutoSave(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoSave = on
}

// commit persists a change when auto-save is on. If the write fails the
// records are restored to prev, so a failed call leaves no trace.
// Caller must hold s.mu.
func (s *Service) commit(prev []models.Pet) error {
	if !s.autoSave {
		return nil
	}
	if err := s.persist(); err != nil {
		s.store.Replace(prev)
		return err
	}
	return nil
}

// persist writes the ledger to the data file. Caller must hold s.mu.
func (s *Service) persist() error {
	if err := s.store.SaveToFile(s.DataFile); err != nil {
		s.Logger.Error("save failed", "path", s.DataFile, "err", err)
		return err
	}
	s.Logger.Info("saved pets", "path", s.DataFile, "count", s.store.Len())
	return nil
}

// ---------------------------------------------------------------------------
// Ledger operations
// ---------------------------------------------------------------------------

// Add validates and appends a record, then persists the ledger.
func (s *Service) Add(name, speciesRaw string, age int) (models.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.store.Pets()
	p, err := s.store.Add(name, speciesRaw, age)
	if err != nil {
		return models.Pet{}, fmt.Errorf("Add: %w", err)
	}
	if _, ok := models.LookupSpecies(speciesRaw); !ok {
		s.Logger.Warn("unrecognized species, using OTHER", "species", speciesRaw)
	}
	if err := s.commit(prev); err != nil {
		return models.Pet{}, fmt.Errorf("Add: %w", err)
	}
	return p, nil
}

// Sort reorders the records and persists the ledger.
func (s *Service) Sort(order SortOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.store.Pets()
	switch order {
	case SortByName:
		s.store.SortByName()
	case SortByAge:
		s.store.SortByAge(false)
	case SortByAgeDesc:
		s.store.SortByAge(true)
	default:
		return fmt.Errorf("Sort: %w %q", ErrUnknownSortOrder, order)
	}
	if err := s.commit(prev); err != nil {
		return fmt.Errorf("Sort: %w", err)
	}
	return nil
}

// Find returns records of the given species in ledger order.
func (s *Service) Find(speciesRaw string) []models.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.FindBySpecies(speciesRaw)
}

// List renders the ledger listing.
func (s *Service) List() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.ListAll()
}

// Stats summarizes the ledger.
func (s *Service) Stats() models.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Statistics()
}

// Pets returns a copy of the records in ledger order.
func (s *Service) Pets() []models.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Pets()
}

// Len returns the number of records.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

// Save persists the ledger to the data file.
func (s *Service) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist()
}

// SaveAs writes the ledger to path without changing the data file.
func (s *Service) SaveAs(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveToFile(path); err != nil {
		return fmt.Errorf("SaveAs: %w", err)
	}
	s.Logger.Info("saved pets", "path", path, "count", s.store.Len())
	return nil
}

// Load replaces the ledger with the contents of path without persisting.
// On error the ledger is unchanged.
func (s *Service) Load(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.LoadFromFile(path); err != nil {
		s.Logger.Warn("load failed", "path", path, "err", err)
		return fmt.Errorf("Load: %w", err)
	}
	s.Logger.Info("loaded pets", "path", path, "count", s.store.Len())
	return nil
}

// Import loads path and persists the result as the data file.
func (s *Service) Import(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.store.Pets()
	if err := s.store.LoadFromFile(path); err != nil {
		return fmt.Errorf("Import: %w", err)
	}
	if err := s.commit(prev); err != nil {
		return fmt.Errorf("Import: %w", err)
	}
	return nil
}

// Reload re-reads the data file, picking up writes made by other processes.
// A missing file empties the ledger.
func (s *Service) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.LoadFromFile(s.DataFile)
	if errors.Is(err, store.ErrNotFound) {
		s.store.Replace(nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("Reload: %w", err)
	}
	return nil
}

// Demo appends the sample records and persists the ledger.
func (s *Service) Demo() ([]models.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.store.Pets()
	added := make([]models.Pet, 0, len(demoPets))
	for _, d := range demoPets {
		p, err := s.store.Add(d.name, string(d.species), d.age)
		if err != nil {
			s.store.Replace(prev)
			return nil, fmt.Errorf("Demo: %w", err)
		}
		added = append(added, p)
	}
	if err := s.commit(prev); err != nil {
		return nil, fmt.Errorf("Demo: %w", err)
	}
	return added, nil
}

// ---------------------------------------------------------------------------
// SQLite mirror
// ---------------------------------------------------------------------------

// ExportDB mirrors the ledger into the SQLite database at path.
func (s *Service) ExportDB(ctx context.Context, path string) error {
	d, err := db.Open(path)
	if err != nil {
		return fmt.Errorf("ExportDB: %w", err)
	}
	defer d.Close()

	pets := s.Pets()
	if err := d.ReplacePets(ctx, pets); err != nil {
		return fmt.Errorf("ExportDB: %w", err)
	}
	s.Logger.Info("exported pets", "db", path, "count", len(pets))
	return nil
}

// ImportDB replaces the ledger with the records mirrored at path and
// persists the result.
func (s *Service) ImportDB(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("ImportDB: %s: %w", path, store.ErrNotFound)
		}
		return fmt.Errorf("ImportDB: %w", err)
	}

	d, err := db.Open(path)
	if err != nil {
		return fmt.Errorf("ImportDB: %w", err)
	}
	defer d.Close()

	pets, err := d.ListPets(ctx)
	if err != nil {
		return fmt.Errorf("ImportDB: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.store.Pets()
	s.store.Replace(pets)
	if err := s.commit(prev); err != nil {
		return fmt.Errorf("ImportDB: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Query and report
// ---------------------------------------------------------------------------

// Query evaluates a JSONPath expression against the saved data file.
func (s *Service) Query(expr string) (any, error) {
	out, err := query.File(s.DataFile, expr)
	if err != nil {
		return nil, fmt.Errorf("Query: %w", err)
	}
	return out, nil
}

// WriteReport renders the ledger as a Markdown report at path.
func (s *Service) WriteReport(path string) error {
	s.mu.Lock()
	pets := s.store.Pets()
	stats := s.store.Statistics()
	s.mu.Unlock()

	if err := markdown.WriteReport(path, filepath.Base(s.DataFile), pets, stats); err != nil {
		return fmt.Errorf("WriteReport: %w", err)
	}
	s.Logger.Info("wrote report", "path", path, "count", len(pets))
	return nil
}
