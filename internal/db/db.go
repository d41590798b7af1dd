// Package db keeps a SQLite mirror of the pet ledger so the records can be
// inspected with ordinary SQL tools and restored in their saved order.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver with database/sql

	"github.com/go-ports/pets/internal/models"
)

// Meta keys written by ReplacePets.
const (
	MetaExportedAt = "exported_at"
	MetaCount      = "pet_count"
)

// DB wraps a *sql.DB with the path it was opened from.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the SQLite database at path and initialises the schema.
func Open(path string) (*DB, error) {
	sqldb, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("db.Open: %w", err)
	}
	d := &DB{db: sqldb, path: path}
	if err := d.createSchema(); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("db.Open createSchema: %w", err)
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the file the database was opened from.
func (d *DB) Path() string { return d.path }

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

func (d *DB) createSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS pets (
			position INTEGER PRIMARY KEY,
			name     TEXT NOT NULL,
			species  TEXT NOT NULL,
			age      INTEGER NOT NULL CHECK (age BETWEEN 0 AND 100)
		)`,
		`CREATE INDEX IF NOT EXISTS pets_species ON pets(species)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, s := range stmts {
		if _, err := d.db.Exec(s); err != nil {
			return fmt.Errorf("createSchema exec: %w\nSQL: %s", err, s)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Pets
// ---------------------------------------------------------------------------

// ReplacePets overwrites the mirrored records with pets inside a single
// transaction. Position 1 holds the first record.
func (d *DB) ReplacePets(ctx context.Context, pets []models.Pet) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReplacePets begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pets`); err != nil {
		return fmt.Errorf("ReplacePets clear: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO pets (position, name, species, age) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("ReplacePets prepare: %w", err)
	}
	defer stmt.Close()

	for i, p := range pets {
		if _, err := stmt.ExecContext(ctx, i+1, p.Name(), p.Species().String(), p.Age()); err != nil {
			return fmt.Errorf("ReplacePets insert %d: %w", i+1, err)
		}
	}

	meta := map[string]string{
		MetaExportedAt: time.Now().UTC().Format(time.RFC3339),
		MetaCount:      strconv.Itoa(len(pets)),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, k, v,
		); err != nil {
			return fmt.Errorf("ReplacePets meta: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ReplacePets commit: %w", err)
	}
	return nil
}

// ListPets returns the mirrored records ordered by position. Unknown species
// tags resolve to models.SpeciesOther; rows that fail validation are an error.
func (d *DB) ListPets(ctx context.Context) ([]models.Pet, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT name, species, age FROM pets ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("ListPets: %w", err)
	}
	defer rows.Close()

	pets := make([]models.Pet, 0)
	for rows.Next() {
		var (
			name, species string
			age           int
		)
		if err := rows.Scan(&name, &species, &age); err != nil {
			return nil, fmt.Errorf("ListPets scan: %w", err)
		}
		p, err := models.NewPetOfKind(name, models.SpeciesFromTag(species), age)
		if err != nil {
			return nil, fmt.Errorf("ListPets row %d: %w", len(pets)+1, err)
		}
		pets = append(pets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListPets rows: %w", err)
	}
	return pets, nil
}

// CountBySpecies returns how many mirrored records hold each species tag.
func (d *DB) CountBySpecies(ctx context.Context) (map[models.Species]int, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT species, COUNT(*) FROM pets GROUP BY species`)
	if err != nil {
		return nil, fmt.Errorf("CountBySpecies: %w", err)
	}
	defer rows.Close()

	out := make(map[models.Species]int)
	for rows.Next() {
		var (
			species string
			n       int
		)
		if err := rows.Scan(&species, &n); err != nil {
			return nil, fmt.Errorf("CountBySpecies scan: %w", err)
		}
		out[models.SpeciesFromTag(species)] += n
	}
	return out, rows.Err()
}

// ---------------------------------------------------------------------------
// Meta
// ---------------------------------------------------------------------------

// GetMeta returns the value for key, or ("", false, nil) if not set.
func (d *DB) GetMeta(key string) (string, bool, error) {
	var val string
	err := d.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}
