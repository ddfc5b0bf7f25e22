// Package storage persists named terrains in SQLite and exposes each one as
// a heightfield.Resource.
package storage

import (
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver registration

	"github.com/Faultbox/terragen/internal/heightfield"
)

// ErrCorruptHeights is returned when a stored blob does not match its resolution.
var ErrCorruptHeights = errors.New("stored heights do not match resolution")

const schema = `
CREATE TABLE IF NOT EXISTS Terrain(
Name TEXT NOT NULL PRIMARY KEY,
Resolution INTEGER NOT NULL,
Heights BLOB NOT NULL,
Updated DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP);`

// Store is a SQLite database of terrains.
type Store struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// SQLite serialises writers; one connection keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Info describes a stored terrain.
type Info struct {
	Name       string    `db:"Name"`
	Resolution int       `db:"Resolution"`
	Updated    time.Time `db:"Updated"`
}

// List returns every stored terrain ordered by name.
func (s *Store) List() ([]Info, error) {
	var out []Info
	err := s.db.Select(&out, `SELECT Name, Resolution, Updated FROM Terrain ORDER BY Name`)
	if err != nil {
		return nil, fmt.Errorf("listing terrains: %w", err)
	}
	return out, nil
}

// Delete removes a terrain.
func (s *Store) Delete(name string) error {
	if _, err := s.db.Exec(`DELETE FROM Terrain WHERE Name = ?`, name); err != nil {
		return fmt.Errorf("deleting terrain %q: %w", name, err)
	}
	return nil
}

// Terrain returns the named terrain, creating it zero-filled at resolution if
// it does not exist. An existing terrain keeps its stored resolution.
func (s *Store) Terrain(name string, resolution int) (*Terrain, error) {
	var stored int
	err := s.db.Get(&stored, `SELECT Resolution FROM Terrain WHERE Name = ?`, name)
	switch {
	case err == nil:
		return &Terrain{store: s, name: name, resolution: stored}, nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("looking up terrain %q: %w", name, err)
	}

	if resolution < 1 {
		return nil, fmt.Errorf("%w: %d", heightfield.ErrInvalidResolution, resolution)
	}
	blob := encodeHeights(make([]float32, resolution*resolution))
	_, err = s.db.Exec(`INSERT INTO Terrain(Name, Resolution, Heights) VALUES(?, ?, ?)`,
		name, resolution, blob)
	if err != nil {
		return nil, fmt.Errorf("creating terrain %q: %w", name, err)
	}
	return &Terrain{store: s, name: name, resolution: resolution}, nil
}

// Terrain is one stored height grid. It implements heightfield.Resource.
type Terrain struct {
	store      *Store
	name       string
	resolution int
}

// Name returns the terrain name.
func (t *Terrain) Name() string {
	return t.name
}

// Resolution implements heightfield.Resource.
func (t *Terrain) Resolution() int {
	return t.resolution
}

// GetHeights implements heightfield.Resource.
func (t *Terrain) GetHeights() ([]float32, error) {
	var blob []byte
	err := t.store.db.Get(&blob, `SELECT Heights FROM Terrain WHERE Name = ?`, t.name)
	if err != nil {
		return nil, fmt.Errorf("reading terrain %q: %w", t.name, err)
	}
	heights, err := decodeHeights(blob)
	if err != nil {
		return nil, fmt.Errorf("terrain %q: %w", t.name, err)
	}
	if len(heights) != t.resolution*t.resolution {
		return nil, fmt.Errorf("terrain %q: %w", t.name, ErrCorruptHeights)
	}
	return heights, nil
}

// SetHeights implements heightfield.Resource. The grid is written in a
// single transaction.
func (t *Terrain) SetHeights(heights []float32) error {
	if len(heights) != t.resolution*t.resolution {
		return fmt.Errorf("%w: got %d values for resolution %d",
			heightfield.ErrSizeMismatch, len(heights), t.resolution)
	}

	tx, err := t.store.db.Beginx()
	if err != nil {
		return fmt.Errorf("writing terrain %q: %w", t.name, err)
	}
	res, err := tx.Exec(`UPDATE Terrain SET Heights = ?, Updated = CURRENT_TIMESTAMP WHERE Name = ?`,
		encodeHeights(heights), t.name)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("writing terrain %q: %w", t.name, err)
	}
	if n, _ := res.RowsAffected(); n != 1 {
		tx.Rollback()
		return fmt.Errorf("writing terrain %q: %w", t.name, sql.ErrNoRows)
	}
	return tx.Commit()
}

// encodeHeights packs heights as little-endian float32.
func encodeHeights(heights []float32) []byte {
	buf := make([]byte, 4*len(heights))
	for i, h := range heights {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(h))
	}
	return buf
}

func decodeHeights(buf []byte) ([]float32, error) {
	if len(buf)%4 != 0 {
		return nil, ErrCorruptHeights
	}
	heights := make([]float32, len(buf)/4)
	for i := range heights {
		heights[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return heights, nil
}
