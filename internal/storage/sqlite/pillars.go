// ABOUTME: Pillar table reads
// ABOUTME: The four rows are seeded by the schema; this is display plumbing
package sqlite

import "github.com/harper/binary-home/internal/models"

// PillarStore reads the seeded pillar rows
type PillarStore struct {
	db *DB
}

// NewPillarStore creates a new PillarStore
func NewPillarStore(db *DB) *PillarStore {
	return &PillarStore{db: db}
}

// List returns all pillars in id order
func (s *PillarStore) List() ([]models.Pillar, error) {
	rows, err := s.db.Query(`SELECT id, pillar_key, pillar_name FROM pillars ORDER BY id`)
	if err != nil {
		return nil, &models.StoreError{Op: "list pillars", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var pillars []models.Pillar
	for rows.Next() {
		var p models.Pillar
		if err := rows.Scan(&p.PillarID, &p.Key, &p.Name); err != nil {
			return nil, &models.StoreError{Op: "list pillars", Err: err}
		}
		pillars = append(pillars, p)
	}
	return pillars, rows.Err()
}
