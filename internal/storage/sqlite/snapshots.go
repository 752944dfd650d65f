// ABOUTME: Cached axis snapshot storage
// ABOUTME: Append-only cache rows; the latest row per dyad is what reads use
package sqlite

import (
	"database/sql"

	"github.com/harper/binary-home/internal/models"
)

// SnapshotStore handles cached snapshot persistence
type SnapshotStore struct {
	db *DB
}

// NewSnapshotStore creates a new SnapshotStore
func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Save appends a snapshot cache row
func (s *SnapshotStore) Save(snap *models.AxisSnapshot) error {
	res, err := s.db.Exec(`
		INSERT INTO type_snapshots (dyad_id, ei_score, sn_score, tf_score, jp_score,
		                            calculated_type, confidence, observation_count, snapshot_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, snap.DyadID, snap.Scores.EI, snap.Scores.SN, snap.Scores.TF, snap.Scores.JP,
		snap.CalculatedType, snap.Confidence, snap.ObservationCount, snap.SnapshotDate)
	if err != nil {
		return &models.StoreError{Op: "save snapshot", Err: err}
	}
	if id, err := res.LastInsertId(); err == nil {
		snap.SnapshotID = id
	}
	return nil
}

// Latest returns the most recent snapshot for a dyad, or nil when none exists
func (s *SnapshotStore) Latest(dyadID int64) (*models.AxisSnapshot, error) {
	var snap models.AxisSnapshot
	err := s.db.QueryRow(`
		SELECT id, dyad_id, ei_score, sn_score, tf_score, jp_score,
		       calculated_type, confidence, observation_count, snapshot_date
		FROM type_snapshots
		WHERE dyad_id = ?
		ORDER BY snapshot_date DESC, id DESC
		LIMIT 1
	`, dyadID).Scan(&snap.SnapshotID, &snap.DyadID,
		&snap.Scores.EI, &snap.Scores.SN, &snap.Scores.TF, &snap.Scores.JP,
		&snap.CalculatedType, &snap.Confidence, &snap.ObservationCount, &snap.SnapshotDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &models.StoreError{Op: "latest snapshot", Err: err}
	}
	return &snap, nil
}
