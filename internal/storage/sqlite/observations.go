// ABOUTME: Observation ledger storage operations
// ABOUTME: Transactional inserts keep the row, its pillar set, and usage counters atomic
package sqlite

import (
	"database/sql"

	"github.com/harper/binary-home/internal/models"
)

// ObservationStore handles observation ledger persistence
type ObservationStore struct {
	db *DB
}

// NewObservationStore creates a new ObservationStore
func NewObservationStore(db *DB) *ObservationStore {
	return &ObservationStore{db: db}
}

// Insert appends a ledger entry. The observation row, every pillar
// association (duplicates silently ignored), and the emotion usage bump
// commit in one transaction: either everything lands or nothing does.
func (s *ObservationStore) Insert(dyadID int64, primary models.PillarID, pillarIDs []models.PillarID, emotionID int64, content string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, &models.StoreError{Op: "insert observation", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		INSERT INTO observations (dyad_id, pillar_id, emotion_id, content)
		VALUES (?, ?, ?, ?)
	`, dyadID, primary, emotionID, content)
	if err != nil {
		return 0, &models.StoreError{Op: "insert observation", Err: err}
	}

	observationID, err := res.LastInsertId()
	if err != nil {
		return 0, &models.StoreError{Op: "insert observation", Err: err}
	}

	for _, pid := range pillarIDs {
		_, err := tx.Exec(`
			INSERT OR IGNORE INTO observation_pillars (observation_id, pillar_id)
			VALUES (?, ?)
		`, observationID, pid)
		if err != nil {
			return 0, &models.StoreError{Op: "insert observation pillar", Err: err}
		}
	}

	_, err = tx.Exec(`
		UPDATE emotion_words SET times_used = times_used + 1 WHERE id = ?
	`, emotionID)
	if err != nil {
		return 0, &models.StoreError{Op: "bump emotion usage", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return 0, &models.StoreError{Op: "insert observation", Err: err}
	}
	return observationID, nil
}

// Recent returns the newest observations with their emotion word, primary
// pillar name, and full pillar association set attached.
func (s *ObservationStore) Recent(dyadID int64, limit int) ([]*models.Observation, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT o.id, o.dyad_id, o.pillar_id, o.emotion_id, o.content, o.created_at,
		       ew.word, p.pillar_name
		FROM observations o
		LEFT JOIN emotion_words ew ON o.emotion_id = ew.id
		LEFT JOIN pillars p ON o.pillar_id = p.id
		WHERE o.dyad_id = ?
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT ?
	`, dyadID, limit)
	if err != nil {
		return nil, &models.StoreError{Op: "recent observations", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var observations []*models.Observation
	for rows.Next() {
		var (
			o          models.Observation
			word       sql.NullString
			pillarName sql.NullString
		)
		err := rows.Scan(&o.ObservationID, &o.DyadID, &o.PrimaryPillarID, &o.EmotionID,
			&o.Content, &o.CreatedAt, &word, &pillarName)
		if err != nil {
			return nil, &models.StoreError{Op: "recent observations", Err: err}
		}
		if word.Valid {
			o.EmotionWord = word.String
		}
		if pillarName.Valid {
			o.PillarName = pillarName.String
		}
		observations = append(observations, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.StoreError{Op: "recent observations", Err: err}
	}

	for _, o := range observations {
		pillars, err := s.PillarSet(o.ObservationID)
		if err != nil {
			return nil, err
		}
		o.Pillars = pillars
	}
	return observations, nil
}

// PillarSet returns the full pillar association set for an observation,
// in pillar-id order.
func (s *ObservationStore) PillarSet(observationID int64) ([]models.Pillar, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.pillar_key, p.pillar_name
		FROM observation_pillars op
		JOIN pillars p ON op.pillar_id = p.id
		WHERE op.observation_id = ?
		ORDER BY p.id
	`, observationID)
	if err != nil {
		return nil, &models.StoreError{Op: "observation pillar set", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var pillars []models.Pillar
	for rows.Next() {
		var p models.Pillar
		if err := rows.Scan(&p.PillarID, &p.Key, &p.Name); err != nil {
			return nil, &models.StoreError{Op: "observation pillar set", Err: err}
		}
		pillars = append(pillars, p)
	}
	return pillars, rows.Err()
}

// Count returns the total number of observations for a dyad
func (s *ObservationStore) Count(dyadID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM observations WHERE dyad_id = ?
	`, dyadID).Scan(&count)
	if err != nil {
		return 0, &models.StoreError{Op: "count observations", Err: err}
	}
	return count, nil
}

// EmotionVectors returns the axis vector of every observation's emotion in
// ledger order. This is the aggregation engine's read path: replaying the
// same ledger always yields the same sequence.
func (s *ObservationStore) EmotionVectors(dyadID int64) ([]models.AxisScores, error) {
	rows, err := s.db.Query(`
		SELECT ew.ei_score, ew.sn_score, ew.tf_score, ew.jp_score
		FROM observations o
		JOIN emotion_words ew ON o.emotion_id = ew.id
		WHERE o.dyad_id = ?
		ORDER BY o.created_at, o.id
	`, dyadID)
	if err != nil {
		return nil, &models.StoreError{Op: "emotion vectors", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var vectors []models.AxisScores
	for rows.Next() {
		var v models.AxisScores
		if err := rows.Scan(&v.EI, &v.SN, &v.TF, &v.JP); err != nil {
			return nil, &models.StoreError{Op: "emotion vectors", Err: err}
		}
		vectors = append(vectors, v)
	}
	return vectors, rows.Err()
}

// LatestCreatedAt returns the created_at of the newest observation, or
// false when the ledger is empty.
func (s *ObservationStore) LatestCreatedAt(dyadID int64) (string, bool, error) {
	var ts sql.NullString
	err := s.db.QueryRow(`
		SELECT MAX(created_at) FROM observations WHERE dyad_id = ?
	`, dyadID).Scan(&ts)
	if err != nil {
		return "", false, &models.StoreError{Op: "latest observation time", Err: err}
	}
	if !ts.Valid {
		return "", false, nil
	}
	return ts.String, true, nil
}
