// ABOUTME: Emotion vocabulary storage operations
// ABOUTME: Atomic find-or-create by (dyad, case-folded word) plus explicit defines
package sqlite

import (
	"database/sql"
	"time"

	"github.com/harper/binary-home/internal/models"
)

// EmotionStore handles emotion vocabulary persistence
type EmotionStore struct {
	db *DB
}

// NewEmotionStore creates a new EmotionStore
func NewEmotionStore(db *DB) *EmotionStore {
	return &EmotionStore{db: db}
}

// Resolve returns the id for (dyad, word), creating the entry on first use.
// The word is case-folded before lookup. New entries are seeded with the
// category's default axis vector and marked user-defined; an empty or
// invalid category falls back to positive. Resolution never touches usage
// counters; the observation insert path owns those.
func (s *EmotionStore) Resolve(dyadID int64, word string, category models.EmotionCategory) (int64, error) {
	folded := models.NormalizeEmotionWord(word)
	if folded == "" {
		return 0, &models.ValidationError{Field: "word", Reason: "must not be empty"}
	}
	if !category.IsValid() {
		category = models.CategoryPositive
	}

	// Upsert-by-natural-key in one statement so concurrent resolvers can
	// never race into duplicate rows.
	scores := models.DefaultAxisScores(category)
	_, err := s.db.Exec(`
		INSERT INTO emotion_words (dyad_id, word, category, ei_score, sn_score, tf_score, jp_score, user_defined)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(dyad_id, word) DO NOTHING
	`, dyadID, folded, category, scores.EI, scores.SN, scores.TF, scores.JP)
	if err != nil {
		return 0, &models.StoreError{Op: "resolve emotion", Err: err}
	}

	var id int64
	err = s.db.QueryRow(`
		SELECT id FROM emotion_words WHERE dyad_id = ? AND word = ?
	`, dyadID, folded).Scan(&id)
	if err != nil {
		return 0, &models.StoreError{Op: "resolve emotion", Err: err}
	}
	return id, nil
}

// Define creates or updates a vocabulary word with explicit axis scores.
// A nil scores pointer falls back to the category default table. This is
// the path for user-authored words with manually tuned axis placement;
// the UI clamps each axis to [-50, 50], the store does not.
func (s *EmotionStore) Define(dyadID int64, word string, category models.EmotionCategory, scores *models.AxisScores, definition string) (int64, error) {
	folded := models.NormalizeEmotionWord(word)
	if folded == "" {
		return 0, &models.ValidationError{Field: "word", Reason: "must not be empty"}
	}
	if !category.IsValid() {
		category = models.CategoryCustom
	}

	v := models.DefaultAxisScores(category)
	if scores != nil {
		v = *scores
	}

	var def interface{}
	if definition != "" {
		def = definition
	}

	_, err := s.db.Exec(`
		INSERT INTO emotion_words (dyad_id, word, category, ei_score, sn_score, tf_score, jp_score, definition, user_defined)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(dyad_id, word) DO UPDATE SET
			category = excluded.category,
			ei_score = excluded.ei_score,
			sn_score = excluded.sn_score,
			tf_score = excluded.tf_score,
			jp_score = excluded.jp_score,
			definition = excluded.definition
	`, dyadID, folded, category, v.EI, v.SN, v.TF, v.JP, def)
	if err != nil {
		return 0, &models.StoreError{Op: "define emotion", Err: err}
	}

	var id int64
	err = s.db.QueryRow(`
		SELECT id FROM emotion_words WHERE dyad_id = ? AND word = ?
	`, dyadID, folded).Scan(&id)
	if err != nil {
		return 0, &models.StoreError{Op: "define emotion", Err: err}
	}
	return id, nil
}

// GetByID retrieves a vocabulary entry, or nil when absent
func (s *EmotionStore) GetByID(id int64) (*models.EmotionWord, error) {
	row := s.db.QueryRow(`
		SELECT id, dyad_id, word, category, ei_score, sn_score, tf_score, jp_score,
		       definition, user_defined, times_used, first_used
		FROM emotion_words
		WHERE id = ?
	`, id)
	return scanEmotionWord(row)
}

// List returns a dyad's vocabulary, most-used first then alphabetical
func (s *EmotionStore) List(dyadID int64) ([]*models.EmotionWord, error) {
	rows, err := s.db.Query(`
		SELECT id, dyad_id, word, category, ei_score, sn_score, tf_score, jp_score,
		       definition, user_defined, times_used, first_used
		FROM emotion_words
		WHERE dyad_id = ?
		ORDER BY times_used DESC, word ASC
	`, dyadID)
	if err != nil {
		return nil, &models.StoreError{Op: "list emotions", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var words []*models.EmotionWord
	for rows.Next() {
		w, err := scanEmotionWordRows(rows)
		if err != nil {
			return nil, &models.StoreError{Op: "list emotions", Err: err}
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEmotionWordFrom(sc rowScanner) (*models.EmotionWord, error) {
	var (
		w           models.EmotionWord
		definition  sql.NullString
		userDefined int
		firstUsed   sql.NullTime
	)
	err := sc.Scan(&w.EmotionID, &w.DyadID, &w.Word, &w.Category,
		&w.Scores.EI, &w.Scores.SN, &w.Scores.TF, &w.Scores.JP,
		&definition, &userDefined, &w.TimesUsed, &firstUsed)
	if err != nil {
		return nil, err
	}
	if definition.Valid {
		w.Definition = definition.String
	}
	w.UserDefined = userDefined != 0
	if firstUsed.Valid {
		w.FirstUsed = firstUsed.Time
	} else {
		w.FirstUsed = time.Time{}
	}
	return &w, nil
}

func scanEmotionWord(row *sql.Row) (*models.EmotionWord, error) {
	w, err := scanEmotionWordFrom(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &models.StoreError{Op: "get emotion", Err: err}
	}
	return w, nil
}

func scanEmotionWordRows(rows *sql.Rows) (*models.EmotionWord, error) {
	return scanEmotionWordFrom(rows)
}
