// ABOUTME: Tests for emotion vocabulary storage
// ABOUTME: Verifies find-or-create semantics, case folding, and explicit defines

package sqlite

import (
	"errors"
	"testing"

	"github.com/harper/binary-home/internal/models"
)

func TestEmotionStore_ResolveCreatesWithCategoryDefaults(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewEmotionStore(db)

	id, err := store.Resolve(1, "wistful", models.CategorySad)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if id == 0 {
		t.Fatal("Resolve() returned zero id")
	}

	word, err := store.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if word == nil {
		t.Fatal("GetByID() returned nil for created word")
	}
	if word.Word != "wistful" {
		t.Errorf("Word = %q, want %q", word.Word, "wistful")
	}
	if word.Category != models.CategorySad {
		t.Errorf("Category = %q, want %q", word.Category, models.CategorySad)
	}
	if want := models.DefaultAxisScores(models.CategorySad); word.Scores != want {
		t.Errorf("Scores = %+v, want %+v", word.Scores, want)
	}
	if !word.UserDefined {
		t.Error("created word should be user-defined")
	}
	if word.TimesUsed != 0 {
		t.Errorf("TimesUsed = %d, want 0 (resolution never bumps usage)", word.TimesUsed)
	}
}

func TestEmotionStore_ResolveIsIdempotentUnderCase(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewEmotionStore(db)

	first, err := store.Resolve(1, "Happy", models.CategoryPositive)
	if err != nil {
		t.Fatalf("Resolve(Happy) error = %v", err)
	}
	second, err := store.Resolve(1, "happy", models.CategoryPositive)
	if err != nil {
		t.Fatalf("Resolve(happy) error = %v", err)
	}
	if first != second {
		t.Errorf("Resolve ids differ under case variation: %d vs %d", first, second)
	}

	// A second resolve must not re-seed scores or duplicate rows
	words, err := store.List(1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(words) != 1 {
		t.Errorf("List() returned %d words, want 1", len(words))
	}
}

func TestEmotionStore_ResolveScopedByDyad(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(`INSERT INTO dyads (id, name) VALUES (2, 'other')`); err != nil {
		t.Fatalf("seed dyad error = %v", err)
	}

	store := NewEmotionStore(db)
	a, err := store.Resolve(1, "calm", models.CategoryNeutral)
	if err != nil {
		t.Fatalf("Resolve dyad 1 error = %v", err)
	}
	b, err := store.Resolve(2, "calm", models.CategoryNeutral)
	if err != nil {
		t.Fatalf("Resolve dyad 2 error = %v", err)
	}
	if a == b {
		t.Error("same word in different dyads should get distinct ids")
	}
}

func TestEmotionStore_ResolveEmptyWordFails(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewEmotionStore(db)
	_, err = store.Resolve(1, "   ", models.CategoryPositive)

	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Resolve(empty) error = %v, want ValidationError", err)
	}
}

func TestEmotionStore_DefineWithExplicitScores(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewEmotionStore(db)

	scores := models.AxisScores{EI: -30, SN: 12, TF: 8, JP: -4}
	id, err := store.Define(1, "Thundery", models.CategoryCustom, &scores, "storm brewing under the surface")
	if err != nil {
		t.Fatalf("Define() error = %v", err)
	}

	word, err := store.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if word.Word != "thundery" {
		t.Errorf("Word = %q, want case-folded %q", word.Word, "thundery")
	}
	if word.Scores != scores {
		t.Errorf("Scores = %+v, want explicit %+v", word.Scores, scores)
	}
	if word.Definition != "storm brewing under the surface" {
		t.Errorf("Definition = %q", word.Definition)
	}
}

func TestEmotionStore_DefineUpdatesExisting(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewEmotionStore(db)

	first, err := store.Resolve(1, "fizzy", models.CategoryPositive)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	scores := models.AxisScores{EI: 40, SN: 0, TF: 0, JP: 40}
	second, err := store.Define(1, "fizzy", models.CategoryCustom, &scores, "")
	if err != nil {
		t.Fatalf("Define() error = %v", err)
	}
	if first != second {
		t.Errorf("Define should keep the existing id: %d vs %d", first, second)
	}

	word, err := store.GetByID(first)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if word.Scores != scores {
		t.Errorf("Scores = %+v, want retuned %+v", word.Scores, scores)
	}
	if word.Category != models.CategoryCustom {
		t.Errorf("Category = %q, want custom", word.Category)
	}
}

func TestEmotionStore_GetByIDMissing(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewEmotionStore(db)
	word, err := store.GetByID(12345)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if word != nil {
		t.Error("GetByID for missing id should return nil")
	}
}
