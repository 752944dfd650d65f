// ABOUTME: Tests for observation ledger storage
// ABOUTME: Verifies transactional inserts, junction rows, and read paths

package sqlite

import (
	"testing"

	"github.com/harper/binary-home/internal/models"
)

func newTestLedger(t *testing.T) (*DB, *EmotionStore, *ObservationStore) {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, NewEmotionStore(db), NewObservationStore(db)
}

func TestObservationStore_InsertWritesJunctionSet(t *testing.T) {
	_, emotions, observations := newTestLedger(t)

	emotionID, err := emotions.Resolve(1, "proud", models.CategoryPositive)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	pillars := []models.PillarID{models.PillarSelfManagement, models.PillarSocialAwareness}
	obsID, err := observations.Insert(1, pillars[0], pillars, emotionID, "handled the hard call gently")
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	set, err := observations.PillarSet(obsID)
	if err != nil {
		t.Fatalf("PillarSet() error = %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("PillarSet() returned %d pillars, want 2", len(set))
	}
	if set[0].PillarID != models.PillarSelfManagement || set[1].PillarID != models.PillarSocialAwareness {
		t.Errorf("PillarSet ids = {%d, %d}, want {1, 3}", set[0].PillarID, set[1].PillarID)
	}
}

func TestObservationStore_InsertIgnoresDuplicatePillars(t *testing.T) {
	_, emotions, observations := newTestLedger(t)

	emotionID, err := emotions.Resolve(1, "tender", models.CategoryPositive)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	// Primary repeated in the set; junction insert must be idempotent
	pillars := []models.PillarID{models.PillarSelfAwareness, models.PillarSelfAwareness, models.PillarSocialAwareness}
	obsID, err := observations.Insert(1, pillars[0], pillars, emotionID, "noticed the mood shift")
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	set, err := observations.PillarSet(obsID)
	if err != nil {
		t.Fatalf("PillarSet() error = %v", err)
	}
	if len(set) != 2 {
		t.Errorf("PillarSet() returned %d pillars, want 2 after dedup", len(set))
	}
}

func TestObservationStore_InsertBumpsUsageCounter(t *testing.T) {
	_, emotions, observations := newTestLedger(t)

	emotionID, err := emotions.Resolve(1, "glad", models.CategoryPositive)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		set := []models.PillarID{models.PillarSelfAwareness}
		if _, err := observations.Insert(1, set[0], set, emotionID, "good morning"); err != nil {
			t.Fatalf("Insert() #%d error = %v", i, err)
		}
	}

	word, err := emotions.GetByID(emotionID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if word.TimesUsed != 3 {
		t.Errorf("TimesUsed = %d, want 3", word.TimesUsed)
	}
}

func TestObservationStore_InsertUnknownEmotionFails(t *testing.T) {
	_, _, observations := newTestLedger(t)

	set := []models.PillarID{models.PillarSelfAwareness}
	_, err := observations.Insert(1, set[0], set, 9999, "dangling reference")
	if err == nil {
		t.Fatal("Insert with unknown emotion id should fail on foreign key")
	}

	// Nothing may have been committed
	count, err := observations.Count(1)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count = %d, want 0 after failed insert", count)
	}
}

func TestObservationStore_RecentAttachesDecorations(t *testing.T) {
	_, emotions, observations := newTestLedger(t)

	emotionID, err := emotions.Resolve(1, "steady", models.CategoryNeutral)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	set := []models.PillarID{models.PillarRelationshipManagement, models.PillarSelfManagement}
	if _, err := observations.Insert(1, set[0], set, emotionID, "kept the plan together"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	recent, err := observations.Recent(1, 5)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("Recent() returned %d rows, want 1", len(recent))
	}

	o := recent[0]
	if o.EmotionWord != "steady" {
		t.Errorf("EmotionWord = %q, want %q", o.EmotionWord, "steady")
	}
	if o.PillarName != "Relationship Management" {
		t.Errorf("PillarName = %q, want %q", o.PillarName, "Relationship Management")
	}
	if len(o.Pillars) != 2 {
		t.Errorf("Pillars = %d entries, want 2", len(o.Pillars))
	}
	if o.PrimaryPillarID != models.PillarRelationshipManagement {
		t.Errorf("PrimaryPillarID = %d, want 4", o.PrimaryPillarID)
	}
}

func TestObservationStore_EmotionVectors(t *testing.T) {
	_, emotions, observations := newTestLedger(t)

	angry, err := emotions.Resolve(1, "prickly", models.CategoryAnger)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	glad, err := emotions.Resolve(1, "glowing", models.CategoryPositive)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	set := []models.PillarID{models.PillarSelfAwareness}
	if _, err := observations.Insert(1, set[0], set, angry, "snapped at the dishes"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if _, err := observations.Insert(1, set[0], set, glad, "made up an hour later"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	vectors, err := observations.EmotionVectors(1)
	if err != nil {
		t.Fatalf("EmotionVectors() error = %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("EmotionVectors() returned %d vectors, want 2", len(vectors))
	}
	if want := models.DefaultAxisScores(models.CategoryAnger); vectors[0] != want {
		t.Errorf("vectors[0] = %+v, want %+v", vectors[0], want)
	}
	if want := models.DefaultAxisScores(models.CategoryPositive); vectors[1] != want {
		t.Errorf("vectors[1] = %+v, want %+v", vectors[1], want)
	}
}

func TestPillarStore_ListSeededRows(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	pillars, err := NewPillarStore(db).List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(pillars) != 4 {
		t.Fatalf("List() returned %d pillars, want 4", len(pillars))
	}
	for i, want := range models.Pillars {
		if pillars[i] != want {
			t.Errorf("pillars[%d] = %+v, want %+v", i, pillars[i], want)
		}
	}
}
