// ABOUTME: Tests for the observation ledger service
// ABOUTME: Verifies validation, pillar resolution, and change notifications

package core

import (
	"errors"
	"testing"

	"github.com/harper/binary-home/internal/models"
	"github.com/harper/binary-home/internal/storage/sqlite"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLedger_RecordObservation(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)

	id, err := ledger.RecordObservation(1, "Grateful", []string{"SELF_MANAGEMENT", "social-awareness"}, "said thank you out loud", models.CategoryPositive)
	if err != nil {
		t.Fatalf("RecordObservation() error = %v", err)
	}
	if id == 0 {
		t.Fatal("RecordObservation() returned zero id")
	}

	recent, err := ledger.Recent(1, 1)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("Recent() returned %d rows, want 1", len(recent))
	}

	o := recent[0]
	if o.PrimaryPillarID != models.PillarSelfManagement {
		t.Errorf("PrimaryPillarID = %d, want first key's id 1", o.PrimaryPillarID)
	}
	if len(o.Pillars) != 2 {
		t.Fatalf("association set has %d pillars, want 2", len(o.Pillars))
	}
	if o.Pillars[0].PillarID != 1 || o.Pillars[1].PillarID != 3 {
		t.Errorf("association set = {%d, %d}, want {1, 3}", o.Pillars[0].PillarID, o.Pillars[1].PillarID)
	}
	if o.EmotionWord != "grateful" {
		t.Errorf("EmotionWord = %q, want case-folded %q", o.EmotionWord, "grateful")
	}
}

func TestLedger_RecordObservationEmptyContent(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)

	_, err := ledger.RecordObservation(1, "happy", []string{"SELF_AWARENESS"}, "", models.CategoryPositive)
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}

	count, err := ledger.Count(1)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count = %d, want 0 (no partial writes)", count)
	}
}

func TestLedger_RecordObservationEmptyEmotion(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)

	_, err := ledger.RecordObservation(1, "  ", []string{"SELF_AWARENESS"}, "something happened", models.CategoryPositive)
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestLedger_RecordObservationDefaultsPillar(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)

	id, err := ledger.RecordObservation(1, "quiet", nil, "just sat together", models.CategoryNeutral)
	if err != nil {
		t.Fatalf("RecordObservation() error = %v", err)
	}

	set, err := ledger.PillarSet(id)
	if err != nil {
		t.Fatalf("PillarSet() error = %v", err)
	}
	if len(set) != 1 || set[0].PillarID != models.PillarSelfAwareness {
		t.Errorf("PillarSet = %+v, want just Self-Awareness", set)
	}
}

func TestLedger_RecordObservationUnknownPillarKeySilentlyDefaults(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)

	id, err := ledger.RecordObservation(1, "confused", []string{"made_up_key"}, "not sure what that was", models.CategoryNeutral)
	if err != nil {
		t.Fatalf("RecordObservation() error = %v (unknown keys must not fail)", err)
	}

	set, err := ledger.PillarSet(id)
	if err != nil {
		t.Fatalf("PillarSet() error = %v", err)
	}
	if len(set) != 1 || set[0].PillarID != models.PillarSelfAwareness {
		t.Errorf("PillarSet = %+v, want default Self-Awareness", set)
	}
}

func TestLedger_NotifiesSubscribers(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)

	var events []ObservationRecorded
	ledger.Subscribe(func(e ObservationRecorded) {
		events = append(events, e)
	})

	id, err := ledger.RecordObservation(1, "bright", []string{"SELF_AWARENESS"}, "woke up singing", models.CategoryPositive)
	if err != nil {
		t.Fatalf("RecordObservation() error = %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].ObservationID != id || events[0].DyadID != 1 {
		t.Errorf("event = %+v, want {DyadID:1 ObservationID:%d}", events[0], id)
	}
}

func TestLedger_NoEventOnValidationFailure(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)

	fired := false
	ledger.Subscribe(func(ObservationRecorded) { fired = true })

	_, _ = ledger.RecordObservation(1, "happy", nil, "", models.CategoryPositive)
	if fired {
		t.Error("subscriber must not fire on failed record")
	}
}
