// ABOUTME: Tests for snapshot cache storage
// ABOUTME: Verifies save/latest round trip and empty-table behavior

package sqlite

import (
	"testing"
	"time"

	"github.com/harper/binary-home/internal/models"
)

func TestSnapshotStore_SaveAndLatest(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewSnapshotStore(db)

	older := &models.AxisSnapshot{
		DyadID:           1,
		Scores:           models.AxisScores{EI: 5, SN: 10, TF: 15, JP: -5},
		CalculatedType:   "ESTP",
		Confidence:       0.23,
		ObservationCount: 3,
		SnapshotDate:     time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	newer := &models.AxisSnapshot{
		DyadID:           1,
		Scores:           models.AxisScores{EI: -8, SN: 22, TF: 40, JP: 0},
		CalculatedType:   "ISTP",
		Confidence:       0.41,
		ObservationCount: 7,
		SnapshotDate:     time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	if err := store.Save(older); err != nil {
		t.Fatalf("Save(older) error = %v", err)
	}
	if err := store.Save(newer); err != nil {
		t.Fatalf("Save(newer) error = %v", err)
	}
	if older.SnapshotID == 0 || newer.SnapshotID == 0 {
		t.Error("Save should backfill snapshot ids")
	}

	latest, err := store.Latest(1)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest == nil {
		t.Fatal("Latest() returned nil")
	}
	if latest.CalculatedType != "ISTP" {
		t.Errorf("CalculatedType = %q, want %q", latest.CalculatedType, "ISTP")
	}
	if latest.Scores != newer.Scores {
		t.Errorf("Scores = %+v, want %+v", latest.Scores, newer.Scores)
	}
	if latest.ObservationCount != 7 {
		t.Errorf("ObservationCount = %d, want 7", latest.ObservationCount)
	}
}

func TestSnapshotStore_LatestEmpty(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	latest, err := NewSnapshotStore(db).Latest(1)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if latest != nil {
		t.Error("Latest() on empty table should return nil")
	}
}
