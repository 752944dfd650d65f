// ABOUTME: Axis aggregation engine - folds the ledger into a type snapshot
// ABOUTME: Pure arithmetic over emotion vectors; deterministic and replayable
package core

import (
	"time"

	"github.com/harper/binary-home/internal/models"
	"github.com/harper/binary-home/internal/storage/sqlite"
)

// confidenceHalfPoint tunes the saturation curve: confidence is n/(n+10),
// so 10 observations read 0.5 and the value climbs toward 1 from there.
const confidenceHalfPoint = 10

// Aggregator derives axis snapshots from the observation ledger
type Aggregator struct {
	observations *sqlite.ObservationStore
	snapshots    *sqlite.SnapshotStore
}

// NewAggregator creates an Aggregator over the given database
func NewAggregator(db *sqlite.DB) *Aggregator {
	return &Aggregator{
		observations: sqlite.NewObservationStore(db),
		snapshots:    sqlite.NewSnapshotStore(db),
	}
}

// SumVectors aggregates emotion axis vectors by element-wise sum
func SumVectors(vectors []models.AxisScores) models.AxisScores {
	var total models.AxisScores
	for _, v := range vectors {
		total = total.Add(v)
	}
	return total
}

// Confidence maps an observation count to [0,1). Monotonically
// non-decreasing and saturating; zero observations mean zero confidence.
func Confidence(observationCount int) float64 {
	if observationCount <= 0 {
		return 0
	}
	n := float64(observationCount)
	return n / (n + confidenceHalfPoint)
}

// ComputeSnapshot replays the ledger into a snapshot. Given the same
// ledger contents it always returns the same value: the snapshot date is
// the newest observation's timestamp, not the wall clock, so repeated
// computations are bit-identical until the ledger changes.
func (a *Aggregator) ComputeSnapshot(dyadID int64) (*models.AxisSnapshot, error) {
	vectors, err := a.observations.EmotionVectors(dyadID)
	if err != nil {
		return nil, err
	}

	scores := SumVectors(vectors)
	snap := &models.AxisSnapshot{
		DyadID:           dyadID,
		Scores:           scores,
		CalculatedType:   scores.TypeCode(),
		Confidence:       Confidence(len(vectors)),
		ObservationCount: len(vectors),
	}

	latest, ok, err := a.observations.LatestCreatedAt(dyadID)
	if err != nil {
		return nil, err
	}
	if ok {
		snap.SnapshotDate = parseLedgerTime(latest)
	}
	return snap, nil
}

// Refresh computes the snapshot and appends it to the cache table
func (a *Aggregator) Refresh(dyadID int64) (*models.AxisSnapshot, error) {
	snap, err := a.ComputeSnapshot(dyadID)
	if err != nil {
		return nil, err
	}
	if err := a.snapshots.Save(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Latest returns the cached snapshot, or the INFP default when the cache
// is empty. Reads never force a recompute.
func (a *Aggregator) Latest(dyadID int64) (*models.AxisSnapshot, error) {
	snap, err := a.snapshots.Latest(dyadID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return models.DefaultSnapshot(dyadID), nil
	}
	return snap, nil
}

// ledgerTimeLayouts covers how SQLite renders CURRENT_TIMESTAMP values
var ledgerTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
}

func parseLedgerTime(s string) time.Time {
	for _, layout := range ledgerTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
