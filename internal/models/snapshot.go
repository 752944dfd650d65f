// ABOUTME: AxisSnapshot - derived personality-type aggregation for a dyad
// ABOUTME: Cached in the snapshot table; the ledger remains the source of truth
package models

import "time"

// AxisSnapshot is the point-in-time aggregation of the observation ledger:
// summed axis scores, the derived type label, and a confidence value.
type AxisSnapshot struct {
	SnapshotID       int64      `json:"snapshot_id"`
	DyadID           int64      `json:"dyad_id"`
	Scores           AxisScores `json:"axes"`
	CalculatedType   string     `json:"calculated_type"`
	Confidence       float64    `json:"confidence"`
	ObservationCount int        `json:"observation_count"`
	SnapshotDate     time.Time  `json:"snapshot_date"`
}

// DefaultSnapshot is what reads return before any observation exists:
// zero axes, the INFP default label, and full confidence (matching the
// application's historical default).
func DefaultSnapshot(dyadID int64) *AxisSnapshot {
	return &AxisSnapshot{
		DyadID:         dyadID,
		CalculatedType: AxisScores{}.TypeCode(),
		Confidence:     1.0,
	}
}
