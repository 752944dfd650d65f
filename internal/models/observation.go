// ABOUTME: Observation ledger entry - an emotion tagged against pillars
// ABOUTME: Immutable once recorded; the pillar set always contains the primary
package models

import "time"

// Observation is one append-only ledger entry for a dyad. PrimaryPillarID is
// denormalized for single-pillar reads; Pillars carries the full association
// set, which is never empty and always includes the primary.
type Observation struct {
	ObservationID   int64     `json:"observation_id"`
	DyadID          int64     `json:"dyad_id"`
	PrimaryPillarID PillarID  `json:"pillar_id"`
	EmotionID       int64     `json:"emotion_id"`
	Content         string    `json:"content"`
	CreatedAt       time.Time `json:"created_at"`

	// Read-side decorations, populated by queries
	EmotionWord string   `json:"emotion_word,omitempty"`
	PillarName  string   `json:"pillar_name,omitempty"`
	Pillars     []Pillar `json:"all_pillars,omitempty"`
}
