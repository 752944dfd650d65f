// ABOUTME: Note merge - last-write-wins fold of local and remote sequences
// ABOUTME: Timestamp strings are identity; remote is applied last and wins ties
package core

import (
	"sort"

	"github.com/harper/binary-home/internal/models"
)

// MergeNotes reconciles two independently mutated note sequences into one
// canonical, timestamp-ordered sequence. Local entries are folded in first
// and remote second, so when both sides carry a note with the same
// timestamp the remote copy wins. Downstream sync relies on exactly that
// asymmetry; do not make this commutative.
//
// The result is idempotent: merging the same remote set again is a no-op.
func MergeNotes(local, remote []models.Note) []models.Note {
	byTimestamp := make(map[string]models.Note, len(local)+len(remote))
	for _, n := range local {
		byTimestamp[n.Timestamp] = n
	}
	for _, n := range remote {
		byTimestamp[n.Timestamp] = n
	}

	merged := make([]models.Note, 0, len(byTimestamp))
	for _, n := range byTimestamp {
		merged = append(merged, n)
	}
	sort.Slice(merged, func(i, j int) bool {
		return noteBefore(merged[i], merged[j])
	})
	return merged
}

// noteBefore orders notes by parsed timestamp ascending. Unparseable
// timestamps (and exact ties) fall back to raw-string order so the result
// stays deterministic.
func noteBefore(a, b models.Note) bool {
	ta, oka := a.Time()
	tb, okb := b.Time()
	if oka && okb && !ta.Equal(tb) {
		return ta.Before(tb)
	}
	return a.Timestamp < b.Timestamp
}
