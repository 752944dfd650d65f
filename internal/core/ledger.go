// ABOUTME: Ledger service - validates and records observations
// ABOUTME: Resolves emotion and pillar keys, then notifies subscribers
package core

import (
	"sync"

	"github.com/harper/binary-home/internal/models"
	"github.com/harper/binary-home/internal/storage/sqlite"
)

// ObservationRecorded is the change notification emitted after a commit
type ObservationRecorded struct {
	DyadID        int64
	ObservationID int64
}

// Ledger is the write path for the observation log
type Ledger struct {
	emotions     *sqlite.EmotionStore
	observations *sqlite.ObservationStore

	mu          sync.Mutex
	subscribers []func(ObservationRecorded)
}

// NewLedger creates a Ledger over the given database
func NewLedger(db *sqlite.DB) *Ledger {
	return &Ledger{
		emotions:     sqlite.NewEmotionStore(db),
		observations: sqlite.NewObservationStore(db),
	}
}

// Subscribe registers a callback invoked after every successful record.
// Callbacks run synchronously on the recording goroutine.
func (l *Ledger) Subscribe(fn func(ObservationRecorded)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subscribers = append(l.subscribers, fn)
}

// RecordObservation appends one ledger entry. The emotion word is resolved
// (created on first use), every pillar key is resolved with the first as
// primary, and the row plus its full association set commit atomically.
// The snapshot is deliberately not recomputed here; that cost is paid by a
// separate job so writes stay fast.
func (l *Ledger) RecordObservation(dyadID int64, emotionWord string, pillarKeys []string, content string, category models.EmotionCategory) (int64, error) {
	if models.NormalizeEmotionWord(emotionWord) == "" {
		return 0, &models.ValidationError{Field: "emotion", Reason: "must not be empty"}
	}
	if content == "" {
		return 0, &models.ValidationError{Field: "content", Reason: "must not be empty"}
	}

	emotionID, err := l.emotions.Resolve(dyadID, emotionWord, category)
	if err != nil {
		return 0, err
	}

	// Single-pillar callers that pass nothing get the historical default
	if len(pillarKeys) == 0 {
		pillarKeys = []string{"SELF_AWARENESS"}
	}
	pillarIDs := make([]models.PillarID, len(pillarKeys))
	for i, key := range pillarKeys {
		pillarIDs[i] = models.ResolvePillarKey(key)
	}
	primary := pillarIDs[0]

	observationID, err := l.observations.Insert(dyadID, primary, pillarIDs, emotionID, content)
	if err != nil {
		return 0, err
	}

	l.notify(ObservationRecorded{DyadID: dyadID, ObservationID: observationID})
	return observationID, nil
}

func (l *Ledger) notify(event ObservationRecorded) {
	l.mu.Lock()
	subs := make([]func(ObservationRecorded), len(l.subscribers))
	copy(subs, l.subscribers)
	l.mu.Unlock()

	for _, fn := range subs {
		fn(event)
	}
}

// Recent returns the newest observations with decorations attached
func (l *Ledger) Recent(dyadID int64, limit int) ([]*models.Observation, error) {
	return l.observations.Recent(dyadID, limit)
}

// Count returns the total observation count for a dyad
func (l *Ledger) Count(dyadID int64) (int, error) {
	return l.observations.Count(dyadID)
}

// PillarSet exposes an observation's association set (debug surface)
func (l *Ledger) PillarSet(observationID int64) ([]models.Pillar, error) {
	return l.observations.PillarSet(observationID)
}
