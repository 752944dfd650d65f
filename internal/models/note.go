// ABOUTME: Note shared between the two stars, keyed by its timestamp
// ABOUTME: The timestamp string is the de facto identity used for merge dedup
package models

import (
	"strings"
	"time"
)

// NoteTimestampLayout renders timestamps the way the original client did
// (ISO-8601 with milliseconds, UTC). The trailing Z is appended literally
// so the layout never emits an offset.
const NoteTimestampLayout = "2006-01-02T15:04:05.000"

// Note is a free-text message from one side of the dyad. There is no
// persistent id: two notes with the same timestamp are the same note, and
// the later-applied one wins. That property is load-bearing for sync.
type Note struct {
	Text      string `json:"text"`
	From      string `json:"from"`
	Timestamp string `json:"timestamp"`
}

// NewNote builds a note with a case-folded author and a fresh timestamp.
// Empty authors default to alex, matching the original API.
func NewNote(text, from string, now time.Time) Note {
	author := strings.ToLower(strings.TrimSpace(from))
	if author == "" {
		author = "alex"
	}
	return Note{
		Text:      text,
		From:      author,
		Timestamp: FormatNoteTimestamp(now),
	}
}

// FormatNoteTimestamp formats a time as a note timestamp string
func FormatNoteTimestamp(t time.Time) string {
	return t.UTC().Format(NoteTimestampLayout) + "Z"
}

// noteTimeLayouts are the accepted parse formats, most common first
var noteTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Time parses the note timestamp. ok is false for unparseable values,
// which still participate in merges by raw-string ordering.
func (n Note) Time() (time.Time, bool) {
	for _, layout := range noteTimeLayouts {
		if t, err := time.Parse(layout, n.Timestamp); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
