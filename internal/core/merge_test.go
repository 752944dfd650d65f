// ABOUTME: Tests for the note merge fold
// ABOUTME: Verifies remote-wins ties, idempotence, and timestamp ordering

package core

import (
	"reflect"
	"testing"

	"github.com/harper/binary-home/internal/models"
)

func TestMergeNotes_RemoteWinsOnTie(t *testing.T) {
	local := []models.Note{{Text: "x", From: "alex", Timestamp: "2026-01-01T10:00:00.000Z"}}
	remote := []models.Note{{Text: "y", From: "fox", Timestamp: "2026-01-01T10:00:00.000Z"}}

	merged := MergeNotes(local, remote)
	if len(merged) != 1 {
		t.Fatalf("merged %d notes, want 1", len(merged))
	}
	if merged[0].Text != "y" || merged[0].From != "fox" {
		t.Errorf("merged[0] = %+v, want remote copy", merged[0])
	}
}

func TestMergeNotes_LocalWinsWhenPassedSecond(t *testing.T) {
	// The tie-break favors whichever sequence is applied last, by design
	a := []models.Note{{Text: "x", From: "alex", Timestamp: "2026-01-01T10:00:00.000Z"}}
	b := []models.Note{{Text: "y", From: "fox", Timestamp: "2026-01-01T10:00:00.000Z"}}

	merged := MergeNotes(b, a)
	if merged[0].Text != "x" {
		t.Errorf("merged[0].Text = %q, want %q (second argument wins)", merged[0].Text, "x")
	}
}

func TestMergeNotes_Idempotent(t *testing.T) {
	local := []models.Note{
		{Text: "one", From: "alex", Timestamp: "2026-01-01T08:00:00.000Z"},
		{Text: "two", From: "alex", Timestamp: "2026-01-02T08:00:00.000Z"},
	}
	remote := []models.Note{
		{Text: "two rewritten", From: "fox", Timestamp: "2026-01-02T08:00:00.000Z"},
		{Text: "three", From: "fox", Timestamp: "2026-01-03T08:00:00.000Z"},
	}

	once := MergeNotes(local, remote)
	twice := MergeNotes(once, remote)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merge not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestMergeNotes_SortsAscendingByTimestamp(t *testing.T) {
	local := []models.Note{
		{Text: "later", From: "alex", Timestamp: "2026-02-01T00:00:00.000Z"},
	}
	remote := []models.Note{
		{Text: "earlier", From: "fox", Timestamp: "2026-01-15T00:00:00.000Z"},
		{Text: "middle", From: "fox", Timestamp: "2026-01-20T00:00:00.000Z"},
	}

	merged := MergeNotes(local, remote)
	want := []string{"earlier", "middle", "later"}
	for i, text := range want {
		if merged[i].Text != text {
			t.Errorf("merged[%d].Text = %q, want %q", i, merged[i].Text, text)
		}
	}
}

func TestMergeNotes_UnparseableTimestampsStayDeterministic(t *testing.T) {
	local := []models.Note{
		{Text: "odd", From: "alex", Timestamp: "banana"},
		{Text: "ok", From: "alex", Timestamp: "2026-01-01T00:00:00.000Z"},
	}
	first := MergeNotes(local, nil)
	second := MergeNotes(local, nil)
	if !reflect.DeepEqual(first, second) {
		t.Error("merge with unparseable timestamps should be deterministic")
	}
	if len(first) != 2 {
		t.Fatalf("merged %d notes, want 2", len(first))
	}
}

func TestMergeNotes_EmptyInputs(t *testing.T) {
	if got := MergeNotes(nil, nil); len(got) != 0 {
		t.Errorf("MergeNotes(nil, nil) = %v, want empty", got)
	}

	remote := []models.Note{{Text: "only", From: "fox", Timestamp: "2026-01-01T00:00:00.000Z"}}
	got := MergeNotes(nil, remote)
	if len(got) != 1 || got[0].Text != "only" {
		t.Errorf("MergeNotes(nil, remote) = %+v", got)
	}
}
