// ABOUTME: Tests for MCP tool handlers against an in-memory database
// ABOUTME: Verifies argument validation and tool result payloads

package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/binary-home/internal/core"
	"github.com/harper/binary-home/internal/statestore"
	"github.com/harper/binary-home/internal/storage/sqlite"
)

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()

	db, err := sqlite.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return &Handlers{
		ledger:     core.NewLedger(db),
		aggregator: core.NewAggregator(db),
		emotions:   sqlite.NewEmotionStore(db),
		states:     statestore.NewFileStore(filepath.Join(t.TempDir(), "state.json")),
		uplinkDir:  t.TempDir(),
		dyadID:     1,
	}
}

func toolRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultPayload(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	if result.IsError {
		t.Fatalf("tool returned error: %+v", result.Content)
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("content is not text: %+v", result.Content[0])
	}
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Fatalf("decoding payload %q: %v", text.Text, err)
	}
	return payload
}

func TestLogObservation(t *testing.T) {
	h := newTestHandlers(t)

	result, err := h.LogObservation(context.Background(), toolRequest(map[string]interface{}{
		"emotion": "grateful",
		"content": "said thank you out loud",
		"pillars": []interface{}{"SELF_MANAGEMENT", "social-awareness"},
	}))
	if err != nil {
		t.Fatalf("LogObservation() error = %v", err)
	}

	payload := resultPayload(t, result)
	if payload["success"] != true {
		t.Error("success != true")
	}
	pillars := payload["pillars"].([]interface{})
	if len(pillars) != 2 {
		t.Errorf("pillars has %d entries, want 2", len(pillars))
	}
}

func TestLogObservation_MissingArguments(t *testing.T) {
	h := newTestHandlers(t)

	result, err := h.LogObservation(context.Background(), toolRequest(map[string]interface{}{
		"content": "no emotion given",
	}))
	if err != nil {
		t.Fatalf("LogObservation() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for missing emotion")
	}
}

func TestDefineEmotion_ExplicitScores(t *testing.T) {
	h := newTestHandlers(t)

	result, err := h.DefineEmotion(context.Background(), toolRequest(map[string]interface{}{
		"word":       "Wistful",
		"category":   "sad",
		"e_i":        float64(-5),
		"t_f":        float64(50),
		"definition": "missing something that was good",
	}))
	if err != nil {
		t.Fatalf("DefineEmotion() error = %v", err)
	}

	payload := resultPayload(t, result)
	emotion := payload["emotion"].(map[string]interface{})
	if emotion["word"] != "wistful" {
		t.Errorf("word = %v, want case-folded wistful", emotion["word"])
	}
	scores := emotion["scores"].(map[string]interface{})
	if scores["e_i"].(float64) != -5 {
		t.Errorf("e_i = %v, want explicit -5", scores["e_i"])
	}
	if scores["t_f"].(float64) != 50 {
		t.Errorf("t_f = %v, want explicit 50", scores["t_f"])
	}
	// Unspecified axes fill from the sad category defaults
	if scores["s_n"].(float64) != 20 {
		t.Errorf("s_n = %v, want category default 20", scores["s_n"])
	}
}

func TestGetSnapshot_Refresh(t *testing.T) {
	h := newTestHandlers(t)

	if _, err := h.ledger.RecordObservation(1, "joyful", nil, "good day", "positive"); err != nil {
		t.Fatalf("RecordObservation() error = %v", err)
	}

	result, err := h.GetSnapshot(context.Background(), toolRequest(map[string]interface{}{
		"refresh": true,
	}))
	if err != nil {
		t.Fatalf("GetSnapshot() error = %v", err)
	}

	payload := resultPayload(t, result)
	if payload["mbti"] != "ESTJ" {
		t.Errorf("mbti = %v, want ESTJ", payload["mbti"])
	}
	if payload["observation_count"].(float64) != 1 {
		t.Errorf("observation_count = %v, want 1", payload["observation_count"])
	}
}

func TestGetSnapshot_EmptyLedgerDefaults(t *testing.T) {
	h := newTestHandlers(t)

	result, err := h.GetSnapshot(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("GetSnapshot() error = %v", err)
	}

	payload := resultPayload(t, result)
	if payload["mbti"] != "INFP" {
		t.Errorf("mbti = %v, want INFP", payload["mbti"])
	}
	if payload["confidence"].(float64) != 1.0 {
		t.Errorf("confidence = %v, want default 1.0", payload["confidence"])
	}
}

func TestRecentObservations(t *testing.T) {
	h := newTestHandlers(t)

	for _, word := range []string{"calm", "tense", "calm"} {
		if _, err := h.ledger.RecordObservation(1, word, nil, "entry for "+word, "neutral"); err != nil {
			t.Fatalf("RecordObservation() error = %v", err)
		}
	}

	result, err := h.RecentObservations(context.Background(), toolRequest(map[string]interface{}{
		"limit": float64(2),
	}))
	if err != nil {
		t.Fatalf("RecentObservations() error = %v", err)
	}

	payload := resultPayload(t, result)
	if payload["count"].(float64) != 2 {
		t.Errorf("count = %v, want 2", payload["count"])
	}
}

func TestAddNote(t *testing.T) {
	h := newTestHandlers(t)

	result, err := h.AddNote(context.Background(), toolRequest(map[string]interface{}{
		"content": "come look at the moon",
		"from":    "Fox",
	}))
	if err != nil {
		t.Fatalf("AddNote() error = %v", err)
	}

	payload := resultPayload(t, result)
	note := payload["note"].(map[string]interface{})
	if note["from"] != "fox" {
		t.Errorf("from = %v, want case-folded fox", note["from"])
	}

	state, err := h.states.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(state.Notes) != 1 {
		t.Errorf("state has %d notes, want 1", len(state.Notes))
	}
}

func TestMergeNotes_NoCloud(t *testing.T) {
	h := newTestHandlers(t)

	result, err := h.MergeNotes(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("MergeNotes() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error when cloud is not configured")
	}
}

func TestNudgeLove(t *testing.T) {
	h := newTestHandlers(t)

	result, err := h.NudgeLove(context.Background(), toolRequest(map[string]interface{}{
		"direction": "soft",
		"emotion":   "tender",
	}))
	if err != nil {
		t.Fatalf("NudgeLove() error = %v", err)
	}

	payload := resultPayload(t, result)
	meter := payload["loveOMeter"].(map[string]interface{})
	if meter["alexScore"].(float64) != 1 {
		t.Errorf("alexScore = %v, want 1 via soft alias", meter["alexScore"])
	}
	if meter["alexEmotion"] != "tender" {
		t.Errorf("alexEmotion = %v", meter["alexEmotion"])
	}
}

func TestNudgeLove_UnknownDirection(t *testing.T) {
	h := newTestHandlers(t)

	result, err := h.NudgeLove(context.Background(), toolRequest(map[string]interface{}{
		"direction": "sideways",
	}))
	if err != nil {
		t.Fatalf("NudgeLove() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for unknown direction")
	}
}

func TestPartnerStatus(t *testing.T) {
	h := newTestHandlers(t)

	result, err := h.PartnerStatus(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("PartnerStatus() error = %v", err)
	}

	payload := resultPayload(t, result)
	fox := payload["foxState"].(map[string]interface{})
	if fox["spoons"].(float64) != 3 {
		t.Errorf("spoons = %v, want seed 3", fox["spoons"])
	}
	if payload["uplink_sync"] != false {
		t.Error("uplink_sync should be false without sync_uplink")
	}
}

func TestResolvePillar(t *testing.T) {
	h := newTestHandlers(t)

	tests := []struct {
		key      string
		wantID   float64
		wantName string
	}{
		{"relationship-management", 4, "Relationship Management"},
		{"SELF_MANAGEMENT", 1, "Self-Management"},
		{"made_up_key", 2, "Self-Awareness"},
	}

	for _, tt := range tests {
		result, err := h.ResolvePillar(context.Background(), toolRequest(map[string]interface{}{
			"key": tt.key,
		}))
		if err != nil {
			t.Fatalf("ResolvePillar(%q) error = %v", tt.key, err)
		}
		payload := resultPayload(t, result)
		if payload["pillar_id"].(float64) != tt.wantID {
			t.Errorf("ResolvePillar(%q) id = %v, want %v", tt.key, payload["pillar_id"], tt.wantID)
		}
		if payload["pillar_name"] != tt.wantName {
			t.Errorf("ResolvePillar(%q) name = %v, want %v", tt.key, payload["pillar_name"], tt.wantName)
		}
	}
}
