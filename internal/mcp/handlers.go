// ABOUTME: MCP tool handler implementations for the binary home server
// ABOUTME: Tool errors come back as tool results, never as protocol failures
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/binary-home/internal/core"
	"github.com/harper/binary-home/internal/models"
	"github.com/harper/binary-home/internal/statestore"
	"github.com/harper/binary-home/internal/storage/sqlite"
	"github.com/harper/binary-home/internal/sync"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	ledger     *core.Ledger
	aggregator *core.Aggregator
	emotions   *sqlite.EmotionStore
	states     statestore.Store
	cloud      *sync.Client
	uplinkDir  string
	dyadID     int64
}

// LogObservation handles the log_observation tool
func (h *Handlers) LogObservation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	emotion, err := request.RequireString("emotion")
	if err != nil {
		return mcp.NewToolResultError("emotion argument is required and must be a string"), nil
	}
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content argument is required and must be a string"), nil
	}

	pillars := request.GetStringSlice("pillars", nil)
	category := models.EmotionCategory(request.GetString("category", "positive"))

	obsID, err := h.ledger.RecordObservation(h.dyadID, emotion, pillars, content, category)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to record observation: %v", err)), nil
	}

	pillarSet, err := h.ledger.PillarSet(obsID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read pillar set: %v", err)), nil
	}

	response := map[string]interface{}{
		"success":        true,
		"observation_id": obsID,
		"pillars":        pillarSet,
		"message":        fmt.Sprintf("Logged: %s", emotion),
	}
	return jsonResult(response)
}

// DefineEmotion handles the define_emotion tool
func (h *Handlers) DefineEmotion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	word, err := request.RequireString("word")
	if err != nil {
		return mcp.NewToolResultError("word argument is required and must be a string"), nil
	}

	category := models.EmotionCategory(request.GetString("category", "custom"))
	definition := request.GetString("definition", "")

	// Explicit scores only count when at least one axis was provided;
	// absent axes fill in from the category defaults.
	args := request.GetArguments()
	var scores *models.AxisScores
	if hasAnyKey(args, "e_i", "s_n", "t_f", "j_p") {
		s := models.DefaultAxisScores(category)
		s.EI = request.GetInt("e_i", s.EI)
		s.SN = request.GetInt("s_n", s.SN)
		s.TF = request.GetInt("t_f", s.TF)
		s.JP = request.GetInt("j_p", s.JP)
		scores = &s
	}

	id, err := h.emotions.Define(h.dyadID, word, category, scores, definition)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to define emotion: %v", err)), nil
	}

	defined, err := h.emotions.GetByID(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read back emotion: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"success": true,
		"emotion": defined,
	})
}

// GetSnapshot handles the get_snapshot tool
func (h *Handlers) GetSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	refresh := request.GetBool("refresh", false)

	var snapshot *models.AxisSnapshot
	var err error
	if refresh {
		snapshot, err = h.aggregator.Refresh(h.dyadID)
	} else {
		snapshot, err = h.aggregator.Latest(h.dyadID)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get snapshot: %v", err)), nil
	}

	count, err := h.ledger.Count(h.dyadID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to count observations: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"mbti":              snapshot.CalculatedType,
		"confidence":        snapshot.Confidence,
		"axes":              snapshot.Scores,
		"observation_count": count,
	})
}

// RecentObservations handles the recent_observations tool
func (h *Handlers) RecentObservations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 5)
	if limit < 1 {
		limit = 5
	}

	observations, err := h.ledger.Recent(h.dyadID, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list observations: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"count":        len(observations),
		"observations": observations,
	})
}

// AddNote handles the add_note tool
func (h *Handlers) AddNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content argument is required and must be a string"), nil
	}
	from := request.GetString("from", "alex")

	state, err := h.states.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load state: %v", err)), nil
	}

	note := models.NewNote(content, from, time.Now())
	state.Notes = append(state.Notes, note)

	if err := h.states.Save(state); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save state: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"success": true,
		"note":    note,
	})
}

// MergeNotes handles the merge_notes tool
func (h *Handlers) MergeNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.cloud == nil || !h.cloud.Enabled() {
		return mcp.NewToolResultError("cloud sync is not configured"), nil
	}

	doc, err := h.cloud.Fetch(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("could not fetch from cloud: %v", err)), nil
	}

	state, err := h.states.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load state: %v", err)), nil
	}

	before := len(state.Notes)
	state.Notes = core.MergeNotes(state.Notes, doc.Notes)

	if err := h.states.Save(state); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save state: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"success":      true,
		"local_notes":  before,
		"cloud_notes":  len(doc.Notes),
		"merged_notes": len(state.Notes),
		"last_visitor": doc.LastVisitor,
	})
}

// NudgeLove handles the nudge_love tool
func (h *Handlers) NudgeLove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	direction, err := request.RequireString("direction")
	if err != nil {
		return mcp.NewToolResultError("direction argument is required and must be a string"), nil
	}
	emotion := request.GetString("emotion", "")

	state, err := h.states.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load state: %v", err)), nil
	}

	if !state.LoveMeter.Nudge(direction, emotion) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown direction %q: use alex/soft or fox/quiet", direction)), nil
	}

	if err := h.states.Save(state); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save state: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"success":    true,
		"loveOMeter": state.LoveMeter,
	})
}

// PartnerStatus handles the partner_status tool
func (h *Handlers) PartnerStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := h.states.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load state: %v", err)), nil
	}

	synced := false
	if request.GetBool("sync_uplink", false) {
		report, err := core.LoadLatestUplink(h.uplinkDir)
		if err == nil && report != nil {
			state.Partner = report.Apply(state.Partner)
			if err := h.states.Save(state); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to save state: %v", err)), nil
			}
			synced = true
		}
	}

	return jsonResult(map[string]interface{}{
		"foxState":    state.Partner,
		"uplink_sync": synced,
	})
}

// ResolvePillar handles the resolve_pillar tool
func (h *Handlers) ResolvePillar(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key argument is required and must be a string"), nil
	}

	id := models.ResolvePillarKey(key)
	pillar, _ := models.PillarByID(id)

	return jsonResult(map[string]interface{}{
		"pillar_id":   pillar.PillarID,
		"pillar_key":  pillar.Key,
		"pillar_name": pillar.Name,
	})
}

// jsonResult marshals a response map into a text tool result
func jsonResult(response map[string]interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// hasAnyKey reports whether any of the keys is present in the arguments
func hasAnyKey(args map[string]interface{}, keys ...string) bool {
	for _, k := range keys {
		if _, ok := args[k]; ok {
			return true
		}
	}
	return false
}
