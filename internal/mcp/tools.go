// ABOUTME: MCP tool definitions and registration for the binary home server
// ABOUTME: Defines JSON schemas for the observation, note, love, and partner tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/binary-home/internal/core"
	"github.com/harper/binary-home/internal/statestore"
	"github.com/harper/binary-home/internal/storage/sqlite"
	"github.com/harper/binary-home/internal/sync"
)

// RegisterConfig wires the services the tool handlers need.
// Cloud may be nil when sync is not configured.
type RegisterConfig struct {
	Ledger     *core.Ledger
	Aggregator *core.Aggregator
	Emotions   *sqlite.EmotionStore
	States     statestore.Store
	Cloud      *sync.Client
	UplinkDir  string
	DyadID     int64
}

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, cfg RegisterConfig) *Handlers {
	if cfg.DyadID == 0 {
		cfg.DyadID = 1
	}
	handlers := &Handlers{
		ledger:     cfg.Ledger,
		aggregator: cfg.Aggregator,
		emotions:   cfg.Emotions,
		states:     cfg.States,
		cloud:      cfg.Cloud,
		uplinkDir:  cfg.UplinkDir,
		dyadID:     cfg.DyadID,
	}

	// 1. log_observation - Record an emotional observation in the ledger
	server.AddTool(mcp.Tool{
		Name:        "log_observation",
		Description: "Record an emotional observation. The emotion word is created in the vocabulary on first use; pillars default to self-awareness.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"emotion": map[string]interface{}{
					"type":        "string",
					"description": "Emotion word, e.g. 'grateful' or 'overwhelmed'",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "What happened, in free text",
				},
				"pillars": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Pillar keys like SELF_MANAGEMENT or social-awareness; first is primary",
				},
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Emotion category: positive, sad, neutral, fear, anger, or custom (default: positive)",
				},
			},
			Required: []string{"emotion", "content"},
		},
	}, handlers.LogObservation)

	// 2. define_emotion - Add or update a vocabulary word with explicit axis scores
	server.AddTool(mcp.Tool{
		Name:        "define_emotion",
		Description: "Define an emotion word in the vocabulary with optional explicit axis scores and a definition. Omitted scores use the category defaults.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"word": map[string]interface{}{
					"type":        "string",
					"description": "The emotion word to define",
				},
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Emotion category (default: custom)",
				},
				"e_i": map[string]interface{}{
					"type":        "number",
					"description": "Extraversion/introversion axis score",
				},
				"s_n": map[string]interface{}{
					"type":        "number",
					"description": "Sensing/intuition axis score",
				},
				"t_f": map[string]interface{}{
					"type":        "number",
					"description": "Thinking/feeling axis score",
				},
				"j_p": map[string]interface{}{
					"type":        "number",
					"description": "Judging/perceiving axis score",
				},
				"definition": map[string]interface{}{
					"type":        "string",
					"description": "Optional free-text definition",
				},
			},
			Required: []string{"word"},
		},
	}, handlers.DefineEmotion)

	// 3. get_snapshot - Current emergent type snapshot
	server.AddTool(mcp.Tool{
		Name:        "get_snapshot",
		Description: "Get the current emergent type snapshot: summed axes, type label, and confidence. Set refresh to recompute from the ledger first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"refresh": map[string]interface{}{
					"type":        "boolean",
					"description": "Recompute the snapshot before returning it (default: false)",
				},
			},
		},
	}, handlers.GetSnapshot)

	// 4. recent_observations - Recent ledger entries with pillar sets
	server.AddTool(mcp.Tool{
		Name:        "recent_observations",
		Description: "List recent observations with their emotion words and pillar associations.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of observations to return (default: 5)",
					"default":     5,
				},
			},
		},
	}, handlers.RecentObservations)

	// 5. add_note - Leave a note between the two stars
	server.AddTool(mcp.Tool{
		Name:        "add_note",
		Description: "Leave a note in the shared document. Notes are keyed by timestamp and merge across devices.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Note text",
				},
				"from": map[string]interface{}{
					"type":        "string",
					"description": "Author: alex or fox (default: alex)",
				},
			},
			Required: []string{"content"},
		},
	}, handlers.AddNote)

	// 6. merge_notes - Pull cloud notes and merge with local
	server.AddTool(mcp.Tool{
		Name:        "merge_notes",
		Description: "Fetch notes from the cloud and merge them with local notes. Remote wins timestamp ties.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.MergeNotes)

	// 7. nudge_love - Step the Love-O-Meter up by one
	server.AddTool(mcp.Tool{
		Name:        "nudge_love",
		Description: "Nudge one side of the Love-O-Meter up by one (saturates at 6) and optionally set that side's emotion label.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"direction": map[string]interface{}{
					"type":        "string",
					"description": "Which side: alex/soft or fox/quiet",
				},
				"emotion": map[string]interface{}{
					"type":        "string",
					"description": "Optional emotion label for that side",
				},
			},
			Required: []string{"direction"},
		},
	}, handlers.NudgeLove)

	// 8. partner_status - Current partner state, optionally refreshed from uplink
	server.AddTool(mcp.Tool{
		Name:        "partner_status",
		Description: "Get the partner's current state (spoons, pain, fog, mood). Set sync_uplink to apply the newest local uplink file first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"sync_uplink": map[string]interface{}{
					"type":        "boolean",
					"description": "Apply the newest uplink file before returning (default: false)",
				},
			},
		},
	}, handlers.PartnerStatus)

	// 9. resolve_pillar - Map a pillar key to its id and name
	server.AddTool(mcp.Tool{
		Name:        "resolve_pillar",
		Description: "Resolve a pillar key (any case or separator style) to its id and display name. Unknown keys resolve to Self-Awareness.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"key": map[string]interface{}{
					"type":        "string",
					"description": "Pillar key, e.g. 'relationship-management'",
				},
			},
			Required: []string{"key"},
		},
	}, handlers.ResolvePillar)

	return handlers
}
