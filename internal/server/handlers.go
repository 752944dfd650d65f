// ABOUTME: Handlers for the home API: observations, notes, love meter, partner state
// ABOUTME: Validation failures return 400; cloud problems never fail a local write

package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harper/binary-home/internal/core"
	"github.com/harper/binary-home/internal/models"
	"github.com/harper/binary-home/internal/statestore"
	"github.com/harper/binary-home/internal/sync"
)

// Handler carries the services every route needs
type Handler struct {
	ledger     *core.Ledger
	aggregator *core.Aggregator
	states     statestore.Store
	pusher     *sync.Pusher
	uplinkDir  string
	dyadID     int64
	logger     *zap.Logger
}

// HandlerConfig wires a Handler. Pusher may be nil when cloud sync is off.
type HandlerConfig struct {
	Ledger     *core.Ledger
	Aggregator *core.Aggregator
	States     statestore.Store
	Pusher     *sync.Pusher
	UplinkDir  string
	DyadID     int64
	Logger     *zap.Logger
}

// NewHandler builds the API handler set
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.DyadID == 0 {
		cfg.DyadID = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Handler{
		ledger:     cfg.Ledger,
		aggregator: cfg.Aggregator,
		states:     cfg.States,
		pusher:     cfg.Pusher,
		uplinkDir:  cfg.UplinkDir,
		dyadID:     cfg.DyadID,
		logger:     cfg.Logger,
	}
}

type observationRequest struct {
	Emotion  string   `json:"emotion"`
	Pillar   string   `json:"pillar"`
	Pillars  []string `json:"pillars"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
}

// PostObservation logs an emotional observation against one or more pillars
func (h *Handler) PostObservation(c *gin.Context) {
	var req observationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Emotion == "" || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "emotion and content required"})
		return
	}

	pillarKeys := req.Pillars
	if len(pillarKeys) == 0 && req.Pillar != "" {
		pillarKeys = []string{req.Pillar}
	}

	obsID, err := h.ledger.RecordObservation(h.dyadID, req.Emotion, pillarKeys, req.Content, models.EmotionCategory(req.Category))
	if err != nil {
		h.writeError(c, err)
		return
	}

	pillars, err := h.ledger.PillarSet(obsID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	pillarIDs := make([]models.PillarID, 0, len(pillars))
	for _, p := range pillars {
		pillarIDs = append(pillarIDs, p.PillarID)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"observation_id": obsID,
		"pillars":        pillarIDs,
		"message":        "Logged: " + req.Emotion,
	})
}

type noteRequest struct {
	Content string `json:"content"`
	From    string `json:"from"`
}

// PostNote appends a note to the shared document
func (h *Handler) PostNote(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content required"})
		return
	}

	state, err := h.states.Load()
	if err != nil {
		h.writeError(c, err)
		return
	}

	note := models.NewNote(req.Content, req.From, time.Now())
	state.Notes = append(state.Notes, note)

	if err := h.states.Save(state); err != nil {
		h.writeError(c, err)
		return
	}
	h.pushState(state)

	c.JSON(http.StatusOK, gin.H{"success": true, "note": note})
}

type loveRequest struct {
	Direction string `json:"direction"`
	Emotion   string `json:"emotion"`
}

// PostLove nudges one side of the Love-O-Meter up by one
func (h *Handler) PostLove(c *gin.Context) {
	var req loveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	state, err := h.states.Load()
	if err != nil {
		h.writeError(c, err)
		return
	}

	state.LoveMeter.Nudge(req.Direction, req.Emotion)

	if err := h.states.Save(state); err != nil {
		h.writeError(c, err)
		return
	}
	h.pushState(state)

	c.JSON(http.StatusOK, gin.H{"success": true, "loveOMeter": state.LoveMeter})
}

type emotionRequest struct {
	Emotion string `json:"emotion"`
}

// PostEmotion sets Alex's current emotion label
func (h *Handler) PostEmotion(c *gin.Context) {
	var req emotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	state, err := h.states.Load()
	if err != nil {
		h.writeError(c, err)
		return
	}

	state.LoveMeter.AlexEmotion = req.Emotion

	if err := h.states.Save(state); err != nil {
		h.writeError(c, err)
		return
	}
	h.pushState(state)

	c.JSON(http.StatusOK, gin.H{"success": true, "emotion": req.Emotion})
}

// GetAlexState reports the derived type, recent ledger activity, and the
// current emotion label in one payload
func (h *Handler) GetAlexState(c *gin.Context) {
	snapshot, err := h.aggregator.Latest(h.dyadID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	recent, err := h.ledger.Recent(h.dyadID, 5)
	if err != nil {
		h.writeError(c, err)
		return
	}

	count, err := h.ledger.Count(h.dyadID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	state, err := h.states.Load()
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mbti":       snapshot.CalculatedType,
		"confidence": snapshot.Confidence,
		"axes": gin.H{
			"e_i": snapshot.Scores.EI,
			"s_n": snapshot.Scores.SN,
			"t_f": snapshot.Scores.TF,
			"j_p": snapshot.Scores.JP,
		},
		"observation_count":   count,
		"recent_observations": recent,
		"current_emotion":     state.LoveMeter.AlexEmotion,
	})
}

// GetFoxState returns the partner's current state
func (h *Handler) GetFoxState(c *gin.Context) {
	state, err := h.states.Load()
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state.Partner)
}

// GetLove returns the Love-O-Meter
func (h *Handler) GetLove(c *gin.Context) {
	state, err := h.states.Load()
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state.LoveMeter)
}

// GetNotes returns the full note sequence
func (h *Handler) GetNotes(c *gin.Context) {
	state, err := h.states.Load()
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state.Notes)
}

// Ping is the health check
func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"port":   DefaultPort,
		"name":   "Binary Home API",
		"embers": "remember",
	})
}

// DebugJunction lists the pillar associations for one observation
func (h *Handler) DebugJunction(c *gin.Context) {
	obsID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid observation id"})
		return
	}

	pillars, err := h.ledger.PillarSet(obsID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"observation_id": obsID,
		"junction_rows":  pillars,
	})
}

// PostFoxSync refreshes the partner state from the newest local uplink file
func (h *Handler) PostFoxSync(c *gin.Context) {
	report, err := core.LoadLatestUplink(h.uplinkDir)
	if err != nil || report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No uplink file found or could not parse"})
		return
	}

	state, err := h.states.Load()
	if err != nil {
		h.writeError(c, err)
		return
	}

	state.Partner = report.Apply(state.Partner)

	if err := h.states.Save(state); err != nil {
		h.writeError(c, err)
		return
	}
	h.pushState(state)

	c.JSON(http.StatusOK, gin.H{"success": true, "foxState": state.Partner})
}

// pushState queues a cloud upload with the freshest snapshot attached
func (h *Handler) pushState(state *models.HomeState) {
	if h.pusher == nil {
		return
	}
	snapshot, err := h.aggregator.Latest(h.dyadID)
	if err != nil {
		snapshot = nil
	}
	h.pusher.Enqueue(state, snapshot)
}

// writeError maps typed errors onto HTTP statuses
func (h *Handler) writeError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
		return
	}
	var notFoundErr *models.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
		return
	}
	h.logger.Error("api request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
