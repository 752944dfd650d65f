// ABOUTME: HTTP client for the cloud home document and the partner uplink feed
// ABOUTME: Remote failures are typed RemoteUnavailableError; callers fall back to local

package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harper/binary-home/internal/models"
)

// Config holds the cloud endpoints and credentials
type Config struct {
	BaseURL   string
	UplinkURL string
	APIKey    string
	Timeout   time.Duration
	Visitor   string
}

// Client talks to the cloud worker that mirrors the home document
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

// NewClient builds a cloud client. A missing visitor id gets a generated
// one so the cloud's lastVisitor field can tell devices apart.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Visitor == "" {
		cfg.Visitor = "binary-home-" + uuid.NewString()[:8]
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Enabled reports whether a cloud endpoint is configured at all
func (c *Client) Enabled() bool {
	return c.cfg.BaseURL != ""
}

// AlexState is the aggregation summary pushed alongside the document
type AlexState struct {
	TypeCode   string  `json:"typeCode,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Date       string  `json:"date,omitempty"`
}

type pushEmotions struct {
	Alex string `json:"alex"`
	Fox  string `json:"fox"`
}

type pushPayload struct {
	AlexScore int           `json:"alexScore"`
	FoxScore  int           `json:"foxScore"`
	Emotions  pushEmotions  `json:"emotions"`
	AlexState AlexState     `json:"alexState"`
	Notes     []models.Note `json:"notes"`
	Visitor   string        `json:"visitor"`
}

// HomeDocument is the cloud's view of the shared state
type HomeDocument struct {
	AlexScore   int           `json:"alexScore"`
	FoxScore    int           `json:"foxScore"`
	Emotions    pushEmotions  `json:"emotions"`
	Notes       []models.Note `json:"notes"`
	LastVisitor string        `json:"lastVisitor"`
}

// Push uploads the home document. The snapshot may be nil when the ledger
// is empty; the cloud just gets an empty alexState object then.
func (c *Client) Push(ctx context.Context, state *models.HomeState, snapshot *models.AxisSnapshot) error {
	if !c.Enabled() {
		return nil
	}

	payload := pushPayload{
		AlexScore: state.LoveMeter.AlexScore,
		FoxScore:  state.LoveMeter.FoxScore,
		Emotions: pushEmotions{
			Alex: state.LoveMeter.AlexEmotion,
			Fox:  state.LoveMeter.FoxEmotion,
		},
		Notes:   state.Notes,
		Visitor: c.cfg.Visitor,
	}
	if payload.Notes == nil {
		payload.Notes = []models.Note{}
	}
	if snapshot != nil {
		payload.AlexState = AlexState{
			TypeCode:   snapshot.CalculatedType,
			Confidence: snapshot.Confidence,
		}
		if !snapshot.SnapshotDate.IsZero() {
			payload.AlexState.Date = snapshot.SnapshotDate.UTC().Format(time.RFC3339)
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return &models.RemoteUnavailableError{Op: "push", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return &models.RemoteUnavailableError{Op: "push", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &models.RemoteUnavailableError{Op: "push", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &models.RemoteUnavailableError{Op: "push", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	c.logger.Debug("pushed home document to cloud",
		zap.String("visitor", c.cfg.Visitor),
		zap.Int("notes", len(payload.Notes)))
	return nil
}

// Fetch downloads the cloud's home document
func (c *Client) Fetch(ctx context.Context) (*HomeDocument, error) {
	if !c.Enabled() {
		return nil, &models.RemoteUnavailableError{Op: "fetch", Err: fmt.Errorf("no cloud endpoint configured")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL, nil)
	if err != nil {
		return nil, &models.RemoteUnavailableError{Op: "fetch", Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &models.RemoteUnavailableError{Op: "fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &models.RemoteUnavailableError{Op: "fetch", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var doc HomeDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, &models.RemoteUnavailableError{Op: "fetch", Err: err}
	}

	c.logger.Debug("fetched home document from cloud",
		zap.String("last_visitor", doc.LastVisitor),
		zap.Int("notes", len(doc.Notes)))
	return &doc, nil
}

// uplinkEntry mirrors the feed's latest record. Numeric fields are
// pointers so an absent field and a reported zero are distinguishable.
type uplinkEntry struct {
	Spoons       *int     `json:"spoons"`
	Pain         *int     `json:"pain"`
	PainLocation string   `json:"painLocation"`
	Fog          *int     `json:"fog"`
	Fatigue      *int     `json:"fatigue"`
	Nausea       *int     `json:"nausea"`
	Mood         string   `json:"mood"`
	Notes        string   `json:"notes"`
	Need         string   `json:"need"`
	Location     string   `json:"location"`
	Flare        string   `json:"flare"`
	Tags         []string `json:"tags"`
	Timestamp    string   `json:"timestamp"`
}

type uplinkFeed struct {
	Latest *uplinkEntry `json:"latest"`
}

// FetchUplink downloads the newest partner uplink from the cloud feed.
// Returns nil with no error when the feed has no entries.
func (c *Client) FetchUplink(ctx context.Context) (*models.PartnerState, error) {
	if c.cfg.UplinkURL == "" {
		return nil, nil
	}

	url := c.cfg.UplinkURL
	if !strings.Contains(url, "?") {
		url += "?limit=1"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &models.RemoteUnavailableError{Op: "fetch uplink", Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &models.RemoteUnavailableError{Op: "fetch uplink", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &models.RemoteUnavailableError{Op: "fetch uplink", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var feed uplinkFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, &models.RemoteUnavailableError{Op: "fetch uplink", Err: err}
	}
	if feed.Latest == nil {
		return nil, nil
	}

	state := feed.Latest.toPartnerState()
	c.logger.Debug("fetched partner uplink from cloud",
		zap.String("timestamp", feed.Latest.Timestamp))
	return &state, nil
}

// toPartnerState converts a feed entry using the client's fallback rules:
// missing numbers take fixed defaults, mood and location take named
// fallbacks, and vitals always use the carried constants.
func (e *uplinkEntry) toPartnerState() models.PartnerState {
	state := models.PartnerState{
		Spoons:       intOr(e.Spoons, 5),
		PainLevel:    intOr(e.Pain, 0),
		PainLocation: e.PainLocation,
		FogLevel:     intOr(e.Fog, 0),
		Fatigue:      intOr(e.Fatigue, 0),
		Nausea:       intOr(e.Nausea, 0),
		HeartRate:    72,
		BodyBattery:  45,
		Status:       e.Mood,
		Note:         e.Notes,
		Location:     e.Location,
		Flare:        e.Flare,
		Tags:         e.Tags,
		LastUplink:   e.Timestamp,
	}
	if state.Status == "" {
		state.Status = "okay"
	}
	if state.Note == "" {
		state.Note = e.Need
	}
	if state.Location == "" {
		state.Location = "The Nest"
	}
	if state.Tags == nil {
		state.Tags = []string{}
	}
	return state
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
