// ABOUTME: PartnerState - denormalized health/mood snapshot for the partner
// ABOUTME: Fed by uplink files or the cloud uplink feed, never by the ledger
package models

// PartnerState mirrors the shape the uplink pipeline produces. Heart rate
// and body battery come from a separate health source and are carried
// forward from the previous state whenever an uplink lacks them.
type PartnerState struct {
	Spoons       int      `json:"spoons"`
	PainLevel    int      `json:"painLevel"`
	PainLocation string   `json:"painLocation"`
	FogLevel     int      `json:"fogLevel"`
	Fatigue      int      `json:"fatigue"`
	Nausea       int      `json:"nausea"`
	HeartRate    int      `json:"hr"`
	BodyBattery  int      `json:"bodyBattery"`
	Status       string   `json:"status"`
	Note         string   `json:"note"`
	Location     string   `json:"location"`
	Flare        string   `json:"flare"`
	Tags         []string `json:"tags,omitempty"`
	LastUplink   string   `json:"lastUplink,omitempty"`
}

// DefaultPartnerState returns the seed state used before any uplink lands
func DefaultPartnerState() PartnerState {
	return PartnerState{
		Spoons:      3,
		PainLevel:   5,
		FogLevel:    4,
		Fatigue:     5,
		Nausea:      0,
		HeartRate:   72,
		BodyBattery: 45,
		Status:      "playful",
		Note:        "Ready to build.",
	}
}
