// ABOUTME: Pillar taxonomy - the four fixed emotional-competency categories
// ABOUTME: Resolves loose key spellings to stable pillar ids
package models

import "strings"

// PillarID identifies one of the four fixed pillars
type PillarID int64

const (
	PillarSelfManagement         PillarID = 1
	PillarSelfAwareness          PillarID = 2
	PillarSocialAwareness        PillarID = 3
	PillarRelationshipManagement PillarID = 4
)

// Pillar is one of the four fixed emotional-competency categories
type Pillar struct {
	PillarID PillarID `json:"pillar_id"`
	Key      string   `json:"pillar_key"`
	Name     string   `json:"pillar_name"`
}

// Pillars lists all four pillars in id order
var Pillars = []Pillar{
	{PillarSelfManagement, "SELF_MANAGEMENT", "Self-Management"},
	{PillarSelfAwareness, "SELF_AWARENESS", "Self-Awareness"},
	{PillarSocialAwareness, "SOCIAL_AWARENESS", "Social Awareness"},
	{PillarRelationshipManagement, "RELATIONSHIP_MANAGEMENT", "Relationship Management"},
}

// PillarByID returns the pillar for an id
func PillarByID(id PillarID) (Pillar, bool) {
	for _, p := range Pillars {
		if p.PillarID == id {
			return p, true
		}
	}
	return Pillar{}, false
}

// ResolvePillarKey maps a pillar key to its id. The function is total:
// case and separator style (SELF_MANAGEMENT, self-management, "self management")
// all resolve to the same id, and unrecognized keys fall back to
// Self-Awareness. The silent default is long-standing behavior that stored
// data depends on; callers wanting strictness must pre-validate.
func ResolvePillarKey(key string) PillarID {
	k := strings.ToUpper(strings.TrimSpace(key))
	k = strings.ReplaceAll(k, "-", "_")
	k = strings.ReplaceAll(k, " ", "_")

	switch k {
	case "SELF_MANAGEMENT":
		return PillarSelfManagement
	case "SELF_AWARENESS":
		return PillarSelfAwareness
	case "SOCIAL_AWARENESS":
		return PillarSocialAwareness
	case "RELATIONSHIP_MANAGEMENT":
		return PillarRelationshipManagement
	default:
		return PillarSelfAwareness
	}
}
