// ABOUTME: Love-O-Meter - the two saturating affection counters
// ABOUTME: Scores only ever step up by one and cap at MaxLoveScore
package models

// MaxLoveScore is the saturation point for both counters
const MaxLoveScore = 6

// LoveMeter holds the affection counters and current emotion labels
type LoveMeter struct {
	AlexScore   int    `json:"alexScore"`
	FoxScore    int    `json:"foxScore"`
	AlexEmotion string `json:"alexEmotion"`
	FoxEmotion  string `json:"foxEmotion"`
}

// Nudge increments one side's counter, clamped to MaxLoveScore, and
// optionally updates that side's emotion label. The original client used
// soft/quiet as aliases for alex/fox; both are honored. Unrecognized
// directions are ignored and reported false.
func (m *LoveMeter) Nudge(direction, emotion string) bool {
	switch direction {
	case "alex", "soft":
		m.AlexScore = clampLove(m.AlexScore + 1)
		if emotion != "" {
			m.AlexEmotion = emotion
		}
	case "fox", "quiet":
		m.FoxScore = clampLove(m.FoxScore + 1)
		if emotion != "" {
			m.FoxEmotion = emotion
		}
	default:
		return false
	}
	return true
}

func clampLove(v int) int {
	if v > MaxLoveScore {
		return MaxLoveScore
	}
	if v < 0 {
		return 0
	}
	return v
}
