// ABOUTME: EmotionWord vocabulary entries and category default axis vectors
// ABOUTME: Words are case-folded and unique per dyad
package models

import (
	"strings"
	"time"
)

// EmotionCategory groups vocabulary words and selects a default axis vector
type EmotionCategory string

const (
	CategoryPositive EmotionCategory = "positive"
	CategorySad      EmotionCategory = "sad"
	CategoryNeutral  EmotionCategory = "neutral"
	CategoryFear     EmotionCategory = "fear"
	CategoryAnger    EmotionCategory = "anger"
	CategoryCustom   EmotionCategory = "custom"
)

// IsValid reports whether the category is one of the known values
func (c EmotionCategory) IsValid() bool {
	switch c {
	case CategoryPositive, CategorySad, CategoryNeutral, CategoryFear, CategoryAnger, CategoryCustom:
		return true
	}
	return false
}

// AxisScores is a signed score vector over the four bipolar axes
type AxisScores struct {
	EI int `json:"e_i"`
	SN int `json:"s_n"`
	TF int `json:"t_f"`
	JP int `json:"j_p"`
}

// Add returns the element-wise sum of two vectors
func (a AxisScores) Add(b AxisScores) AxisScores {
	return AxisScores{
		EI: a.EI + b.EI,
		SN: a.SN + b.SN,
		TF: a.TF + b.TF,
		JP: a.JP + b.JP,
	}
}

// TypeCode maps the vector to a four-letter type label, axis by axis in
// E-I, S-N, T-F, J-P order. Convention: score > 0 takes the first pole
// (E, S, T, J); score <= 0 takes the second (I, N, F, P). An all-zero
// vector therefore reads INFP, the application default.
func (a AxisScores) TypeCode() string {
	code := make([]byte, 4)
	pick := func(score int, pos, neg byte) byte {
		if score > 0 {
			return pos
		}
		return neg
	}
	code[0] = pick(a.EI, 'E', 'I')
	code[1] = pick(a.SN, 'S', 'N')
	code[2] = pick(a.TF, 'T', 'F')
	code[3] = pick(a.JP, 'J', 'P')
	return string(code)
}

// categoryDefaults holds the default axis vector seeded for each category
// when a word is created without explicit scores.
var categoryDefaults = map[EmotionCategory]AxisScores{
	CategoryPositive: {EI: 15, SN: 20, TF: 35, JP: 5},
	CategorySad:      {EI: 25, SN: 20, TF: 40, JP: 10},
	CategoryNeutral:  {EI: 10, SN: 15, TF: 15, JP: 0},
	CategoryFear:     {EI: 20, SN: 25, TF: 30, JP: 15},
	CategoryAnger:    {EI: -10, SN: 10, TF: 20, JP: -20},
	CategoryCustom:   {EI: 15, SN: 20, TF: 30, JP: 10},
}

// DefaultAxisScores returns the default vector for a category.
// Unknown or empty categories fall back to positive.
func DefaultAxisScores(c EmotionCategory) AxisScores {
	if s, ok := categoryDefaults[c]; ok {
		return s
	}
	return categoryDefaults[CategoryPositive]
}

// NormalizeEmotionWord case-folds and trims a vocabulary word.
// All lookups and storage go through this.
func NormalizeEmotionWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// EmotionWord is a vocabulary entry mapping a word to its axis vector
type EmotionWord struct {
	EmotionID   int64           `json:"emotion_id"`
	DyadID      int64           `json:"dyad_id"`
	Word        string          `json:"word"`
	Category    EmotionCategory `json:"category"`
	Scores      AxisScores      `json:"scores"`
	Definition  string          `json:"definition,omitempty"`
	UserDefined bool            `json:"user_defined"`
	TimesUsed   int             `json:"times_used"`
	FirstUsed   time.Time       `json:"first_used"`
}
