package models

// Task categories. Catalog tasks carry one of these; custom tasks default to
// CategoryMild unless the author picked another.
const (
	CategoryMild     = "mild"
	CategoryRisky    = "risky"
	CategoryIntimate = "intimate"
	CategoryPenalty  = "penalty"
	CategoryBonus    = "bonus"
	CategoryUltimate = "ultimate"
)

// Task is a single drawable task. Catalog tasks are immutable and shared;
// custom tasks belong to the authoring player's list but can be drawn by
// anyone.
type Task struct {
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
	Category string `json:"category"`
	Points   int    `json:"points"`

	IsWebcamTask bool `json:"isWebcamTask,omitempty"`
	IsUltimate   bool `json:"isUltimate,omitempty"`
	IsRare       bool `json:"isRare,omitempty"`
	IsSpecial    bool `json:"isSpecial,omitempty"`

	// IsPenalty marks the miss-a-turn task, which sets the skip flags
	// instead of awarding points.
	IsPenalty bool `json:"isPenalty,omitempty"`
}
