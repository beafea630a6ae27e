// Package catalog holds the static task pools. Everything in here is shared
// and immutable; callers must not modify the returned slices.
package catalog

import "github.com/dareloop/dareloop/internal/models"

// base is the standard draw pool. Weighting is implicit: every entry is
// equally likely once the draw falls through the bonus tiers.
var base = []models.Task{
	{Text: "Tell the group your most embarrassing moment", Category: models.CategoryMild, Points: 1},
	{Text: "Do your best impression of another player", Category: models.CategoryMild, Points: 1},
	{Text: "Speak in an accent until your next turn", Category: models.CategoryMild, Points: 1},
	{Text: "Let the group pick your nickname for the rest of the game", Category: models.CategoryMild, Points: 1},
	{Text: "Sing the chorus of the last song you listened to", Category: models.CategoryMild, Points: 2},
	{Text: "Show the group the last photo in your camera roll", Category: models.CategoryMild, Points: 2},
	{Text: "Text somebody 'I know what you did' and show the reply", Category: models.CategoryRisky, Points: 3},
	{Text: "Let the player to your left write your next chat message", Category: models.CategoryRisky, Points: 2},
	{Text: "Reveal your screen time for the last week", Category: models.CategoryRisky, Points: 2},
	{Text: "Call the third contact in your phone and sing to them", Category: models.CategoryRisky, Points: 4},
	{Text: "Tell the group about your worst date ever", Category: models.CategoryRisky, Points: 3},
	{Text: "Let the group scroll your camera roll for 10 seconds", Category: models.CategoryRisky, Points: 4},
	{Text: "Confess something nobody in the group knows about you", Category: models.CategoryIntimate, Points: 4},
	{Text: "Tell the player opposite you what you first thought of them", Category: models.CategoryIntimate, Points: 3},
	{Text: "Describe your ideal partner using only three words", Category: models.CategoryIntimate, Points: 3},
	{Text: "Rank everyone in the group by who you'd trust with a secret", Category: models.CategoryIntimate, Points: 4},
	{Text: "Show your best dance move on camera", Category: models.CategoryMild, Points: 2, IsWebcamTask: true},
	{Text: "Strike a dramatic pose on camera and hold it for 15 seconds", Category: models.CategoryRisky, Points: 3, IsWebcamTask: true},
	{Text: "Remove one item of clothing of your choice", Category: models.CategoryIntimate, Points: 5, IsWebcamTask: true},
	{Text: "Do 10 push-ups on camera", Category: models.CategoryRisky, Points: 3, IsWebcamTask: true},
	{Text: "Miss a turn", Category: models.CategoryPenalty, Points: 0, IsPenalty: true},
	{Text: "Lose 2 points for hesitating", Category: models.CategoryPenalty, Points: -2},
	{Text: "Give 3 of your points to the player with the lowest score", Category: models.CategoryPenalty, Points: -3},
	{Text: "Score swap: choose a player and trade scores with them", Category: models.CategoryBonus, Points: 0, IsSpecial: true},
}

// bonus is the secondary pool hit on a sub-10% roll. The rare entry lives
// here too but is selected by its own threshold, never by the uniform bonus
// pick. The special score-swap task sits in the base pool instead, since the
// bonus pick excludes special entries.
var bonus = []models.Task{
	{Text: "Double or nothing: complete any dare the group picks for 6 points", Category: models.CategoryBonus, Points: 6},
	{Text: "Free pass: bank 3 points, no task required", Category: models.CategoryBonus, Points: 3},
	{Text: "Steal 2 points from the player in the lead", Category: models.CategoryBonus, Points: 2},
	{Text: "Everyone else loses a point; you gain one", Category: models.CategoryBonus, Points: 1},
	{Text: "Golden draw! Bank 5 points", Category: models.CategoryBonus, Points: 5, IsRare: true},
}

var ultimate = models.Task{
	Text:       "ULTIMATE: the group invents one task for you; complete it for 10 points",
	Category:   models.CategoryUltimate,
	Points:     10,
	IsUltimate: true,
}

// Base returns the standard pool.
func Base() []models.Task { return base }

// Bonus returns the bonus pool including the rare entry.
func Bonus() []models.Task { return bonus }

// BonusRegular returns the bonus entries eligible for the uniform bonus pick,
// excluding rare and special tasks.
func BonusRegular() []models.Task {
	out := make([]models.Task, 0, len(bonus))
	for _, t := range bonus {
		if t.IsRare || t.IsSpecial {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Rare returns the rare bonus task that feeds the ultimate counter.
func Rare() models.Task {
	for _, t := range bonus {
		if t.IsRare {
			return t
		}
	}
	return models.Task{}
}

// Special returns the deferred-completion score-swap task.
func Special() models.Task {
	for _, t := range base {
		if t.IsSpecial {
			return t
		}
	}
	return models.Task{}
}

// Ultimate returns the ultimate task awarded after three rare draws.
func Ultimate() models.Task { return ultimate }
