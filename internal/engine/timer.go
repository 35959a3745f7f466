// internal/engine/timer.go
package engine

import "github.com/draftden/draftden/internal/models"

// pickTimeBase maps cards-remaining-in-pack to base seconds. The engine owns
// no clock; the calling layer schedules the deadline and invokes
// AutoPickCard when it elapses.
var pickTimeBase = map[int]int{
	1:  0, // auto-pick
	2:  5,
	3:  10,
	4:  10,
	5:  15,
	6:  20,
	7:  20,
	8:  25,
	9:  25,
	10: 30,
	11: 30,
	12: 35,
	13: 35,
	14: 40,
}

// timerMultiplier scales the base schedule per preset.
func timerMultiplier(preset models.TimerPreset) float64 {
	switch preset {
	case models.TimerRelaxed:
		return 1.5
	case models.TimerSpeed:
		return 0.5
	default:
		return 1.0
	}
}

// PickTimeSeconds returns the pick countdown for a pack with the given
// number of cards remaining. The second return is false for the "none"
// preset, meaning the pick is unbounded.
func PickTimeSeconds(cardsRemaining int, preset models.TimerPreset) (int, bool) {
	if preset == models.TimerNone {
		return 0, false
	}
	base, ok := pickTimeBase[cardsRemaining]
	if !ok {
		if cardsRemaining < 1 {
			return 0, true
		}
		base = pickTimeBase[14] // larger packs cap at the top of the table
	}
	return int(float64(base) * timerMultiplier(preset)), true
}
