// internal/bot/bot.go
//
// Heuristic drafter for simulated seats. Pure scoring with no hidden state:
// every call recomputes commitment from the pool it is given, so decisions
// are replayable with a fixed RNG.
package bot

import (
	"sort"

	"github.com/draftden/draftden/internal/models"
	"github.com/draftden/draftden/internal/rng"
)

// rarityScore is the base value table for a card at each rarity.
var rarityScore = map[models.Rarity]float64{
	models.RarityMythic:   50,
	models.RarityRare:     40,
	models.RarityUncommon: 20,
	models.RarityCommon:   10,
}

const (
	// commitThreshold is the pool size below which the bot picks on rarity
	// alone, before committing to colors.
	commitThreshold = 5

	// offColorFactor is the score multiplier for colored cards outside the
	// committed colors.
	offColorFactor = 0.10

	// thirdColorRatio is how close the third color's pip count must be to
	// the second's before the bot goes three colors.
	thirdColorRatio = 0.6

	// creatureTargetRatio is the desired creature share of the pool;
	// whichever category is under target gets balanceBonus.
	creatureTargetRatio = 0.6
	balanceBonus        = 1.3

	// tieBand: the final pick is uniform among cards scoring within this
	// fraction of the top score.
	tieBand = 0.95
)

// committedColors derives the bot's 2 or 3 colors from the pool's color-pip
// histogram. Three colors only when the third is close behind the second.
func committedColors(pool []models.CardReference) []models.Color {
	counts := map[models.Color]int{}
	for _, c := range pool {
		for _, col := range c.Colors {
			counts[col]++
		}
	}
	ordered := append([]models.Color(nil), models.AllColors...)
	// equal counts keep WUBRG order
	sort.SliceStable(ordered, func(i, j int) bool {
		return counts[ordered[i]] > counts[ordered[j]]
	})
	committed := ordered[:2]
	if counts[ordered[1]] > 0 && float64(counts[ordered[2]]) >= thirdColorRatio*float64(counts[ordered[1]]) && counts[ordered[2]] > 0 {
		committed = ordered[:3]
	}
	return committed
}

func inColors(card models.CardReference, colors []models.Color) bool {
	for _, cc := range card.Colors {
		found := false
		for _, col := range colors {
			if cc == col {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func creatureRatio(pool []models.CardReference) float64 {
	if len(pool) == 0 {
		return 0
	}
	creatures := 0
	for _, c := range pool {
		if c.IsCreature() {
			creatures++
		}
	}
	return float64(creatures) / float64(len(pool))
}

// ScoreCard rates one card against the accumulated pool.
func ScoreCard(card models.CardReference, pool []models.CardReference) float64 {
	score := rarityScore[card.Rarity]
	if len(pool) < commitThreshold {
		return score
	}

	colors := committedColors(pool)
	if !card.IsColorless() && !inColors(card, colors) {
		score *= offColorFactor
	}

	ratio := creatureRatio(pool)
	if card.IsCreature() && ratio < creatureTargetRatio {
		score *= balanceBonus
	} else if !card.IsCreature() && ratio >= creatureTargetRatio {
		score *= balanceBonus
	}
	return score
}

// PickCard returns the card a simulated player takes from a pack, drawing
// uniformly among all cards within the tie band of the top score.
func PickCard(pack []models.CardReference, pool []models.CardReference, r rng.RNG) (models.CardReference, bool) {
	if len(pack) == 0 {
		return models.CardReference{}, false
	}
	scores := make([]float64, len(pack))
	top := 0.0
	for i, c := range pack {
		scores[i] = ScoreCard(c, pool)
		if scores[i] > top {
			top = scores[i]
		}
	}
	var candidates []int
	for i, s := range scores {
		if s >= top*tieBand {
			candidates = append(candidates, i)
		}
	}
	return pack[candidates[rng.Intn(r, len(candidates))]], true
}

// WinstonTake decides whether a simulated player takes the given pile. The
// last pile takes above a low bar because the alternative is a blind draw;
// earlier piles demand progressively higher average value as they shrink.
func WinstonTake(pile []models.CardReference, pool []models.CardReference, pileIdx int) bool {
	if len(pile) == 0 {
		return false
	}
	total := 0.0
	for _, c := range pile {
		total += ScoreCard(c, pool)
	}
	avg := total / float64(len(pile))

	if pileIdx == models.WinstonPileCount-1 {
		return avg > 5
	}
	switch {
	case len(pile) >= 3:
		return avg > 8
	case len(pile) == 2:
		return avg > 15
	default:
		return avg > 25
	}
}
