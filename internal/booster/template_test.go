// internal/booster/template_test.go
package booster

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftden/draftden/internal/models"
	"github.com/draftden/draftden/internal/rng"
)

func poolCard(id string, rarity models.Rarity) models.CardReference {
	return models.CardReference{ScryfallID: id, Name: "Card " + id, Rarity: rarity}
}

// fullSetPool builds a pool with enough distinct cards at every rarity plus a
// basic land special pool.
func fullSetPool(perRarity int) *CardPool {
	var cards []models.CardReference
	for _, rarity := range []models.Rarity{
		models.RarityCommon, models.RarityUncommon, models.RarityRare, models.RarityMythic,
	} {
		for i := 0; i < perRarity; i++ {
			cards = append(cards, poolCard(fmt.Sprintf("%s-%d", rarity, i), rarity))
		}
	}
	p := NewCardPool(cards)
	p.Special["land"] = []models.CardReference{
		poolCard("land-0", models.RarityCommon),
		poolCard("land-1", models.RarityCommon),
	}
	return p
}

func TestWeightedRandomIndex(t *testing.T) {
	weights := []int{6, 1}

	assert.Equal(t, 0, WeightedRandomIndex(weights, rng.Sequence(0)), "a zero roll lands in the first bucket")
	assert.Equal(t, 0, WeightedRandomIndex(weights, rng.Sequence(0.85)), "6/7 of the range is the first bucket")
	assert.Equal(t, 1, WeightedRandomIndex(weights, rng.Sequence(0.9)))
	assert.Equal(t, 1, WeightedRandomIndex(weights, rng.Sequence(0.999)))

	assert.Equal(t, 0, WeightedRandomIndex([]int{0, 0}, rng.Sequence(0.5)), "zero total weight defaults to index 0")
}

func TestSelectTemplateByEra(t *testing.T) {
	modern := time.Date(2024, time.August, 2, 0, 0, 0, 0, time.UTC)
	classic := time.Date(2019, time.October, 4, 0, 0, 0, 0, time.UTC)

	tpl := SelectTemplate("blb", modern, nil)
	assert.Equal(t, "play-booster", tpl.Name)
	assert.Len(t, tpl.Slots, 14)

	tpl = SelectTemplate("eld", classic, nil)
	assert.Equal(t, "draft-booster", tpl.Name)
	assert.Len(t, tpl.Slots, 15)

	// The cutover date itself is already play-booster territory.
	tpl = SelectTemplate("mom", time.Date(2023, time.April, 21, 0, 0, 0, 0, time.UTC), nil)
	assert.Equal(t, "play-booster", tpl.Name)

	// Overrides beat the date heuristic.
	custom := &PackTemplate{Name: "custom", Slots: commonSlots(3)}
	tpl = SelectTemplate("eld", classic, map[string]*PackTemplate{"eld": custom})
	assert.Equal(t, "custom", tpl.Name)
}

func TestGeneratePackFillsEverySlot(t *testing.T) {
	pool := fullSetPool(20)
	tpl := DraftBoosterTemplate()

	pack := GeneratePack(pool, tpl, rng.New(7))
	require.Len(t, pack, len(tpl.Slots))

	seen := map[string]bool{}
	commons, uncommons := 0, 0
	for _, c := range pack {
		assert.False(t, seen[c.ScryfallID], "no duplicate within a pack")
		seen[c.ScryfallID] = true
		switch c.Rarity {
		case models.RarityCommon:
			commons++
		case models.RarityUncommon:
			uncommons++
		}
	}
	// 10 commons plus whatever the land slot drew.
	assert.GreaterOrEqual(t, commons, 10)
	assert.Equal(t, 3, uncommons)
}

func TestGeneratePackStampsFoil(t *testing.T) {
	pool := fullSetPool(20)
	tpl := PlayBoosterTemplate()

	pack := GeneratePack(pool, tpl, rng.New(11))
	require.Len(t, pack, len(tpl.Slots))

	foils := 0
	for _, c := range pack {
		if c.Foil {
			foils++
		}
	}
	assert.Equal(t, 1, foils, "exactly one foil wildcard slot")
	assert.False(t, pack[0].Foil)
	assert.True(t, pack[len(pack)-1].Foil, "the foil slot is last in the play booster")
}

func TestGeneratePackFoilDoesNotMutatePool(t *testing.T) {
	pool := fullSetPool(20)
	tpl := PlayBoosterTemplate()

	GeneratePack(pool, tpl, rng.New(3))
	for _, cards := range pool.ByRarity {
		for _, c := range cards {
			assert.False(t, c.Foil, "the source pool is never foil-stamped")
		}
	}
}

func TestGeneratePackTinyPoolAcceptsDuplicates(t *testing.T) {
	// One common total: the duplicate-rejection ladder must give up rather
	// than stall.
	pool := NewCardPool([]models.CardReference{poolCard("only", models.RarityCommon)})
	tpl := &PackTemplate{Name: "tiny", Slots: commonSlots(3)}

	pack := GeneratePack(pool, tpl, rng.New(1))
	require.Len(t, pack, 3)
	for _, c := range pack {
		assert.Equal(t, "only", c.ScryfallID)
	}
}

func TestGeneratePackEmptyRarityFallsDownLadder(t *testing.T) {
	// No mythics or rares; the rare slot degrades to uncommons.
	pool := NewCardPool([]models.CardReference{
		poolCard("u-0", models.RarityUncommon),
		poolCard("u-1", models.RarityUncommon),
		poolCard("c-0", models.RarityCommon),
	})
	tpl := &PackTemplate{Name: "rare-only", Slots: []PackSlot{rareMythicSlot()}}

	pack := GeneratePack(pool, tpl, rng.New(5))
	require.Len(t, pack, 1)
	assert.Equal(t, models.RarityUncommon, pack[0].Rarity)
}

func TestGenerateAllPacksCount(t *testing.T) {
	pool := fullSetPool(30)
	tpl := DraftBoosterTemplate()

	packs := GenerateAllPacks(pool, tpl, rng.New(9), 4, 3)
	assert.Len(t, packs, 12)
	for _, pack := range packs {
		assert.Len(t, pack, len(tpl.Slots))
	}
}
