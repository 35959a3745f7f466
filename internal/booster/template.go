// internal/booster/template.go
//
// Rarity-slot template generation: the fallback pack model used when no
// sheet-based collation data exists for a set. A template is an ordered list
// of slots, each drawing from one or more weighted rarity pools.
package booster

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/draftden/draftden/internal/models"
	"github.com/draftden/draftden/internal/rng"
)

// duplicate-rejection retry budget per slot before falling back to an
// exhaustive scan of the pool.
const drawRetries = 20

// RarityWeight pairs a rarity pool with its relative weight in a slot.
type RarityWeight struct {
	Rarity models.Rarity
	Weight int
}

// PackSlot is one card position in a template.
type PackSlot struct {
	Rarities []RarityWeight
	Foil     bool
	// SpecialPool names a non-rarity pool ("land") drawn from instead.
	SpecialPool string
}

// PackTemplate is an ordered list of slots making up one booster.
type PackTemplate struct {
	Name  string
	Slots []PackSlot
}

// rareMythicSlot is the standard rare slot: rare to mythic at 6:1.
func rareMythicSlot() PackSlot {
	return PackSlot{Rarities: []RarityWeight{
		{Rarity: models.RarityRare, Weight: 6},
		{Rarity: models.RarityMythic, Weight: 1},
	}}
}

func commonSlots(n int) []PackSlot {
	slots := make([]PackSlot, n)
	for i := range slots {
		slots[i] = PackSlot{Rarities: []RarityWeight{{Rarity: models.RarityCommon, Weight: 1}}}
	}
	return slots
}

// PlayBoosterTemplate models the 14-card play booster used by sets released
// on or after the play-booster cutover.
func PlayBoosterTemplate() *PackTemplate {
	slots := commonSlots(6)
	slots = append(slots,
		PackSlot{Rarities: []RarityWeight{ // "the list" style flex slot
			{Rarity: models.RarityCommon, Weight: 7},
			{Rarity: models.RarityUncommon, Weight: 3},
		}},
		PackSlot{Rarities: []RarityWeight{{Rarity: models.RarityUncommon, Weight: 1}}},
		PackSlot{Rarities: []RarityWeight{{Rarity: models.RarityUncommon, Weight: 1}}},
		PackSlot{Rarities: []RarityWeight{{Rarity: models.RarityUncommon, Weight: 1}}},
		rareMythicSlot(),
		PackSlot{SpecialPool: "land"},
		PackSlot{ // wildcard
			Rarities: []RarityWeight{
				{Rarity: models.RarityCommon, Weight: 10},
				{Rarity: models.RarityUncommon, Weight: 6},
				{Rarity: models.RarityRare, Weight: 2},
				{Rarity: models.RarityMythic, Weight: 1},
			},
		},
		PackSlot{ // foil wildcard
			Foil: true,
			Rarities: []RarityWeight{
				{Rarity: models.RarityCommon, Weight: 10},
				{Rarity: models.RarityUncommon, Weight: 6},
				{Rarity: models.RarityRare, Weight: 2},
				{Rarity: models.RarityMythic, Weight: 1},
			},
		},
	)
	return &PackTemplate{Name: "play-booster", Slots: slots}
}

// DraftBoosterTemplate models the classic 15-card draft booster used by
// earlier sets: 10 commons, 3 uncommons, a rare slot, and a land.
func DraftBoosterTemplate() *PackTemplate {
	slots := commonSlots(10)
	slots = append(slots,
		PackSlot{Rarities: []RarityWeight{{Rarity: models.RarityUncommon, Weight: 1}}},
		PackSlot{Rarities: []RarityWeight{{Rarity: models.RarityUncommon, Weight: 1}}},
		PackSlot{Rarities: []RarityWeight{{Rarity: models.RarityUncommon, Weight: 1}}},
		rareMythicSlot(),
		PackSlot{SpecialPool: "land"},
	)
	return &PackTemplate{Name: "draft-booster", Slots: slots}
}

// playBoosterCutover is the release date from which sets ship play boosters.
var playBoosterCutover = time.Date(2023, time.April, 21, 0, 0, 0, 0, time.UTC)

// SelectTemplate picks the template for a set. A caller-supplied override
// list takes precedence; otherwise the set's release date decides the era.
func SelectTemplate(setCode string, releasedAt time.Time, overrides map[string]*PackTemplate) *PackTemplate {
	if tpl, ok := overrides[setCode]; ok {
		return tpl
	}
	if !releasedAt.Before(playBoosterCutover) {
		return PlayBoosterTemplate()
	}
	return DraftBoosterTemplate()
}

// CardPool groups a set's cards by rarity, plus named special pools.
type CardPool struct {
	ByRarity map[models.Rarity][]models.CardReference
	Special  map[string][]models.CardReference
}

// NewCardPool buckets cards by rarity. Callers add special pools directly.
func NewCardPool(cards []models.CardReference) *CardPool {
	p := &CardPool{
		ByRarity: map[models.Rarity][]models.CardReference{},
		Special:  map[string][]models.CardReference{},
	}
	for _, c := range cards {
		p.ByRarity[c.Rarity] = append(p.ByRarity[c.Rarity], c)
	}
	return p
}

// WeightedRandomIndex rolls once and maps the fraction onto the weight
// distribution, returning the chosen index. Zero total weight returns 0.
func WeightedRandomIndex(weights []int, r rng.RNG) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}
	roll := r.Next() * float64(total)
	acc := 0.0
	for i, w := range weights {
		acc += float64(w)
		if roll < acc {
			return i
		}
	}
	return len(weights) - 1
}

// slotPool resolves a slot's drawing pool: the special pool when named,
// otherwise a weighted rarity roll. Falls back through the rarity ladder if
// the chosen pool is empty.
func (p *CardPool) slotPool(slot PackSlot, r rng.RNG) []models.CardReference {
	if slot.SpecialPool != "" {
		if pool := p.Special[slot.SpecialPool]; len(pool) > 0 {
			return pool
		}
		log.WithField("pool", slot.SpecialPool).Warn("special pool empty, substituting commons")
		return p.ByRarity[models.RarityCommon]
	}
	weights := make([]int, len(slot.Rarities))
	for i, rw := range slot.Rarities {
		weights[i] = rw.Weight
	}
	chosen := slot.Rarities[WeightedRandomIndex(weights, r)].Rarity
	if pool := p.ByRarity[chosen]; len(pool) > 0 {
		return pool
	}
	// empty rarity pool: walk down the ladder
	for _, fallback := range []models.Rarity{models.RarityRare, models.RarityUncommon, models.RarityCommon} {
		if pool := p.ByRarity[fallback]; len(pool) > 0 {
			return pool
		}
	}
	return nil
}

// drawFromPool picks one card not already in the pack. Bounded retries, then
// an exhaustive scan, then accept-duplicate so generation never stalls on a
// near-empty pool.
func drawFromPool(pool []models.CardReference, used map[string]bool, r rng.RNG) (models.CardReference, bool) {
	if len(pool) == 0 {
		return models.CardReference{}, false
	}
	for attempt := 0; attempt < drawRetries; attempt++ {
		c := pool[rng.Intn(r, len(pool))]
		if !used[c.ScryfallID] {
			return c, true
		}
	}
	for _, c := range pool {
		if !used[c.ScryfallID] {
			return c, true
		}
	}
	return pool[rng.Intn(r, len(pool))], true
}

// GeneratePack draws one card per template slot, rejecting duplicates
// already placed in this pack and stamping foils where the slot demands.
func GeneratePack(pool *CardPool, tpl *PackTemplate, r rng.RNG) []models.CardReference {
	pack := make([]models.CardReference, 0, len(tpl.Slots))
	used := map[string]bool{}
	for _, slot := range tpl.Slots {
		candidates := pool.slotPool(slot, r)
		c, ok := drawFromPool(candidates, used, r)
		if !ok {
			log.WithField("template", tpl.Name).Warn("no cards available for slot, skipping")
			continue
		}
		used[c.ScryfallID] = true
		if slot.Foil {
			c = c.WithFoil()
		} else {
			c = c.Clone()
		}
		pack = append(pack, c)
	}
	return pack
}

// GenerateAllPacks produces playerCount x packsPerPlayer packs. No
// cross-pack dedup is enforced.
func GenerateAllPacks(pool *CardPool, tpl *PackTemplate, r rng.RNG, playerCount, packsPerPlayer int) [][]models.CardReference {
	packs := make([][]models.CardReference, 0, playerCount*packsPerPlayer)
	for i := 0; i < playerCount*packsPerPlayer; i++ {
		packs = append(packs, GeneratePack(pool, tpl, r))
	}
	return packs
}
