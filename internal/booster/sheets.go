// internal/booster/sheets.go
//
// Sheet-based weighted generation: models a product's true printed booster
// collation. A weighted roll picks one of the product's configs; each config
// slot draws N cards from a named sheet by weighted sampling without
// replacement within that sheet, per pack. The skeleton phase produces bare
// identifier+foil tuples so a caller can prefetch metadata for only the
// identifiers actually drawn; the resolve phase maps them into final packs.
package booster

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/draftden/draftden/internal/models"
	"github.com/draftden/draftden/internal/rng"
)

// NameLookup maps a card identifier to its display name, when known. Sheet
// duplicate suppression keys by name when a lookup is supplied, so visually
// distinct printings sharing a name still count as duplicates; otherwise it
// keys by raw identifier. Cross-sheet duplicates are permitted.
type NameLookup func(id string) (string, bool)

// chooseConfig rolls among the product's configs by weight.
func chooseConfig(product *models.BoosterProductData, r rng.RNG) (*models.BoosterConfig, error) {
	if len(product.Configs) == 0 {
		return nil, fmt.Errorf("product %s has no booster configs", product.SetCode)
	}
	weights := make([]int, len(product.Configs))
	for i, cfg := range product.Configs {
		weights[i] = cfg.Weight
	}
	return &product.Configs[WeightedRandomIndex(weights, r)], nil
}

// dedupKey returns the key used for a sheet's per-pack "used" set.
func dedupKey(id string, names NameLookup) string {
	if names != nil {
		if name, ok := names(id); ok {
			return name
		}
	}
	return id
}

// drawFromSheet performs one weighted draw, skipping used entries. Bounded
// re-rolls first, then an exhaustive linear scan for any still-unused entry,
// then accept-duplicate as a last resort.
func drawFromSheet(sheet *models.BoosterSheet, used map[string]bool, r rng.RNG, names NameLookup) (models.SheetEntry, bool) {
	if len(sheet.Cards) == 0 {
		return models.SheetEntry{}, false
	}
	total := sheet.TotalWeight
	if total <= 0 {
		for _, e := range sheet.Cards {
			total += e.Weight
		}
	}
	if total <= 0 {
		return models.SheetEntry{}, false
	}

	rollOnce := func() models.SheetEntry {
		roll := r.Next() * float64(total)
		acc := 0.0
		for _, e := range sheet.Cards {
			acc += float64(e.Weight)
			if roll < acc {
				return e
			}
		}
		return sheet.Cards[len(sheet.Cards)-1]
	}

	for attempt := 0; attempt < drawRetries; attempt++ {
		e := rollOnce()
		if !used[dedupKey(e.ID, names)] {
			return e, true
		}
	}
	for _, e := range sheet.Cards {
		if !used[dedupKey(e.ID, names)] {
			return e, true
		}
	}
	return rollOnce(), true
}

// GenerateSkeleton draws one pack's worth of bare identifiers from the
// product's collation data. Requires no external card metadata.
func GenerateSkeleton(product *models.BoosterProductData, r rng.RNG, names NameLookup) ([]models.SkeletonCard, error) {
	cfg, err := chooseConfig(product, r)
	if err != nil {
		return nil, err
	}
	var pack []models.SkeletonCard
	usedBySheet := map[string]map[string]bool{}
	for _, slot := range cfg.Slots {
		sheet, ok := product.Sheets[slot.SheetID]
		if !ok {
			log.WithFields(log.Fields{"set": product.SetCode, "sheet": slot.SheetID}).
				Warn("config references unknown sheet, skipping slot")
			continue
		}
		used := usedBySheet[slot.SheetID]
		if used == nil {
			used = map[string]bool{}
			usedBySheet[slot.SheetID] = used
		}
		for i := 0; i < slot.Count; i++ {
			e, ok := drawFromSheet(&sheet, used, r, names)
			if !ok {
				log.WithFields(log.Fields{"set": product.SetCode, "sheet": slot.SheetID}).
					Warn("sheet exhausted, skipping draw")
				break
			}
			used[dedupKey(e.ID, names)] = true
			pack = append(pack, models.SkeletonCard{ID: e.ID, Foil: e.Foil})
		}
	}
	return pack, nil
}

// GenerateSkeletons draws count packs of skeletons.
func GenerateSkeletons(product *models.BoosterProductData, count int, r rng.RNG, names NameLookup) ([][]models.SkeletonCard, error) {
	packs := make([][]models.SkeletonCard, 0, count)
	for i := 0; i < count; i++ {
		pack, err := GenerateSkeleton(product, r, names)
		if err != nil {
			return nil, err
		}
		packs = append(packs, pack)
	}
	return packs, nil
}

// SkeletonIDs flattens the distinct identifiers across skeleton packs, for
// metadata prefetch.
func SkeletonIDs(packs [][]models.SkeletonCard) []string {
	seen := map[string]bool{}
	var ids []string
	for _, pack := range packs {
		for _, sc := range pack {
			if !seen[sc.ID] {
				seen[sc.ID] = true
				ids = append(ids, sc.ID)
			}
		}
	}
	return ids
}

// ResolvePacks maps skeleton identifiers through resolved card metadata into
// final packs. Unresolvable identifiers are dropped with a diagnostic, never
// a hard error.
func ResolvePacks(skeletons [][]models.SkeletonCard, cards map[string]models.CardReference) [][]models.CardReference {
	packs := make([][]models.CardReference, 0, len(skeletons))
	for _, skeleton := range skeletons {
		pack := make([]models.CardReference, 0, len(skeleton))
		for _, sc := range skeleton {
			c, ok := cards[sc.ID]
			if !ok {
				log.WithField("id", sc.ID).Warn("skeleton identifier unresolved, dropping card")
				continue
			}
			if sc.Foil {
				c = c.WithFoil()
			} else {
				c = c.Clone()
			}
			pack = append(pack, c)
		}
		packs = append(packs, pack)
	}
	return packs
}
