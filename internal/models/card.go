// internal/models/card.go
package models

import "strings"

// Rarity is a card's printed rarity.
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
	RarityMythic   Rarity = "mythic"
)

// Rank returns an ordering value for rarity comparisons (mythic highest).
func (r Rarity) Rank() int {
	switch r {
	case RarityMythic:
		return 4
	case RarityRare:
		return 3
	case RarityUncommon:
		return 2
	case RarityCommon:
		return 1
	default:
		return 0
	}
}

// Color is one of the five mana colors.
type Color string

const (
	ColorWhite Color = "W"
	ColorBlue  Color = "U"
	ColorBlack Color = "B"
	ColorRed   Color = "R"
	ColorGreen Color = "G"
)

// AllColors lists the five colors in WUBRG order.
var AllColors = []Color{ColorWhite, ColorBlue, ColorBlack, ColorRed, ColorGreen}

// BasicLandName maps a color to its basic land card name.
func BasicLandName(c Color) string {
	switch c {
	case ColorWhite:
		return "Plains"
	case ColorBlue:
		return "Island"
	case ColorBlack:
		return "Swamp"
	case ColorRed:
		return "Mountain"
	case ColorGreen:
		return "Forest"
	}
	return ""
}

// CardReference is an immutable card value resolved from the card-data
// collaborator. It is never mutated after creation; the only derived form is
// a clone with the foil flag set (see WithFoil).
type CardReference struct {
	ScryfallID string   `json:"scryfallId"`
	Name       string   `json:"name"`
	ImageSmall string   `json:"imageSmall,omitempty"`
	ImageLarge string   `json:"imageLarge,omitempty"`
	Rarity     Rarity   `json:"rarity"`
	Colors     []Color  `json:"colors"`
	CMC        float64  `json:"cmc"`
	TypeLine   string   `json:"typeLine,omitempty"`
	Foil       bool     `json:"foil,omitempty"`
}

// WithFoil returns a copy of the card with the foil flag set.
func (c CardReference) WithFoil() CardReference {
	out := c
	out.Colors = append([]Color(nil), c.Colors...)
	out.Foil = true
	return out
}

// Clone returns a deep copy of the card.
func (c CardReference) Clone() CardReference {
	out := c
	out.Colors = append([]Color(nil), c.Colors...)
	return out
}

// IsCreature reports whether the type line names a creature.
func (c CardReference) IsCreature() bool {
	return strings.Contains(c.TypeLine, "Creature")
}

// IsColorless reports whether the card has no color identity.
func (c CardReference) IsColorless() bool {
	return len(c.Colors) == 0
}

// CloneCards deep-copies a card slice.
func CloneCards(cards []CardReference) []CardReference {
	if cards == nil {
		return nil
	}
	out := make([]CardReference, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}
