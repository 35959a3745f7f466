// internal/models/booster.go
package models

// SheetEntry is one weighted printing on a booster sheet.
type SheetEntry struct {
	ID     string `json:"id"` // card identifier, "set:collectorNumber" form
	Weight int    `json:"weight"`
	Foil   bool   `json:"foil,omitempty"`
}

// BoosterSheet is a weighted pool of card printings used as a building block
// for a pack's slots.
type BoosterSheet struct {
	Name        string       `json:"name"`
	TotalWeight int          `json:"totalWeight"`
	Cards       []SheetEntry `json:"cards"`
}

// ConfigSlot assigns a card count drawn from one sheet.
type ConfigSlot struct {
	SheetID string `json:"sheetId"`
	Count   int    `json:"count"`
}

// BoosterConfig is one possible sheets-into-slots arrangement for a product,
// chosen by weighted roll among the product's configs.
type BoosterConfig struct {
	Weight int          `json:"weight"`
	Slots  []ConfigSlot `json:"slots"`
}

// BoosterProductData mirrors a real product's printed booster collation.
type BoosterProductData struct {
	SetCode string                  `json:"setCode"`
	Configs []BoosterConfig         `json:"configs"`
	Sheets  map[string]BoosterSheet `json:"sheets"`

	// AllCardIDs flattens every identifier referenced by any sheet, for
	// bulk metadata prefetch by the caller.
	AllCardIDs []string `json:"allCardIds"`
}

// SkeletonCard is a bare identifier drawn during skeleton generation,
// before resolution into a CardReference.
type SkeletonCard struct {
	ID   string `json:"id"`
	Foil bool   `json:"foil,omitempty"`
}
