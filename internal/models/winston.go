// internal/models/winston.go
package models

// WinstonPileCount is the fixed number of face-up piles in a winston draft.
const WinstonPileCount = 3

// WinstonState holds the shared draw stack and the three piles for the
// winston format. The stack, the piles, and both players' pools are disjoint
// partitions of one shuffled card pool; their total size is invariant until
// the stack and all piles are simultaneously empty.
type WinstonState struct {
	Stack []CardReference                   `json:"stack"`
	Piles [WinstonPileCount][]CardReference `json:"piles"`

	// ActivePile is the pile index (0-2) the active player is currently
	// deciding on, or nil between turns.
	ActivePile *int `json:"activePile,omitempty"`

	// ActivePlayerIndex indexes into Draft.Seats.
	ActivePlayerIndex int `json:"activePlayerIndex"`
}

// Clone deep-copies the winston state.
func (w *WinstonState) Clone() *WinstonState {
	out := &WinstonState{
		Stack:             CloneCards(w.Stack),
		ActivePlayerIndex: w.ActivePlayerIndex,
	}
	for i := range w.Piles {
		out.Piles[i] = CloneCards(w.Piles[i])
	}
	if w.ActivePile != nil {
		p := *w.ActivePile
		out.ActivePile = &p
	}
	return out
}

// CardsRemaining counts cards still in the stack and piles.
func (w *WinstonState) CardsRemaining() int {
	n := len(w.Stack)
	for i := range w.Piles {
		n += len(w.Piles[i])
	}
	return n
}
