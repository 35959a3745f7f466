// internal/engine/winston.go
package engine

import (
	"fmt"
	"time"

	"github.com/draftden/draftden/internal/models"
	"github.com/draftden/draftden/internal/rng"
)

// InitializeWinston seeds an active winston draft: the shared pool is
// shuffled once, each of the three piles gets a single card, and the rest
// forms the face-down stack. Seat 0 starts as the active player at pile 0.
func InitializeWinston(d *models.Draft, cards []models.CardReference, r rng.RNG) (*models.Draft, error) {
	if d.Format != models.FormatWinston {
		return nil, fmt.Errorf("%w: draft format is %q", ErrInvalidConfig, d.Format)
	}
	if d.Status != models.StatusActive {
		return nil, fmt.Errorf("%w: cannot seed winston in status %q", ErrWrongStatus, d.Status)
	}
	if len(d.Seats) != 2 {
		return nil, fmt.Errorf("%w: winston seats exactly 2 players, have %d", ErrInvalidConfig, len(d.Seats))
	}
	if len(cards) < models.WinstonPileCount {
		return nil, fmt.Errorf("%w: have %d", ErrTooFewCards, len(cards))
	}

	pool := models.CloneCards(cards)
	rng.Shuffle(r, pool)

	next := d.Clone()
	w := &models.WinstonState{ActivePlayerIndex: 0}
	for i := 0; i < models.WinstonPileCount; i++ {
		w.Piles[i] = []models.CardReference{pool[i]}
	}
	w.Stack = pool[models.WinstonPileCount:]
	startPile := 0
	w.ActivePile = &startPile
	next.Winston = w
	return next, nil
}

// winstonTurn validates the common preconditions for a winston move and
// returns the cloned draft plus its winston state.
func winstonTurn(d *models.Draft, seatPos int) (*models.Draft, *models.WinstonState, error) {
	if d.Status != models.StatusActive || d.Winston == nil {
		return nil, nil, fmt.Errorf("%w: winston draft not active", ErrWrongStatus)
	}
	if seatPos < 0 || seatPos >= len(d.Seats) {
		return nil, nil, fmt.Errorf("%w: seat %d", ErrSeatNotFound, seatPos)
	}
	if d.Winston.ActivePlayerIndex != seatPos {
		return nil, nil, fmt.Errorf("%w: seat %d is not active", ErrNotYourTurn, seatPos)
	}
	next := d.Clone()
	return next, next.Winston, nil
}

// WinstonLook returns the contents of a pile without mutating state.
// Permitted only on the currently indicated pile.
func WinstonLook(d *models.Draft, seatPos, pileIdx int) ([]models.CardReference, error) {
	if d.Status != models.StatusActive || d.Winston == nil {
		return nil, fmt.Errorf("%w: winston draft not active", ErrWrongStatus)
	}
	w := d.Winston
	if w.ActivePlayerIndex != seatPos {
		return nil, fmt.Errorf("%w: seat %d is not active", ErrNotYourTurn, seatPos)
	}
	if w.ActivePile == nil || *w.ActivePile != pileIdx {
		return nil, fmt.Errorf("%w: asked for pile %d", ErrWrongPile, pileIdx)
	}
	return models.CloneCards(w.Piles[pileIdx]), nil
}

// endWinstonTurn hands the turn to the other player, pointing back at pile 0,
// or finishes the draft when the stack and all piles are empty.
func endWinstonTurn(d *models.Draft, now time.Time) (*models.Draft, error) {
	w := d.Winston
	if IsWinstonComplete(d) {
		w.ActivePile = nil
		return TransitionToDeckBuilding(d, now)
	}
	w.ActivePlayerIndex = (w.ActivePlayerIndex + 1) % len(d.Seats)
	start := 0
	w.ActivePile = &start
	return d, nil
}

// takeInto moves cards into a seat's pool and pick history.
func takeInto(seat *models.DraftSeat, cards []models.CardReference) {
	seat.Pool = append(seat.Pool, cards...)
	seat.Picks = append(seat.Picks, cards...)
}

// WinstonTake moves the active pile into the active player's pool, refills
// the pile with one stack card when any remain, and passes the turn.
func WinstonTake(d *models.Draft, seatPos int, now time.Time) (*models.Draft, error) {
	next, w, err := winstonTurn(d, seatPos)
	if err != nil {
		return nil, err
	}
	if w.ActivePile == nil {
		return nil, fmt.Errorf("%w: no active pile", ErrWrongPile)
	}
	idx := *w.ActivePile
	takeInto(&next.Seats[seatPos], w.Piles[idx])
	w.Piles[idx] = nil
	if len(w.Stack) > 0 {
		w.Piles[idx] = []models.CardReference{w.Stack[0]}
		w.Stack = w.Stack[1:]
	}
	return endWinstonTurn(next, now)
}

// WinstonPass declines the active pile: one stack card is added to it and
// the pointer advances. Passing the last pile triggers a blind draw instead,
// with the top stack card going straight into the player's pool, and the
// turn passes.
func WinstonPass(d *models.Draft, seatPos int, now time.Time) (*models.Draft, error) {
	next, w, err := winstonTurn(d, seatPos)
	if err != nil {
		return nil, err
	}
	if w.ActivePile == nil {
		return nil, fmt.Errorf("%w: no active pile", ErrWrongPile)
	}
	idx := *w.ActivePile

	if idx == models.WinstonPileCount-1 {
		// blind draw
		if len(w.Stack) > 0 {
			takeInto(&next.Seats[seatPos], w.Stack[:1])
			w.Stack = w.Stack[1:]
		}
		return endWinstonTurn(next, now)
	}

	if len(w.Stack) > 0 {
		w.Piles[idx] = append(w.Piles[idx], w.Stack[0])
		w.Stack = w.Stack[1:]
	}
	nextPile := idx + 1
	w.ActivePile = &nextPile
	return next, nil
}

// IsWinstonComplete holds when the stack and all piles are simultaneously
// empty.
func IsWinstonComplete(d *models.Draft) bool {
	if d.Winston == nil {
		return false
	}
	return d.Winston.CardsRemaining() == 0
}
