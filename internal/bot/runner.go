// internal/bot/runner.go
package bot

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/draftden/draftden/internal/engine"
	"github.com/draftden/draftden/internal/models"
	"github.com/draftden/draftden/internal/rng"
)

// DefaultMaxIterations bounds the runner loop so a malformed state can never
// spin forever.
const DefaultMaxIterations = 2048

// Runner advances every bot seat after a human action until control returns
// to a human or the draft finishes. The loop is synchronous: callers invoke
// it to completion before persisting the resulting snapshot.
type Runner struct {
	RNG rng.RNG

	// IsBot reports whether a seat is simulated. When nil, the seat's own
	// IsBot flag is used.
	IsBot func(seat *models.DraftSeat) bool

	// MaxIterations overrides DefaultMaxIterations when positive.
	MaxIterations int
}

// NewRunner builds a runner treating the given seat positions as bots.
func NewRunner(r rng.RNG, botSeats map[int]bool) *Runner {
	return &Runner{
		RNG:   r,
		IsBot: func(seat *models.DraftSeat) bool { return botSeats[seat.Position] },
	}
}

func (rn *Runner) isBot(seat *models.DraftSeat) bool {
	if rn.IsBot != nil {
		return rn.IsBot(seat)
	}
	return seat.IsBot
}

func (rn *Runner) maxIterations() int {
	if rn.MaxIterations > 0 {
		return rn.MaxIterations
	}
	return DefaultMaxIterations
}

// Run drives bot actions until quiescence: no bot seat can act, the draft
// completed, or the iteration cap was hit (an error).
func (rn *Runner) Run(d *models.Draft, now time.Time) (*models.Draft, error) {
	cur := d
	for i := 0; i < rn.maxIterations(); i++ {
		next, acted, err := rn.step(cur, now)
		if err != nil {
			return nil, err
		}
		if !acted {
			return next, nil
		}
		cur = next
	}
	return nil, fmt.Errorf("bot runner exceeded %d iterations for draft %s", rn.maxIterations(), d.ID)
}

// step performs at most one bot action and reports whether anything moved.
func (rn *Runner) step(d *models.Draft, now time.Time) (*models.Draft, bool, error) {
	switch d.Status {
	case models.StatusActive:
		if d.Format == models.FormatWinston {
			return rn.stepWinston(d, now)
		}
		return rn.stepStandard(d, now)
	case models.StatusDeckBuilding:
		return rn.stepDeckBuilding(d, now)
	default:
		return d, false, nil
	}
}

func (rn *Runner) stepStandard(d *models.Draft, now time.Time) (*models.Draft, bool, error) {
	if engine.IsRoundComplete(d) {
		next, err := engine.AdvanceToNextPack(d, now)
		if err != nil {
			return nil, false, err
		}
		return next, true, nil
	}
	for pos := range d.Seats {
		seat := &d.Seats[pos]
		if !rn.isBot(seat) || seat.CurrentPack == nil || len(seat.CurrentPack.Cards) == 0 {
			continue
		}
		choice, ok := PickCard(seat.CurrentPack.Cards, seat.Pool, rn.RNG)
		if !ok {
			continue
		}
		next, err := engine.MakePickAndPass(d, pos, choice.ScryfallID, now)
		if err != nil {
			return nil, false, err
		}
		log.WithFields(log.Fields{
			"draft": d.ID, "seat": pos, "card": choice.Name,
		}).Debug("bot pick")
		return next, true, nil
	}
	return d, false, nil
}

func (rn *Runner) stepWinston(d *models.Draft, now time.Time) (*models.Draft, bool, error) {
	w := d.Winston
	if w == nil || w.ActivePile == nil || !rn.isBot(&d.Seats[w.ActivePlayerIndex]) {
		return d, false, nil
	}
	pos := w.ActivePlayerIndex
	pile := w.Piles[*w.ActivePile]
	// With the stack empty, passing adds nothing to a pile, so taking any
	// non-empty pile strictly dominates.
	take := WinstonTake(pile, d.Seats[pos].Pool, *w.ActivePile)
	if len(w.Stack) == 0 && len(pile) > 0 {
		take = true
	}
	var (
		next *models.Draft
		err  error
	)
	if take {
		next, err = engine.WinstonTake(d, pos, now)
	} else {
		next, err = engine.WinstonPass(d, pos, now)
	}
	if err != nil {
		return nil, false, err
	}
	return next, true, nil
}

// stepDeckBuilding auto-builds for bot seats: the pool stays as the deck,
// suggested lands are applied, and the deck is submitted.
func (rn *Runner) stepDeckBuilding(d *models.Draft, now time.Time) (*models.Draft, bool, error) {
	for pos := range d.Seats {
		if !rn.isBot(&d.Seats[pos]) || d.Seats[pos].HasSubmittedDeck {
			continue
		}
		next, err := engine.SetBasicLands(d, pos, engine.SuggestLandCounts(d.Seats[pos].Pool))
		if err != nil {
			return nil, false, err
		}
		next, err = engine.SubmitDeck(next, pos, now)
		if err != nil {
			return nil, false, err
		}
		return next, true, nil
	}
	return d, false, nil
}
