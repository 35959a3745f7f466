// internal/engine/pick.go
package engine

import (
	"fmt"
	"time"

	"github.com/draftden/draftden/internal/models"
)

// PassDirection returns the seat-position delta for a pack round: odd rounds
// pass toward increasing position ("left"), even rounds toward decreasing.
func PassDirection(round int) int {
	if round%2 == 1 {
		return 1
	}
	return -1
}

// NextSeatPosition returns the neighbor a seat passes to in the given round,
// wrapping modulo the seat count.
func NextSeatPosition(d *models.Draft, pos, round int) int {
	n := len(d.Seats)
	return ((pos+PassDirection(round))%n + n) % n
}

// removeCard takes one card out of a pack by scryfall id. Returns the card
// and whether it was found.
func removeCard(pack *models.PackState, cardID string) (models.CardReference, bool) {
	for i, c := range pack.Cards {
		if c.ScryfallID == cardID {
			pack.Cards = append(pack.Cards[:i], pack.Cards[i+1:]...)
			return c, true
		}
	}
	return models.CardReference{}, false
}

// pick applies the shared pick bookkeeping for a seat: removes the card from
// the seat's current pack into its pool and pick history, bumps the pack's
// pick number, and clears any auto-pick hint. Operates on an already-cloned
// draft.
func pick(d *models.Draft, seatPos int, cardID string) (*models.PackState, error) {
	if d.Status != models.StatusActive {
		return nil, fmt.Errorf("%w: cannot pick in status %q", ErrWrongStatus, d.Status)
	}
	if seatPos < 0 || seatPos >= len(d.Seats) {
		return nil, fmt.Errorf("%w: seat %d", ErrSeatNotFound, seatPos)
	}
	seat := &d.Seats[seatPos]
	if seat.CurrentPack == nil {
		return nil, fmt.Errorf("%w: seat %d", ErrNoCurrentPack, seatPos)
	}
	card, ok := removeCard(seat.CurrentPack, cardID)
	if !ok {
		return nil, fmt.Errorf("%w: %s in pack %s", ErrCardNotInPack, cardID, seat.CurrentPack.ID)
	}
	seat.Picks = append(seat.Picks, card)
	seat.Pool = append(seat.Pool, card)
	seat.CurrentPack.PickNumber++
	seat.QueuedCardID = ""
	return seat.CurrentPack, nil
}

// MakePick records a pick for a seat without passing the pack. Used in batch
// (realtime lockstep) mode, where PassCurrentPacks moves every pack at once
// after all seats have picked.
func MakePick(d *models.Draft, seatPos int, cardID string) (*models.Draft, error) {
	next := d.Clone()
	if _, err := pick(next, seatPos, cardID); err != nil {
		return nil, err
	}
	return next, nil
}

// PassCurrentPacks simultaneously reassigns every seat's current pack to the
// next seat in the round's direction. Pending auto-pick hints are cleared;
// emptied packs are discarded.
func PassCurrentPacks(d *models.Draft, now time.Time) (*models.Draft, error) {
	if d.Status != models.StatusActive {
		return nil, fmt.Errorf("%w: cannot pass packs in status %q", ErrWrongStatus, d.Status)
	}
	next := d.Clone()
	moving := make([]*models.PackState, len(next.Seats))
	for i := range next.Seats {
		moving[i] = next.Seats[i].CurrentPack
		next.Seats[i].CurrentPack = nil
		next.Seats[i].QueuedCardID = ""
	}
	for i, p := range moving {
		if p == nil || len(p.Cards) == 0 {
			continue
		}
		target := NextSeatPosition(next, i, next.CurrentPack)
		next.Seats[target].CurrentPack = p
		t := now
		next.Seats[target].PackReceivedAt = &t
	}
	return next, nil
}

// deliverPack hands a pack to a seat: installed directly when the seat holds
// nothing, otherwise appended to the FIFO queue so packs are always seen in
// arrival order.
func deliverPack(d *models.Draft, targetPos int, p models.PackState, now time.Time) {
	seat := &d.Seats[targetPos]
	if seat.CurrentPack == nil {
		seat.CurrentPack = &p
		t := now
		seat.PackReceivedAt = &t
		return
	}
	seat.PackQueue = append(seat.PackQueue, p)
}

// promoteFromQueue installs the oldest queued pack when the seat's current
// slot is empty.
func promoteFromQueue(d *models.Draft, seatPos int, now time.Time) {
	seat := &d.Seats[seatPos]
	if seat.CurrentPack != nil || len(seat.PackQueue) == 0 {
		return
	}
	p := seat.PackQueue[0]
	seat.PackQueue = append([]models.PackState{}, seat.PackQueue[1:]...)
	seat.CurrentPack = &p
	t := now
	seat.PackReceivedAt = &t
}

// MakePickAndPass records a pick and immediately forwards the shrunk pack to
// the next seat. Used in individual (async) mode where seats run ahead of or
// behind one another. After the pick the seat promotes its oldest queued
// pack, if any.
func MakePickAndPass(d *models.Draft, seatPos int, cardID string, now time.Time) (*models.Draft, error) {
	next := d.Clone()
	pack, err := pick(next, seatPos, cardID)
	if err != nil {
		return nil, err
	}
	next.Seats[seatPos].CurrentPack = nil
	if len(pack.Cards) > 0 {
		target := NextSeatPosition(next, seatPos, pack.Round)
		deliverPack(next, target, *pack, now)
	}
	promoteFromQueue(next, seatPos, now)
	return next, nil
}

// SetQueuedCard records a seat's auto-pick-on-timeout hint.
func SetQueuedCard(d *models.Draft, seatPos int, cardID string) (*models.Draft, error) {
	if d.Status != models.StatusActive {
		return nil, fmt.Errorf("%w: cannot queue a card in status %q", ErrWrongStatus, d.Status)
	}
	if seatPos < 0 || seatPos >= len(d.Seats) {
		return nil, fmt.Errorf("%w: seat %d", ErrSeatNotFound, seatPos)
	}
	next := d.Clone()
	next.Seats[seatPos].QueuedCardID = cardID
	return next, nil
}

// AutoPickCard is the deterministic timer-expiry fallback: the pre-queued
// card when still present, otherwise the first card at the highest rarity.
func AutoPickCard(cards []models.CardReference, queuedCardID string) (models.CardReference, error) {
	if len(cards) == 0 {
		return models.CardReference{}, fmt.Errorf("%w: empty pack", ErrCardNotInPack)
	}
	if queuedCardID != "" {
		for _, c := range cards {
			if c.ScryfallID == queuedCardID {
				return c, nil
			}
		}
	}
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Rarity.Rank() > best.Rarity.Rank() {
			best = c
		}
	}
	return best, nil
}

// IsRoundComplete reports whether no seat holds or queues any pack from the
// current round. Covers both batch and individual passing modes.
func IsRoundComplete(d *models.Draft) bool {
	for i := range d.Seats {
		seat := &d.Seats[i]
		if seat.CurrentPack != nil && len(seat.CurrentPack.Cards) > 0 {
			return false
		}
		for j := range seat.PackQueue {
			if len(seat.PackQueue[j].Cards) > 0 {
				return false
			}
		}
	}
	return true
}

// AdvanceToNextPack opens the next round: each seat receives a fresh banked
// pack. Requires exactly playerCount unopened packs to be available. When
// every round has been drafted the draft moves to deck building (or
// completes, per configuration).
func AdvanceToNextPack(d *models.Draft, now time.Time) (*models.Draft, error) {
	if d.Status != models.StatusActive {
		return nil, fmt.Errorf("%w: cannot advance pack in status %q", ErrWrongStatus, d.Status)
	}
	if !IsRoundComplete(d) {
		return nil, fmt.Errorf("%w: round %d still has packs in flight", ErrWrongStatus, d.CurrentPack)
	}
	if d.CurrentPack >= d.Config.PacksPerPlayer {
		return TransitionToDeckBuilding(d, now)
	}
	if len(d.UnopenedPacks) < len(d.Seats) {
		return nil, fmt.Errorf("%w: need %d fresh packs, have %d", ErrNotEnoughPacks, len(d.Seats), len(d.UnopenedPacks))
	}
	next := d.Clone()
	next.CurrentPack++
	fresh := next.UnopenedPacks[:len(next.Seats)]
	next.UnopenedPacks = append([]models.PackState{}, next.UnopenedPacks[len(next.Seats):]...)
	if len(next.UnopenedPacks) == 0 {
		next.UnopenedPacks = nil
	}
	for i := range next.Seats {
		p := fresh[i]
		p.OriginSeat = i
		p.PickNumber = 1
		p.Round = next.CurrentPack
		next.Seats[i].CurrentPack = &p
		t := now
		next.Seats[i].PackReceivedAt = &t
		next.Seats[i].PackQueue = nil
	}
	return next, nil
}
