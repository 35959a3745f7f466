// internal/engine/deck.go
package engine

import (
	"fmt"
	"time"

	"github.com/draftden/draftden/internal/models"
)

// MinDeckSize is the smallest legal deck (spells plus basic lands).
const MinDeckSize = 40

// suggestedLandCount is the land total SuggestLandCounts distributes.
const suggestedLandCount = 17

// MoveCard moves a single card between a seat's deck and sideboard. The
// card must be present in the source zone.
func MoveCard(d *models.Draft, seatPos int, cardID string, toSideboard bool) (*models.Draft, error) {
	if d.Status != models.StatusDeckBuilding {
		return nil, fmt.Errorf("%w: cannot move cards in status %q", ErrWrongStatus, d.Status)
	}
	if seatPos < 0 || seatPos >= len(d.Seats) {
		return nil, fmt.Errorf("%w: seat %d", ErrSeatNotFound, seatPos)
	}
	next := d.Clone()
	seat := &next.Seats[seatPos]
	src, dst := &seat.Deck, &seat.Sideboard
	if !toSideboard {
		src, dst = &seat.Sideboard, &seat.Deck
	}
	for i, c := range *src {
		if c.ScryfallID == cardID {
			*src = append((*src)[:i], (*src)[i+1:]...)
			*dst = append(*dst, c)
			return next, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCardNotInZone, cardID)
}

// SetBasicLands sets a seat's basic land counts directly.
func SetBasicLands(d *models.Draft, seatPos int, lands models.BasicLands) (*models.Draft, error) {
	if d.Status != models.StatusDeckBuilding {
		return nil, fmt.Errorf("%w: cannot set lands in status %q", ErrWrongStatus, d.Status)
	}
	if seatPos < 0 || seatPos >= len(d.Seats) {
		return nil, fmt.Errorf("%w: seat %d", ErrSeatNotFound, seatPos)
	}
	next := d.Clone()
	next.Seats[seatPos].BasicLands = lands
	return next, nil
}

// SuggestLandCounts proposes a 17-land split proportional to the color pips
// observed in the pool. A colorless or empty pool gets an even 5-way split.
func SuggestLandCounts(pool []models.CardReference) models.BasicLands {
	pips := map[models.Color]int{}
	total := 0
	for _, c := range pool {
		for _, col := range c.Colors {
			pips[col]++
			total++
		}
	}

	counts := map[models.Color]int{}
	if total == 0 {
		base := suggestedLandCount / len(models.AllColors)
		rem := suggestedLandCount % len(models.AllColors)
		for i, col := range models.AllColors {
			counts[col] = base
			if i < rem {
				counts[col]++
			}
		}
	} else {
		assigned := 0
		remainders := map[models.Color]int{}
		for _, col := range models.AllColors {
			n := pips[col] * suggestedLandCount / total
			counts[col] = n
			remainders[col] = pips[col]*suggestedLandCount - n*total
			assigned += n
		}
		// rounding leftovers go to the largest fractional remainders
		for assigned < suggestedLandCount {
			best := models.AllColors[0]
			for _, col := range models.AllColors[1:] {
				if remainders[col] > remainders[best] {
					best = col
				}
			}
			counts[best]++
			remainders[best] = -1
			assigned++
		}
	}

	return models.BasicLands{
		Plains:   counts[models.ColorWhite],
		Island:   counts[models.ColorBlue],
		Swamp:    counts[models.ColorBlack],
		Mountain: counts[models.ColorRed],
		Forest:   counts[models.ColorGreen],
	}
}

// IsDeckValid reports whether a seat's deck plus basic lands reaches the
// 40-card minimum.
func IsDeckValid(seat *models.DraftSeat) bool {
	return len(seat.Deck)+seat.BasicLands.Total() >= MinDeckSize
}

// SubmitDeck marks a seat's deck submitted. When the last outstanding seat
// submits, the draft completes.
func SubmitDeck(d *models.Draft, seatPos int, now time.Time) (*models.Draft, error) {
	if d.Status != models.StatusDeckBuilding {
		return nil, fmt.Errorf("%w: cannot submit deck in status %q", ErrWrongStatus, d.Status)
	}
	if seatPos < 0 || seatPos >= len(d.Seats) {
		return nil, fmt.Errorf("%w: seat %d", ErrSeatNotFound, seatPos)
	}
	next := d.Clone()
	next.Seats[seatPos].HasSubmittedDeck = true
	for i := range next.Seats {
		if !next.Seats[i].HasSubmittedDeck {
			return next, nil
		}
	}
	return CompleteDraft(next, now)
}

// UnsubmitDeck retracts a single seat's submission, reopening the draft from
// complete back to deck_building if it had auto-completed.
func UnsubmitDeck(d *models.Draft, seatPos int) (*models.Draft, error) {
	if d.Status != models.StatusDeckBuilding && d.Status != models.StatusComplete {
		return nil, fmt.Errorf("%w: cannot unsubmit deck in status %q", ErrWrongStatus, d.Status)
	}
	if seatPos < 0 || seatPos >= len(d.Seats) {
		return nil, fmt.Errorf("%w: seat %d", ErrSeatNotFound, seatPos)
	}
	next := d.Clone()
	next.Seats[seatPos].HasSubmittedDeck = false
	if next.Status == models.StatusComplete {
		next.Status = models.StatusDeckBuilding
		next.CompletedAt = nil
	}
	return next, nil
}
