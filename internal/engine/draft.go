// internal/engine/draft.go
//
// The engine is a pure reducer over the Draft aggregate: every operation
// takes a *models.Draft plus arguments and returns a new value, never
// mutating its input and never performing I/O. Clock readings are passed in
// by the caller so the engine owns no scheduler.
package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/draftden/draftden/internal/models"
)

const (
	// MinPlayers and MaxPlayers bound the configured player count.
	MinPlayers = 2
	MaxPlayers = 8
)

// CreateDraft validates the configuration and returns a new draft in the
// proposed state with an empty seat list.
func CreateDraft(format models.DraftFormat, cfg models.DraftConfig, now time.Time) (*models.Draft, error) {
	if cfg.PlayerCount < MinPlayers || cfg.PlayerCount > MaxPlayers {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, cfg.PlayerCount)
	}
	if format != models.FormatWinston {
		if cfg.PacksPerPlayer <= 0 || cfg.CardsPerPack <= 0 {
			return nil, fmt.Errorf("%w: packsPerPlayer and cardsPerPack must be positive", ErrInvalidConfig)
		}
	}
	if cfg.TimerPreset == "" {
		cfg.TimerPreset = models.TimerCompetitive
	}
	if cfg.Pacing == "" {
		cfg.Pacing = models.PacingRealtime
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating draft id: %w", err)
	}
	return &models.Draft{
		ID:        id,
		Format:    format,
		Status:    models.StatusProposed,
		Config:    cfg,
		Seats:     []models.DraftSeat{},
		CreatedAt: now,
	}, nil
}

// AddPlayer seats a player. Legal only while the draft is proposed; rejects
// duplicates and seating beyond the configured player count.
func AddPlayer(d *models.Draft, playerID uuid.UUID, displayName string) (*models.Draft, error) {
	if d.Status != models.StatusProposed {
		return nil, fmt.Errorf("%w: cannot add player in status %q", ErrWrongStatus, d.Status)
	}
	if d.SeatByPlayer(playerID) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrAlreadySeated, playerID)
	}
	if len(d.Seats) >= d.Config.PlayerCount {
		return nil, fmt.Errorf("%w: %d seats", ErrDraftFull, d.Config.PlayerCount)
	}
	next := d.Clone()
	next.Seats = append(next.Seats, models.DraftSeat{
		Position:    len(next.Seats),
		PlayerID:    playerID,
		DisplayName: displayName,
		Picks:       []models.CardReference{},
		Pool:        []models.CardReference{},
	})
	return next, nil
}

// AddBot seats a simulated drafter. Bots get a generated id so seat lookup
// works the same as for humans.
func AddBot(d *models.Draft, displayName string) (*models.Draft, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating bot id: %w", err)
	}
	next, err := AddPlayer(d, id, displayName)
	if err != nil {
		return nil, err
	}
	next.Seats[len(next.Seats)-1].IsBot = true
	return next, nil
}

// RemovePlayer unseats a player and reassigns contiguous positions.
// Legal only while the draft is proposed.
func RemovePlayer(d *models.Draft, playerID uuid.UUID) (*models.Draft, error) {
	if d.Status != models.StatusProposed {
		return nil, fmt.Errorf("%w: cannot remove player in status %q", ErrWrongStatus, d.Status)
	}
	idx := d.SeatByPlayer(playerID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSeatNotFound, playerID)
	}
	next := d.Clone()
	next.Seats = append(next.Seats[:idx], next.Seats[idx+1:]...)
	for i := range next.Seats {
		next.Seats[i].Position = i
	}
	return next, nil
}

// ConfirmDraft locks the seating. Requires proposed status and at least two
// seated players.
func ConfirmDraft(d *models.Draft) (*models.Draft, error) {
	if d.Status != models.StatusProposed {
		return nil, fmt.Errorf("%w: cannot confirm draft in status %q", ErrWrongStatus, d.Status)
	}
	if len(d.Seats) < MinPlayers {
		return nil, fmt.Errorf("%w: have %d", ErrNotEnoughPlayers, len(d.Seats))
	}
	next := d.Clone()
	next.Status = models.StatusConfirmed
	return next, nil
}

// StartDraft moves a confirmed draft to active. For standard and cube
// formats it requires at least playerCount packs, hands pack i to seat i as
// round 1 pick 1, and banks the remainder for later rounds. The winston
// format takes no packs here; the caller seeds it with InitializeWinston.
func StartDraft(d *models.Draft, packs []models.PackState, now time.Time) (*models.Draft, error) {
	if d.Status != models.StatusConfirmed {
		return nil, fmt.Errorf("%w: cannot start draft in status %q", ErrWrongStatus, d.Status)
	}
	next := d.Clone()
	next.Status = models.StatusActive
	t := now
	next.StartedAt = &t

	if next.Format == models.FormatWinston {
		return next, nil
	}

	if len(packs) < len(next.Seats) {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrNotEnoughPacks, len(next.Seats), len(packs))
	}
	next.CurrentPack = 1
	for i := range next.Seats {
		p := packs[i].Clone()
		p.OriginSeat = i
		p.PickNumber = 1
		p.Round = 1
		next.Seats[i].CurrentPack = &p
		rt := now
		next.Seats[i].PackReceivedAt = &rt
	}
	for _, p := range packs[len(next.Seats):] {
		next.UnopenedPacks = append(next.UnopenedPacks, p.Clone())
	}
	return next, nil
}

// TransitionToDeckBuilding seeds each seat's deck with its entire pool and
// an empty sideboard. When deck building is disabled the draft completes
// directly instead.
func TransitionToDeckBuilding(d *models.Draft, now time.Time) (*models.Draft, error) {
	if d.Status != models.StatusActive {
		return nil, fmt.Errorf("%w: cannot enter deck building from status %q", ErrWrongStatus, d.Status)
	}
	if !d.Config.DeckBuilding {
		return CompleteDraft(d, now)
	}
	next := d.Clone()
	next.Status = models.StatusDeckBuilding
	for i := range next.Seats {
		next.Seats[i].Deck = models.CloneCards(next.Seats[i].Pool)
		next.Seats[i].Sideboard = []models.CardReference{}
	}
	return next, nil
}

// CompleteDraft finishes the draft. Legal from active or deck_building.
func CompleteDraft(d *models.Draft, now time.Time) (*models.Draft, error) {
	if d.Status != models.StatusActive && d.Status != models.StatusDeckBuilding {
		return nil, fmt.Errorf("%w: cannot complete draft in status %q", ErrWrongStatus, d.Status)
	}
	next := d.Clone()
	next.Status = models.StatusComplete
	t := now
	next.CompletedAt = &t
	return next, nil
}
