// internal/models/draft.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftFormat selects the drafting protocol.
type DraftFormat string

const (
	FormatStandard DraftFormat = "standard"
	FormatWinston  DraftFormat = "winston"
	FormatCube     DraftFormat = "cube"
)

// PacingMode selects lockstep (realtime) or staggered (async) play.
type PacingMode string

const (
	PacingRealtime PacingMode = "realtime"
	PacingAsync    PacingMode = "async"
)

// DraftStatus is the draft's position in the lifecycle state machine.
// Transitions are one-directional except for the submit -> unsubmit edge,
// which reopens a completed draft back into deck building.
type DraftStatus string

const (
	StatusProposed     DraftStatus = "proposed"
	StatusConfirmed    DraftStatus = "confirmed"
	StatusActive       DraftStatus = "active"
	StatusDeckBuilding DraftStatus = "deck_building"
	StatusComplete     DraftStatus = "complete"
)

// TimerPreset names a pick-timer pacing multiplier.
type TimerPreset string

const (
	TimerRelaxed     TimerPreset = "relaxed"
	TimerCompetitive TimerPreset = "competitive"
	TimerSpeed       TimerPreset = "speed"
	TimerNone        TimerPreset = "none"
)

// DraftConfig holds the settings fixed at draft creation.
type DraftConfig struct {
	PlayerCount     int         `json:"playerCount"`
	PacksPerPlayer  int         `json:"packsPerPlayer"`
	CardsPerPack    int         `json:"cardsPerPack"`
	TimerPreset     TimerPreset `json:"timerPreset"`
	DeckBuilding    bool        `json:"deckBuilding"`
	ShowPickHistory bool        `json:"showPickHistory"`
	Pacing          PacingMode  `json:"pacing"`
	AsyncDeadlineHr int         `json:"asyncDeadlineHr,omitempty"`
	SetCode         string      `json:"setCode,omitempty"`
}

// PackState is one physical pack in flight. It shrinks by exactly one card
// per pick and is discarded once empty, never recycled.
type PackState struct {
	ID         uuid.UUID       `json:"id"`
	OriginSeat int             `json:"originSeat"`
	Cards      []CardReference `json:"cards"`
	PickNumber int             `json:"pickNumber"` // 1-based within this pack
	Round      int             `json:"round"`      // 1..PacksPerPlayer
}

// Clone deep-copies the pack.
func (p PackState) Clone() PackState {
	out := p
	out.Cards = CloneCards(p.Cards)
	return out
}

// BasicLands holds per-type basic land counts for a built deck.
type BasicLands struct {
	Plains   int `json:"plains"`
	Island   int `json:"island"`
	Swamp    int `json:"swamp"`
	Mountain int `json:"mountain"`
	Forest   int `json:"forest"`
}

// Total returns the summed land count.
func (b BasicLands) Total() int {
	return b.Plains + b.Island + b.Swamp + b.Mountain + b.Forest
}

// CountFor returns the land count matching a color.
func (b BasicLands) CountFor(c Color) int {
	switch c {
	case ColorWhite:
		return b.Plains
	case ColorBlue:
		return b.Island
	case ColorBlack:
		return b.Swamp
	case ColorRed:
		return b.Mountain
	case ColorGreen:
		return b.Forest
	}
	return 0
}

// DraftSeat is one participant. Position is 0-based and fixed for the
// draft's lifetime once the draft starts.
type DraftSeat struct {
	Position       int             `json:"position"`
	PlayerID       uuid.UUID       `json:"playerId"`
	DisplayName    string          `json:"displayName"`
	IsBot          bool            `json:"isBot,omitempty"`
	CurrentPack    *PackState      `json:"currentPack,omitempty"`
	PackQueue      []PackState     `json:"packQueue,omitempty"`
	PackReceivedAt *time.Time      `json:"packReceivedAt,omitempty"`
	Picks          []CardReference `json:"picks"`
	Pool           []CardReference `json:"pool"`
	QueuedCardID   string          `json:"queuedCardId,omitempty"`

	// Deck-building state; Deck and Sideboard stay nil until the draft
	// enters deck_building.
	Deck             []CardReference `json:"deck,omitempty"`
	Sideboard        []CardReference `json:"sideboard,omitempty"`
	BasicLands       BasicLands      `json:"basicLands"`
	HasSubmittedDeck bool            `json:"hasSubmittedDeck"`
}

// Clone deep-copies the seat.
func (s DraftSeat) Clone() DraftSeat {
	out := s
	if s.CurrentPack != nil {
		cp := s.CurrentPack.Clone()
		out.CurrentPack = &cp
	}
	if s.PackQueue != nil {
		out.PackQueue = make([]PackState, len(s.PackQueue))
		for i, p := range s.PackQueue {
			out.PackQueue[i] = p.Clone()
		}
	}
	if s.PackReceivedAt != nil {
		t := *s.PackReceivedAt
		out.PackReceivedAt = &t
	}
	out.Picks = CloneCards(s.Picks)
	out.Pool = CloneCards(s.Pool)
	out.Deck = CloneCards(s.Deck)
	out.Sideboard = CloneCards(s.Sideboard)
	return out
}

// Draft is the aggregate root for one simulated draft.
type Draft struct {
	ID     uuid.UUID   `json:"id"`
	Format DraftFormat `json:"format"`
	Status DraftStatus `json:"status"`
	Config DraftConfig `json:"config"`
	Seats  []DraftSeat `json:"seats"`

	// CurrentPack is the 1-based pack round counter (standard/cube).
	CurrentPack int `json:"currentPack"`

	// UnopenedPacks holds generated packs not yet distributed to seats.
	UnopenedPacks []PackState `json:"unopenedPacks,omitempty"`

	// Winston is set only for the winston format.
	Winston *WinstonState `json:"winston,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Clone deep-copies the draft. Engine reducers clone their input and return
// the modified copy, leaving the original untouched.
func (d *Draft) Clone() *Draft {
	out := *d
	out.Seats = make([]DraftSeat, len(d.Seats))
	for i, s := range d.Seats {
		out.Seats[i] = s.Clone()
	}
	if d.UnopenedPacks != nil {
		out.UnopenedPacks = make([]PackState, len(d.UnopenedPacks))
		for i, p := range d.UnopenedPacks {
			out.UnopenedPacks[i] = p.Clone()
		}
	}
	if d.Winston != nil {
		out.Winston = d.Winston.Clone()
	}
	if d.StartedAt != nil {
		t := *d.StartedAt
		out.StartedAt = &t
	}
	if d.CompletedAt != nil {
		t := *d.CompletedAt
		out.CompletedAt = &t
	}
	return &out
}

// SeatByPlayer returns the seat index for a player id, or -1.
func (d *Draft) SeatByPlayer(playerID uuid.UUID) int {
	for i := range d.Seats {
		if d.Seats[i].PlayerID == playerID {
			return i
		}
	}
	return -1
}
