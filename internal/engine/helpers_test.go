// internal/engine/helpers_test.go
package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/draftden/draftden/internal/models"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testCard(id string, rarity models.Rarity, colors ...models.Color) models.CardReference {
	return models.CardReference{
		ScryfallID: id,
		Name:       "Card " + id,
		Rarity:     rarity,
		Colors:     colors,
	}
}

// testPack builds a pack of commons with ids "<prefix>-0" .. "<prefix>-n-1".
func testPack(prefix string, n int) models.PackState {
	cards := make([]models.CardReference, n)
	for i := range cards {
		cards[i] = testCard(fmt.Sprintf("%s-%d", prefix, i), models.RarityCommon)
	}
	return models.PackState{ID: uuid.New(), Cards: cards}
}

// setupProposedDraft seats the requested number of players on a fresh draft.
func setupProposedDraft(t *testing.T, format models.DraftFormat, cfg models.DraftConfig) (*models.Draft, []uuid.UUID) {
	t.Helper()
	d, err := CreateDraft(format, cfg, testNow)
	require.NoError(t, err)

	ids := make([]uuid.UUID, cfg.PlayerCount)
	for i := range ids {
		ids[i] = uuid.New()
		d, err = AddPlayer(d, ids[i], fmt.Sprintf("player-%d", i))
		require.NoError(t, err)
	}
	return d, ids
}

// setupActiveDraft takes a standard draft through confirm and start, handing
// pack i to seat i and banking one spare pack per seat per later round.
func setupActiveDraft(t *testing.T, players, packsPerPlayer, cardsPerPack int) *models.Draft {
	t.Helper()
	d, _ := setupProposedDraft(t, models.FormatStandard, models.DraftConfig{
		PlayerCount:    players,
		PacksPerPlayer: packsPerPlayer,
		CardsPerPack:   cardsPerPack,
		DeckBuilding:   true,
	})
	d, err := ConfirmDraft(d)
	require.NoError(t, err)

	packs := make([]models.PackState, 0, players*packsPerPlayer)
	for i := 0; i < players*packsPerPlayer; i++ {
		packs = append(packs, testPack(fmt.Sprintf("p%d", i), cardsPerPack))
	}
	d, err = StartDraft(d, packs, testNow)
	require.NoError(t, err)
	return d
}

// totalCards counts every card a draft tracks across seats, packs, queues,
// the unopened bank, and the winston zones.
func totalCards(d *models.Draft) int {
	n := 0
	for i := range d.Seats {
		seat := &d.Seats[i]
		n += len(seat.Pool)
		if seat.CurrentPack != nil {
			n += len(seat.CurrentPack.Cards)
		}
		for j := range seat.PackQueue {
			n += len(seat.PackQueue[j].Cards)
		}
	}
	for i := range d.UnopenedPacks {
		n += len(d.UnopenedPacks[i].Cards)
	}
	if d.Winston != nil {
		n += d.Winston.CardsRemaining()
	}
	return n
}
