// internal/engine/winston_test.go
package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftden/draftden/internal/models"
	"github.com/draftden/draftden/internal/rng"
)

// setupWinstonDraft builds an active two-player winston draft seeded with the
// given cards and a fixed shuffle.
func setupWinstonDraft(t *testing.T, cards []models.CardReference) *models.Draft {
	t.Helper()
	d, _ := setupProposedDraft(t, models.FormatWinston, models.DraftConfig{
		PlayerCount:  2,
		DeckBuilding: true,
	})
	d, err := ConfirmDraft(d)
	require.NoError(t, err)
	d, err = StartDraft(d, nil, testNow)
	require.NoError(t, err)
	d, err = InitializeWinston(d, cards, rng.Sequence(0))
	require.NoError(t, err)
	return d
}

func winstonCards(n int) []models.CardReference {
	cards := make([]models.CardReference, n)
	for i := range cards {
		cards[i] = testCard(fmt.Sprintf("w-%d", i), models.RarityCommon)
	}
	return cards
}

func TestInitializeWinston(t *testing.T) {
	d := setupWinstonDraft(t, winstonCards(20))
	w := d.Winston
	require.NotNil(t, w)

	for i := 0; i < models.WinstonPileCount; i++ {
		assert.Len(t, w.Piles[i], 1, "pile %d starts with one card", i)
	}
	assert.Len(t, w.Stack, 17)
	assert.Equal(t, 20, w.CardsRemaining())
	require.NotNil(t, w.ActivePile)
	assert.Equal(t, 0, *w.ActivePile)
	assert.Equal(t, 0, w.ActivePlayerIndex, "seat 0 opens the draft")
}

func TestInitializeWinstonGuards(t *testing.T) {
	d, _ := setupProposedDraft(t, models.FormatStandard, models.DraftConfig{
		PlayerCount: 2, PacksPerPlayer: 1, CardsPerPack: 3,
	})
	_, err := InitializeWinston(d, winstonCards(20), rng.Sequence(0))
	assert.ErrorIs(t, err, ErrInvalidConfig, "only winston drafts can be seeded")

	d2, _ := setupProposedDraft(t, models.FormatWinston, models.DraftConfig{PlayerCount: 2})
	_, err = InitializeWinston(d2, winstonCards(20), rng.Sequence(0))
	assert.ErrorIs(t, err, ErrWrongStatus, "draft must be active")

	d3 := setupWinstonDraft(t, winstonCards(20))
	_, err = InitializeWinston(d3, winstonCards(2), rng.Sequence(0))
	assert.ErrorIs(t, err, ErrTooFewCards)
}

func TestWinstonLook(t *testing.T) {
	d := setupWinstonDraft(t, winstonCards(20))

	cards, err := WinstonLook(d, 0, 0)
	require.NoError(t, err)
	assert.Len(t, cards, 1)

	_, err = WinstonLook(d, 0, 1)
	assert.ErrorIs(t, err, ErrWrongPile, "only the indicated pile may be inspected")

	_, err = WinstonLook(d, 1, 0)
	assert.ErrorIs(t, err, ErrNotYourTurn)
}

func TestWinstonTakeRefillsAndPassesTurn(t *testing.T) {
	d := setupWinstonDraft(t, winstonCards(20))
	taken := d.Winston.Piles[0][0].ScryfallID

	d2, err := WinstonTake(d, 0, testNow)
	require.NoError(t, err)
	assert.Equal(t, 20, totalCards(d), "input draft must not be mutated")

	seat := d2.Seats[0]
	require.Len(t, seat.Pool, 1)
	assert.Equal(t, taken, seat.Pool[0].ScryfallID)
	assert.Equal(t, seat.Pool, seat.Picks)

	w := d2.Winston
	assert.Len(t, w.Piles[0], 1, "the taken pile refills from the stack")
	assert.Len(t, w.Stack, 16)
	assert.Equal(t, 1, w.ActivePlayerIndex, "turn passes after a take")
	require.NotNil(t, w.ActivePile)
	assert.Equal(t, 0, *w.ActivePile)
	assert.Equal(t, 20, totalCards(d2), "taking conserves cards")
}

func TestWinstonPassGrowsPileAndAdvances(t *testing.T) {
	d := setupWinstonDraft(t, winstonCards(20))

	d2, err := WinstonPass(d, 0, testNow)
	require.NoError(t, err)
	w := d2.Winston
	assert.Len(t, w.Piles[0], 2, "the declined pile gains a stack card")
	assert.Len(t, w.Stack, 16)
	assert.Equal(t, 1, *w.ActivePile)
	assert.Equal(t, 0, w.ActivePlayerIndex, "passing a non-final pile keeps the turn")

	_, err = WinstonTake(d2, 1, testNow)
	assert.ErrorIs(t, err, ErrNotYourTurn)
}

func TestWinstonPassLastPileBlindDraws(t *testing.T) {
	d := setupWinstonDraft(t, winstonCards(20))
	var err error
	for i := 0; i < models.WinstonPileCount; i++ {
		d, err = WinstonPass(d, 0, testNow)
		require.NoError(t, err)
	}

	seat := d.Seats[0]
	require.Len(t, seat.Pool, 1, "passing the last pile draws blind from the stack")
	w := d.Winston
	assert.Len(t, w.Piles[0], 2)
	assert.Len(t, w.Piles[1], 2)
	assert.Len(t, w.Piles[2], 1, "the final pile stays as it was")
	assert.Len(t, w.Stack, 14)
	assert.Equal(t, 1, w.ActivePlayerIndex, "a blind draw ends the turn")
	assert.Equal(t, 0, *w.ActivePile)
	assert.Equal(t, 20, totalCards(d))
}

func TestWinstonRunsToCompletion(t *testing.T) {
	// Three cards total: one per pile, empty stack.
	d := setupWinstonDraft(t, winstonCards(3))
	require.Len(t, d.Winston.Stack, 0)
	var err error

	// Player 0 takes pile 0; nothing refills it.
	d, err = WinstonTake(d, 0, testNow)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Winston.CardsRemaining())
	assert.Equal(t, 1, d.Winston.ActivePlayerIndex)

	// Player 1 declines the empty pile 0, then takes pile 1.
	d, err = WinstonPass(d, 1, testNow)
	require.NoError(t, err)
	d, err = WinstonTake(d, 1, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Winston.CardsRemaining())

	// Player 0 walks past two empty piles and takes the last card.
	d, err = WinstonPass(d, 0, testNow)
	require.NoError(t, err)
	d, err = WinstonPass(d, 0, testNow)
	require.NoError(t, err)
	d, err = WinstonTake(d, 0, testNow)
	require.NoError(t, err)

	assert.True(t, IsWinstonComplete(d))
	assert.Equal(t, models.StatusDeckBuilding, d.Status)
	assert.Len(t, d.Seats[0].Pool, 2)
	assert.Len(t, d.Seats[1].Pool, 1)
	assert.Equal(t, 3, totalCards(d), "the draft conserves every seeded card")
}
