// internal/engine/draft_test.go
package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftden/draftden/internal/models"
)

func TestCreateDraftValidation(t *testing.T) {
	_, err := CreateDraft(models.FormatStandard, models.DraftConfig{PlayerCount: 1, PacksPerPlayer: 3, CardsPerPack: 15}, testNow)
	assert.ErrorIs(t, err, ErrInvalidPlayerCount, "one player is below the minimum")

	_, err = CreateDraft(models.FormatStandard, models.DraftConfig{PlayerCount: 9, PacksPerPlayer: 3, CardsPerPack: 15}, testNow)
	assert.ErrorIs(t, err, ErrInvalidPlayerCount, "nine players is above the maximum")

	_, err = CreateDraft(models.FormatStandard, models.DraftConfig{PlayerCount: 4}, testNow)
	assert.ErrorIs(t, err, ErrInvalidConfig, "standard drafts need pack dimensions")

	// Winston ignores pack dimensions, so zero values are fine there.
	d, err := CreateDraft(models.FormatWinston, models.DraftConfig{PlayerCount: 2}, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProposed, d.Status)
	assert.Equal(t, models.TimerCompetitive, d.Config.TimerPreset, "timer preset defaults")
	assert.Equal(t, models.PacingRealtime, d.Config.Pacing, "pacing defaults")
	assert.Equal(t, testNow, d.CreatedAt)
}

func TestAddPlayer(t *testing.T) {
	d, err := CreateDraft(models.FormatStandard, models.DraftConfig{PlayerCount: 2, PacksPerPlayer: 1, CardsPerPack: 3}, testNow)
	require.NoError(t, err)

	alice := uuid.New()
	d2, err := AddPlayer(d, alice, "alice")
	require.NoError(t, err)
	assert.Len(t, d.Seats, 0, "input draft must not be mutated")
	require.Len(t, d2.Seats, 1)
	assert.Equal(t, 0, d2.Seats[0].Position)
	assert.Equal(t, alice, d2.Seats[0].PlayerID)

	_, err = AddPlayer(d2, alice, "alice again")
	assert.ErrorIs(t, err, ErrAlreadySeated)

	d3, err := AddPlayer(d2, uuid.New(), "bob")
	require.NoError(t, err)
	_, err = AddPlayer(d3, uuid.New(), "carol")
	assert.ErrorIs(t, err, ErrDraftFull, "seating beyond playerCount is rejected")
}

func TestAddBotMarksSeat(t *testing.T) {
	d, err := CreateDraft(models.FormatStandard, models.DraftConfig{PlayerCount: 2, PacksPerPlayer: 1, CardsPerPack: 3}, testNow)
	require.NoError(t, err)

	d, err = AddBot(d, "bot-1")
	require.NoError(t, err)
	require.Len(t, d.Seats, 1)
	assert.True(t, d.Seats[0].IsBot)
	assert.NotEqual(t, uuid.Nil, d.Seats[0].PlayerID, "bots still get a real id")
}

func TestRemovePlayerReindexesPositions(t *testing.T) {
	d, ids := setupProposedDraft(t, models.FormatStandard, models.DraftConfig{
		PlayerCount: 4, PacksPerPlayer: 1, CardsPerPack: 3,
	})

	d2, err := RemovePlayer(d, ids[1])
	require.NoError(t, err)
	require.Len(t, d2.Seats, 3)
	for i, seat := range d2.Seats {
		assert.Equal(t, i, seat.Position, "positions stay contiguous after removal")
	}
	assert.Equal(t, ids[0], d2.Seats[0].PlayerID)
	assert.Equal(t, ids[2], d2.Seats[1].PlayerID)
	assert.Equal(t, ids[3], d2.Seats[2].PlayerID)

	_, err = RemovePlayer(d2, ids[1])
	assert.ErrorIs(t, err, ErrSeatNotFound)
}

func TestConfirmDraft(t *testing.T) {
	d, err := CreateDraft(models.FormatStandard, models.DraftConfig{PlayerCount: 2, PacksPerPlayer: 1, CardsPerPack: 3}, testNow)
	require.NoError(t, err)

	_, err = ConfirmDraft(d)
	assert.ErrorIs(t, err, ErrNotEnoughPlayers, "confirming an empty draft fails")

	d, _ = setupProposedDraft(t, models.FormatStandard, models.DraftConfig{
		PlayerCount: 2, PacksPerPlayer: 1, CardsPerPack: 3,
	})
	d2, err := ConfirmDraft(d)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, d2.Status)
	assert.Equal(t, models.StatusProposed, d.Status, "input draft must not be mutated")

	// Seating changes are frozen after confirmation.
	_, err = AddPlayer(d2, uuid.New(), "late")
	assert.ErrorIs(t, err, ErrWrongStatus)
	_, err = RemovePlayer(d2, d2.Seats[0].PlayerID)
	assert.ErrorIs(t, err, ErrWrongStatus)
}

func TestStartDraftDistributesAndBanksPacks(t *testing.T) {
	d, _ := setupProposedDraft(t, models.FormatStandard, models.DraftConfig{
		PlayerCount: 2, PacksPerPlayer: 3, CardsPerPack: 5,
	})
	d, err := ConfirmDraft(d)
	require.NoError(t, err)

	_, err = StartDraft(d, []models.PackState{testPack("a", 5)}, testNow)
	assert.ErrorIs(t, err, ErrNotEnoughPacks)

	packs := make([]models.PackState, 6)
	for i := range packs {
		packs[i] = testPack(string(rune('a'+i)), 5)
	}
	d2, err := StartDraft(d, packs, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, d2.Status)
	assert.Equal(t, 1, d2.CurrentPack)
	require.NotNil(t, d2.StartedAt)

	for i, seat := range d2.Seats {
		require.NotNil(t, seat.CurrentPack, "seat %d holds a pack", i)
		assert.Equal(t, i, seat.CurrentPack.OriginSeat)
		assert.Equal(t, 1, seat.CurrentPack.PickNumber)
		assert.Equal(t, 1, seat.CurrentPack.Round)
		require.NotNil(t, seat.PackReceivedAt)
	}
	assert.Len(t, d2.UnopenedPacks, 4, "packs beyond one per seat are banked")
	assert.Equal(t, 30, totalCards(d2), "every generated card is tracked")
}

func TestStartDraftWinstonTakesNoPacks(t *testing.T) {
	d, _ := setupProposedDraft(t, models.FormatWinston, models.DraftConfig{PlayerCount: 2})
	d, err := ConfirmDraft(d)
	require.NoError(t, err)

	d2, err := StartDraft(d, nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, d2.Status)
	for _, seat := range d2.Seats {
		assert.Nil(t, seat.CurrentPack)
	}
}

func TestTransitionToDeckBuilding(t *testing.T) {
	d := setupActiveDraft(t, 2, 1, 3)
	for i := range d.Seats {
		d.Seats[i].Pool = []models.CardReference{testCard("x", models.RarityRare)}
	}

	d2, err := TransitionToDeckBuilding(d, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeckBuilding, d2.Status)
	for _, seat := range d2.Seats {
		assert.Equal(t, seat.Pool, seat.Deck, "deck is seeded from the pool")
		assert.Empty(t, seat.Sideboard)
	}
}

func TestTransitionSkipsDeckBuildingWhenDisabled(t *testing.T) {
	d := setupActiveDraft(t, 2, 1, 3)
	d.Config.DeckBuilding = false

	d2, err := TransitionToDeckBuilding(d, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.StatusComplete, d2.Status)
	require.NotNil(t, d2.CompletedAt)
}

func TestCompleteDraftStatusGuard(t *testing.T) {
	d, _ := setupProposedDraft(t, models.FormatStandard, models.DraftConfig{
		PlayerCount: 2, PacksPerPlayer: 1, CardsPerPack: 3,
	})
	_, err := CompleteDraft(d, testNow)
	assert.ErrorIs(t, err, ErrWrongStatus, "proposed drafts cannot complete")
}
