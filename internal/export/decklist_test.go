// internal/export/decklist_test.go
package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftden/draftden/internal/models"
)

func named(id, name string) models.CardReference {
	return models.CardReference{ScryfallID: id, Name: name, Rarity: models.RarityCommon}
}

func TestDecklistTextAggregatesByName(t *testing.T) {
	seat := &models.DraftSeat{
		Deck: []models.CardReference{
			named("a1", "Lightning Bolt"),
			named("a2", "Lightning Bolt"),
			named("b1", "Giant Growth"),
		},
		BasicLands: models.BasicLands{Mountain: 9, Forest: 8},
	}

	text := DecklistText(seat)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "2 Lightning Bolt", lines[0], "duplicates fold into a count, first-seen order")
	assert.Equal(t, "1 Giant Growth", lines[1])
	assert.Equal(t, "9 Mountain", lines[2])
	assert.Equal(t, "8 Forest", lines[3])
	assert.NotContains(t, text, "Sideboard", "no section for an empty sideboard")
}

func TestDecklistTextMergesBasicLandCards(t *testing.T) {
	// A drafted Mountain card merges with the basic land count.
	seat := &models.DraftSeat{
		Deck:       []models.CardReference{named("m1", "Mountain")},
		BasicLands: models.BasicLands{Mountain: 16},
	}

	text := DecklistText(seat)
	assert.Contains(t, text, "17 Mountain")
	assert.Equal(t, 1, strings.Count(text, "Mountain"), "one merged line, not two")
}

func TestDecklistTextSideboardSection(t *testing.T) {
	seat := &models.DraftSeat{
		Deck:      []models.CardReference{named("a1", "Gray Ogre")},
		Sideboard: []models.CardReference{named("s1", "Shatter"), named("s2", "Shatter")},
	}

	text := DecklistText(seat)
	parts := strings.SplitN(text, "\nSideboard\n", 2)
	require.Len(t, parts, 2)
	assert.Contains(t, parts[0], "1 Gray Ogre")
	assert.Contains(t, parts[1], "2 Shatter")
}

func TestDeckXML(t *testing.T) {
	seat := &models.DraftSeat{
		Deck: []models.CardReference{
			named("a1", "Borrowing 100,000 Arrows"),
			named("b1", `"Ach! Hans, Run!"`),
		},
		Sideboard:  []models.CardReference{named("s1", "Shatter")},
		BasicLands: models.BasicLands{Island: 17},
	}

	out, err := DeckXML(seat, "My Draft Deck")
	require.NoError(t, err)
	xml := string(out)

	assert.True(t, strings.HasPrefix(xml, "<?xml"), "document carries the XML header")
	assert.Contains(t, xml, "<cockatrice_deck")
	assert.Contains(t, xml, "<deckname>My Draft Deck</deckname>")
	assert.Contains(t, xml, `zone name="main"`)
	assert.Contains(t, xml, `zone name="side"`)
	assert.Contains(t, xml, `number="17" name="Island"`)
	assert.Contains(t, xml, "&#34;Ach! Hans, Run!&#34;", "quotes in names are escaped")
	assert.NotContains(t, xml, `name=""Ach`)
}

func TestDeckXMLSortsZones(t *testing.T) {
	seat := &models.DraftSeat{
		Deck: []models.CardReference{
			named("z1", "Zodiac Tiger"),
			named("a1", "Abbey Gargoyles"),
		},
	}

	out, err := DeckXML(seat, "sorted")
	require.NoError(t, err)
	xml := string(out)
	assert.Less(t, strings.Index(xml, "Abbey Gargoyles"), strings.Index(xml, "Zodiac Tiger"),
		"main zone entries are name-sorted")
}
