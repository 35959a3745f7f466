// internal/export/decklist.go
//
// Read-only projections of a finished seat's deck, sideboard, and basic
// lands into interchange formats.
package export

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/draftden/draftden/internal/models"
)

// countedLine is one "<count> <name>" aggregation.
type countedLine struct {
	name  string
	count int
}

// aggregate folds a card list into name-counted lines in first-seen order,
// merging basic lands into matching-name entries.
func aggregate(cards []models.CardReference, lands models.BasicLands) []countedLine {
	index := map[string]int{}
	var lines []countedLine
	add := func(name string, n int) {
		if n <= 0 {
			return
		}
		if i, ok := index[name]; ok {
			lines[i].count += n
			return
		}
		index[name] = len(lines)
		lines = append(lines, countedLine{name: name, count: n})
	}
	for _, c := range cards {
		add(c.Name, 1)
	}
	for _, col := range models.AllColors {
		add(models.BasicLandName(col), lands.CountFor(col))
	}
	return lines
}

// DecklistText renders a plain-text decklist: aggregated "<count> <name>"
// lines with lands merged in, plus an optional sideboard section.
func DecklistText(seat *models.DraftSeat) string {
	var b strings.Builder
	for _, line := range aggregate(seat.Deck, seat.BasicLands) {
		fmt.Fprintf(&b, "%d %s\n", line.count, line.name)
	}
	if len(seat.Sideboard) > 0 {
		b.WriteString("\nSideboard\n")
		for _, line := range aggregate(seat.Sideboard, models.BasicLands{}) {
			fmt.Fprintf(&b, "%d %s\n", line.count, line.name)
		}
	}
	return b.String()
}

type xmlCard struct {
	Number int    `xml:"number,attr"`
	Name   string `xml:"name,attr"`
}

type xmlZone struct {
	Name  string    `xml:"name,attr"`
	Cards []xmlCard `xml:"card"`
}

type xmlDeck struct {
	XMLName  xml.Name  `xml:"cockatrice_deck"`
	Version  string    `xml:"version,attr"`
	DeckName string    `xml:"deckname"`
	Zones    []xmlZone `xml:"zone"`
}

// DeckXML renders an XML deck file with main and side zones. Card names are
// escaped by the encoder.
func DeckXML(seat *models.DraftSeat, deckName string) ([]byte, error) {
	mainLines := aggregate(seat.Deck, seat.BasicLands)
	sideLines := aggregate(seat.Sideboard, models.BasicLands{})
	sort.SliceStable(mainLines, func(i, j int) bool { return mainLines[i].name < mainLines[j].name })
	sort.SliceStable(sideLines, func(i, j int) bool { return sideLines[i].name < sideLines[j].name })

	toZone := func(name string, lines []countedLine) xmlZone {
		z := xmlZone{Name: name}
		for _, l := range lines {
			z.Cards = append(z.Cards, xmlCard{Number: l.count, Name: l.name})
		}
		return z
	}

	deck := xmlDeck{
		Version:  "1.0",
		DeckName: deckName,
		Zones:    []xmlZone{toZone("main", mainLines), toZone("side", sideLines)},
	}
	out, err := xml.MarshalIndent(deck, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling deck xml: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
