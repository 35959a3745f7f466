// internal/cards/resolver_test.go
package cards

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftden/draftden/internal/models"
)

func TestIdentifier(t *testing.T) {
	assert.Equal(t, "blb:42", Identifier("blb", "42"))
	assert.Equal(t, "plst:MH2-22", Identifier("plst", "MH2-22"))
}

func TestStaticResolver(t *testing.T) {
	r := NewStaticResolver(map[string]models.CardReference{
		"tst:1": {ScryfallID: "tst:1", Name: "Alpha Beast", Rarity: models.RarityRare},
		"tst:2": {ScryfallID: "tst:2", Name: "Beta Bolt", Rarity: models.RarityCommon},
	})

	out, err := r.Resolve(context.Background(), []string{"tst:1", "tst:9", "tst:2"})
	require.NoError(t, err)
	require.Len(t, out, 2, "unknown identifiers are dropped, not fatal")
	assert.Equal(t, "Alpha Beast", out["tst:1"].Name)
	assert.Equal(t, "Beta Bolt", out["tst:2"].Name)

	name, ok := r.NameLookup("tst:1")
	assert.True(t, ok)
	assert.Equal(t, "Alpha Beast", name)

	_, ok = r.NameLookup("tst:9")
	assert.False(t, ok)
}
