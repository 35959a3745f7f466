// internal/cards/resolver.go
package cards

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/draftden/draftden/internal/models"
)

// Resolver is the card-identity lookup collaborator. Identifiers use the
// "set:collectorNumber" form the booster sheets carry. Implementations
// return whatever subset they can resolve; callers tolerate missing entries
// rather than failing a whole pack.
type Resolver interface {
	Resolve(ctx context.Context, ids []string) (map[string]models.CardReference, error)
}

// Identifier formats a set code and collector number into the canonical
// identifier form.
func Identifier(set, collectorNumber string) string {
	return fmt.Sprintf("%s:%s", set, collectorNumber)
}

// StaticResolver resolves from an in-memory map. Used for cube lists loaded
// up front and in tests.
type StaticResolver struct {
	byID map[string]models.CardReference
}

// NewStaticResolver indexes the given cards by identifier.
func NewStaticResolver(cards map[string]models.CardReference) *StaticResolver {
	byID := make(map[string]models.CardReference, len(cards))
	for id, c := range cards {
		byID[id] = c
	}
	return &StaticResolver{byID: byID}
}

// Resolve returns the subset of ids present in the map, logging the misses.
func (r *StaticResolver) Resolve(_ context.Context, ids []string) (map[string]models.CardReference, error) {
	out := make(map[string]models.CardReference, len(ids))
	for _, id := range ids {
		c, ok := r.byID[id]
		if !ok {
			log.WithField("id", id).Warn("card identifier not found")
			continue
		}
		out[id] = c
	}
	return out, nil
}

// NameLookup adapts the resolver's known cards into the duplicate-
// suppression lookup the sheet generator takes.
func (r *StaticResolver) NameLookup(id string) (string, bool) {
	c, ok := r.byID[id]
	if !ok {
		return "", false
	}
	return c.Name, true
}
