// internal/engine/errors.go
package engine

import "errors"

// Domain errors raised by the reducers. All failures are synchronous and
// non-retryable; optimistic-concurrency retries belong to the persistence
// layer.
var (
	// lifecycle violations
	ErrWrongStatus   = errors.New("operation not legal in current draft status")
	ErrNotYourTurn   = errors.New("seat is not the active player")
	ErrAlreadySeated = errors.New("player already seated in this draft")

	// capacity violations
	ErrDraftFull        = errors.New("draft already has its full player count")
	ErrNotEnoughPlayers = errors.New("draft needs at least two seated players")
	ErrNotEnoughPacks   = errors.New("not enough packs for every seat")

	// referential violations
	ErrSeatNotFound  = errors.New("no seat for that player")
	ErrNoCurrentPack = errors.New("seat holds no pack")
	ErrCardNotInPack = errors.New("card is not in the pack")
	ErrCardNotInZone = errors.New("card is not in the named zone")
	ErrWrongPile     = errors.New("pile index does not match the active pile")

	// configuration violations
	ErrInvalidPlayerCount = errors.New("player count must be between 2 and 8")
	ErrInvalidConfig      = errors.New("invalid draft configuration")
	ErrTooFewCards        = errors.New("too few cards to seed a winston draft")
)
