// internal/service/draft_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/draftden/draftden/internal/bot"
	"github.com/draftden/draftden/internal/cache"
	"github.com/draftden/draftden/internal/database"
	"github.com/draftden/draftden/internal/engine"
	"github.com/draftden/draftden/internal/models"
)

// Store is the persistence collaborator surface the service needs. The pgx
// DraftStore satisfies it; tests use an in-memory fake.
type Store interface {
	CreateDraft(ctx context.Context, d *models.Draft) error
	LoadDraft(ctx context.Context, id uuid.UUID) (*models.Draft, int64, error)
	SaveDraft(ctx context.Context, d *models.Draft, expectedVersion int64) (int64, error)
}

// Action applies one engine reduction to a loaded snapshot.
type Action func(d *models.Draft) (*models.Draft, error)

// DraftService glues the pure engine to persistence: load a snapshot, apply
// the caller's action, run bots to quiescence, then compare-and-swap store.
// A version conflict reloads and retries the whole sequence once.
type DraftService struct {
	store  Store
	cache  *cache.Cache // optional
	runner *bot.Runner
	log    *logrus.Logger

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewDraftService wires the service. cache may be nil.
func NewDraftService(store Store, c *cache.Cache, runner *bot.Runner, log *logrus.Logger) *DraftService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DraftService{store: store, cache: c, runner: runner, log: log, Now: time.Now}
}

// CreateDraft validates, persists, and returns a new proposed draft.
func (s *DraftService) CreateDraft(ctx context.Context, format models.DraftFormat, cfg models.DraftConfig) (*models.Draft, error) {
	d, err := engine.CreateDraft(format, cfg, s.Now())
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateDraft(ctx, d); err != nil {
		return nil, fmt.Errorf("persisting draft %s: %w", d.ID, err)
	}
	s.log.WithFields(logrus.Fields{"draft": d.ID, "format": format}).Info("draft created")
	return d, nil
}

// load prefers the cache and falls back to the store.
func (s *DraftService) load(ctx context.Context, id uuid.UUID) (*models.Draft, int64, error) {
	if s.cache != nil {
		if d, version, err := s.cache.GetDraft(ctx, id); err == nil {
			return d, version, nil
		} else if !errors.Is(err, cache.ErrMiss) {
			s.log.WithError(err).WithField("draft", id).Warn("cache read failed, falling back to store")
		}
	}
	return s.store.LoadDraft(ctx, id)
}

// GetDraft returns the current snapshot.
func (s *DraftService) GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	d, _, err := s.load(ctx, id)
	return d, err
}

// Apply runs an action against the current snapshot under optimistic
// concurrency, invoking the bot runner after the action so simulated seats
// respond before the result is persisted.
func (s *DraftService) Apply(ctx context.Context, id uuid.UUID, action Action) (*models.Draft, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		d, version, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		next, err := action(d)
		if err != nil {
			return nil, err
		}
		if s.runner != nil {
			next, err = s.runner.Run(next, s.Now())
			if err != nil {
				return nil, err
			}
		}
		newVersion, err := s.store.SaveDraft(ctx, next, version)
		if err != nil {
			if errors.Is(err, database.ErrVersionConflict) {
				lastErr = err
				if s.cache != nil {
					_ = s.cache.InvalidateDraft(ctx, id)
				}
				continue
			}
			return nil, err
		}
		if s.cache != nil {
			if cerr := s.cache.SetDraft(ctx, next, newVersion); cerr != nil {
				s.log.WithError(cerr).WithField("draft", id).Warn("cache write failed")
			}
		}
		return next, nil
	}
	return nil, fmt.Errorf("draft %s action abandoned after conflict retry: %w", id, lastErr)
}

// Pick applies a human seat's pick in individual (pick-and-pass) mode and
// publishes a pick event.
func (s *DraftService) Pick(ctx context.Context, id uuid.UUID, seatPos int, cardID string) (*models.Draft, error) {
	var picked *models.CardReference
	next, err := s.Apply(ctx, id, func(d *models.Draft) (*models.Draft, error) {
		if seatPos >= 0 && seatPos < len(d.Seats) && d.Seats[seatPos].CurrentPack != nil {
			for _, c := range d.Seats[seatPos].CurrentPack.Cards {
				if c.ScryfallID == cardID {
					cc := c
					picked = &cc
					break
				}
			}
		}
		return engine.MakePickAndPass(d, seatPos, cardID, s.Now())
	})
	if err != nil {
		return nil, err
	}
	if s.cache != nil && picked != nil {
		record := cache.PickEventRecord{
			DraftID:   id,
			Seat:      seatPos,
			Round:     next.CurrentPack,
			CardID:    picked.ScryfallID,
			CardName:  picked.Name,
			Timestamp: s.Now().Unix(),
		}
		if err := s.cache.PublishPickEvent(ctx, record); err != nil {
			s.log.WithError(err).WithField("draft", id).Warn("pick event publish failed")
		}
	}
	return next, nil
}

// AutoPick applies the timer-expiry fallback for a seat: its queued card if
// still present, otherwise the highest-rarity card.
func (s *DraftService) AutoPick(ctx context.Context, id uuid.UUID, seatPos int) (*models.Draft, error) {
	return s.Apply(ctx, id, func(d *models.Draft) (*models.Draft, error) {
		if seatPos < 0 || seatPos >= len(d.Seats) {
			return nil, fmt.Errorf("%w: seat %d", engine.ErrSeatNotFound, seatPos)
		}
		seat := &d.Seats[seatPos]
		if seat.CurrentPack == nil {
			return nil, fmt.Errorf("%w: seat %d", engine.ErrNoCurrentPack, seatPos)
		}
		card, err := engine.AutoPickCard(seat.CurrentPack.Cards, seat.QueuedCardID)
		if err != nil {
			return nil, err
		}
		return engine.MakePickAndPass(d, seatPos, card.ScryfallID, s.Now())
	})
}
