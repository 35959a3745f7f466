// internal/database/draft.go
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/draftden/draftden/internal/models"
)

var (
	// ErrNotFound means no snapshot exists for the draft id.
	ErrNotFound = errors.New("draft not found")

	// ErrVersionConflict means a concurrent writer advanced the snapshot;
	// the caller must reload and retry its action against the fresh state.
	ErrVersionConflict = errors.New("draft snapshot version conflict")
)

// DraftStore persists full draft snapshots as versioned JSONB rows. Writes
// are compare-and-swap on the version column so two concurrent actions on
// the same draft can never silently clobber one another.
type DraftStore struct {
	pool *pgxpool.Pool
}

// NewDraftStore wraps a pgx pool.
func NewDraftStore(pool *pgxpool.Pool) *DraftStore {
	return &DraftStore{pool: pool}
}

// CreateDraft inserts a new snapshot at version 1.
func (s *DraftStore) CreateDraft(ctx context.Context, d *models.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshaling draft snapshot: %w", err)
	}
	q := `
		INSERT INTO drafts (id, snapshot, version, updated_at)
		VALUES ($1, $2, 1, NOW())
	`
	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, e := tx.Exec(ctx, q, d.ID, data)
		return e
	})
}

// LoadDraft returns the snapshot and its stored version.
func (s *DraftStore) LoadDraft(ctx context.Context, id uuid.UUID) (*models.Draft, int64, error) {
	var (
		data    []byte
		version int64
	)
	q := `SELECT snapshot, version FROM drafts WHERE id = $1`
	if err := s.pool.QueryRow(ctx, q, id).Scan(&data, &version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, 0, fmt.Errorf("loading draft %s: %w", id, err)
	}
	var d models.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, 0, fmt.Errorf("unmarshaling draft %s: %w", id, err)
	}
	return &d, version, nil
}

// SaveDraft stores a new snapshot only if the row is still at
// expectedVersion, returning the new version. A concurrent advance yields
// ErrVersionConflict.
func (s *DraftStore) SaveDraft(ctx context.Context, d *models.Draft, expectedVersion int64) (int64, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return 0, fmt.Errorf("marshaling draft snapshot: %w", err)
	}
	q := `
		UPDATE drafts
		SET snapshot = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND version = $3
	`
	var newVersion int64
	err = pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		tag, e := tx.Exec(ctx, q, data, d.ID, expectedVersion)
		if e != nil {
			return e
		}
		if tag.RowsAffected() == 0 {
			var exists bool
			if e := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM drafts WHERE id = $1)`, d.ID).Scan(&exists); e != nil {
				return e
			}
			if !exists {
				return fmt.Errorf("%w: %s", ErrNotFound, d.ID)
			}
			return fmt.Errorf("%w: draft %s expected version %d", ErrVersionConflict, d.ID, expectedVersion)
		}
		newVersion = expectedVersion + 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newVersion, nil
}

// SaveProduct upserts the booster product blob stored alongside a draft.
func (s *DraftStore) SaveProduct(ctx context.Context, draftID uuid.UUID, product *models.BoosterProductData) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshaling product blob: %w", err)
	}
	q := `
		INSERT INTO draft_products (draft_id, blob)
		VALUES ($1, $2)
		ON CONFLICT (draft_id) DO UPDATE SET blob = EXCLUDED.blob
	`
	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, e := tx.Exec(ctx, q, draftID, data)
		return e
	})
}

// LoadProduct reads a draft's booster product blob, if any.
func (s *DraftStore) LoadProduct(ctx context.Context, draftID uuid.UUID) (*models.BoosterProductData, error) {
	var data []byte
	q := `SELECT blob FROM draft_products WHERE draft_id = $1`
	if err := s.pool.QueryRow(ctx, q, draftID).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product for %s", ErrNotFound, draftID)
		}
		return nil, fmt.Errorf("loading product for %s: %w", draftID, err)
	}
	var product models.BoosterProductData
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("unmarshaling product for %s: %w", draftID, err)
	}
	return &product, nil
}
