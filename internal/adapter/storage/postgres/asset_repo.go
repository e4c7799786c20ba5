package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"digital-asset-gateway/internal/core/domain"
	"digital-asset-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AssetRepo implements ports.AssetRepository. Lock info, restrictions and
// metadata are JSONB; status and ownership updates are conditional so a
// lost race surfaces as ports.ErrNoRowsAffected.
type AssetRepo struct {
	pool Pool
}

// NewAssetRepo creates a new AssetRepo.
func NewAssetRepo(pool Pool) *AssetRepo {
	return &AssetRepo{pool: pool}
}

const assetColumns = `id, type, value, owner_id, creator_id, status, metadata, lock_info, restrictions, expires_at, created_at, updated_at`

// Create inserts a new asset within a transaction.
func (r *AssetRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.Asset) error {
	metadata, lockInfo, restrictions, err := marshalAssetJSON(a)
	if err != nil {
		return err
	}

	query := `INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = tx.Exec(ctx, query,
		a.ID, string(a.Type), a.Value.String(), a.OwnerID, a.CreatorID,
		string(a.Status), metadata, lockInfo, restrictions, a.ExpiresAt,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetByID fetches an asset with its event history (non-locking read).
func (r *AssetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`
	a, err := scanAsset(r.pool.QueryRow(ctx, query, id))
	if err != nil || a == nil {
		return a, err
	}
	if a.History, err = r.listEvents(ctx, id); err != nil {
		return nil, err
	}
	return a, nil
}

// GetByIDForUpdate fetches an asset with a pessimistic row lock.
// This MUST be called within a transaction. Event history is not loaded.
func (r *AssetRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1 FOR UPDATE`
	return scanAsset(tx.QueryRow(ctx, query, id))
}

// ListByOwner fetches all assets owned by a user, without histories.
func (r *AssetRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE owner_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var out []domain.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// UpdateStatus transitions status from->to conditionally. lockInfo is
// written on lock and cleared (NULL) on unlock.
func (r *AssetRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to domain.AssetStatus, lockInfo *domain.LockInfo) error {
	var lockJSON []byte
	if lockInfo != nil {
		var err error
		if lockJSON, err = json.Marshal(lockInfo); err != nil {
			return fmt.Errorf("marshal lock info: %w", err)
		}
	}

	query := `UPDATE assets SET status = $1, lock_info = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4`

	tag, err := tx.Exec(ctx, query, string(to), lockJSON, id, string(from))
	if err != nil {
		return fmt.Errorf("update asset status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNoRowsAffected
	}
	return nil
}

// UpdateOwner re-owns the asset iff it is still owned by fromOwner.
func (r *AssetRepo) UpdateOwner(ctx context.Context, tx pgx.Tx, id, fromOwner, toOwner uuid.UUID) error {
	query := `UPDATE assets SET owner_id = $1, updated_at = NOW()
		WHERE id = $2 AND owner_id = $3`

	tag, err := tx.Exec(ctx, query, toOwner, id, fromOwner)
	if err != nil {
		return fmt.Errorf("update asset owner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNoRowsAffected
	}
	return nil
}

// UpdateValue writes a new asset value.
func (r *AssetRepo) UpdateValue(ctx context.Context, tx pgx.Tx, id uuid.UUID, value decimal.Decimal) error {
	query := `UPDATE assets SET value = $1, updated_at = NOW() WHERE id = $2`

	tag, err := tx.Exec(ctx, query, value.String(), id)
	if err != nil {
		return fmt.Errorf("update asset value: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNoRowsAffected
	}
	return nil
}

// AppendEvent inserts a history entry within a transaction.
func (r *AssetRepo) AppendEvent(ctx context.Context, tx pgx.Tx, e *domain.AssetEvent) error {
	query := `INSERT INTO asset_events (id, asset_id, type, source, target, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.Exec(ctx, query, e.ID, e.AssetID, string(e.Type), e.From, e.To, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert asset event: %w", err)
	}
	return nil
}

func (r *AssetRepo) listEvents(ctx context.Context, assetID uuid.UUID) ([]domain.AssetEvent, error) {
	query := `SELECT id, asset_id, type, source, target, created_at
		FROM asset_events WHERE asset_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, assetID)
	if err != nil {
		return nil, fmt.Errorf("list asset events: %w", err)
	}
	defer rows.Close()

	var out []domain.AssetEvent
	for rows.Next() {
		var e domain.AssetEvent
		var typ string
		if err := rows.Scan(&e.ID, &e.AssetID, &typ, &e.From, &e.To, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan asset event: %w", err)
		}
		e.Type = domain.AssetEventType(typ)
		out = append(out, e)
	}
	return out, rows.Err()
}

func marshalAssetJSON(a *domain.Asset) (metadata, lockInfo, restrictions []byte, err error) {
	if a.Metadata != nil {
		if metadata, err = json.Marshal(a.Metadata); err != nil {
			return nil, nil, nil, fmt.Errorf("marshal metadata: %w", err)
		}
	}
	if a.LockInfo != nil {
		if lockInfo, err = json.Marshal(a.LockInfo); err != nil {
			return nil, nil, nil, fmt.Errorf("marshal lock info: %w", err)
		}
	}
	if a.Restrictions != nil {
		if restrictions, err = json.Marshal(a.Restrictions); err != nil {
			return nil, nil, nil, fmt.Errorf("marshal restrictions: %w", err)
		}
	}
	return metadata, lockInfo, restrictions, nil
}

func scanAsset(row pgx.Row) (*domain.Asset, error) {
	a := &domain.Asset{}
	var typ, status, value string
	var metadata, lockInfo, restrictions []byte

	err := row.Scan(
		&a.ID, &typ, &value, &a.OwnerID, &a.CreatorID, &status,
		&metadata, &lockInfo, &restrictions, &a.ExpiresAt,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}

	a.Type = domain.AssetType(typ)
	a.Status = domain.AssetStatus(status)
	if a.Value, err = decimal.NewFromString(value); err != nil {
		return nil, fmt.Errorf("parse asset value: %w", err)
	}
	if metadata != nil {
		if err := json.Unmarshal(metadata, &a.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}
	if lockInfo != nil {
		a.LockInfo = &domain.LockInfo{}
		if err := json.Unmarshal(lockInfo, a.LockInfo); err != nil {
			return nil, fmt.Errorf("unmarshal lock info: %w", err)
		}
	}
	if restrictions != nil {
		a.Restrictions = &domain.Restrictions{}
		if err := json.Unmarshal(restrictions, a.Restrictions); err != nil {
			return nil, fmt.Errorf("unmarshal restrictions: %w", err)
		}
	}
	return a, nil
}
