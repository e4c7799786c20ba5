package memory

import (
	"context"
	"sync"
	"time"

	"digital-asset-gateway/internal/core/domain"
	"digital-asset-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AssetRepo is an in-memory ports.AssetRepository. Status and owner
// updates are compare-and-swap under the mutex, matching the semantics
// of the postgres driver's conditional UPDATEs, and GetByIDForUpdate
// takes a per-asset row lock held through the tx.
type AssetRepo struct {
	mu     sync.RWMutex
	rows   rowLocks
	assets map[uuid.UUID]*domain.Asset
	events map[uuid.UUID][]domain.AssetEvent
}

// NewAssetRepo creates an empty in-memory asset repository.
func NewAssetRepo() *AssetRepo {
	return &AssetRepo{
		assets: make(map[uuid.UUID]*domain.Asset),
		events: make(map[uuid.UUID][]domain.AssetEvent),
	}
}

func (r *AssetRepo) Create(ctx context.Context, tx pgx.Tx, asset *domain.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := copyAsset(asset)
	cp.History = nil
	r.assets[asset.ID] = cp
	return nil
}

func (r *AssetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.assets[id]
	if !ok {
		return nil, nil
	}
	cp := copyAsset(a)
	cp.History = append([]domain.AssetEvent(nil), r.events[id]...)
	return cp, nil
}

func (r *AssetRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Asset, error) {
	r.rows.acquire(tx, id)
	return r.GetByID(ctx, id)
}

func (r *AssetRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Asset
	for id, a := range r.assets {
		if a.OwnerID == ownerID {
			cp := copyAsset(a)
			cp.History = append([]domain.AssetEvent(nil), r.events[id]...)
			out = append(out, *cp)
		}
	}
	return out, nil
}

func (r *AssetRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to domain.AssetStatus, lockInfo *domain.LockInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[id]
	if !ok || a.Status != from {
		return ports.ErrNoRowsAffected
	}
	a.Status = to
	if lockInfo != nil {
		cp := *lockInfo
		a.LockInfo = &cp
	} else {
		a.LockInfo = nil
	}
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *AssetRepo) UpdateOwner(ctx context.Context, tx pgx.Tx, id, fromOwner, toOwner uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[id]
	if !ok || a.OwnerID != fromOwner {
		return ports.ErrNoRowsAffected
	}
	a.OwnerID = toOwner
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *AssetRepo) UpdateValue(ctx context.Context, tx pgx.Tx, id uuid.UUID, value decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[id]
	if !ok {
		return ports.ErrNoRowsAffected
	}
	a.Value = value
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *AssetRepo) AppendEvent(ctx context.Context, tx pgx.Tx, event *domain.AssetEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event.AssetID] = append(r.events[event.AssetID], *event)
	return nil
}

func copyAsset(a *domain.Asset) *domain.Asset {
	cp := *a
	if a.LockInfo != nil {
		li := *a.LockInfo
		cp.LockInfo = &li
	}
	if a.Restrictions != nil {
		re := *a.Restrictions
		cp.Restrictions = &re
	}
	if a.Metadata != nil {
		md := make(map[string]string, len(a.Metadata))
		for k, v := range a.Metadata {
			md[k] = v
		}
		cp.Metadata = md
	}
	return &cp
}
