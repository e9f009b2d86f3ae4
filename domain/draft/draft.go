// Package draft holds unposted job drafts. Drafts are user content, not a
// projection of the remote source: they live only in the local store, get no
// TTL expiry, and never involve the network.
package draft

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prasetyowira/kerjaku/constant"
	"github.com/prasetyowira/kerjaku/domain/apperror"
)

// Draft is an unposted job posting.
type Draft struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	State        string    `json:"state"`
	District     string    `json:"district"`
	Salary       float64   `json:"salary"`
	SalaryUnit   string    `json:"salary_unit"`
	Duration     float64   `json:"duration"`
	DurationUnit string    `json:"duration_unit"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Store is the local persistence contract for drafts.
type Store interface {
	Put(ctx context.Context, d *Draft) error
	ByID(ctx context.Context, id string) (*Draft, error)
	ByOwner(ctx context.Context, ownerID string) ([]Draft, error)
	Delete(ctx context.Context, id string) error
}

// Repository manages drafts in the local store.
type Repository struct {
	store Store
}

// NewRepository creates a draft repository.
func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// Save writes a draft, assigning an id to new drafts.
func (r *Repository) Save(ctx context.Context, d *Draft) apperror.AppError {
	if d.OwnerID == "" {
		return apperror.NewValidation("owner_id", constant.ErrEmptyOwner, d.OwnerID)
	}
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	d.UpdatedAt = time.Now()

	if err := r.store.Put(ctx, d); err != nil {
		return apperror.NewDatabase(constant.EntityDraft, constant.DBOpInsert, err)
	}
	return nil
}

// Get returns one draft, or nil when it does not exist.
func (r *Repository) Get(ctx context.Context, id string) (*Draft, apperror.AppError) {
	d, err := r.store.ByID(ctx, id)
	if err != nil {
		return nil, apperror.NewDatabase(constant.EntityDraft, constant.DBOpQuery, err)
	}
	return d, nil
}

// ListByOwner returns every draft belonging to one owner.
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]Draft, apperror.AppError) {
	rows, err := r.store.ByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.NewDatabase(constant.EntityDraft, constant.DBOpQuery, err)
	}
	return rows, nil
}

// Delete removes a draft.
func (r *Repository) Delete(ctx context.Context, id string) apperror.AppError {
	if err := r.store.Delete(ctx, id); err != nil {
		return apperror.NewDatabase(constant.EntityDraft, constant.DBOpDelete, err)
	}
	return nil
}
