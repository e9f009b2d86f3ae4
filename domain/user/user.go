// Package user holds the account profile model and its repository,
// including the degraded-mode profile sync used by the OTP auth flow.
package user

import (
	"context"
	"time"

	"github.com/prasetyowira/kerjaku/constant"
	"github.com/prasetyowira/kerjaku/domain/apperror"
	"github.com/prasetyowira/kerjaku/domain/reconcile"
	"github.com/prasetyowira/kerjaku/domain/result"
	appLogger "github.com/prasetyowira/kerjaku/infrastructure/logger"
)

// Role values for a user profile.
const (
	RoleSeeker   = "seeker"
	RoleEmployer = "employer"
)

// User represents an account profile.
type User struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	State     string    `json:"state"`
	District  string    `json:"district"`
	CreatedAt time.Time `json:"created_at"`
}

// Cache is the local snapshot store for user rows.
type Cache interface {
	ByID(ctx context.Context, id string) (*User, time.Time, error)
	Put(ctx context.Context, u *User) error
}

// Remote is the system of record for user rows.
type Remote interface {
	ByID(ctx context.Context, id string) (*User, error)
	Upsert(ctx context.Context, u *User) error
}

// Repository serves user reads cache-first and applies writes remote-first.
type Repository struct {
	cache  Cache
	remote Remote
	engine *reconcile.Engine
}

// NewRepository creates a user repository.
func NewRepository(cache Cache, remote Remote, engine *reconcile.Engine) *Repository {
	return &Repository{cache: cache, remote: remote, engine: engine}
}

// GetByID returns a reconciling stream for one profile.
func (r *Repository) GetByID(id string) *result.Stream[User] {
	return reconcile.ReadRow(r.engine, reconcile.RowSource[User]{
		Entity: constant.EntityUser,
		TTL:    constant.CacheTTLUsers,
		ReadCache: func(ctx context.Context) (*User, time.Time, error) {
			return r.cache.ByID(ctx, id)
		},
		Fetch: func(ctx context.Context) (*User, error) {
			return r.remote.ByID(ctx, id)
		},
		WriteCache: func(ctx context.Context, row *User) error {
			return r.cache.Put(ctx, row)
		},
	})
}

// Upsert writes a profile remote-first and mirrors it into the cache.
func (r *Repository) Upsert(ctx context.Context, u *User) apperror.AppError {
	if u.ID == "" {
		return apperror.NewValidation("id", constant.ErrEmptyOwner, u.ID)
	}

	return reconcile.Write(ctx, reconcile.WriteOp{
		Entity: constant.EntityUser,
		Name:   constant.DBOpUpdate,
		Remote: func(ctx context.Context) error { return r.remote.Upsert(ctx, u) },
		Cache:  func(ctx context.Context) error { return r.cache.Put(ctx, u) },
	})
}

// SyncProfile pushes a profile to the remote source after OTP verification.
// A remote failure does not abort the auth flow: the profile is kept
// locally, the failure is logged, and the sync heals on the next write.
func (r *Repository) SyncProfile(ctx context.Context, u *User) apperror.AppError {
	if err := r.remote.Upsert(ctx, u); err != nil {
		ae := apperror.Classify(err, constant.CtxSyncProfile)
		appLogger.CtxWarn(ctx, "Remote profile sync failed, continuing with local state", appLogger.LoggerInfo{
			ContextFunction: constant.CtxSyncProfile,
			Error: &appLogger.ErrorInfo{
				Code:    ae.Code(),
				Variant: ae.Variant(),
				Message: ae.Message(),
			},
			Data: map[string]interface{}{
				constant.DataUserID: u.ID,
			},
		})
	}

	if err := r.cache.Put(ctx, u); err != nil {
		return apperror.NewDatabase(constant.EntityUser, constant.DBOpInsert, err)
	}
	return nil
}
