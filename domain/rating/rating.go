// Package rating holds user ratings and their repository.
package rating

import (
	"context"
	"time"

	"github.com/prasetyowira/kerjaku/constant"
	"github.com/prasetyowira/kerjaku/domain/apperror"
	"github.com/prasetyowira/kerjaku/domain/reconcile"
	"github.com/prasetyowira/kerjaku/domain/result"
	"github.com/samber/lo"
)

// Rating is one rating left for a user.
type Rating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	RaterID   string    `json:"rater_id"`
	Score     float64   `json:"score"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Cache is the local snapshot store for rating rows.
type Cache interface {
	ForUser(ctx context.Context, userID string) ([]Rating, time.Time, error)
	Put(ctx context.Context, rows []Rating) error
}

// Remote is the system of record for rating rows.
type Remote interface {
	ForUser(ctx context.Context, userID string) ([]Rating, error)
	Submit(ctx context.Context, r *Rating) error
}

// Repository serves rating reads cache-first and submissions remote-first.
type Repository struct {
	cache  Cache
	remote Remote
	engine *reconcile.Engine
}

// NewRepository creates a rating repository.
func NewRepository(cache Cache, remote Remote, engine *reconcile.Engine) *Repository {
	return &Repository{cache: cache, remote: remote, engine: engine}
}

// ForUser returns a reconciling stream of the ratings left for one user.
func (r *Repository) ForUser(userID string) *result.Stream[[]Rating] {
	return reconcile.ReadList(r.engine, reconcile.ListSource[Rating]{
		Entity: constant.EntityRating,
		TTL:    constant.CacheTTLRatings,
		ReadCache: func(ctx context.Context) ([]Rating, time.Time, error) {
			return r.cache.ForUser(ctx, userID)
		},
		Fetch: func(ctx context.Context) ([]Rating, error) {
			return r.remote.ForUser(ctx, userID)
		},
		WriteCache: func(ctx context.Context, rows []Rating) error {
			return r.cache.Put(ctx, rows)
		},
	})
}

// Submit posts a rating remote-first and mirrors it into the cache.
func (r *Repository) Submit(ctx context.Context, rt *Rating) apperror.AppError {
	if rt.UserID == "" {
		return apperror.NewValidation("user_id", constant.ErrEmptyOwner, rt.UserID)
	}
	if rt.Score < 1 || rt.Score > 5 {
		return apperror.NewValidation("score", "Score must be between 1 and 5", rt.Score)
	}

	return reconcile.Write(ctx, reconcile.WriteOp{
		Entity: constant.EntityRating,
		Name:   constant.DBOpInsert,
		Remote: func(ctx context.Context) error { return r.remote.Submit(ctx, rt) },
		Cache:  func(ctx context.Context) error { return r.cache.Put(ctx, []Rating{*rt}) },
	})
}

// Average returns the mean score of a rating row set, 0 when empty.
func Average(rows []Rating) float64 {
	if len(rows) == 0 {
		return 0
	}
	total := lo.SumBy(rows, func(r Rating) float64 { return r.Score })
	return total / float64(len(rows))
}
