// Package stats holds employer dashboard statistics and their repository.
package stats

import (
	"context"
	"time"

	"github.com/prasetyowira/kerjaku/constant"
	"github.com/prasetyowira/kerjaku/domain/reconcile"
	"github.com/prasetyowira/kerjaku/domain/result"
)

// Statistic is the aggregate dashboard row for one employer. Counters the
// backend omits default to zero.
type Statistic struct {
	EmployerID      string  `json:"employer_id"`
	ActiveJobs      int     `json:"active_jobs"`
	FilledJobs      int     `json:"filled_jobs"`
	TotalApplicants int     `json:"total_applicants"`
	AverageRating   float64 `json:"average_rating"`
}

// Cache is the local snapshot store for statistic rows.
type Cache interface {
	ForEmployer(ctx context.Context, employerID string) (*Statistic, time.Time, error)
	Put(ctx context.Context, s *Statistic) error
}

// Remote is the system of record for statistic rows.
type Remote interface {
	ForEmployer(ctx context.Context, employerID string) (*Statistic, error)
}

// Repository serves statistic reads cache-first.
type Repository struct {
	cache  Cache
	remote Remote
	engine *reconcile.Engine
}

// NewRepository creates a statistics repository.
func NewRepository(cache Cache, remote Remote, engine *reconcile.Engine) *Repository {
	return &Repository{cache: cache, remote: remote, engine: engine}
}

// ForEmployer returns a reconciling stream of one employer's statistics.
func (r *Repository) ForEmployer(employerID string) *result.Stream[Statistic] {
	return reconcile.ReadRow(r.engine, reconcile.RowSource[Statistic]{
		Entity: constant.EntityStatistic,
		TTL:    constant.CacheTTLStatistics,
		ReadCache: func(ctx context.Context) (*Statistic, time.Time, error) {
			return r.cache.ForEmployer(ctx, employerID)
		},
		Fetch: func(ctx context.Context) (*Statistic, error) {
			return r.remote.ForEmployer(ctx, employerID)
		},
		WriteCache: func(ctx context.Context, row *Statistic) error {
			return r.cache.Put(ctx, row)
		},
	})
}
