package job

import (
	"context"
	"time"

	"github.com/prasetyowira/kerjaku/constant"
	"github.com/prasetyowira/kerjaku/domain/apperror"
	"github.com/prasetyowira/kerjaku/domain/reconcile"
	"github.com/prasetyowira/kerjaku/domain/result"
	appLogger "github.com/prasetyowira/kerjaku/infrastructure/logger"
	"github.com/samber/lo"
)

// Cache is the local snapshot store for job rows. The repository is the only
// writer; rows are always whole snapshots fetched from the remote source.
type Cache interface {
	List(ctx context.Context, f Filter, offset, limit int) ([]Job, time.Time, error)
	All(ctx context.Context) ([]Job, time.Time, error)
	ByID(ctx context.Context, id string) (*Job, time.Time, error)
	Put(ctx context.Context, jobs []Job) error
	Delete(ctx context.Context, id string) error
}

// Remote is the system of record for job rows.
type Remote interface {
	List(ctx context.Context, f Filter, offset, limit int) ([]Job, error)
	All(ctx context.Context) ([]Job, error)
	ByID(ctx context.Context, id string) (*Job, error)
	Create(ctx context.Context, j *Job) error
	Update(ctx context.Context, j *Job) error
	Delete(ctx context.Context, id string) error
}

// Repository serves job reads from the cache while revalidating against the
// remote source, and applies writes remote-first.
type Repository struct {
	cache  Cache
	remote Remote
	engine *reconcile.Engine
}

// NewRepository creates a job repository.
func NewRepository(cache Cache, remote Remote, engine *reconcile.Engine) *Repository {
	return &Repository{cache: cache, remote: remote, engine: engine}
}

// List returns a reconciling stream of one page of jobs. The same
// offset/limit and filter are applied to the cache and the remote query.
func (r *Repository) List(page Page, f Filter) *result.Stream[[]Job] {
	offset, limit := page.Offset(), page.Size
	return reconcile.ReadList(r.engine, reconcile.ListSource[Job]{
		Entity: constant.EntityJob,
		TTL:    constant.CacheTTLJobs,
		ReadCache: func(ctx context.Context) ([]Job, time.Time, error) {
			return r.cache.List(ctx, f, offset, limit)
		},
		Fetch: func(ctx context.Context) ([]Job, error) {
			return r.remote.List(ctx, f, offset, limit)
		},
		WriteCache: func(ctx context.Context, rows []Job) error {
			return r.cache.Put(ctx, rows)
		},
	})
}

// Nearby returns the jobs within radiusKm of the given point. Jobs without
// coordinates are excluded, never defaulted to included.
func (r *Repository) Nearby(lat, lon, radiusKm float64) *result.Stream[[]Job] {
	inRadius := func(rows []Job) []Job {
		return lo.Filter(rows, func(j Job, _ int) bool {
			return j.WithinRadius(lat, lon, radiusKm)
		})
	}

	return reconcile.ReadList(r.engine, reconcile.ListSource[Job]{
		Entity: constant.EntityJob,
		TTL:    constant.CacheTTLJobs,
		ReadCache: func(ctx context.Context) ([]Job, time.Time, error) {
			rows, cachedAt, err := r.cache.All(ctx)
			return inRadius(rows), cachedAt, err
		},
		Fetch: func(ctx context.Context) ([]Job, error) {
			rows, err := r.remote.All(ctx)
			if err != nil {
				return nil, err
			}
			return inRadius(rows), nil
		},
		WriteCache: func(ctx context.Context, rows []Job) error {
			return r.cache.Put(ctx, rows)
		},
	})
}

// GetByID returns a reconciling stream for a single job.
func (r *Repository) GetByID(id string) *result.Stream[Job] {
	return reconcile.ReadRow(r.engine, reconcile.RowSource[Job]{
		Entity: constant.EntityJob,
		TTL:    constant.CacheTTLJobs,
		ReadCache: func(ctx context.Context) (*Job, time.Time, error) {
			return r.cache.ByID(ctx, id)
		},
		Fetch: func(ctx context.Context) (*Job, error) {
			return r.remote.ByID(ctx, id)
		},
		WriteCache: func(ctx context.Context, row *Job) error {
			return r.cache.Put(ctx, []Job{*row})
		},
	})
}

// Create posts a new job remotely and mirrors it into the cache on success.
func (r *Repository) Create(ctx context.Context, j *Job) apperror.AppError {
	if ae := validate(j); ae != nil {
		return ae
	}

	appLogger.CtxDebug(ctx, "Creating job", appLogger.LoggerInfo{
		ContextFunction: constant.CtxJobs,
		Data: map[string]interface{}{
			constant.DataEmployerID: j.EmployerID,
			constant.DataState:      j.State,
		},
	})

	return reconcile.Write(ctx, reconcile.WriteOp{
		Entity: constant.EntityJob,
		Name:   constant.DBOpInsert,
		Remote: func(ctx context.Context) error { return r.remote.Create(ctx, j) },
		Cache:  func(ctx context.Context) error { return r.cache.Put(ctx, []Job{*j}) },
	})
}

// Update rewrites a job remotely and mirrors it into the cache on success.
func (r *Repository) Update(ctx context.Context, j *Job) apperror.AppError {
	if j.ID == "" {
		return apperror.NewValidation("id", constant.ErrEmptyJobID, j.ID)
	}
	if ae := validate(j); ae != nil {
		return ae
	}

	return reconcile.Write(ctx, reconcile.WriteOp{
		Entity: constant.EntityJob,
		Name:   constant.DBOpUpdate,
		Remote: func(ctx context.Context) error { return r.remote.Update(ctx, j) },
		Cache:  func(ctx context.Context) error { return r.cache.Put(ctx, []Job{*j}) },
	})
}

// Delete removes a job remotely and drops the cached row on success.
func (r *Repository) Delete(ctx context.Context, id string) apperror.AppError {
	if id == "" {
		return apperror.NewValidation("id", constant.ErrEmptyJobID, id)
	}

	return reconcile.Write(ctx, reconcile.WriteOp{
		Entity: constant.EntityJob,
		Name:   constant.DBOpDelete,
		Remote: func(ctx context.Context) error { return r.remote.Delete(ctx, id) },
		Cache:  func(ctx context.Context) error { return r.cache.Delete(ctx, id) },
	})
}

func validate(j *Job) apperror.AppError {
	if j.Title == "" {
		return apperror.NewValidation("title", constant.ErrEmptyTitle, j.Title)
	}
	if j.EmployerID == "" {
		return apperror.NewValidation("employer_id", constant.ErrEmptyOwner, j.EmployerID)
	}
	return nil
}
