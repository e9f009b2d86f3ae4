// Package reconcile implements the stale-while-revalidate read engine and
// the remote-first write discipline shared by every entity repository.
//
// Every read emits Loading first, then a cache-sourced Success when a fresh
// snapshot exists, then the outcome of the network attempt. A refresh that
// produces the same rows the cache already delivered is not re-emitted. A
// network failure is swallowed whenever cache rows exist, even stale ones;
// it surfaces as an Error only when the cache is empty.
package reconcile

import (
	"context"
	"time"

	"github.com/prasetyowira/kerjaku/constant"
	"github.com/prasetyowira/kerjaku/domain/apperror"
	"github.com/prasetyowira/kerjaku/domain/result"
	"github.com/prasetyowira/kerjaku/infrastructure/connectivity"
	appLogger "github.com/prasetyowira/kerjaku/infrastructure/logger"
	"github.com/r3labs/diff/v3"
)

// Engine carries the collaborators shared by every reconciling operation.
type Engine struct {
	inspector connectivity.Inspector
	now       func() time.Time
}

// NewEngine creates an Engine. The inspector decides whether the remote
// attempt is skipped while offline.
func NewEngine(inspector connectivity.Inspector) *Engine {
	return &Engine{inspector: inspector, now: time.Now}
}

// WithClock overrides the engine's clock. Used by tests to pin freshness.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Fresh reports whether a snapshot taken at cachedAt is still valid for the
// given window. The boundary is exclusive: at exactly ttl the snapshot is
// expired. A zero cachedAt is never fresh.
func (e *Engine) Fresh(cachedAt time.Time, ttl time.Duration) bool {
	if cachedAt.IsZero() {
		return false
	}
	return e.now().Sub(cachedAt) < ttl
}

// ListSource describes one list-read operation over an entity.
type ListSource[R any] struct {
	// Entity names the entity for logs and error context.
	Entity string
	// TTL is the cache validity window.
	TTL time.Duration
	// ReadCache returns the cached rows and the snapshot timestamp, zero
	// when no snapshot exists.
	ReadCache func(ctx context.Context) ([]R, time.Time, error)
	// Fetch retrieves the rows from the remote source of truth.
	Fetch func(ctx context.Context) ([]R, error)
	// WriteCache replaces the cached snapshot with freshly fetched rows.
	WriteCache func(ctx context.Context, rows []R) error
}

// ReadList runs the reconciling read for a row set.
func ReadList[R any](eng *Engine, src ListSource[R]) *result.Stream[[]R] {
	return result.NewStream(func(ctx context.Context, emit func(result.Result[[]R]) bool) {
		if !emit(result.Loading[[]R]()) {
			return
		}

		cached, cachedAt, cacheErr := src.ReadCache(ctx)
		if cacheErr != nil {
			// A broken cache read degrades to a cache miss.
			appLogger.CtxWarn(ctx, "Cache read failed, treating as miss", appLogger.LoggerInfo{
				ContextFunction: constant.CtxReconcile,
				Error:           errorInfo(apperror.NewDatabase(src.Entity, constant.DBOpQuery, cacheErr)),
				Data:            map[string]interface{}{constant.DataEntity: src.Entity},
			})
			cached, cachedAt = nil, time.Time{}
		}

		hasCache := len(cached) > 0
		fresh := hasCache && eng.Fresh(cachedAt, src.TTL)
		emitted := false

		if fresh {
			if !emit(result.Success(cached)) {
				return
			}
			emitted = true
		}

		if !eng.inspector.Online() {
			offlineFallback(ctx, src.Entity, cached, hasCache, emitted, emit)
			return
		}

		fetched, fetchErr := src.Fetch(ctx)
		if fetchErr != nil {
			networkFallback(ctx, src.Entity, cached, hasCache, emitted, fetchErr, emit)
			return
		}

		if err := src.WriteCache(ctx, fetched); err != nil {
			// The fetch succeeded; a failed cache write only costs the next
			// read a network round trip.
			appLogger.CtxWarn(ctx, "Cache write failed after fetch", appLogger.LoggerInfo{
				ContextFunction: constant.CtxReconcile,
				Error:           errorInfo(apperror.NewDatabase(src.Entity, constant.DBOpInsert, err)),
				Data:            map[string]interface{}{constant.DataEntity: src.Entity},
			})
		}

		if emitted && !changed(cached, fetched) {
			return
		}
		emit(result.Success(fetched))
	})
}

// RowSource describes one single-row read operation.
type RowSource[R any] struct {
	Entity     string
	TTL        time.Duration
	ReadCache  func(ctx context.Context) (*R, time.Time, error)
	Fetch      func(ctx context.Context) (*R, error)
	WriteCache func(ctx context.Context, row *R) error
}

// ReadRow runs the reconciling read for a single row.
func ReadRow[R any](eng *Engine, src RowSource[R]) *result.Stream[R] {
	list := ListSource[R]{
		Entity: src.Entity,
		TTL:    src.TTL,
		ReadCache: func(ctx context.Context) ([]R, time.Time, error) {
			row, cachedAt, err := src.ReadCache(ctx)
			if err != nil || row == nil {
				return nil, cachedAt, err
			}
			return []R{*row}, cachedAt, nil
		},
		Fetch: func(ctx context.Context) ([]R, error) {
			row, err := src.Fetch(ctx)
			if err != nil {
				return nil, err
			}
			if row == nil {
				return nil, nil
			}
			return []R{*row}, nil
		},
		WriteCache: func(ctx context.Context, rows []R) error {
			if len(rows) == 0 {
				return nil
			}
			return src.WriteCache(ctx, &rows[0])
		},
	}

	inner := ReadList(eng, list)
	return result.NewStream(func(ctx context.Context, emit func(result.Result[R]) bool) {
		for r := range inner.Subscribe(ctx) {
			var single result.Result[R]
			if rows, ok := r.Get(); ok {
				if len(rows) == 0 {
					// The remote answered but the row does not exist.
					ne := apperror.NewNetwork(constant.ErrCodeNetNotFound, src.Entity+" not found", nil)
					ne.HTTPStatus = 404
					single = result.Failure[R](ne)
				} else {
					single = result.Success(rows[0])
				}
			} else {
				single = result.Map(r, func([]R) R { var zero R; return zero })
			}
			if !emit(single) {
				return
			}
		}
	})
}

// WriteOp describes one mutating operation. Remote runs first; Cache runs
// only after Remote succeeded, so a failed write can never leave the cache
// ahead of the system of record.
type WriteOp struct {
	Entity string
	Name   string
	Remote func(ctx context.Context) error
	Cache  func(ctx context.Context) error
}

// Write runs a mutation with remote-first ordering. It returns the
// classified error from the remote attempt, or nil.
func Write(ctx context.Context, op WriteOp) apperror.AppError {
	if err := op.Remote(ctx); err != nil {
		ae := apperror.Classify(err, op.Entity+"."+op.Name)
		appLogger.CtxWarn(ctx, "Remote write failed, cache untouched", appLogger.LoggerInfo{
			ContextFunction: constant.CtxReconcile,
			Error:           errorInfo(ae),
			Data: map[string]interface{}{
				constant.DataEntity:    op.Entity,
				constant.DataOperation: op.Name,
			},
		})
		return ae
	}

	if op.Cache != nil {
		if err := op.Cache(ctx); err != nil {
			// Remote already holds the truth; the stale cache row heals on
			// the next read.
			appLogger.CtxWarn(ctx, "Cache update failed after remote write", appLogger.LoggerInfo{
				ContextFunction: constant.CtxReconcile,
				Error:           errorInfo(apperror.NewDatabase(op.Entity, constant.DBOpUpdate, err)),
				Data: map[string]interface{}{
					constant.DataEntity:    op.Entity,
					constant.DataOperation: op.Name,
				},
			})
		}
	}
	return nil
}

// offlineFallback handles the skipped remote attempt: stale rows are still
// served, and the empty-cache case surfaces a connection error.
func offlineFallback[R any](ctx context.Context, entity string, cached []R, hasCache, emitted bool, emit func(result.Result[[]R]) bool) {
	appLogger.CtxDebug(ctx, "Offline, skipping remote fetch", appLogger.LoggerInfo{
		ContextFunction: constant.CtxReconcile,
		Data: map[string]interface{}{
			constant.DataEntity: entity,
			constant.DataFresh:  emitted,
		},
	})

	if hasCache {
		if !emitted {
			emit(result.Success(cached))
		}
		return
	}

	ne := apperror.NewNetwork(constant.ErrCodeNetIOFailure, "no network connection available", nil)
	ne.IsConnection = true
	emit(result.Failure[[]R](ne))
}

// networkFallback swallows the fetch failure when cache rows exist and
// surfaces it otherwise.
func networkFallback[R any](ctx context.Context, entity string, cached []R, hasCache, emitted bool, fetchErr error, emit func(result.Result[[]R]) bool) {
	ae := apperror.Classify(fetchErr, entity+".fetch")

	if hasCache {
		appLogger.CtxWarn(ctx, "Remote fetch failed, serving cached rows", appLogger.LoggerInfo{
			ContextFunction: constant.CtxReconcile,
			Error:           errorInfo(ae),
			Data: map[string]interface{}{
				constant.DataEntity: entity,
				constant.DataRows:   len(cached),
			},
		})
		if !emitted {
			emit(result.Success(cached))
		}
		return
	}

	emit(result.Failure[[]R](ae))
}

// changed reports whether the fetched rows differ from the cached rows by
// deep value equality.
func changed[R any](cached, fetched []R) bool {
	changelog, err := diff.Diff(cached, fetched)
	if err != nil {
		return true
	}
	return len(changelog) > 0
}

func errorInfo(ae apperror.AppError) *appLogger.ErrorInfo {
	return &appLogger.ErrorInfo{
		Code:    ae.Code(),
		Variant: ae.Variant(),
		Message: ae.Message(),
	}
}
