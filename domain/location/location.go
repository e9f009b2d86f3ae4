// Package location holds the state/district reference data and its
// repository. Location rows change rarely but the short TTL keeps newly
// added districts visible quickly.
package location

import (
	"context"
	"sort"
	"time"

	"github.com/prasetyowira/kerjaku/constant"
	"github.com/prasetyowira/kerjaku/domain/reconcile"
	"github.com/prasetyowira/kerjaku/domain/result"
	"github.com/samber/lo"
)

// Location is one state/district pair.
type Location struct {
	ID       string `json:"id"`
	State    string `json:"state"`
	District string `json:"district"`
}

// Cache is the local snapshot store for location rows.
type Cache interface {
	All(ctx context.Context) ([]Location, time.Time, error)
	ByState(ctx context.Context, state string) ([]Location, time.Time, error)
	Put(ctx context.Context, rows []Location) error
}

// Remote is the system of record for location rows.
type Remote interface {
	All(ctx context.Context) ([]Location, error)
	ByState(ctx context.Context, state string) ([]Location, error)
}

// Repository serves location reads cache-first.
type Repository struct {
	cache  Cache
	remote Remote
	engine *reconcile.Engine
}

// NewRepository creates a location repository.
func NewRepository(cache Cache, remote Remote, engine *reconcile.Engine) *Repository {
	return &Repository{cache: cache, remote: remote, engine: engine}
}

// All returns a reconciling stream of every location row.
func (r *Repository) All() *result.Stream[[]Location] {
	return reconcile.ReadList(r.engine, reconcile.ListSource[Location]{
		Entity:    constant.EntityLocation,
		TTL:       constant.CacheTTLLocations,
		ReadCache: r.cache.All,
		Fetch:     r.remote.All,
		WriteCache: func(ctx context.Context, rows []Location) error {
			return r.cache.Put(ctx, rows)
		},
	})
}

// ByState returns a reconciling stream of the districts in one state, with
// the state filter applied identically to cache and remote.
func (r *Repository) ByState(state string) *result.Stream[[]Location] {
	return reconcile.ReadList(r.engine, reconcile.ListSource[Location]{
		Entity: constant.EntityLocation,
		TTL:    constant.CacheTTLLocations,
		ReadCache: func(ctx context.Context) ([]Location, time.Time, error) {
			return r.cache.ByState(ctx, state)
		},
		Fetch: func(ctx context.Context) ([]Location, error) {
			return r.remote.ByState(ctx, state)
		},
		WriteCache: func(ctx context.Context, rows []Location) error {
			return r.cache.Put(ctx, rows)
		},
	})
}

// States extracts the sorted unique state names from a location row set.
func States(rows []Location) []string {
	states := lo.Uniq(lo.Map(rows, func(l Location, _ int) string { return l.State }))
	sort.Strings(states)
	return states
}

// Districts extracts the sorted district names of one state from a location
// row set.
func Districts(rows []Location, state string) []string {
	districts := lo.Uniq(lo.FilterMap(rows, func(l Location, _ int) (string, bool) {
		return l.District, l.State == state
	}))
	sort.Strings(districts)
	return districts
}
