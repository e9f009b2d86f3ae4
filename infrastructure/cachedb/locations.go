package cachedb

import (
	"context"
	"time"

	"github.com/prasetyowira/kerjaku/domain/location"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Locations is the location view of the cache store, implementing
// location.Cache.
type Locations struct {
	db *gorm.DB
}

// LocationRow is the cache snapshot of a state/district pair.
type LocationRow struct {
	ID       string `gorm:"primaryKey"`
	State    string `gorm:"index"`
	District string
	CachedAt time.Time
}

// All returns every cached location row.
func (s *Locations) All(ctx context.Context) ([]location.Location, time.Time, error) {
	var rows []LocationRow
	if err := s.db.WithContext(ctx).Order("state, district").Find(&rows).Error; err != nil {
		return nil, time.Time{}, err
	}
	return locationsFromRows(rows)
}

// ByState returns the cached rows of one state.
func (s *Locations) ByState(ctx context.Context, state string) ([]location.Location, time.Time, error) {
	var rows []LocationRow
	err := s.db.WithContext(ctx).Where("state = ?", state).Order("district").Find(&rows).Error
	if err != nil {
		return nil, time.Time{}, err
	}
	return locationsFromRows(rows)
}

// Put writes location snapshots with insert-or-replace semantics.
func (s *Locations) Put(ctx context.Context, locations []location.Location) error {
	if len(locations) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]LocationRow, 0, len(locations))
	for _, l := range locations {
		rows = append(rows, LocationRow{
			ID:       l.ID,
			State:    l.State,
			District: l.District,
			CachedAt: now,
		})
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rows).Error
}

func locationsFromRows(rows []LocationRow) ([]location.Location, time.Time, error) {
	locations := make([]location.Location, 0, len(rows))
	stamps := make([]time.Time, 0, len(rows))
	for _, r := range rows {
		locations = append(locations, location.Location{
			ID:       r.ID,
			State:    r.State,
			District: r.District,
		})
		stamps = append(stamps, r.CachedAt)
	}
	return locations, oldestSnapshot(stamps), nil
}
