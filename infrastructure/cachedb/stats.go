package cachedb

import (
	"context"
	"errors"
	"time"

	"github.com/prasetyowira/kerjaku/domain/stats"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Statistics is the statistics view of the cache store, implementing
// stats.Cache.
type Statistics struct {
	db *gorm.DB
}

// StatisticRow is the cache snapshot of one employer's dashboard counters.
type StatisticRow struct {
	EmployerID      string `gorm:"primaryKey"`
	ActiveJobs      int
	FilledJobs      int
	TotalApplicants int
	AverageRating   float64
	CachedAt        time.Time
}

// ForEmployer returns one cached statistic row, or nil on a cache miss.
func (s *Statistics) ForEmployer(ctx context.Context, employerID string) (*stats.Statistic, time.Time, error) {
	var row StatisticRow
	err := s.db.WithContext(ctx).First(&row, "employer_id = ?", employerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	st := stats.Statistic{
		EmployerID:      row.EmployerID,
		ActiveJobs:      row.ActiveJobs,
		FilledJobs:      row.FilledJobs,
		TotalApplicants: row.TotalApplicants,
		AverageRating:   row.AverageRating,
	}
	return &st, row.CachedAt, nil
}

// Put writes a statistic snapshot with insert-or-replace semantics.
func (s *Statistics) Put(ctx context.Context, st *stats.Statistic) error {
	row := StatisticRow{
		EmployerID:      st.EmployerID,
		ActiveJobs:      st.ActiveJobs,
		FilledJobs:      st.FilledJobs,
		TotalApplicants: st.TotalApplicants,
		AverageRating:   st.AverageRating,
		CachedAt:        time.Now(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}
