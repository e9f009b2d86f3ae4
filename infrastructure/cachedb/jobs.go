package cachedb

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prasetyowira/kerjaku/domain/job"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Jobs is the job view of the cache store, implementing job.Cache.
type Jobs struct {
	db *gorm.DB
}

// JobRow is the cache snapshot of a job posting.
type JobRow struct {
	ID           string `gorm:"primaryKey"`
	Title        string
	Description  string
	EmployerID   string `gorm:"index"`
	State        string `gorm:"index"`
	District     string
	Salary       float64
	SalaryUnit   string
	Duration     float64
	DurationUnit string
	Latitude     *float64
	Longitude    *float64
	CreatedAt    time.Time
	CachedAt     time.Time
}

func jobToRow(j job.Job, cachedAt time.Time) JobRow {
	return JobRow{
		ID:           j.ID,
		Title:        j.Title,
		Description:  j.Description,
		EmployerID:   j.EmployerID,
		State:        j.State,
		District:     j.District,
		Salary:       j.Salary,
		SalaryUnit:   j.SalaryUnit,
		Duration:     j.Duration,
		DurationUnit: j.DurationUnit,
		Latitude:     j.Latitude,
		Longitude:    j.Longitude,
		CreatedAt:    j.CreatedAt,
		CachedAt:     cachedAt,
	}
}

func rowToJob(r JobRow) job.Job {
	return job.Job{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		EmployerID:   r.EmployerID,
		State:        r.State,
		District:     r.District,
		Salary:       r.Salary,
		SalaryUnit:   r.SalaryUnit,
		Duration:     r.Duration,
		DurationUnit: r.DurationUnit,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		CreatedAt:    r.CreatedAt,
	}
}

// Put writes job snapshots with insert-or-replace semantics, refreshing
// cached_at.
func (s *Jobs) Put(ctx context.Context, jobs []job.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]JobRow, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, jobToRow(j, now))
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rows).Error
}

// List returns one page of cached jobs matching the filter, with the
// snapshot timestamp of the oldest returned row.
func (s *Jobs) List(ctx context.Context, f job.Filter, offset, limit int) ([]job.Job, time.Time, error) {
	q := s.jobQuery(ctx, f).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit)

	var rows []JobRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, time.Time{}, err
	}
	return s.jobsFromRows(rows)
}

// All returns every cached job, used by radius queries.
func (s *Jobs) All(ctx context.Context) ([]job.Job, time.Time, error) {
	var rows []JobRow
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, time.Time{}, err
	}
	return s.jobsFromRows(rows)
}

// ByID returns one cached job, or nil on a cache miss.
func (s *Jobs) ByID(ctx context.Context, id string) (*job.Job, time.Time, error) {
	var row JobRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	j := rowToJob(row)
	return &j, row.CachedAt, nil
}

// Delete drops one cached job.
func (s *Jobs) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&JobRow{}, "id = ?", id).Error
}

func (s *Jobs) jobQuery(ctx context.Context, f job.Filter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&JobRow{})
	if f.State != "" {
		q = q.Where("state = ?", f.State)
	}
	if f.District != "" {
		q = q.Where("district = ?", f.District)
	}
	if f.Search != "" {
		needle := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("(lower(title) LIKE ? OR lower(description) LIKE ?)", needle, needle)
	}
	if f.SalaryMin != nil {
		q = q.Where("salary >= ?", *f.SalaryMin)
	}
	if f.SalaryMax != nil {
		q = q.Where("salary <= ?", *f.SalaryMax)
	}
	return q
}

func (s *Jobs) jobsFromRows(rows []JobRow) ([]job.Job, time.Time, error) {
	jobs := make([]job.Job, 0, len(rows))
	stamps := make([]time.Time, 0, len(rows))
	for _, r := range rows {
		jobs = append(jobs, rowToJob(r))
		stamps = append(stamps, r.CachedAt)
	}
	return jobs, oldestSnapshot(stamps), nil
}
