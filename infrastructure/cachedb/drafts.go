package cachedb

import (
	"context"
	"errors"
	"time"

	"github.com/prasetyowira/kerjaku/domain/draft"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Drafts is the draft view of the cache store, implementing draft.Store.
// Drafts are local-first user content: no cached_at stamp, no TTL.
type Drafts struct {
	db *gorm.DB
}

// DraftRow is the stored form of an unposted job draft.
type DraftRow struct {
	ID           string `gorm:"primaryKey"`
	OwnerID      string `gorm:"index"`
	Title        string
	Description  string
	State        string
	District     string
	Salary       float64
	SalaryUnit   string
	Duration     float64
	DurationUnit string
	UpdatedAt    time.Time
}

func draftToRow(d *draft.Draft) DraftRow {
	return DraftRow{
		ID:           d.ID,
		OwnerID:      d.OwnerID,
		Title:        d.Title,
		Description:  d.Description,
		State:        d.State,
		District:     d.District,
		Salary:       d.Salary,
		SalaryUnit:   d.SalaryUnit,
		Duration:     d.Duration,
		DurationUnit: d.DurationUnit,
		UpdatedAt:    d.UpdatedAt,
	}
}

func rowToDraft(r DraftRow) draft.Draft {
	return draft.Draft{
		ID:           r.ID,
		OwnerID:      r.OwnerID,
		Title:        r.Title,
		Description:  r.Description,
		State:        r.State,
		District:     r.District,
		Salary:       r.Salary,
		SalaryUnit:   r.SalaryUnit,
		Duration:     r.Duration,
		DurationUnit: r.DurationUnit,
		UpdatedAt:    r.UpdatedAt,
	}
}

// Put writes a draft with insert-or-replace semantics.
func (s *Drafts) Put(ctx context.Context, d *draft.Draft) error {
	row := draftToRow(d)
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}

// ByID returns one draft, or nil when it does not exist.
func (s *Drafts) ByID(ctx context.Context, id string) (*draft.Draft, error) {
	var row DraftRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	d := rowToDraft(row)
	return &d, nil
}

// ByOwner returns every draft belonging to one owner, newest first.
func (s *Drafts) ByOwner(ctx context.Context, ownerID string) ([]draft.Draft, error) {
	var rows []DraftRow
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	drafts := make([]draft.Draft, 0, len(rows))
	for _, r := range rows {
		drafts = append(drafts, rowToDraft(r))
	}
	return drafts, nil
}

// Delete removes a draft.
func (s *Drafts) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&DraftRow{}, "id = ?", id).Error
}
