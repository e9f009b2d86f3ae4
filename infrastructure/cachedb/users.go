package cachedb

import (
	"context"
	"errors"
	"time"

	"github.com/prasetyowira/kerjaku/domain/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Users is the user view of the cache store, implementing user.Cache.
type Users struct {
	db *gorm.DB
}

// UserRow is the cache snapshot of an account profile.
type UserRow struct {
	ID        string `gorm:"primaryKey"`
	Phone     string
	Name      string
	Role      string
	State     string
	District  string
	CreatedAt time.Time
	CachedAt  time.Time
}

// ByID returns one cached profile, or nil on a cache miss.
func (s *Users) ByID(ctx context.Context, id string) (*user.User, time.Time, error) {
	var row UserRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	u := user.User{
		ID:        row.ID,
		Phone:     row.Phone,
		Name:      row.Name,
		Role:      row.Role,
		State:     row.State,
		District:  row.District,
		CreatedAt: row.CreatedAt,
	}
	return &u, row.CachedAt, nil
}

// Put writes a profile snapshot with insert-or-replace semantics.
func (s *Users) Put(ctx context.Context, u *user.User) error {
	row := UserRow{
		ID:        u.ID,
		Phone:     u.Phone,
		Name:      u.Name,
		Role:      u.Role,
		State:     u.State,
		District:  u.District,
		CreatedAt: u.CreatedAt,
		CachedAt:  time.Now(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}
