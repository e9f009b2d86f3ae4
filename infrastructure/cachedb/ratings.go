package cachedb

import (
	"context"
	"time"

	"github.com/prasetyowira/kerjaku/domain/rating"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ratings is the rating view of the cache store, implementing rating.Cache.
type Ratings struct {
	db *gorm.DB
}

// RatingRow is the cache snapshot of one rating.
type RatingRow struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	RaterID   string
	Score     float64
	Comment   string
	CreatedAt time.Time
	CachedAt  time.Time
}

// ForUser returns the cached ratings left for one user.
func (s *Ratings) ForUser(ctx context.Context, userID string) ([]rating.Rating, time.Time, error) {
	var rows []RatingRow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, time.Time{}, err
	}

	ratings := make([]rating.Rating, 0, len(rows))
	stamps := make([]time.Time, 0, len(rows))
	for _, r := range rows {
		ratings = append(ratings, rating.Rating{
			ID:        r.ID,
			UserID:    r.UserID,
			RaterID:   r.RaterID,
			Score:     r.Score,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		})
		stamps = append(stamps, r.CachedAt)
	}
	return ratings, oldestSnapshot(stamps), nil
}

// Put writes rating snapshots with insert-or-replace semantics.
func (s *Ratings) Put(ctx context.Context, ratings []rating.Rating) error {
	if len(ratings) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]RatingRow, 0, len(ratings))
	for _, r := range ratings {
		rows = append(rows, RatingRow{
			ID:        r.ID,
			UserID:    r.UserID,
			RaterID:   r.RaterID,
			Score:     r.Score,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
			CachedAt:  now,
		})
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rows).Error
}
