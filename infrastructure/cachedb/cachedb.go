// Package cachedb is the sqlite-backed local cache store. Every table is a
// disposable projection of the remote source: rows are whole snapshots
// stamped with cached_at, written with insert-or-replace semantics, and
// rebuildable at any time.
package cachedb

import (
	"context"
	"fmt"
	"time"

	"github.com/prasetyowira/kerjaku/constant"
	appLogger "github.com/prasetyowira/kerjaku/infrastructure/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Store wraps the cache database.
type Store struct {
	db *gorm.DB
}

// GormLogger bridges gorm's logging into the application logger.
type GormLogger struct{}

// LogMode implements gorm's logger interface.
func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	return l
}

// Info logs info messages.
func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxInfo(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxCacheDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Warn logs warn messages.
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxWarn(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxCacheDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Error logs error messages.
func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxError(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxCacheDB,
		Error: &appLogger.ErrorInfo{
			Code:    constant.ErrCodeDBQuery,
			Variant: constant.ErrVariantDatabase,
			Message: msg,
		},
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Trace logs SQL operations.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && err != gorm.ErrRecordNotFound {
		appLogger.CtxError(ctx, "SQL error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxCacheDB,
			Error: &appLogger.ErrorInfo{
				Code:    constant.ErrCodeDBQuery,
				Variant: constant.ErrVariantDatabase,
				Message: err.Error(),
			},
			Data: map[string]interface{}{
				constant.DataElapsed: elapsed.String(),
				constant.DataRows:    rows,
				constant.DataSQL:     sql,
			},
		})
		return
	}

	appLogger.CtxDebug(ctx, "SQL query", appLogger.LoggerInfo{
		ContextFunction: constant.CtxCacheDB,
		Data: map[string]interface{}{
			constant.DataElapsed: elapsed.String(),
			constant.DataRows:    rows,
			constant.DataSQL:     sql,
		},
	})
}

// NewStore opens the cache database and migrates the snapshot tables.
func NewStore(dbPath string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: &GormLogger{},
	})
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	if err := db.AutoMigrate(
		&JobRow{},
		&UserRow{},
		&LocationRow{},
		&RatingRow{},
		&StatisticRow{},
		&DraftRow{},
	); err != nil {
		return nil, fmt.Errorf("migrate cache schema: %w", err)
	}

	appLogger.Info("Cache database initialized", appLogger.LoggerInfo{
		ContextFunction: constant.CtxCacheDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	return &Store{db: db}, nil
}

// Jobs returns the job view of the store.
func (s *Store) Jobs() *Jobs { return &Jobs{db: s.db} }

// Users returns the user view of the store.
func (s *Store) Users() *Users { return &Users{db: s.db} }

// Locations returns the location view of the store.
func (s *Store) Locations() *Locations { return &Locations{db: s.db} }

// Ratings returns the rating view of the store.
func (s *Store) Ratings() *Ratings { return &Ratings{db: s.db} }

// Statistics returns the statistics view of the store.
func (s *Store) Statistics() *Statistics { return &Statistics{db: s.db} }

// Drafts returns the draft view of the store.
func (s *Store) Drafts() *Drafts { return &Drafts{db: s.db} }

// Clear empties one entity's snapshot table.
func (s *Store) Clear(ctx context.Context, entity string) error {
	model, err := modelFor(entity)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Where("1 = 1").Delete(model).Error
}

// Count returns the number of cached rows for one entity.
func (s *Store) Count(ctx context.Context, entity string) (int64, error) {
	model, err := modelFor(entity)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(model).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func modelFor(entity string) (interface{}, error) {
	switch entity {
	case constant.EntityJob:
		return &JobRow{}, nil
	case constant.EntityUser:
		return &UserRow{}, nil
	case constant.EntityLocation:
		return &LocationRow{}, nil
	case constant.EntityRating:
		return &RatingRow{}, nil
	case constant.EntityStatistic:
		return &StatisticRow{}, nil
	case constant.EntityDraft:
		return &DraftRow{}, nil
	default:
		return nil, fmt.Errorf("unknown cache entity %q", entity)
	}
}

// Close closes the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	appLogger.Info("Closing cache database", appLogger.LoggerInfo{
		ContextFunction: constant.CtxCacheDB,
	})

	return sqlDB.Close()
}

// oldestSnapshot returns the earliest cached_at among the given stamps; the
// snapshot is only as fresh as its oldest row.
func oldestSnapshot(stamps []time.Time) time.Time {
	var oldest time.Time
	for _, t := range stamps {
		if oldest.IsZero() || t.Before(oldest) {
			oldest = t
		}
	}
	return oldest
}
