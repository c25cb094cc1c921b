package localstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/archiveshq/storefront/pkg/config"
	"github.com/archiveshq/storefront/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type entry struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     string `gorm:"column:value"`
	UpdatedAt time.Time
}

func (entry) TableName() string {
	return "entries"
}

// SQLiteStore persists entries in a single-table sqlite database.
type SQLiteStore struct {
	conn *gorm.DB
}

// OpenSQLite opens (and migrates) the sqlite-backed store.
func OpenSQLite(ctx context.Context, cfg config.StoreConfig, logg *logger.Logger) (*SQLiteStore, error) {
	if cfg.SQLitePath == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}
	if err := conn.WithContext(ctx).AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrating local store: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "local store opened")
	}

	return &SQLiteStore{conn: conn}, nil
}

// Get returns the value stored at key, or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var row entry
	err := s.conn.WithContext(ctx).First(&row, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(row.Value), nil
}

// Set upserts the value stored at key.
func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	row := entry{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	return s.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).
		Error
}

// Delete removes the entry at key if present.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	return s.conn.WithContext(ctx).Delete(&entry{}, "key = ?", key).Error
}

// Close shuts down the underlying connection pool.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
