package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmdatafocus/practice_backend/config"
	"github.com/mmdatafocus/practice_backend/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const scanBatchSize = 500

// GormStore persists one record type in its own MySQL table.
type GormStore[T Record] struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewGormStore[T Record](db *gorm.DB, logger *logrus.Logger) *GormStore[T] {
	return &GormStore[T]{DB: db, Logger: logger}
}

func (s *GormStore[T]) Put(ctx context.Context, rec *T) error {
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(rec).Error
}

func (s *GormStore[T]) Get(ctx context.Context, id string) (*T, error) {
	var rec T
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore[T]) Delete(ctx context.Context, id string) error {
	var rec T
	return s.DB.WithContext(ctx).Where("id = ?", id).Delete(&rec).Error
}

func (s *GormStore[T]) ListIds(ctx context.Context) ([]string, error) {
	var rec T
	var ids []string
	if err := s.DB.WithContext(ctx).Model(&rec).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *GormStore[T]) Scan(ctx context.Context, keep func(*T) bool) ([]*T, error) {
	limit := config.ScanCap()
	var out []*T
	var scanned int
	truncated := false

	var batch []T
	err := s.DB.WithContext(ctx).FindInBatches(&batch, scanBatchSize, func(tx *gorm.DB, _ int) error {
		for i := range batch {
			if scanned >= limit {
				truncated = true
				return errScanTruncated
			}
			scanned++
			rec := batch[i]
			if keep == nil || keep(&rec) {
				out = append(out, &rec)
			}
		}
		return nil
	}).Error
	if err != nil && !errors.Is(err, errScanTruncated) {
		return nil, err
	}

	if truncated && s.Logger != nil {
		config.LogWarn(s.Logger, "gormstore.go", "Scan",
			fmt.Sprintf("scan truncated at %d records", limit),
			"collection scan hit the record cap; results are incomplete")
	}
	return out, nil
}

var errScanTruncated = errors.New("scan truncated")
