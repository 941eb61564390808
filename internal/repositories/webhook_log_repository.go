package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"credix/internal/models/db_models"
)

type WebhookLogRepositoryInterface interface {
	GetByHash(hash string, ctx context.Context) (*db_models.WebhookLog, error)
	// Create inserts the log row. Callers must treat a unique violation on
	// raw_payload_hash as a concurrent duplicate, not a failure.
	Create(log *db_models.WebhookLog, ctx context.Context) error
	ListPaged(page int, pageSize int, ctx context.Context) ([]db_models.WebhookLog, int64, error)
}

func NewWebhookLogRepository(db *gorm.DB) WebhookLogRepositoryInterface {
	return &WebhookLogRepository{db: db}
}

type WebhookLogRepository struct {
	db *gorm.DB
}

func (w WebhookLogRepository) GetByHash(hash string, ctx context.Context) (*db_models.WebhookLog, error) {

	var log db_models.WebhookLog
	err := w.db.WithContext(ctx).Where("raw_payload_hash = ?", hash).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

func (w WebhookLogRepository) Create(log *db_models.WebhookLog, ctx context.Context) error {
	return w.db.WithContext(ctx).Create(log).Error
}

func (w WebhookLogRepository) ListPaged(page int, pageSize int, ctx context.Context) ([]db_models.WebhookLog, int64, error) {

	var total int64
	if err := w.db.WithContext(ctx).Model(&db_models.WebhookLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []db_models.WebhookLog
	offset := (page - 1) * pageSize
	err := w.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
