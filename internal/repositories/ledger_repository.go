package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"credix/internal/models/db_models"
)

type LedgerRepositoryInterface interface {
	GetByPaymentID(paymentID uuid.UUID, ctx context.Context) (*db_models.LedgerEntry, error)
	// GetLatestByUser returns the most recent entry, which carries the
	// materialized balance. (nil, nil) means the user has no entries yet.
	GetLatestByUser(userID uuid.UUID, ctx context.Context) (*db_models.LedgerEntry, error)
	// Create inserts the entry. A unique violation on payment_id means a
	// concurrent allocation won the race.
	Create(entry *db_models.LedgerEntry, ctx context.Context) error
	ListRecentByUser(userID uuid.UUID, limit int, ctx context.Context) ([]db_models.LedgerEntry, error)
	ListPagedByUser(userID uuid.UUID, page int, pageSize int, ctx context.Context) ([]db_models.LedgerEntry, int64, error)
}

func NewLedgerRepository(db *gorm.DB) LedgerRepositoryInterface {
	return &LedgerRepository{db: db}
}

type LedgerRepository struct {
	db *gorm.DB
}

func (l LedgerRepository) GetByPaymentID(paymentID uuid.UUID, ctx context.Context) (*db_models.LedgerEntry, error) {

	var entry db_models.LedgerEntry
	err := l.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (l LedgerRepository) GetLatestByUser(userID uuid.UUID, ctx context.Context) (*db_models.LedgerEntry, error) {

	var entry db_models.LedgerEntry
	err := l.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (l LedgerRepository) Create(entry *db_models.LedgerEntry, ctx context.Context) error {
	return l.db.WithContext(ctx).Create(entry).Error
}

func (l LedgerRepository) ListRecentByUser(userID uuid.UUID, limit int, ctx context.Context) ([]db_models.LedgerEntry, error) {

	var entries []db_models.LedgerEntry
	err := l.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (l LedgerRepository) ListPagedByUser(userID uuid.UUID, page int, pageSize int, ctx context.Context) ([]db_models.LedgerEntry, int64, error) {

	var total int64
	if err := l.db.WithContext(ctx).Model(&db_models.LedgerEntry{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []db_models.LedgerEntry
	offset := (page - 1) * pageSize
	err := l.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
