package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"credix/internal/models/db_models"
)

type PaymentRepositoryInterface interface {
	// CreateWithEvent persists a new payment and its first audit event in one
	// transaction.
	CreateWithEvent(payment *db_models.Payment, event *db_models.PaymentEvent, ctx context.Context) error
	// SaveWithEvent persists an updated payment and appends an audit event in
	// one transaction. A crash between the two halves must not be possible.
	SaveWithEvent(payment *db_models.Payment, event *db_models.PaymentEvent, ctx context.Context) error
	GetByID(id uuid.UUID, ctx context.Context) (*db_models.Payment, error)
	GetByPspReference(pspReference string, ctx context.Context) (*db_models.Payment, error)
	GetByMerchantReference(merchantReference string, ctx context.Context) (*db_models.Payment, error)
	UpdatePspReference(paymentID uuid.UUID, pspReference string, ctx context.Context) error
	ListByUser(userID uuid.UUID, ctx context.Context) ([]db_models.Payment, error)
	ListEvents(paymentID uuid.UUID, ctx context.Context) ([]db_models.PaymentEvent, error)
	ListPaged(status *db_models.PaymentStatus, page int, pageSize int, ctx context.Context) ([]db_models.Payment, int64, error)
	ListCreatedSince(since int64, ctx context.Context) ([]db_models.Payment, error)
}

func NewPaymentRepository(db *gorm.DB) PaymentRepositoryInterface {
	return &PaymentRepository{db: db}
}

type PaymentRepository struct {
	db *gorm.DB
}

func (p PaymentRepository) CreateWithEvent(payment *db_models.Payment, event *db_models.PaymentEvent, ctx context.Context) error {

	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		event.PaymentID = payment.ID
		return tx.Create(event).Error
	})
}

func (p PaymentRepository) SaveWithEvent(payment *db_models.Payment, event *db_models.PaymentEvent, ctx context.Context) error {

	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(payment).Error; err != nil {
			return err
		}
		event.PaymentID = payment.ID
		return tx.Create(event).Error
	})
}

func (p PaymentRepository) GetByID(id uuid.UUID, ctx context.Context) (*db_models.Payment, error) {

	var payment db_models.Payment
	err := p.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (p PaymentRepository) GetByPspReference(pspReference string, ctx context.Context) (*db_models.Payment, error) {

	var payment db_models.Payment
	err := p.db.WithContext(ctx).Where("psp_reference = ?", pspReference).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (p PaymentRepository) GetByMerchantReference(merchantReference string, ctx context.Context) (*db_models.Payment, error) {

	var payment db_models.Payment
	err := p.db.WithContext(ctx).Where("merchant_reference = ?", merchantReference).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (p PaymentRepository) UpdatePspReference(paymentID uuid.UUID, pspReference string, ctx context.Context) error {

	return p.db.WithContext(ctx).Model(&db_models.Payment{}).
		Where("id = ?", paymentID).
		Update("psp_reference", pspReference).Error
}

func (p PaymentRepository) ListByUser(userID uuid.UUID, ctx context.Context) ([]db_models.Payment, error) {

	var payments []db_models.Payment
	err := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (p PaymentRepository) ListEvents(paymentID uuid.UUID, ctx context.Context) ([]db_models.PaymentEvent, error) {

	var events []db_models.PaymentEvent
	err := p.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (p PaymentRepository) ListPaged(status *db_models.PaymentStatus, page int, pageSize int, ctx context.Context) ([]db_models.Payment, int64, error) {

	query := p.db.WithContext(ctx).Model(&db_models.Payment{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []db_models.Payment
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (p PaymentRepository) ListCreatedSince(since int64, ctx context.Context) ([]db_models.Payment, error) {

	var payments []db_models.Payment
	err := p.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
