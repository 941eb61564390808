package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	dbm "credix/internal/models/db_models"
	"credix/internal/models/response_models"
	"credix/internal/repositories"
	"credix/pkg/utils"
)

// PaymentService owns the INITIATED -> terminal journey. It is the sole
// writer of payment rows; both the API path and the webhook pipeline go
// through TransitionStatus.
type PaymentService interface {
	InitiatePayment(ctx context.Context, userID uuid.UUID, bundleID string, returnURL string) (*response_models.CheckoutResponse, error)
	TransitionStatus(ctx context.Context, payment *dbm.Payment, newStatus dbm.PaymentStatus, source dbm.EventSource, payload map[string]any) (*dbm.Payment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dbm.Payment, error)
	FindByPspReference(ctx context.Context, pspReference string) (*dbm.Payment, error)
	FindByMerchantReference(ctx context.Context, merchantReference string) (*dbm.Payment, error)
	UpdatePspReference(ctx context.Context, payment *dbm.Payment, pspReference string) error
	FindUserPayments(ctx context.Context, userID uuid.UUID) ([]dbm.Payment, error)
}

type paymentService struct {
	payments repositories.PaymentRepositoryInterface
	checkout CheckoutProvider
	captured *PaymentCapturedBus
}

func NewPaymentService(
	payments repositories.PaymentRepositoryInterface,
	checkout CheckoutProvider,
	captured *PaymentCapturedBus,
) PaymentService {
	return &paymentService{
		payments: payments,
		checkout: checkout,
		captured: captured,
	}
}

func (p *paymentService) InitiatePayment(ctx context.Context, userID uuid.UUID, bundleID string, returnURL string) (*response_models.CheckoutResponse, error) {

	bundle, ok := BundleByID(bundleID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", utils.ErrBundleNotFound, bundleID)
	}

	merchantReference := fmt.Sprintf("CRX-%d-%s", utils.NowUnixMillis(), uuid.NewString()[:8])
	idempotencyKey := uuid.NewString()

	metadata, _ := json.Marshal(map[string]string{"bundle_id": bundleID})

	payment := &dbm.Payment{
		UserID:            userID,
		MerchantReference: merchantReference,
		IdempotencyKey:    idempotencyKey,
		AmountMinor:       bundle.AmountMinor,
		Currency:          BundleCurrency,
		Status:            dbm.PaymentStatusInitiated,
		Metadata:          datatypes.JSON(metadata),
	}

	firstEvent := &dbm.PaymentEvent{
		FromStatus:  nil,
		ToStatus:    dbm.PaymentStatusInitiated,
		EventSource: dbm.EventSourceAPI,
	}

	if err := p.payments.CreateWithEvent(payment, firstEvent, ctx); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	session, err := p.checkout.CreateSession(ctx, CheckoutSessionParams{
		AmountMinor:       bundle.AmountMinor,
		Currency:          BundleCurrency,
		MerchantReference: merchantReference,
		ShopperReference:  userID.String(),
		ReturnURL:         returnURL,
		IdempotencyKey:    idempotencyKey,
	})
	if err != nil {
		log.Printf("checkout session creation failed for ref=%s: %v", merchantReference, err)

		// The payment row stays behind as a permanent record of the attempt.
		if _, terr := p.TransitionStatus(ctx, payment, dbm.PaymentStatusError, dbm.EventSourceAPI, map[string]any{
			"error": err.Error(),
		}); terr != nil {
			log.Printf("failed to move payment %s to ERROR: %v", payment.ID, terr)
		}

		return nil, err
	}

	return &response_models.CheckoutResponse{
		PaymentID:         payment.ID.String(),
		MerchantReference: merchantReference,
		SessionID:         session.SessionID,
		SessionData:       session.SessionData,
		ClientKey:         p.checkout.ClientKey(),
		Environment:       p.checkout.Environment(),
	}, nil
}

func (p *paymentService) TransitionStatus(ctx context.Context, payment *dbm.Payment, newStatus dbm.PaymentStatus, source dbm.EventSource, payload map[string]any) (*dbm.Payment, error) {

	if err := dbm.AssertTransition(payment.Status, newStatus); err != nil {
		return nil, err
	}

	fromStatus := payment.Status
	payment.Status = newStatus

	now := utils.NowUnixSeconds()
	if newStatus == dbm.PaymentStatusAuthorized && payment.AuthorizedAt == nil {
		payment.AuthorizedAt = &now
	}
	if newStatus == dbm.PaymentStatusCaptured && payment.CapturedAt == nil {
		payment.CapturedAt = &now
	}

	event := &dbm.PaymentEvent{
		FromStatus:  &fromStatus,
		ToStatus:    newStatus,
		EventSource: source,
	}
	if payload != nil {
		if raw, err := json.Marshal(payload); err == nil {
			event.EventPayload = datatypes.JSON(raw)
		}
	}

	if err := p.payments.SaveWithEvent(payment, event, ctx); err != nil {
		return nil, fmt.Errorf("persist transition: %w", err)
	}

	log.Printf("Payment %s: %s -> %s [%s]", payment.ID, fromStatus, newStatus, source)

	// Publish only after the status write is durable; the ledger's own
	// idempotency covers redundant deliveries.
	if newStatus == dbm.PaymentStatusCaptured {
		p.captured.Publish(ctx, PaymentCapturedEvent{Payment: *payment})
	}

	return payment, nil
}

func (p *paymentService) FindByID(ctx context.Context, id uuid.UUID) (*dbm.Payment, error) {
	payment, err := p.payments.GetByID(id, ctx)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, utils.ErrPaymentNotFound
	}
	return payment, nil
}

// FindByPspReference returns (nil, nil) when no payment matches; webhook
// correlation routinely probes references that may not exist yet.
func (p *paymentService) FindByPspReference(ctx context.Context, pspReference string) (*dbm.Payment, error) {
	return p.payments.GetByPspReference(pspReference, ctx)
}

func (p *paymentService) FindByMerchantReference(ctx context.Context, merchantReference string) (*dbm.Payment, error) {
	return p.payments.GetByMerchantReference(merchantReference, ctx)
}

func (p *paymentService) UpdatePspReference(ctx context.Context, payment *dbm.Payment, pspReference string) error {
	if err := p.payments.UpdatePspReference(payment.ID, pspReference, ctx); err != nil {
		return err
	}
	payment.PspReference = &pspReference
	return nil
}

func (p *paymentService) FindUserPayments(ctx context.Context, userID uuid.UUID) ([]dbm.Payment, error) {
	return p.payments.ListByUser(userID, ctx)
}
