package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbm "credix/internal/models/db_models"
	"credix/pkg/utils"
)

func newTestPaymentService(checkout *fakeCheckoutProvider) (PaymentService, *fakePaymentRepo, *PaymentCapturedBus) {
	repo := newFakePaymentRepo()
	bus := NewPaymentCapturedBus()
	return NewPaymentService(repo, checkout, bus), repo, bus
}

func TestInitiatePaymentHappyPath(t *testing.T) {
	checkout := &fakeCheckoutProvider{}
	svc, repo, _ := newTestPaymentService(checkout)
	userID := uuid.New()

	resp, err := svc.InitiatePayment(context.Background(), userID, "bundle_10", "https://app.example.com/return")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.MerchantReference, "CRX-"))
	assert.Equal(t, "CS-"+resp.MerchantReference, resp.SessionID)
	assert.Equal(t, "session-data-blob", resp.SessionData)
	assert.Equal(t, "test_client_key", resp.ClientKey)
	assert.Equal(t, "test", resp.Environment)
	assert.Equal(t, 1, checkout.sessions)

	payment, err := svc.FindByID(context.Background(), uuid.MustParse(resp.PaymentID))
	require.NoError(t, err)
	assert.Equal(t, dbm.PaymentStatusInitiated, payment.Status)
	assert.Equal(t, int64(1000), payment.AmountMinor)
	assert.Equal(t, "USD", payment.Currency)
	assert.NotEmpty(t, payment.IdempotencyKey)

	events, err := repo.ListEvents(payment.ID, context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].FromStatus)
	assert.Equal(t, dbm.PaymentStatusInitiated, events[0].ToStatus)
	assert.Equal(t, dbm.EventSourceAPI, events[0].EventSource)
}

func TestInitiatePaymentUnknownBundle(t *testing.T) {
	svc, repo, _ := newTestPaymentService(&fakeCheckoutProvider{})

	_, err := svc.InitiatePayment(context.Background(), uuid.New(), "bundle_999", "https://app.example.com/return")
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrBundleNotFound)
	assert.Empty(t, repo.payments)
}

func TestInitiatePaymentSessionFailureMovesToError(t *testing.T) {
	sessionErr := errors.New("provider unreachable")
	svc, repo, _ := newTestPaymentService(&fakeCheckoutProvider{err: sessionErr})
	userID := uuid.New()

	_, err := svc.InitiatePayment(context.Background(), userID, "bundle_25", "https://app.example.com/return")
	require.ErrorIs(t, err, sessionErr)

	// The payment row survives as a permanent record of the failed attempt.
	payments, err := svc.FindUserPayments(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, dbm.PaymentStatusError, payments[0].Status)

	events, err := repo.ListEvents(payments[0].ID, context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, dbm.PaymentStatusInitiated, events[0].ToStatus)
	assert.Equal(t, dbm.PaymentStatusError, events[1].ToStatus)
}

func TestTransitionStatusStampsTimestampsOnce(t *testing.T) {
	svc, _, _ := newTestPaymentService(&fakeCheckoutProvider{})
	resp, err := svc.InitiatePayment(context.Background(), uuid.New(), "bundle_10", "https://app.example.com/return")
	require.NoError(t, err)

	payment, err := svc.FindByID(context.Background(), uuid.MustParse(resp.PaymentID))
	require.NoError(t, err)
	assert.Nil(t, payment.AuthorizedAt)
	assert.Nil(t, payment.CapturedAt)

	payment, err = svc.TransitionStatus(context.Background(), payment, dbm.PaymentStatusAuthorized, dbm.EventSourceWebhook, nil)
	require.NoError(t, err)
	require.NotNil(t, payment.AuthorizedAt)
	authorizedAt := *payment.AuthorizedAt

	payment, err = svc.TransitionStatus(context.Background(), payment, dbm.PaymentStatusCaptured, dbm.EventSourceWebhook, nil)
	require.NoError(t, err)
	require.NotNil(t, payment.CapturedAt)
	assert.Equal(t, authorizedAt, *payment.AuthorizedAt)
}

func TestTransitionStatusRejectsIllegalMove(t *testing.T) {
	svc, _, _ := newTestPaymentService(&fakeCheckoutProvider{})
	resp, err := svc.InitiatePayment(context.Background(), uuid.New(), "bundle_10", "https://app.example.com/return")
	require.NoError(t, err)

	payment, err := svc.FindByID(context.Background(), uuid.MustParse(resp.PaymentID))
	require.NoError(t, err)

	_, err = svc.TransitionStatus(context.Background(), payment, dbm.PaymentStatusCaptured, dbm.EventSourceAPI, nil)
	require.Error(t, err)
	assert.True(t, dbm.IsInvalidTransition(err))

	// Status is untouched by the rejected request.
	reloaded, err := svc.FindByID(context.Background(), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, dbm.PaymentStatusInitiated, reloaded.Status)
}

func TestTransitionToCapturedPublishesAfterCommit(t *testing.T) {
	svc, repo, bus := newTestPaymentService(&fakeCheckoutProvider{})

	var received []PaymentCapturedEvent
	bus.Subscribe(func(ctx context.Context, event PaymentCapturedEvent) error {
		// The snapshot must already be durable when handlers run.
		stored, err := repo.GetByID(event.Payment.ID, ctx)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, dbm.PaymentStatusCaptured, stored.Status)
		received = append(received, event)
		return nil
	})

	resp, err := svc.InitiatePayment(context.Background(), uuid.New(), "bundle_10", "https://app.example.com/return")
	require.NoError(t, err)
	payment, err := svc.FindByID(context.Background(), uuid.MustParse(resp.PaymentID))
	require.NoError(t, err)

	_, err = svc.TransitionStatus(context.Background(), payment, dbm.PaymentStatusAuthorized, dbm.EventSourceWebhook, nil)
	require.NoError(t, err)
	assert.Empty(t, received)

	_, err = svc.TransitionStatus(context.Background(), payment, dbm.PaymentStatusCaptured, dbm.EventSourceWebhook, nil)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, payment.ID, received[0].Payment.ID)
}

func TestFindByIDNotFound(t *testing.T) {
	svc, _, _ := newTestPaymentService(&fakeCheckoutProvider{})

	_, err := svc.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, utils.ErrPaymentNotFound)
}

func TestFindByReferencesReturnNilWhenAbsent(t *testing.T) {
	svc, _, _ := newTestPaymentService(&fakeCheckoutProvider{})

	payment, err := svc.FindByPspReference(context.Background(), "PSP000000")
	require.NoError(t, err)
	assert.Nil(t, payment)

	payment, err = svc.FindByMerchantReference(context.Background(), "CRX-unknown")
	require.NoError(t, err)
	assert.Nil(t, payment)
}
