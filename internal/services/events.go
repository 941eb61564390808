package services

import (
	"context"
	"log"
	"sync"

	"credix/internal/models/db_models"
)

// PaymentCapturedEvent is the single fact crossing the settlement boundary:
// this payment just reached CAPTURED. It carries the full snapshot so
// consumers never re-read a possibly further-advanced row.
type PaymentCapturedEvent struct {
	Payment db_models.Payment
}

type PaymentCapturedHandler func(ctx context.Context, event PaymentCapturedEvent) error

// PaymentCapturedBus dispatches captured events synchronously, strictly after
// the status-change transaction has committed. Delivery is at-least-once;
// the ledger's own idempotency absorbs duplicates, so handler failures are
// logged rather than retried here.
type PaymentCapturedBus struct {
	mu       sync.RWMutex
	handlers []PaymentCapturedHandler
}

func NewPaymentCapturedBus() *PaymentCapturedBus {
	return &PaymentCapturedBus{}
}

func (b *PaymentCapturedBus) Subscribe(handler PaymentCapturedHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
}

func (b *PaymentCapturedBus) Publish(ctx context.Context, event PaymentCapturedEvent) {
	b.mu.RLock()
	handlers := make([]PaymentCapturedHandler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			log.Printf("payment.captured handler failed for payment %s: %v", event.Payment.ID, err)
		}
	}
}
