package services

import "context"

// CheckoutSessionParams is the input for the hosted-session call to the
// payment provider.
type CheckoutSessionParams struct {
	AmountMinor       int64
	Currency          string
	MerchantReference string
	ShopperReference  string
	ReturnURL         string
	IdempotencyKey    string
}

type CheckoutSession struct {
	SessionID   string
	SessionData string
}

// CheckoutProvider creates hosted payment sessions with the external
// processor. The call is fallible and bounded by a timeout; this core never
// retries it (the idempotency key makes caller-side retries safe).
type CheckoutProvider interface {
	CreateSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)
	ClientKey() string
	Environment() string
}
