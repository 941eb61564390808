package response_models

import (
	dbm "credix/internal/models/db_models"
)

// CheckoutResponse is everything the (external) drop-in widget needs to
// render the hosted payment session.
type CheckoutResponse struct {
	PaymentID         string `json:"payment_id"`
	MerchantReference string `json:"merchant_reference"`
	SessionID         string `json:"session_id"`
	SessionData       string `json:"session_data"`
	ClientKey         string `json:"client_key"`
	Environment       string `json:"environment"`
}

type PaymentResponse struct {
	ID                string  `json:"id"`
	MerchantReference string  `json:"merchant_reference"`
	AmountMinor       int64   `json:"amount_minor"`
	Currency          string  `json:"currency"`
	Status            string  `json:"status"`
	PaymentMethodType *string `json:"payment_method_type,omitempty"`
	FailureReason     *string `json:"failure_reason,omitempty"`
	AuthorizedAt      *int64  `json:"authorized_at,omitempty"`
	CapturedAt        *int64  `json:"captured_at,omitempty"`
	CreatedAt         int64   `json:"created_at"`
}

func PaymentResponseFromModel(p *dbm.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID.String(),
		MerchantReference: p.MerchantReference,
		AmountMinor:       p.AmountMinor,
		Currency:          p.Currency,
		Status:            string(p.Status),
		PaymentMethodType: p.PaymentMethodType,
		FailureReason:     p.FailureReason,
		AuthorizedAt:      p.AuthorizedAt,
		CapturedAt:        p.CapturedAt,
		CreatedAt:         p.CreatedAt,
	}
}
