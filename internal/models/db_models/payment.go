package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentStatusInitiated  PaymentStatus = "INITIATED"
	PaymentStatusAuthorized PaymentStatus = "AUTHORIZED"
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusCaptured   PaymentStatus = "CAPTURED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusRefused    PaymentStatus = "REFUSED"
	PaymentStatusCanceled   PaymentStatus = "CANCELED"
	PaymentStatusError      PaymentStatus = "ERROR"
)

// Who drove a transition: the API request path or a provider notification.
type EventSource string

const (
	EventSourceAPI     EventSource = "API"
	EventSourceWebhook EventSource = "WEBHOOK"
)

type Payment struct {
	BaseModel
	UserID uuid.UUID `gorm:"index"`

	// Caller-generated reference, stable across systems.
	MerchantReference string `gorm:"size:64;uniqueIndex"`
	// Assigned by the payment provider once it picks up the transaction.
	PspReference *string `gorm:"size:64;uniqueIndex"`
	// Sent on the outbound session call so retries cannot double-charge.
	IdempotencyKey string `gorm:"size:64;uniqueIndex"`

	AmountMinor int64         // e.g. 1000 = $10.00
	Currency    string        `gorm:"size:3"` // ISO 4217
	Status      PaymentStatus `gorm:"size:32;index"`

	PaymentMethodType *string `gorm:"size:32"`
	FailureReason     *string

	// Unix seconds, stamped once when the status is first entered.
	AuthorizedAt *int64
	CapturedAt   *int64

	// Carries the purchased bundle id, session snapshots, etc.
	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Events []PaymentEvent `gorm:"foreignKey:PaymentID"`
}
