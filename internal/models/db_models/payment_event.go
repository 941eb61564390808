package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PaymentEvent is the append-only audit trail: one row per status transition,
// immutable once written.
type PaymentEvent struct {
	BaseModel
	PaymentID uuid.UUID `gorm:"index"`

	// Nil only for the very first event of a payment.
	FromStatus *PaymentStatus `gorm:"size:32"`
	ToStatus   PaymentStatus  `gorm:"size:32"`

	EventSource  EventSource    `gorm:"size:32"`
	EventPayload datatypes.JSON `gorm:"type:jsonb"`

	Payment Payment `gorm:"foreignKey:PaymentID"`
}
