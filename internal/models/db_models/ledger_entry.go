package db_models

import "github.com/google/uuid"

// LedgerEntry is an append-only credit grant. The unique index on PaymentID
// is the core idempotency invariant: at most one grant per settled payment,
// regardless of how many times the capture notification is delivered.
type LedgerEntry struct {
	BaseModel
	UserID    uuid.UUID `gorm:"index"`
	PaymentID uuid.UUID `gorm:"uniqueIndex"`

	Credits int64
	// Materialized running total; the balance read path never sums the table.
	BalanceAfter int64

	Payment Payment `gorm:"foreignKey:PaymentID"`
}
