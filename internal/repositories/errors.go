package repositories

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// IsUniqueViolation reports whether err is a uniqueness-constraint failure,
// either gorm's translated sentinel or the raw Postgres 23505 from lib/pq.
// The ledger and webhook-log writes rely on this to turn a lost race into
// "already done".
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
