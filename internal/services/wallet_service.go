package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	dbm "credix/internal/models/db_models"
	"credix/internal/models/response_models"
	"credix/internal/repositories"
	"credix/pkg/utils"
)

type WalletService interface {
	// AllocateCredits grants credits for a captured payment exactly once.
	// A nil entry with nil error means the grant already happened; that is
	// the expected outcome on duplicate delivery.
	AllocateCredits(ctx context.Context, payment *dbm.Payment) (*dbm.LedgerEntry, error)
	GetBalance(ctx context.Context, userID uuid.UUID) (int64, error)
	GetRecentEntries(ctx context.Context, userID uuid.UUID, limit int) ([]dbm.LedgerEntry, error)
	GetTransactions(ctx context.Context, userID uuid.UUID, page int, limit int) (*response_models.TransactionsResponse, error)
}

type walletService struct {
	ledger repositories.LedgerRepositoryInterface
}

func NewWalletService(ledger repositories.LedgerRepositoryInterface) WalletService {
	return &walletService{ledger: ledger}
}

func (w *walletService) AllocateCredits(ctx context.Context, payment *dbm.Payment) (*dbm.LedgerEntry, error) {

	existing, err := w.ledger.GetByPaymentID(payment.ID, ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		log.Printf("Credits already allocated for payment %s, skipping", payment.ID)
		return nil, nil
	}

	credits := resolveCredits(payment)

	currentBalance, err := w.GetBalance(ctx, payment.UserID)
	if err != nil {
		return nil, err
	}
	newBalance := currentBalance + credits

	entry := &dbm.LedgerEntry{
		UserID:       payment.UserID,
		PaymentID:    payment.ID,
		Credits:      credits,
		BalanceAfter: newBalance,
	}

	if err := w.ledger.Create(entry, ctx); err != nil {
		// Two allocations raced past the existence check; the constraint on
		// payment_id decided the winner. Same outcome as "already allocated".
		if repositories.IsUniqueViolation(err) {
			log.Printf("Duplicate allocation attempt caught by DB constraint for payment %s", payment.ID)
			return nil, nil
		}
		return nil, fmt.Errorf("create ledger entry: %w", err)
	}

	log.Printf("Allocated %d credits to user %s (balance: %d) for payment %s",
		credits, payment.UserID, newBalance, payment.ID)
	return entry, nil
}

func (w *walletService) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	latest, err := w.ledger.GetLatestByUser(userID, ctx)
	if err != nil {
		return 0, err
	}
	if latest == nil {
		return 0, nil
	}
	return latest.BalanceAfter, nil
}

func (w *walletService) GetRecentEntries(ctx context.Context, userID uuid.UUID, limit int) ([]dbm.LedgerEntry, error) {
	if limit <= 0 {
		limit = 5
	}
	return w.ledger.ListRecentByUser(userID, limit, ctx)
}

func (w *walletService) GetTransactions(ctx context.Context, userID uuid.UUID, page int, limit int) (*response_models.TransactionsResponse, error) {

	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if limit < 1 || limit > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	entries, total, err := w.ledger.ListPagedByUser(userID, page, limit, ctx)
	if err != nil {
		return nil, err
	}

	out := make([]response_models.LedgerEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, response_models.LedgerEntryResponseFromModel(&entries[i]))
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages == 0 {
		pages = 1
	}

	return &response_models.TransactionsResponse{
		Entries: out,
		Total:   total,
		Page:    page,
		Pages:   pages,
	}, nil
}

// resolveCredits prefers the bundle id carried in the payment metadata, falls
// back to matching the amount against the bundle table, and finally derives
// credits at the fixed minor-units-per-credit ratio.
func resolveCredits(payment *dbm.Payment) int64 {
	var meta struct {
		BundleID string `json:"bundle_id"`
	}
	if len(payment.Metadata) > 0 {
		_ = json.Unmarshal(payment.Metadata, &meta)
	}

	if meta.BundleID != "" {
		if bundle, ok := BundleByID(meta.BundleID); ok {
			return bundle.Credits
		}
	}

	if credits, ok := CreditsForAmount(payment.AmountMinor); ok {
		return credits
	}

	return payment.AmountMinor / 10
}
