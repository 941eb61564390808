package response_models

import (
	dbm "credix/internal/models/db_models"
)

type LedgerEntryResponse struct {
	ID           string `json:"id"`
	PaymentID    string `json:"payment_id"`
	Credits      int64  `json:"credits"`
	BalanceAfter int64  `json:"balance_after"`
	CreatedAt    int64  `json:"created_at"`
}

func LedgerEntryResponseFromModel(e *dbm.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:           e.ID.String(),
		PaymentID:    e.PaymentID.String(),
		Credits:      e.Credits,
		BalanceAfter: e.BalanceAfter,
		CreatedAt:    e.CreatedAt,
	}
}

type WalletResponse struct {
	Balance       int64                 `json:"balance"`
	RecentEntries []LedgerEntryResponse `json:"recent_entries"`
}

type TransactionsResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
	Total   int64                 `json:"total"`
	Page    int                   `json:"page"`
	Pages   int                   `json:"pages"`
}
