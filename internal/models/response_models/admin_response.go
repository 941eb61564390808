package response_models

import (
	dbm "credix/internal/models/db_models"
)

type DailyVolumePoint struct {
	Date        string `json:"date"` // YYYY-MM-DD
	AmountMinor int64  `json:"amount_minor"`
}

type AdminMetricsResponse struct {
	DailyVolume     []DailyVolumePoint `json:"daily_volume"`
	TotalVolume7d   int64              `json:"total_volume_7d"`
	SuccessRate     float64            `json:"success_rate"`
	PendingCount    int                `json:"pending_count"`
	AuthorizedCount int                `json:"authorized_count"`
	CapturedCount   int                `json:"captured_count"`
}

type AdminPaymentResponse struct {
	PaymentResponse
	UserID       string  `json:"user_id"`
	PspReference *string `json:"psp_reference,omitempty"`
}

func AdminPaymentResponseFromModel(p *dbm.Payment) AdminPaymentResponse {
	return AdminPaymentResponse{
		PaymentResponse: PaymentResponseFromModel(p),
		UserID:          p.UserID.String(),
		PspReference:    p.PspReference,
	}
}

type AdminPaymentListResponse struct {
	Payments []AdminPaymentResponse `json:"payments"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	Pages    int                    `json:"pages"`
}

type PaymentEventResponse struct {
	ID           string  `json:"id"`
	FromStatus   *string `json:"from_status"`
	ToStatus     string  `json:"to_status"`
	EventSource  string  `json:"event_source"`
	EventPayload any     `json:"event_payload,omitempty"`
	CreatedAt    int64   `json:"created_at"`
}

type AdminPaymentDetailResponse struct {
	Payment AdminPaymentResponse   `json:"payment"`
	Events  []PaymentEventResponse `json:"events"`
}

type AdminWebhookLogResponse struct {
	ID           string  `json:"id"`
	PspReference *string `json:"psp_reference"`
	EventCode    string  `json:"event_code"`
	Success      bool    `json:"success"`
	ProcessedAt  *int64  `json:"processed_at"`
	ErrorMessage *string `json:"error_message"`
	CreatedAt    int64   `json:"created_at"`
}

type AdminWebhookListResponse struct {
	Logs  []AdminWebhookLogResponse `json:"logs"`
	Total int64                     `json:"total"`
	Page  int                       `json:"page"`
	Pages int                       `json:"pages"`
}
