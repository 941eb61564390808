package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	dbm "credix/internal/models/db_models"
	"credix/internal/models/response_models"
	"credix/internal/repositories"
	"credix/pkg/utils"
)

// AdminService backs the operator-facing read API: fleet metrics, payment
// listings with their audit trails, and the webhook log.
type AdminService interface {
	GetMetrics(ctx context.Context) (*response_models.AdminMetricsResponse, error)
	ListPayments(ctx context.Context, status string, page int, limit int) (*response_models.AdminPaymentListResponse, error)
	GetPaymentDetail(ctx context.Context, id uuid.UUID) (*response_models.AdminPaymentDetailResponse, error)
	ListWebhooks(ctx context.Context, page int, limit int) (*response_models.AdminWebhookListResponse, error)
}

type adminService struct {
	payments repositories.PaymentRepositoryInterface
	logs     repositories.WebhookLogRepositoryInterface
}

func NewAdminService(
	payments repositories.PaymentRepositoryInterface,
	logs repositories.WebhookLogRepositoryInterface,
) AdminService {
	return &adminService{payments: payments, logs: logs}
}

func (a *adminService) GetMetrics(ctx context.Context) (*response_models.AdminMetricsResponse, error) {

	now := time.Now()
	since := utils.StartOfDayUTC(now.AddDate(0, 0, -6)).Unix()

	payments, err := a.payments.ListCreatedSince(since, ctx)
	if err != nil {
		return nil, err
	}

	var totalVolume int64
	var capturedCount, authorizedCount, pendingCount, nonPendingCount int

	dailyVolume := make(map[string]int64, 7)
	for i := 6; i >= 0; i-- {
		day := utils.StartOfDayUTC(now.AddDate(0, 0, -i))
		dailyVolume[day.Format("2006-01-02")] = 0
	}

	for i := range payments {
		p := &payments[i]
		switch p.Status {
		case dbm.PaymentStatusCaptured:
			capturedCount++
			totalVolume += p.AmountMinor
			key := utils.DayKeyUTC(p.CreatedAt)
			if _, ok := dailyVolume[key]; ok {
				dailyVolume[key] += p.AmountMinor
			}
		case dbm.PaymentStatusAuthorized:
			authorizedCount++
		case dbm.PaymentStatusPending:
			pendingCount++
		}
		if p.Status != dbm.PaymentStatusPending {
			nonPendingCount++
		}
	}

	successRate := 0.0
	if nonPendingCount > 0 {
		successRate = float64(capturedCount) / float64(nonPendingCount) * 100
	}

	series := make([]response_models.DailyVolumePoint, 0, 7)
	for i := 6; i >= 0; i-- {
		key := utils.StartOfDayUTC(now.AddDate(0, 0, -i)).Format("2006-01-02")
		series = append(series, response_models.DailyVolumePoint{
			Date:        key,
			AmountMinor: dailyVolume[key],
		})
	}

	return &response_models.AdminMetricsResponse{
		DailyVolume:     series,
		TotalVolume7d:   totalVolume,
		SuccessRate:     successRate,
		PendingCount:    pendingCount,
		AuthorizedCount: authorizedCount,
		CapturedCount:   capturedCount,
	}, nil
}

func (a *adminService) ListPayments(ctx context.Context, status string, page int, limit int) (*response_models.AdminPaymentListResponse, error) {

	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if limit < 1 || limit > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	var statusFilter *dbm.PaymentStatus
	if status != "" {
		s := dbm.PaymentStatus(status)
		statusFilter = &s
	}

	payments, total, err := a.payments.ListPaged(statusFilter, page, limit, ctx)
	if err != nil {
		return nil, err
	}

	out := make([]response_models.AdminPaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, response_models.AdminPaymentResponseFromModel(&payments[i]))
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages == 0 {
		pages = 1
	}

	return &response_models.AdminPaymentListResponse{
		Payments: out,
		Total:    total,
		Page:     page,
		Pages:    pages,
	}, nil
}

func (a *adminService) GetPaymentDetail(ctx context.Context, id uuid.UUID) (*response_models.AdminPaymentDetailResponse, error) {

	payment, err := a.payments.GetByID(id, ctx)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, utils.ErrPaymentNotFound
	}

	events, err := a.payments.ListEvents(payment.ID, ctx)
	if err != nil {
		return nil, err
	}

	eventResponses := make([]response_models.PaymentEventResponse, 0, len(events))
	for i := range events {
		e := &events[i]
		var from *string
		if e.FromStatus != nil {
			s := string(*e.FromStatus)
			from = &s
		}
		eventResponses = append(eventResponses, response_models.PaymentEventResponse{
			ID:           e.ID.String(),
			FromStatus:   from,
			ToStatus:     string(e.ToStatus),
			EventSource:  string(e.EventSource),
			EventPayload: e.EventPayload,
			CreatedAt:    e.CreatedAt,
		})
	}

	return &response_models.AdminPaymentDetailResponse{
		Payment: response_models.AdminPaymentResponseFromModel(payment),
		Events:  eventResponses,
	}, nil
}

func (a *adminService) ListWebhooks(ctx context.Context, page int, limit int) (*response_models.AdminWebhookListResponse, error) {

	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if limit < 1 || limit > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	logs, total, err := a.logs.ListPaged(page, limit, ctx)
	if err != nil {
		return nil, err
	}

	out := make([]response_models.AdminWebhookLogResponse, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		out = append(out, response_models.AdminWebhookLogResponse{
			ID:           l.ID.String(),
			PspReference: l.PspReference,
			EventCode:    l.EventCode,
			Success:      l.Success,
			ProcessedAt:  l.ProcessedAt,
			ErrorMessage: l.ErrorMessage,
			CreatedAt:    l.CreatedAt,
		})
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages == 0 {
		pages = 1
	}

	return &response_models.AdminWebhookListResponse{
		Logs:  out,
		Total: total,
		Page:  page,
		Pages: pages,
	}, nil
}
