package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"

	dbm "credix/internal/models/db_models"
	"credix/internal/repositories"
	"credix/pkg/utils"
)

type WebhookConfig struct {
	// Hex-encoded pre-shared HMAC key. Empty disables verification; that is
	// the documented weak-security fallback for local and test deployments.
	HMACKey string
	// Zero means auto-capture: a successful AUTHORISATION promotes the
	// payment straight to CAPTURED.
	CaptureDelayHours int
}

type NotificationRequestItem struct {
	PspReference      string `json:"pspReference"`
	OriginalReference string `json:"originalReference,omitempty"`
	MerchantReference string `json:"merchantReference"`
	EventCode         string `json:"eventCode"`
	Success           string `json:"success"` // "true" | "false"
	Reason            string `json:"reason,omitempty"`
	Amount            struct {
		Value    int64  `json:"value"`
		Currency string `json:"currency"`
	} `json:"amount"`
	AdditionalData map[string]string `json:"additionalData,omitempty"`
}

type WebhookNotificationItem struct {
	NotificationRequestItem NotificationRequestItem `json:"NotificationRequestItem"`
}

type WebhookPayload struct {
	Live              string                    `json:"live"`
	NotificationItems []WebhookNotificationItem `json:"notificationItems"`
}

// eventStatusMap maps provider event codes to target statuses. An empty
// failure entry means unsuccessful deliveries of that code are skipped.
var eventStatusMap = map[string]struct {
	success dbm.PaymentStatus
	failure dbm.PaymentStatus
}{
	"AUTHORISATION":  {success: dbm.PaymentStatusAuthorized, failure: dbm.PaymentStatusRefused},
	"CAPTURE":        {success: dbm.PaymentStatusCaptured, failure: dbm.PaymentStatusFailed},
	"CANCELLATION":   {success: dbm.PaymentStatusCanceled},
	"REFUND":         {success: dbm.PaymentStatusCaptured},
	"CAPTURE_FAILED": {success: dbm.PaymentStatusFailed},
}

// WebhookProcessor is the only trusted authority for advancing payment state
// from provider notifications. It must be safe to invoke arbitrarily many
// times with the same or overlapping content.
type WebhookProcessorInterface interface {
	ProcessWebhook(ctx context.Context, rawPayload []byte, hmacSignature string) error
	VerifyHMAC(payload []byte, signature string) bool
	ComputeHash(pspReference string, eventCode string, success string) string
}

type webhookProcessor struct {
	logs     repositories.WebhookLogRepositoryInterface
	payments PaymentService
	cfg      WebhookConfig
}

func NewWebhookProcessor(
	logs repositories.WebhookLogRepositoryInterface,
	payments PaymentService,
	cfg WebhookConfig,
) WebhookProcessorInterface {
	if cfg.HMACKey == "" {
		log.Println("HMAC key not configured, webhook signature verification disabled")
	}
	return &webhookProcessor{
		logs:     logs,
		payments: payments,
		cfg:      cfg,
	}
}

func (w *webhookProcessor) VerifyHMAC(payload []byte, signature string) bool {
	if w.cfg.HMACKey == "" {
		return true
	}

	key, err := hex.DecodeString(w.cfg.HMACKey)
	if err != nil {
		log.Printf("malformed HMAC key: %v", err)
		return false
	}

	mac := hmac.New(sha256.New, key)
	mac.Write(payload)
	computed := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(computed), []byte(signature))
}

// ProcessWebhook verifies the signature and processes each notification item
// independently. The only error it ever returns is the signature failure;
// everything past that point is recorded in webhook logs instead, so the
// provider sees an acknowledgement and stops redelivering.
func (w *webhookProcessor) ProcessWebhook(ctx context.Context, rawPayload []byte, hmacSignature string) error {

	if !w.VerifyHMAC(rawPayload, hmacSignature) {
		return utils.ErrUnauthorizedSignature
	}

	var body WebhookPayload
	if err := json.Unmarshal(rawPayload, &body); err != nil {
		log.Printf("unparseable webhook payload: %v", err)
		return nil
	}

	for _, item := range body.NotificationItems {
		w.processNotification(ctx, item.NotificationRequestItem)
	}

	return nil
}

func (w *webhookProcessor) processNotification(ctx context.Context, notification NotificationRequestItem) {

	isSuccess := notification.Success == "true"
	idempotencyHash := w.ComputeHash(notification.PspReference, notification.EventCode, notification.Success)

	// Fast-path duplicate check; the unique index on raw_payload_hash is the
	// authoritative gate at insert time.
	existing, err := w.logs.GetByHash(idempotencyHash, ctx)
	if err != nil {
		log.Printf("webhook dedup lookup failed: %v", err)
		return
	}
	if existing != nil {
		log.Printf("Duplicate webhook skipped: %s for psp=%s", notification.EventCode, maskRef(notification.PspReference))
		return
	}

	logEntry := &dbm.WebhookLog{
		RawPayloadHash: idempotencyHash,
		EventCode:      notification.EventCode,
		Success:        isSuccess,
	}
	if notification.PspReference != "" {
		psp := notification.PspReference
		logEntry.PspReference = &psp
	}

	if err := w.handleNotification(ctx, notification, isSuccess); err != nil {
		msg := err.Error()
		logEntry.ErrorMessage = &msg
		log.Printf("Webhook processing failed for %s psp=%s: %v",
			notification.EventCode, maskRef(notification.PspReference), err)
	}

	now := utils.NowUnixSeconds()
	logEntry.ProcessedAt = &now

	if err := w.logs.Create(logEntry, ctx); err != nil {
		if repositories.IsUniqueViolation(err) {
			// A concurrent handler processed the same logical notification
			// between our lookup and this insert.
			log.Printf("Concurrent duplicate webhook for psp=%s caught by constraint", maskRef(notification.PspReference))
			return
		}
		log.Printf("failed to record webhook log: %v", err)
	}
}

// handleNotification resolves the payment, maps the event and drives the
// transition. Its error becomes the webhook log's error message.
func (w *webhookProcessor) handleNotification(ctx context.Context, notification NotificationRequestItem, isSuccess bool) error {

	payment, err := w.resolvePayment(ctx, notification)
	if err != nil {
		return err
	}
	if payment == nil {
		log.Printf("Payment not found for psp=%s, originalRef=%s, merchantRef=%s",
			maskRef(notification.PspReference),
			maskRef(notification.OriginalReference),
			notification.MerchantReference)
		return fmt.Errorf("payment not found")
	}

	// First notification wins the psp-reference backfill.
	if payment.PspReference == nil && notification.PspReference != "" {
		if err := w.payments.UpdatePspReference(ctx, payment, notification.PspReference); err != nil {
			return fmt.Errorf("backfill psp reference: %w", err)
		}
	}

	newStatus, mapped := w.mapEventToStatus(notification.EventCode, isSuccess)
	if !mapped {
		log.Printf("Unmapped event code: %s (success=%v)", notification.EventCode, isSuccess)
		return nil
	}

	if !isSuccess && notification.Reason != "" {
		reason := notification.Reason
		payment.FailureReason = &reason
	}
	if payment.PaymentMethodType == nil {
		if method, ok := notification.AdditionalData["paymentMethod"]; ok && method != "" {
			payment.PaymentMethodType = &method
		}
	}

	_, err = w.payments.TransitionStatus(ctx, payment, newStatus, dbm.EventSourceWebhook, map[string]any{
		"event_code":    notification.EventCode,
		"psp_reference": maskRef(notification.PspReference),
		"success":       isSuccess,
		"reason":        notification.Reason,
	})
	if err != nil {
		// Re-delivery of an already-applied event lands here as from == to;
		// that is a benign no-op, not an error.
		if dbm.IsInvalidTransition(err) && payment.Status == newStatus {
			log.Printf("Webhook no-op: payment %s already %s", payment.ID, newStatus)
			return nil
		}
		return err
	}

	log.Printf("Webhook processed: %s -> %s for psp=%s",
		notification.EventCode, newStatus, maskRef(notification.PspReference))
	return nil
}

// resolvePayment chases references in priority order: provider reference,
// then the original reference (capture-after-authorisation chaining), then
// the merchant reference. The order matters; later references are less
// specific.
func (w *webhookProcessor) resolvePayment(ctx context.Context, notification NotificationRequestItem) (*dbm.Payment, error) {

	var payment *dbm.Payment
	var err error

	if notification.PspReference != "" {
		payment, err = w.payments.FindByPspReference(ctx, notification.PspReference)
		if err != nil {
			return nil, err
		}
	}

	if payment == nil && notification.OriginalReference != "" {
		payment, err = w.payments.FindByPspReference(ctx, notification.OriginalReference)
		if err != nil {
			return nil, err
		}
	}

	if payment == nil && notification.MerchantReference != "" {
		payment, err = w.payments.FindByMerchantReference(ctx, notification.MerchantReference)
		if err != nil {
			return nil, err
		}
	}

	return payment, nil
}

func (w *webhookProcessor) mapEventToStatus(eventCode string, isSuccess bool) (dbm.PaymentStatus, bool) {
	mapping, ok := eventStatusMap[eventCode]
	if !ok {
		return "", false
	}

	if !isSuccess {
		if mapping.failure == "" {
			return "", false
		}
		return mapping.failure, true
	}

	// Auto-capture deployments settle immediately on authorisation.
	if eventCode == "AUTHORISATION" && w.cfg.CaptureDelayHours == 0 {
		return dbm.PaymentStatusCaptured, true
	}

	return mapping.success, true
}

// ComputeHash derives the dedup key from the logical event identity, not the
// raw payload: providers re-deliver the same event with cosmetic differences.
func (w *webhookProcessor) ComputeHash(pspReference string, eventCode string, success string) string {
	raw := fmt.Sprintf("%s:%s:%s", pspReference, eventCode, success)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// maskRef keeps a short suffix for correlation and redacts the remainder so
// processor identifiers never land in logs or audit payloads verbatim.
func maskRef(ref string) string {
	if ref == "" {
		return "n/a"
	}
	if len(ref) <= 4 {
		return "****"
	}
	return "****" + ref[len(ref)-4:]
}
