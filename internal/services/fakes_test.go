package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "credix/internal/models/db_models"
)

// In-memory repository fakes. They enforce the same uniqueness constraints
// as the real schema, surfacing gorm.ErrDuplicatedKey the way the Postgres
// layer does with TranslateError enabled.

type fakePaymentRepo struct {
	mu         sync.Mutex
	seq        int64
	payments   map[uuid.UUID]dbm.Payment
	events     []dbm.PaymentEvent
	pspLookups int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		seq:      1_700_000_000,
		payments: make(map[uuid.UUID]dbm.Payment),
	}
}

func (f *fakePaymentRepo) nextTimestamp() int64 {
	f.seq++
	return f.seq
}

func (f *fakePaymentRepo) CreateWithEvent(payment *dbm.Payment, event *dbm.PaymentEvent, ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	payment.CreatedAt = f.nextTimestamp()
	payment.UpdatedAt = payment.CreatedAt

	for _, existing := range f.payments {
		if existing.MerchantReference == payment.MerchantReference ||
			existing.IdempotencyKey == payment.IdempotencyKey {
			return gorm.ErrDuplicatedKey
		}
	}

	f.payments[payment.ID] = *payment

	event.ID = uuid.New()
	event.PaymentID = payment.ID
	event.CreatedAt = f.nextTimestamp()
	f.events = append(f.events, *event)
	return nil
}

func (f *fakePaymentRepo) SaveWithEvent(payment *dbm.Payment, event *dbm.PaymentEvent, ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	payment.UpdatedAt = f.nextTimestamp()
	f.payments[payment.ID] = *payment

	event.ID = uuid.New()
	event.PaymentID = payment.ID
	event.CreatedAt = f.nextTimestamp()
	f.events = append(f.events, *event)
	return nil
}

func (f *fakePaymentRepo) GetByID(id uuid.UUID, ctx context.Context) (*dbm.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if payment, ok := f.payments[id]; ok {
		p := payment
		return &p, nil
	}
	return nil, nil
}

func (f *fakePaymentRepo) GetByPspReference(pspReference string, ctx context.Context) (*dbm.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pspLookups++
	for _, payment := range f.payments {
		if payment.PspReference != nil && *payment.PspReference == pspReference {
			p := payment
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) GetByMerchantReference(merchantReference string, ctx context.Context) (*dbm.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, payment := range f.payments {
		if payment.MerchantReference == merchantReference {
			p := payment
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) UpdatePspReference(paymentID uuid.UUID, pspReference string, ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	payment, ok := f.payments[paymentID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	payment.PspReference = &pspReference
	f.payments[paymentID] = payment
	return nil
}

func (f *fakePaymentRepo) ListByUser(userID uuid.UUID, ctx context.Context) ([]dbm.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []dbm.Payment
	for _, payment := range f.payments {
		if payment.UserID == userID {
			out = append(out, payment)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) ListEvents(paymentID uuid.UUID, ctx context.Context) ([]dbm.PaymentEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []dbm.PaymentEvent
	for _, event := range f.events {
		if event.PaymentID == paymentID {
			out = append(out, event)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) ListPaged(status *dbm.PaymentStatus, page int, pageSize int, ctx context.Context) ([]dbm.Payment, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []dbm.Payment
	for _, payment := range f.payments {
		if status == nil || payment.Status == *status {
			out = append(out, payment)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePaymentRepo) ListCreatedSince(since int64, ctx context.Context) ([]dbm.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []dbm.Payment
	for _, payment := range f.payments {
		if payment.CreatedAt >= since {
			out = append(out, payment)
		}
	}
	return out, nil
}

type fakeWebhookLogRepo struct {
	mu   sync.Mutex
	seq  int64
	logs []dbm.WebhookLog
	// When set, the next Create consumes it and fails, emulating a row a
	// concurrent handler committed between lookup and insert.
	createErr error
}

func newFakeWebhookLogRepo() *fakeWebhookLogRepo {
	return &fakeWebhookLogRepo{seq: 1_700_000_000}
}

func (f *fakeWebhookLogRepo) GetByHash(hash string, ctx context.Context) (*dbm.WebhookLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, log := range f.logs {
		if log.RawPayloadHash == hash {
			l := log
			return &l, nil
		}
	}
	return nil, nil
}

func (f *fakeWebhookLogRepo) Create(log *dbm.WebhookLog, ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		err := f.createErr
		f.createErr = nil
		return err
	}

	for _, existing := range f.logs {
		if existing.RawPayloadHash == log.RawPayloadHash {
			return gorm.ErrDuplicatedKey
		}
	}

	log.ID = uuid.New()
	f.seq++
	log.CreatedAt = f.seq
	f.logs = append(f.logs, *log)
	return nil
}

func (f *fakeWebhookLogRepo) ListPaged(page int, pageSize int, ctx context.Context) ([]dbm.WebhookLog, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]dbm.WebhookLog, len(f.logs))
	copy(out, f.logs)
	return out, int64(len(out)), nil
}

type fakeLedgerRepo struct {
	mu      sync.Mutex
	seq     int64
	entries []dbm.LedgerEntry
	// When set, the next Create consumes it and fails, emulating a row a
	// concurrent handler committed between lookup and insert.
	createErr error
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{seq: 1_700_000_000}
}

func (f *fakeLedgerRepo) GetByPaymentID(paymentID uuid.UUID, ctx context.Context) (*dbm.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, entry := range f.entries {
		if entry.PaymentID == paymentID {
			e := entry
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeLedgerRepo) GetLatestByUser(userID uuid.UUID, ctx context.Context) (*dbm.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var latest *dbm.LedgerEntry
	for i := range f.entries {
		entry := f.entries[i]
		if entry.UserID != userID {
			continue
		}
		if latest == nil || entry.CreatedAt > latest.CreatedAt {
			e := entry
			latest = &e
		}
	}
	return latest, nil
}

func (f *fakeLedgerRepo) Create(entry *dbm.LedgerEntry, ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		err := f.createErr
		f.createErr = nil
		return err
	}

	for _, existing := range f.entries {
		if existing.PaymentID == entry.PaymentID {
			return gorm.ErrDuplicatedKey
		}
	}

	entry.ID = uuid.New()
	f.seq++
	entry.CreatedAt = f.seq
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeLedgerRepo) ListRecentByUser(userID uuid.UUID, limit int, ctx context.Context) ([]dbm.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []dbm.LedgerEntry
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if f.entries[i].UserID == userID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) ListPagedByUser(userID uuid.UUID, page int, pageSize int, ctx context.Context) ([]dbm.LedgerEntry, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var all []dbm.LedgerEntry
	for _, entry := range f.entries {
		if entry.UserID == userID {
			all = append(all, entry)
		}
	}

	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, int64(len(all)), nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

type fakeCheckoutProvider struct {
	err      error
	sessions int
}

func (f *fakeCheckoutProvider) CreateSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sessions++
	return &CheckoutSession{
		SessionID:   "CS-" + params.MerchantReference,
		SessionData: "session-data-blob",
	}, nil
}

func (f *fakeCheckoutProvider) ClientKey() string { return "test_client_key" }

func (f *fakeCheckoutProvider) Environment() string { return "test" }
