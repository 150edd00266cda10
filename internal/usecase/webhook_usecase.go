package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"tuwaiq_relay/internal/domain/businesstime"
	"tuwaiq_relay/internal/domain/callback"
	"tuwaiq_relay/internal/domain/entities"
	"tuwaiq_relay/internal/logger"
	"tuwaiq_relay/internal/usecase/interfaces"
)

const NoteNoBillID = "no billId"

// IWebhookUseCase handles payment status callbacks from the provider.
//
// An error return means the callback could not be processed at all; the HTTP
// boundary still acknowledges it so the provider does not retry.
type IWebhookUseCase interface {
	HandleEvent(ctx context.Context, raw []byte) (WebhookResult, error)
}

// WebhookResult is the acknowledgment plus what happened to each side effect.
type WebhookResult struct {
	Ack         entities.WebhookAck
	Event       entities.PaymentEvent
	Shape       string
	LedgerRead  SideEffect
	LedgerWrite SideEffect
	Relay       SideEffect
}

type WebhookUseCase struct {
	ledger interfaces.ILedgerRepository
	relay  interfaces.ICRMRelay
	log    *logger.Logger
	now    func() time.Time
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

func NewWebhookUseCase(ledger interfaces.ILedgerRepository, relay interfaces.ICRMRelay, log *logger.Logger) *WebhookUseCase {
	return &WebhookUseCase{ledger: ledger, relay: relay, log: logger.OrNop(log), now: time.Now}
}

func (u *WebhookUseCase) HandleEvent(ctx context.Context, raw []byte) (WebhookResult, error) {
	event, shape, err := callback.Normalize(raw)
	if err != nil {
		return WebhookResult{}, errors.Wrap(err, "normalize callback")
	}

	if event.BillID == "" {
		u.log.Warnw("[webhook][usecase] callback without billId", "shape", shape, "body_len", len(raw))
		return WebhookResult{
			Ack:         entities.WebhookAck{Received: true, Note: NoteNoBillID},
			Event:       event,
			Shape:       shape,
			LedgerRead:  skipped(StepLedgerRead),
			LedgerWrite: skipped(StepLedgerWrite),
			Relay:       skipped(StepCRMRelay),
		}, nil
	}

	kind := event.LedgerKind()
	u.log.Infow("[webhook][usecase] callback received",
		"bill_id", event.BillID, "shape", shape, "status", event.Status, "ledger", kind)

	stored, read := u.lookup(ctx, kind, event.BillID)
	logSideEffect(u.log, "webhook", read, "bill_id", event.BillID, "ledger", kind)

	merged := mergeSettlement(event, stored, u.now())

	write := skipped(StepLedgerWrite)
	if u.ledger != nil {
		write = runSideEffect(StepLedgerWrite, func() error {
			return u.ledger.Save(ctx, kind, merged.record)
		})
	}
	logSideEffect(u.log, "webhook", write, "bill_id", event.BillID, "ledger", kind)

	relay := skipped(StepCRMRelay)
	if !event.IsConsultation() && u.relay != nil {
		relay = runSideEffect(StepCRMRelay, func() error {
			return u.relay.Forward(ctx, merged.relay)
		})
	}
	logSideEffect(u.log, "webhook", relay, "bill_id", event.BillID, "consultation", event.IsConsultation())

	return WebhookResult{
		Ack:         entities.WebhookAck{Received: true},
		Event:       event,
		Shape:       shape,
		LedgerRead:  read,
		LedgerWrite: write,
		Relay:       relay,
	}, nil
}

// lookup reads the stored row. Any failure leaves an empty record and processing goes on.
func (u *WebhookUseCase) lookup(ctx context.Context, kind entities.LedgerKind, billID string) (entities.LedgerRecord, SideEffect) {
	if u.ledger == nil {
		return entities.LedgerRecord{}, skipped(StepLedgerRead)
	}

	var stored entities.LedgerRecord
	read := runSideEffect(StepLedgerRead, func() error {
		rec, err := u.ledger.FindByBillID(ctx, kind, billID)
		if err != nil {
			return err
		}
		stored = rec
		return nil
	})
	if read.Err != nil {
		return entities.LedgerRecord{}, read
	}
	return stored, read
}

type settlement struct {
	record entities.LedgerRecord
	relay  entities.RelayEvent
}

// mergeSettlement combines the callback with the stored row. The ledger wins for
// identity fields; the callback wins for settlement and consultation time fields.
// processed is always true once a callback arrives, whatever its status.
func mergeSettlement(event entities.PaymentEvent, stored entities.LedgerRecord, now time.Time) settlement {
	name := firstNonEmpty(SanitizeDisplayName(stored.Name), SanitizeDisplayName(event.CustomerName))
	phone := strings.TrimSpace(firstNonEmpty(stored.Phone, event.CustomerPhone))
	email := strings.TrimSpace(firstNonEmpty(stored.Email, event.CustomerEmail))
	customerStatus := strings.TrimSpace(firstNonEmpty(stored.CustomerStatus, event.CustomerStatus))

	amount := event.Amount
	if !amount.Valid {
		amount = stored.Amount
	}

	paidAt := firstNonEmpty(event.PaidAt, businesstime.FormatUTC(now))

	record := entities.LedgerRecord{
		BillID:         event.BillID,
		Name:           name,
		Phone:          phone,
		Email:          email,
		CustomerStatus: customerStatus,
		Amount:         amount,
		PaymentLink:    stored.PaymentLink,
		Processed:      true,
		TransactionID:  event.SettlementTransactionID(),
		PaidAt:         paidAt,
		PaymentStatus:  event.Status,
	}
	if event.IsConsultation() {
		if ct := resolveConsultation(event.Consultation, stored.Consultation); !ct.IsZero() {
			record.Consultation = &ct
		}
	}

	return settlement{
		record: record,
		relay: entities.RelayEvent{
			BillID:                event.BillID,
			TransactionID:         event.TransactionID,
			MerchantTransactionID: event.MerchantTransactionID,
			Amount:                amount,
			Status:                event.Status,
			PaymentMethod:         event.PaymentMethod,
			PaidAt:                paidAt,
			ContactPhone:          phone,
			ContactEmail:          email,
			ContactName:           name,
			CustomerStatus:        customerStatus,
		},
	}
}

// resolveConsultation prefers a time resolved from the callback, then one resolved
// from the ledger row. When neither parses, the raw strings are kept field by field
// with the callback first; no instant is made up.
func resolveConsultation(fromEvent entities.ConsultationTime, fromLedger *entities.ConsultationTime) entities.ConsultationTime {
	if ct := businesstime.Resolve(fromEvent); ct.Resolved {
		return ct
	}
	var stored entities.ConsultationTime
	if fromLedger != nil {
		stored = *fromLedger
	}
	if ct := businesstime.Resolve(stored); ct.Resolved {
		return ct
	}
	return entities.ConsultationTime{
		UTC:     firstNonEmpty(fromEvent.UTC, stored.UTC),
		Display: firstNonEmpty(fromEvent.Display, stored.Display),
		Date:    firstNonEmpty(fromEvent.Date, stored.Date),
		Time:    firstNonEmpty(fromEvent.Time, stored.Time),
	}
}

// SanitizeDisplayName strips bidirectional embedding and override controls
// (U+202A to U+202E) and surrounding whitespace.
func SanitizeDisplayName(name string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r >= '\u202a' && r <= '\u202e' {
			return -1
		}
		return r
	}, name))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
