package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"tuwaiq_relay/internal/domain/businesstime"
	"tuwaiq_relay/internal/domain/entities"
	"tuwaiq_relay/internal/logger"
	"tuwaiq_relay/internal/usecase/interfaces"
	"tuwaiq_relay/pkg"
)

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidAmount         = errors.New("amount must be a positive number")
	ErrInvalidConsultationAt = errors.New("invalid consultationAt")
	ErrConsultationInPast    = errors.New("consultationAt must be in the future")
	ErrConsultationRestDay   = errors.New("consultationAt falls on a rest day")
)

// RequiredBillFields are reported back when any of them is missing.
var RequiredBillFields = []string{"amount", "customerName", "customerPhone"}

// IBillUseCase creates payable bills with the payment provider.
type IBillUseCase interface {
	CreateBill(ctx context.Context, req entities.BillRequest) (BillCreation, error)
}

// BillCreation is a created bill plus the outcome of the best-effort ledger write.
type BillCreation struct {
	entities.BillOutcome
	LedgerWrite SideEffect
}

type BillUseCase struct {
	gateway interfaces.IPaymentGateway
	ledger  interfaces.ILedgerRepository
	log     *logger.Logger
	now     func() time.Time
}

var _ IBillUseCase = (*BillUseCase)(nil)

func NewBillUseCase(gateway interfaces.IPaymentGateway, ledger interfaces.ILedgerRepository, log *logger.Logger) *BillUseCase {
	return &BillUseCase{gateway: gateway, ledger: ledger, log: logger.OrNop(log), now: time.Now}
}

func (u *BillUseCase) CreateBill(ctx context.Context, req entities.BillRequest) (BillCreation, error) {
	req = trimBillRequest(req)
	u.log.Infow("[bill][usecase] create start", "amount", req.Amount.String(), "has_consultation", req.ConsultationAt != "")

	if req.Amount.IsZero() || req.CustomerName == "" || req.CustomerPhone == "" {
		return BillCreation{}, ErrMissingRequiredFields
	}
	if req.Amount.IsNegative() {
		return BillCreation{}, ErrInvalidAmount
	}

	var consultation *entities.ConsultationTime
	if req.ConsultationAt != "" {
		ct, err := u.validateConsultation(req.ConsultationAt)
		if err != nil {
			u.log.Infow("[bill][usecase] consultation rejected", "consultation_at", req.ConsultationAt, "err", err)
			return BillCreation{}, err
		}
		consultation = &ct
	}

	if u.gateway == nil {
		return BillCreation{}, errors.New("payment gateway not configured")
	}

	token, err := u.gateway.Authenticate(ctx)
	if err != nil {
		u.log.Errorw("[bill][usecase] provider authentication failed", "err", err)
		return BillCreation{}, err
	}

	kind := billLedgerKind(req, consultation)
	spec := entities.NewBillSpec(req, billDescription(kind))

	bill, err := u.gateway.CreateBill(ctx, token, spec)
	if err != nil {
		u.log.Errorw("[bill][usecase] provider bill creation failed", "err", err)
		return BillCreation{}, err
	}
	if bill.BillID == "" || bill.Link == "" {
		return BillCreation{}, pkg.NewUpstreamError(pkg.ErrUpstreamBill, "Failed to create bill", nil)
	}
	if bill.Amount.IsZero() {
		bill.Amount = req.Amount
	}
	u.log.Infow("[bill][usecase] bill created", "bill_id", bill.BillID, "ledger", kind)

	write := skipped(StepLedgerWrite)
	if u.ledger != nil {
		record := pendingLedgerRecord(req, bill, consultation)
		write = runSideEffect(StepLedgerWrite, func() error {
			return u.ledger.Save(ctx, kind, record)
		})
	}
	logSideEffect(u.log, "bill", write, "bill_id", bill.BillID, "ledger", kind)

	return BillCreation{
		BillOutcome: entities.BillOutcome{Bill: bill, Consultation: consultation},
		LedgerWrite: write,
	}, nil
}

func (u *BillUseCase) validateConsultation(raw string) (entities.ConsultationTime, error) {
	at, ok := businesstime.ParseInstant(raw)
	if !ok {
		return entities.ConsultationTime{}, ErrInvalidConsultationAt
	}
	if !at.After(u.now()) {
		return entities.ConsultationTime{}, ErrConsultationInPast
	}
	if businesstime.IsRestDay(at) {
		return entities.ConsultationTime{}, ErrConsultationRestDay
	}
	return businesstime.Project(at), nil
}

// billLedgerKind uses the webhook's amount rule, so the webhook finds the row again.
// A requested consultation time also marks the bill as a consultation booking.
func billLedgerKind(req entities.BillRequest, consultation *entities.ConsultationTime) entities.LedgerKind {
	if consultation != nil {
		return entities.LedgerConsultation
	}
	return entities.LedgerKindFor(req.Amount)
}

func billDescription(kind entities.LedgerKind) string {
	if kind == entities.LedgerConsultation {
		return entities.DescriptionConsultationBooking
	}
	return entities.DescriptionWebsitePayment
}

func pendingLedgerRecord(req entities.BillRequest, bill entities.BillResult, consultation *entities.ConsultationTime) entities.LedgerRecord {
	record := entities.LedgerRecord{
		BillID:         bill.BillID,
		Name:           req.CustomerName,
		Phone:          req.CustomerPhone,
		Email:          req.CustomerEmail,
		CustomerStatus: req.CustomerStatus,
		PaymentLink:    bill.Link,
		Processed:      false,
	}
	record.Amount.Decimal = bill.Amount
	record.Amount.Valid = true
	if consultation != nil {
		ct := *consultation
		record.Consultation = &ct
	}
	return record
}

func trimBillRequest(req entities.BillRequest) entities.BillRequest {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	req.CustomerStatus = strings.TrimSpace(req.CustomerStatus)
	req.ConsultationAt = strings.TrimSpace(req.ConsultationAt)
	return req
}
