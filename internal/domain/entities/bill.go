package entities

import "github.com/shopspring/decimal"

// ConsultationAmount is the bill amount that marks a consultation booking.
// It is a business rule, not a threshold: only exact equality counts.
var ConsultationAmount = decimal.NewFromInt(270)

// SupportedPaymentMethods is the fixed list of methods offered on every bill.
var SupportedPaymentMethods = []string{"VISA", "MASTER", "MADA", "AMEX", "STC_PAY", "APPLE_PAY"}

const (
	BillActionDateInDays = 1
	BillCurrencyID       = 1

	DescriptionWebsitePayment      = "Website payment"
	DescriptionConsultationBooking = "Consultation booking"
)

// BillRequest is a customer-initiated request for a payable bill.
type BillRequest struct {
	Amount         decimal.Decimal
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	CustomerStatus string
	ConsultationAt string
}

// IsConsultationAmount reports whether amount equals the consultation sentinel.
func IsConsultationAmount(amount decimal.Decimal) bool {
	return amount.Equal(ConsultationAmount)
}

// BillSpec is what the service asks the payment provider to create.
type BillSpec struct {
	Amount                  decimal.Decimal
	Description             string
	CustomerName            string
	CustomerPhone           string
	SupportedPaymentMethods []string
	ActionDateInDays        int
	CurrencyID              int
	IncludeVat              bool
	ContinueWithMaxCharge   bool
}

// NewBillSpec fills the fixed provider options around the caller's data.
func NewBillSpec(req BillRequest, description string) BillSpec {
	methods := make([]string, len(SupportedPaymentMethods))
	copy(methods, SupportedPaymentMethods)
	return BillSpec{
		Amount:                  req.Amount,
		Description:             description,
		CustomerName:            req.CustomerName,
		CustomerPhone:           req.CustomerPhone,
		SupportedPaymentMethods: methods,
		ActionDateInDays:        BillActionDateInDays,
		CurrencyID:              BillCurrencyID,
		IncludeVat:              false,
		ContinueWithMaxCharge:   false,
	}
}

// BillResult is the provider's answer: a bill id and its hosted payment link.
type BillResult struct {
	BillID string
	Link   string
	Amount decimal.Decimal
}

// BillOutcome is what the bill use case hands back to the HTTP layer.
// Consultation is nil when the request carried no consultation time.
type BillOutcome struct {
	Bill         BillResult
	Consultation *ConsultationTime
}
