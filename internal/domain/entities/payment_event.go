package entities

import "github.com/shopspring/decimal"

// PaymentEvent is the canonical form of a provider payment callback,
// whatever shape it arrived in.
type PaymentEvent struct {
	BillID                string
	TransactionID         string
	MerchantTransactionID string
	Amount                decimal.NullDecimal
	Status                string
	PaymentMethod         string
	PaidAt                string

	// Contact and consultation values carried by the callback itself, if any.
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	CustomerStatus string
	Consultation   ConsultationTime
}

// IsConsultation reports whether the event pays for a consultation booking.
func (e PaymentEvent) IsConsultation() bool {
	return e.Amount.Valid && IsConsultationAmount(e.Amount.Decimal)
}

// LedgerKind is the ledger the event's bill was recorded in.
func (e PaymentEvent) LedgerKind() LedgerKind {
	if e.IsConsultation() {
		return LedgerConsultation
	}
	return LedgerOrdinary
}

// SettlementTransactionID prefers the provider transaction id over the merchant one.
func (e PaymentEvent) SettlementTransactionID() string {
	if e.TransactionID != "" {
		return e.TransactionID
	}
	return e.MerchantTransactionID
}

// RelayEvent is the merged record forwarded to the CRM.
type RelayEvent struct {
	BillID                string
	TransactionID         string
	MerchantTransactionID string
	Amount                decimal.NullDecimal
	Status                string
	PaymentMethod         string
	PaidAt                string
	ContactPhone          string
	ContactEmail          string
	ContactName           string
	CustomerStatus        string
}

// WebhookAck is the acknowledgment returned to the provider.
type WebhookAck struct {
	Received bool
	Note     string
}
