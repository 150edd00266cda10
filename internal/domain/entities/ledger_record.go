package entities

import "github.com/shopspring/decimal"

// LedgerKind selects which external ledger a record belongs to.
type LedgerKind string

const (
	LedgerOrdinary     LedgerKind = "ordinary"
	LedgerConsultation LedgerKind = "consultation"
)

// LedgerKindFor classifies by amount: the consultation sentinel goes to the consultation ledger.
func LedgerKindFor(amount decimal.Decimal) LedgerKind {
	if IsConsultationAmount(amount) {
		return LedgerConsultation
	}
	return LedgerOrdinary
}

// LedgerRecord is one row of the external ledger, keyed by BillID.
//
// A row is written unprocessed at bill creation and written again, processed,
// when the provider reports the payment. Consultation is nil for ordinary bills.
type LedgerRecord struct {
	BillID         string
	Name           string
	Phone          string
	Email          string
	CustomerStatus string
	Amount         decimal.NullDecimal
	PaymentLink    string
	Processed      bool
	TransactionID  string
	PaidAt         string
	PaymentStatus  string
	Consultation   *ConsultationTime
}
