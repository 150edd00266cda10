package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"tuwaiq_relay/internal/domain/entities"
)

// ledgerDocument is the JSON row exchanged with the sheet ledger. The four
// consultation fields are always present and null for ordinary bills.
type ledgerDocument struct {
	BillID                 string       `json:"billId"`
	CustomerStatus         string       `json:"customerStatus"`
	Name                   string       `json:"name"`
	Phone                  string       `json:"phone"`
	Email                  string       `json:"email"`
	Amount                 *json.Number `json:"amount"`
	PaymentLink            string       `json:"payment_link"`
	Processed              bool         `json:"processed"`
	TransactionID          string       `json:"transactionId"`
	PaidAt                 string       `json:"paidAt"`
	PaymentStatus          string       `json:"paymentStatus"`
	ConsultationAtUTC      *string      `json:"consultationAtUTC"`
	ConsultationAtRiyadh   *string      `json:"consultationAtRiyadh"`
	ConsultationDateRiyadh *string      `json:"consultationDateRiyadh"`
	ConsultationTimeRiyadh *string      `json:"consultationTimeRiyadh"`
}

func toLedgerDocument(r entities.LedgerRecord) ledgerDocument {
	doc := ledgerDocument{
		BillID:         r.BillID,
		CustomerStatus: r.CustomerStatus,
		Name:           r.Name,
		Phone:          r.Phone,
		Email:          r.Email,
		PaymentLink:    r.PaymentLink,
		Processed:      r.Processed,
		TransactionID:  r.TransactionID,
		PaidAt:         r.PaidAt,
		PaymentStatus:  r.PaymentStatus,
	}
	if r.Amount.Valid {
		n := json.Number(r.Amount.Decimal.String())
		doc.Amount = &n
	}
	if c := r.Consultation; c != nil {
		doc.ConsultationAtUTC = nullable(c.UTC)
		doc.ConsultationAtRiyadh = nullable(c.Display)
		doc.ConsultationDateRiyadh = nullable(c.Date)
		doc.ConsultationTimeRiyadh = nullable(c.Time)
	}
	return doc
}

// recordFromRow reads a ledger row leniently: spreadsheet cells come back as
// strings, numbers or booleans depending on how the sheet formatted them.
func recordFromRow(row map[string]any) entities.LedgerRecord {
	r := entities.LedgerRecord{
		BillID:         cell(row, "billId"),
		CustomerStatus: cell(row, "customerStatus"),
		Name:           cell(row, "name"),
		Phone:          cell(row, "phone"),
		Email:          cell(row, "email"),
		PaymentLink:    cell(row, "payment_link"),
		TransactionID:  cell(row, "transactionId"),
		PaidAt:         cell(row, "paidAt"),
		PaymentStatus:  cell(row, "paymentStatus"),
	}
	if amount, err := decimal.NewFromString(cell(row, "amount")); err == nil {
		r.Amount = decimal.NewNullDecimal(amount)
	}
	switch v := row["processed"].(type) {
	case bool:
		r.Processed = v
	case string:
		r.Processed = strings.EqualFold(strings.TrimSpace(v), "true")
	}

	c := entities.ConsultationTime{
		UTC:     cell(row, "consultationAtUTC"),
		Display: cell(row, "consultationAtRiyadh"),
		Date:    cell(row, "consultationDateRiyadh"),
		Time:    cell(row, "consultationTimeRiyadh"),
	}
	if !c.IsZero() {
		r.Consultation = &c
	}
	return r
}

func cell(row map[string]any, key string) string {
	switch v := row[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return decimal.NewFromFloat(v).String()
	case bool:
		return fmt.Sprint(v)
	}
	return ""
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
