package response

import (
	"encoding/json"

	"tuwaiq_relay/internal/domain/entities"
)

type BillResponse struct {
	Success bool     `json:"success"`
	Data    BillData `json:"data"`
}

// BillData always carries the four consultation fields; they are null for ordinary bills.
type BillData struct {
	BillID                 string      `json:"billId"`
	Link                   string      `json:"link"`
	Amount                 json.Number `json:"amount"`
	ConsultationAtUTC      *string     `json:"consultationAtUTC"`
	ConsultationAtRiyadh   *string     `json:"consultationAtRiyadh"`
	ConsultationDateRiyadh *string     `json:"consultationDateRiyadh"`
	ConsultationTimeRiyadh *string     `json:"consultationTimeRiyadh"`
}

func FromBillOutcome(o entities.BillOutcome) BillResponse {
	data := BillData{
		BillID: o.Bill.BillID,
		Link:   o.Bill.Link,
		Amount: json.Number(o.Bill.Amount.String()),
	}
	if c := o.Consultation; c != nil {
		data.ConsultationAtUTC = nullable(c.UTC)
		data.ConsultationAtRiyadh = nullable(c.Display)
		data.ConsultationDateRiyadh = nullable(c.Date)
		data.ConsultationTimeRiyadh = nullable(c.Time)
	}
	return BillResponse{Success: true, Data: data}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
