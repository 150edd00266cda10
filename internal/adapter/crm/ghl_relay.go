package crm

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"

	"tuwaiq_relay/internal/domain/entities"
	"tuwaiq_relay/internal/infrastructure/httpclient"
	"tuwaiq_relay/internal/logger"
	"tuwaiq_relay/internal/usecase/interfaces"
)

// GHLRelay posts settled payments to a GoHighLevel inbound webhook. The
// contact fields let the CRM match the payment to an existing contact.
type GHLRelay struct {
	client     httpclient.Client
	webhookURL string
	log        *logger.Logger
}

var _ interfaces.ICRMRelay = (*GHLRelay)(nil)

func NewGHLRelay(client httpclient.Client, webhookURL string, log *logger.Logger) *GHLRelay {
	return &GHLRelay{client: client, webhookURL: webhookURL, log: logger.OrNop(log)}
}

type relayPayload struct {
	BillID                string       `json:"billId"`
	TransactionID         string       `json:"transactionId"`
	MerchantTransactionID string       `json:"merchantTransactionId"`
	Amount                *json.Number `json:"amount"`
	Status                string       `json:"status"`
	PaymentMethod         string       `json:"paymentMethod"`
	PaidAt                string       `json:"paidAt"`
	ContactPhone          string       `json:"contactPhone"`
	ContactEmail          string       `json:"contactEmail"`
	ContactName           string       `json:"contactName"`
	CustomerStatus        string       `json:"customerStatus"`
}

func (r *GHLRelay) Forward(ctx context.Context, event entities.RelayEvent) error {
	if r.webhookURL == "" {
		return errors.Wrap(interfaces.ErrIntegrationDisabled, "crm relay")
	}

	body, err := json.Marshal(toRelayPayload(event))
	if err != nil {
		return errors.Wrap(err, "encode crm payload")
	}

	resp, err := r.client.Send(ctx, &httpclient.Request{Method: http.MethodPost, URL: r.webhookURL, Body: body})
	if err != nil {
		return errors.Wrap(err, "forward to crm")
	}
	r.log.Infow("[webhook][crm] forwarded", "bill_id", event.BillID, "status", resp.StatusCode)

	return errors.Wrap(httpclient.CheckStatus(resp), "forward to crm")
}

func toRelayPayload(e entities.RelayEvent) relayPayload {
	p := relayPayload{
		BillID:                e.BillID,
		TransactionID:         e.TransactionID,
		MerchantTransactionID: e.MerchantTransactionID,
		Status:                e.Status,
		PaymentMethod:         e.PaymentMethod,
		PaidAt:                e.PaidAt,
		ContactPhone:          e.ContactPhone,
		ContactEmail:          e.ContactEmail,
		ContactName:           e.ContactName,
		CustomerStatus:        e.CustomerStatus,
	}
	if e.Amount.Valid {
		n := json.Number(e.Amount.Decimal.String())
		p.Amount = &n
	}
	return p
}
