package response

import "tuwaiq_relay/internal/domain/entities"

// WebhookResponse is always sent with HTTP 200 so the provider does not retry.
type WebhookResponse struct {
	Received bool   `json:"received"`
	Note     string `json:"note,omitempty"`
	Error    string `json:"error,omitempty"`
}

func FromWebhookAck(ack entities.WebhookAck) WebhookResponse {
	return WebhookResponse{Received: ack.Received, Note: ack.Note}
}

func WebhookFailure(err error) WebhookResponse {
	return WebhookResponse{Received: false, Error: err.Error()}
}
