package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tuwaiq_relay/internal/config"
	"tuwaiq_relay/internal/domain/entities"
	"tuwaiq_relay/internal/infrastructure/httpclient"
	"tuwaiq_relay/internal/logger"
	"tuwaiq_relay/internal/usecase/interfaces"
	"tuwaiq_relay/pkg"
)

const (
	authenticatePath = "/auth/authenticate"
	billsPath        = "/integration/bills"

	mockAccessToken = "mock-access-token"
	mockLinkBase    = "https://pay.example.invalid/bills/"
)

var ErrMissingTuwaiqCredentials = errors.New("missing TUWAIQ_USERNAME or TUWAIQ_PASSWORD")

// TuwaiqGateway talks to the TuwaiqPay integration API. It keeps no session:
// Authenticate is called once per bill.
type TuwaiqGateway struct {
	client       httpclient.Client
	baseURL      string
	username     string
	password     string
	usernameType string
	language     string
	mockMode     bool
	log          *logger.Logger
}

var _ interfaces.IPaymentGateway = (*TuwaiqGateway)(nil)

func NewTuwaiqGateway(cfg config.TuwaiqConfig, client httpclient.Client, log *logger.Logger) (*TuwaiqGateway, error) {
	log = logger.OrNop(log)
	if cfg.Mock {
		log.Infow("[payment][gateway] mock mode enabled")
		return &TuwaiqGateway{mockMode: true, log: log}, nil
	}

	if cfg.Username == "" || cfg.Password == "" {
		log.Errorw("[payment][gateway] missing TuwaiqPay credentials")
		return nil, ErrMissingTuwaiqCredentials
	}
	if client == nil {
		return nil, errors.New("http client is required")
	}

	log.Infow("[payment][gateway] TuwaiqPay client initialized", "base_url", cfg.BaseURL)
	return &TuwaiqGateway{
		client:       client,
		baseURL:      cfg.BaseURL,
		username:     cfg.Username,
		password:     cfg.Password,
		usernameType: cfg.UsernameType,
		language:     cfg.Language,
		log:          log,
	}, nil
}

type authenticateRequest struct {
	Username     string `json:"username"`
	UserNameType string `json:"userNameType"`
	Password     string `json:"password"`
}

type createBillRequest struct {
	ActionDateInDays        int             `json:"actionDateInDays"`
	Amount                  decimal.Decimal `json:"amount"`
	CurrencyID              int             `json:"currencyId"`
	SupportedPaymentMethods []string        `json:"supportedPaymentMethods"`
	Description             string          `json:"description"`
	CustomerName            string          `json:"customerName"`
	CustomerMobilePhone     string          `json:"customerMobilePhone"`
	IncludeVat              bool            `json:"includeVat"`
	ContinueWithMaxCharge   bool            `json:"continueWithMaxCharge"`
}

// MarshalJSON writes the amount as a JSON number; the provider rejects quoted amounts.
func (r createBillRequest) MarshalJSON() ([]byte, error) {
	type alias createBillRequest
	return json.Marshal(struct {
		alias
		Amount json.Number `json:"amount"`
	}{alias: alias(r), Amount: json.Number(r.Amount.String())})
}

func (g *TuwaiqGateway) Authenticate(ctx context.Context) (string, error) {
	if g.mockMode {
		return mockAccessToken, nil
	}

	body, err := json.Marshal(authenticateRequest{
		Username:     g.username,
		UserNameType: g.usernameType,
		Password:     g.password,
	})
	if err != nil {
		return "", errors.Wrap(err, "encode authenticate request")
	}

	resp, err := g.client.Send(ctx, &httpclient.Request{
		Method:  http.MethodPost,
		URL:     g.baseURL + authenticatePath,
		Headers: map[string]string{"X-Language": g.language},
		Body:    body,
	})
	if err != nil {
		return "", errors.Wrap(err, "authenticate with TuwaiqPay")
	}

	doc, ok := decodeEnvelope(resp.Body)
	if !ok {
		g.log.Errorw("[payment][gateway] auth response not JSON", "status", resp.StatusCode)
		return "", pkg.NewUpstreamError(pkg.ErrUpstreamAuth, "Auth response is not JSON", string(resp.Body))
	}

	token := stringAt(doc, "data", "access_token")
	if token == "" {
		g.log.Errorw("[payment][gateway] auth failed", "status", resp.StatusCode)
		return "", pkg.NewUpstreamError(pkg.ErrUpstreamAuth, "Auth failed with TuwaiqPay", doc)
	}
	return token, nil
}

func (g *TuwaiqGateway) CreateBill(ctx context.Context, accessToken string, spec entities.BillSpec) (entities.BillResult, error) {
	if g.mockMode {
		id := uuid.NewString()
		g.log.Infow("[payment][gateway] mock bill created", "bill_id", id)
		return entities.BillResult{BillID: id, Link: mockLinkBase + id, Amount: spec.Amount}, nil
	}

	body, err := json.Marshal(createBillRequest{
		ActionDateInDays:        spec.ActionDateInDays,
		Amount:                  spec.Amount,
		CurrencyID:              spec.CurrencyID,
		SupportedPaymentMethods: spec.SupportedPaymentMethods,
		Description:             spec.Description,
		CustomerName:            spec.CustomerName,
		CustomerMobilePhone:     spec.CustomerPhone,
		IncludeVat:              spec.IncludeVat,
		ContinueWithMaxCharge:   spec.ContinueWithMaxCharge,
	})
	if err != nil {
		return entities.BillResult{}, errors.Wrap(err, "encode create bill request")
	}

	resp, err := g.client.Send(ctx, &httpclient.Request{
		Method:  http.MethodPost,
		URL:     g.baseURL + billsPath,
		Headers: map[string]string{"Authorization": "Bearer " + accessToken},
		Body:    body,
	})
	if err != nil {
		return entities.BillResult{}, errors.Wrap(err, "create TuwaiqPay bill")
	}

	doc, ok := decodeEnvelope(resp.Body)
	if !ok {
		g.log.Errorw("[payment][gateway] create bill response not JSON", "status", resp.StatusCode)
		return entities.BillResult{}, pkg.NewUpstreamError(pkg.ErrUpstreamBill, "Create bill response is not JSON", string(resp.Body))
	}

	billID := stringAt(doc, "data", "billId")
	link := stringAt(doc, "data", "link")
	if billID == "" || link == "" {
		g.log.Errorw("[payment][gateway] create bill failed", "status", resp.StatusCode)
		return entities.BillResult{}, pkg.NewUpstreamError(pkg.ErrUpstreamBill, "Failed to create bill", doc)
	}

	result := entities.BillResult{BillID: billID, Link: link, Amount: spec.Amount}
	if amount, err := decimal.NewFromString(stringAt(doc, "data", "amount")); err == nil {
		result.Amount = amount
	}
	g.log.Infow("[payment][gateway] bill created", "bill_id", billID)
	return result, nil
}

// decodeEnvelope parses a provider body, keeping numbers exact.
func decodeEnvelope(body []byte) (any, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, false
	}
	if dec.More() {
		return nil, false
	}
	return doc, true
}

// stringAt walks nested objects and renders the leaf as a string. Numeric ids become decimal strings.
func stringAt(doc any, path ...string) string {
	cur := doc
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = obj[key]
	}
	switch v := cur.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return fmt.Sprint(v)
	}
	return ""
}
