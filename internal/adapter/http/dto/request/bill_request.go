package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"tuwaiq_relay/internal/domain/entities"
)

var (
	ErrEmptyBody     = errors.New("empty or invalid JSON body")
	ErrInvalidAmount = errors.New("amount is not a number")
)

// BillRequest is the payload of the create-bill and consultation routes.
// Web forms send amounts and phones as strings or numbers, so both are accepted.
type BillRequest struct {
	Amount         Amount `json:"amount"`
	CustomerName   Text   `json:"customerName"`
	CustomerPhone  Text   `json:"customerPhone"`
	CustomerEmail  Text   `json:"customerEmail"`
	CustomerStatus Text   `json:"customerStatus"`
	ConsultationAt Text   `json:"consultationAt"`
}

// ParseBillRequest rejects an absent, empty ({}) or non-object body.
func ParseBillRequest(raw []byte) (BillRequest, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return BillRequest{}, ErrEmptyBody
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || len(fields) == 0 {
		return BillRequest{}, ErrEmptyBody
	}

	var req BillRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return BillRequest{}, ErrEmptyBody
	}
	return req, nil
}

func (r BillRequest) ToEntity() (entities.BillRequest, error) {
	if r.Amount.invalid {
		return entities.BillRequest{}, ErrInvalidAmount
	}
	return entities.BillRequest{
		Amount:         r.Amount.value,
		CustomerName:   r.CustomerName.String(),
		CustomerPhone:  r.CustomerPhone.String(),
		CustomerEmail:  r.CustomerEmail.String(),
		CustomerStatus: r.CustomerStatus.String(),
		// A non-text consultationAt is passed on as written so it fails validation
		// instead of silently booking without a time.
		ConsultationAt: r.ConsultationAt.Value(),
	}, nil
}

// Amount accepts a JSON number or numeric string. Falsy values (null, false,
// "", 0) decode to zero so the required-field check reports them.
type Amount struct {
	value   decimal.Decimal
	invalid bool
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	*a = Amount{}
	var v any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}

	var s string
	switch t := v.(type) {
	case nil, bool:
		return nil
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
		if s == "" {
			return nil
		}
	default:
		a.invalid = true
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		a.invalid = true
		return nil
	}
	a.value = d
	return nil
}

// Text accepts a JSON string, number or null. Any other value (a boolean,
// object or array) is kept only as its raw JSON so validation can reject it.
type Text struct {
	value   string
	invalid string
}

func (t Text) String() string { return t.value }

// Value is the text, or the raw JSON of a value that was not text.
func (t Text) Value() string {
	if t.invalid != "" {
		return t.invalid
	}
	return t.value
}

func (t *Text) UnmarshalJSON(b []byte) error {
	*t = Text{}
	var v any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch s := v.(type) {
	case string:
		t.value = s
	case json.Number:
		t.value = s.String()
	case nil:
	default:
		t.invalid = string(bytes.TrimSpace(b))
	}
	return nil
}
