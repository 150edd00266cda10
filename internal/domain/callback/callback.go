// Package callback turns a payment provider callback body into a canonical PaymentEvent.
//
// The provider has sent two shapes over time. The nested shape keeps transaction
// fields under "transactionDetails" and bill fields under "transactionDetails.bill";
// the flat shape has everything at the top level. Shapes are tried in a fixed order
// and the first one that matches produces the event.
package callback

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"tuwaiq_relay/internal/domain/entities"
)

var ErrInvalidCallbackBody = errors.New("callback body is not valid JSON")

// Shape names, reported alongside the decoded event.
const (
	ShapeNested = "nested"
	ShapeFlat   = "flat"
)

type shape interface {
	name() string
	matches(doc map[string]any) bool
	extract(doc map[string]any) entities.PaymentEvent
}

var shapes = []shape{nestedShape{}, flatShape{}}

// Normalize decodes raw and returns the canonical event plus the name of the shape it matched.
// An empty body, or a JSON value that is not an object, decodes as an empty object. A missing billId is not an error here;
// callers decide what to do with an event that has no BillID.
func Normalize(raw []byte) (entities.PaymentEvent, string, error) {
	doc, err := decode(raw)
	if err != nil {
		return entities.PaymentEvent{}, "", err
	}
	return NormalizeDocument(doc)
}

// NormalizeDocument is Normalize for an already decoded body.
func NormalizeDocument(doc map[string]any) (entities.PaymentEvent, string, error) {
	for _, s := range shapes {
		if s.matches(doc) {
			return s.extract(doc), s.name(), nil
		}
	}
	return entities.PaymentEvent{}, "", errors.Wrap(ErrInvalidCallbackBody, "no known callback shape")
}

func decode(raw []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrap(ErrInvalidCallbackBody, err.Error())
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.Wrap(ErrInvalidCallbackBody, "trailing data after JSON value")
	}

	doc, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}, nil
	}
	return doc, nil
}

// contactFields reads customer identity values from any of the given containers, in order.
func contactFields(ev *entities.PaymentEvent, containers ...map[string]any) {
	ev.CustomerName = firstString(containers, "customerName", "name")
	ev.CustomerPhone = firstString(containers, "customerMobilePhone", "customerPhone", "phone")
	ev.CustomerEmail = firstString(containers, "customerEmail", "email")
	ev.CustomerStatus = firstString(containers, "customerStatus")
}

// consultationFields reads the four consultation candidates, top level first.
func consultationFields(containers ...map[string]any) entities.ConsultationTime {
	return entities.ConsultationTime{
		UTC:     firstTimestamp(containers, "consultationAtUTC", "consultationAt"),
		Display: firstTimestamp(containers, "consultationAtRiyadh"),
		Date:    firstString(containers, "consultationDateRiyadh"),
		Time:    firstString(containers, "consultationTimeRiyadh"),
	}
}

func firstString(containers []map[string]any, keys ...string) string {
	for _, c := range containers {
		if s := stringField(c, keys...); s != "" {
			return s
		}
	}
	return ""
}

func firstTimestamp(containers []map[string]any, keys ...string) string {
	for _, c := range containers {
		for _, k := range keys {
			if s := rawTimestamp(c[k]); s != "" {
				return s
			}
		}
	}
	return ""
}

func trimmed(s string) string { return strings.TrimSpace(s) }
