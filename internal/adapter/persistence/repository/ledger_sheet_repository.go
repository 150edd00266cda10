package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/cockroachdb/errors"

	"tuwaiq_relay/internal/domain/entities"
	"tuwaiq_relay/internal/infrastructure/httpclient"
	"tuwaiq_relay/internal/logger"
	"tuwaiq_relay/internal/usecase/interfaces"
)

// LedgerSheetRepository stores ledger rows behind a spreadsheet web endpoint.
//
// Endpoint contract:
//   - GET  {url}?billId=<id> -> {"success": bool, "record": {...}}
//   - POST {url} with a row -> upsert by billId
//
// Each ledger kind has its own endpoint; an empty endpoint disables that ledger.
type LedgerSheetRepository struct {
	client    httpclient.Client
	endpoints map[entities.LedgerKind]string
	log       *logger.Logger
}

var _ interfaces.ILedgerRepository = (*LedgerSheetRepository)(nil)

func NewLedgerSheetRepository(client httpclient.Client, ordinaryURL, consultationURL string, log *logger.Logger) *LedgerSheetRepository {
	return &LedgerSheetRepository{
		client: client,
		endpoints: map[entities.LedgerKind]string{
			entities.LedgerOrdinary:     ordinaryURL,
			entities.LedgerConsultation: consultationURL,
		},
		log: logger.OrNop(log),
	}
}

type sheetLookupResponse struct {
	Success bool           `json:"success"`
	Record  map[string]any `json:"record"`
}

func (r *LedgerSheetRepository) FindByBillID(ctx context.Context, kind entities.LedgerKind, billID string) (entities.LedgerRecord, error) {
	endpoint, err := r.endpoint(kind)
	if err != nil {
		return entities.LedgerRecord{}, err
	}

	lookupURL, err := withQuery(endpoint, "billId", billID)
	if err != nil {
		return entities.LedgerRecord{}, err
	}

	resp, err := r.client.Send(ctx, &httpclient.Request{Method: http.MethodGet, URL: lookupURL})
	if err != nil {
		return entities.LedgerRecord{}, errors.Wrapf(err, "%s ledger lookup", kind)
	}
	if err := httpclient.CheckStatus(resp); err != nil {
		return entities.LedgerRecord{}, errors.Wrapf(err, "%s ledger lookup", kind)
	}

	var parsed sheetLookupResponse
	dec := json.NewDecoder(bytes.NewReader(resp.Body))
	dec.UseNumber()
	if err := dec.Decode(&parsed); err != nil {
		r.log.Warnw("[ledger][sheet] lookup returned non-JSON", "ledger", kind, "bill_id", billID)
		return entities.LedgerRecord{}, errors.Wrapf(err, "%s ledger lookup: decode", kind)
	}
	if !parsed.Success || len(parsed.Record) == 0 {
		return entities.LedgerRecord{}, errors.Wrapf(interfaces.ErrLedgerRecordNotFound, "%s ledger bill %s", kind, billID)
	}

	record := recordFromRow(parsed.Record)
	if record.BillID == "" {
		record.BillID = billID
	}
	return record, nil
}

func (r *LedgerSheetRepository) Save(ctx context.Context, kind entities.LedgerKind, record entities.LedgerRecord) error {
	endpoint, err := r.endpoint(kind)
	if err != nil {
		return err
	}

	body, err := json.Marshal(toLedgerDocument(record))
	if err != nil {
		return errors.Wrap(err, "encode ledger row")
	}

	resp, err := r.client.Send(ctx, &httpclient.Request{Method: http.MethodPost, URL: endpoint, Body: body})
	if err != nil {
		return errors.Wrapf(err, "%s ledger write", kind)
	}
	if err := httpclient.CheckStatus(resp); err != nil {
		return errors.Wrapf(err, "%s ledger write", kind)
	}
	return nil
}

func (r *LedgerSheetRepository) endpoint(kind entities.LedgerKind) (string, error) {
	endpoint := r.endpoints[kind]
	if endpoint == "" {
		return "", errors.Wrapf(interfaces.ErrIntegrationDisabled, "%s ledger", kind)
	}
	return endpoint, nil
}

func withQuery(raw, key, value string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Wrap(err, "parse ledger url")
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
