package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuwaiq_relay/internal/domain/entities"
	"tuwaiq_relay/internal/infrastructure/httpclient"
	"tuwaiq_relay/internal/usecase/interfaces"
)

func newSheetRepo(t *testing.T, handler http.HandlerFunc) *LedgerSheetRepository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewLedgerSheetRepository(httpclient.NewDefaultClient(time.Second), srv.URL+"/ordinary", srv.URL+"/consultation", nil)
}

func TestLedgerSheetRepository_Save(t *testing.T) {
	t.Run("ordinary row carries explicit null consultation fields", func(t *testing.T) {
		var got map[string]any
		repo := newSheetRepo(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/ordinary", r.URL.Path)
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &got))
			_, _ = w.Write([]byte(`{"success":true}`))
		})

		err := repo.Save(context.Background(), entities.LedgerOrdinary, entities.LedgerRecord{
			BillID:      "b-1",
			Name:        "Sara",
			Phone:       "0555",
			Amount:      decimal.NewNullDecimal(decimal.RequireFromString("150.5")),
			PaymentLink: "https://pay/b-1",
		})
		require.NoError(t, err)

		assert.Equal(t, "b-1", got["billId"])
		assert.Equal(t, 150.5, got["amount"])
		assert.Equal(t, "https://pay/b-1", got["payment_link"])
		assert.Equal(t, false, got["processed"])
		assert.Equal(t, "", got["transactionId"])
		for _, key := range []string{"consultationAtUTC", "consultationAtRiyadh", "consultationDateRiyadh", "consultationTimeRiyadh"} {
			v, present := got[key]
			assert.True(t, present, key)
			assert.Nil(t, v, key)
		}
	})

	t.Run("consultation row goes to the consultation endpoint", func(t *testing.T) {
		var got map[string]any
		repo := newSheetRepo(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/consultation", r.URL.Path)
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &got))
		})

		err := repo.Save(context.Background(), entities.LedgerConsultation, entities.LedgerRecord{
			BillID:    "b-2",
			Processed: true,
			Consultation: &entities.ConsultationTime{
				UTC:     "2030-01-08T10:00:00.000Z",
				Display: "2030-01-08 13:00 (+03:00)",
				Date:    "2030-01-08",
				Time:    "13:00",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, true, got["processed"])
		assert.Nil(t, got["amount"])
		assert.Equal(t, "2030-01-08T10:00:00.000Z", got["consultationAtUTC"])
		assert.Equal(t, "13:00", got["consultationTimeRiyadh"])
	})

	t.Run("non 2xx is an error", func(t *testing.T) {
		repo := newSheetRepo(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		err := repo.Save(context.Background(), entities.LedgerOrdinary, entities.LedgerRecord{BillID: "b-1"})
		assert.True(t, errors.Is(err, httpclient.ErrUnexpectedStatus))
	})

	t.Run("missing endpoint disables the ledger", func(t *testing.T) {
		repo := NewLedgerSheetRepository(httpclient.NewDefaultClient(time.Second), "", "", nil)
		err := repo.Save(context.Background(), entities.LedgerOrdinary, entities.LedgerRecord{BillID: "b-1"})
		assert.True(t, errors.Is(err, interfaces.ErrIntegrationDisabled))
	})
}

func TestLedgerSheetRepository_FindByBillID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := newSheetRepo(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "b 1", r.URL.Query().Get("billId"))
			_, _ = w.Write([]byte(`{"success":true,"record":{"billId":"b 1","name":"Sara","phone":966555555555,"email":"s@x.io","amount":270,"processed":"FALSE","consultationAtRiyadh":"2030-01-08 13:00 (+03:00)"}}`))
		})

		rec, err := repo.FindByBillID(context.Background(), entities.LedgerOrdinary, "b 1")
		require.NoError(t, err)
		assert.Equal(t, "Sara", rec.Name)
		assert.Equal(t, "966555555555", rec.Phone)
		assert.Equal(t, "s@x.io", rec.Email)
		assert.True(t, rec.Amount.Valid)
		assert.True(t, rec.Amount.Decimal.Equal(decimal.NewFromInt(270)))
		assert.False(t, rec.Processed)
		require.NotNil(t, rec.Consultation)
		assert.Equal(t, "2030-01-08 13:00 (+03:00)", rec.Consultation.Display)
	})

	t.Run("not found", func(t *testing.T) {
		repo := newSheetRepo(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"success":false}`))
		})
		_, err := repo.FindByBillID(context.Background(), entities.LedgerOrdinary, "b-1")
		assert.True(t, errors.Is(err, interfaces.ErrLedgerRecordNotFound))
	})

	t.Run("non JSON", func(t *testing.T) {
		repo := newSheetRepo(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>login</html>"))
		})
		_, err := repo.FindByBillID(context.Background(), entities.LedgerOrdinary, "b-1")
		require.Error(t, err)
		assert.False(t, errors.Is(err, interfaces.ErrLedgerRecordNotFound))
	})

	t.Run("missing endpoint disables the ledger", func(t *testing.T) {
		repo := NewLedgerSheetRepository(httpclient.NewDefaultClient(time.Second), "http://x", "", nil)
		_, err := repo.FindByBillID(context.Background(), entities.LedgerConsultation, "b-1")
		assert.True(t, errors.Is(err, interfaces.ErrIntegrationDisabled))
	})
}
