package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"tuwaiq_relay/internal/domain/entities"
	"tuwaiq_relay/internal/usecase/interfaces"
	mock_interfaces "tuwaiq_relay/internal/usecase/interfaces/mocks"
	"tuwaiq_relay/pkg"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

// Tuesday 2030-01-01 00:00 UTC.
var fixedNow = time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)

func newTestBillUseCase(ctrl *gomock.Controller) (*BillUseCase, *mock_interfaces.MockIPaymentGateway, *mock_interfaces.MockILedgerRepository) {
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	ledger := mock_interfaces.NewMockILedgerRepository(ctrl)
	uc := NewBillUseCase(gateway, ledger, nil)
	uc.now = func() time.Time { return fixedNow }
	return uc, gateway, ledger
}

func validBillRequest() entities.BillRequest {
	return entities.BillRequest{
		Amount:        decimal.NewFromInt(500),
		CustomerName:  "Sara Ali",
		CustomerPhone: "0501234567",
		CustomerEmail: "sara@example.com",
	}
}

func TestBillUseCase_CreateBill_Validations(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *entities.BillRequest)
		want   error
	}{
		{"zero amount", func(r *entities.BillRequest) { r.Amount = decimal.Zero }, ErrMissingRequiredFields},
		{"missing name", func(r *entities.BillRequest) { r.CustomerName = "  " }, ErrMissingRequiredFields},
		{"missing phone", func(r *entities.BillRequest) { r.CustomerPhone = "" }, ErrMissingRequiredFields},
		{"negative amount", func(r *entities.BillRequest) { r.Amount = decimal.NewFromInt(-5) }, ErrInvalidAmount},
		{"unparseable consultation", func(r *entities.BillRequest) { r.ConsultationAt = "next tuesday" }, ErrInvalidConsultationAt},
		{"past consultation", func(r *entities.BillRequest) { r.ConsultationAt = "2029-12-31T10:00:00Z" }, ErrConsultationInPast},
		{"consultation now", func(r *entities.BillRequest) { r.ConsultationAt = "2030-01-01T00:00:00Z" }, ErrConsultationInPast},
		{"friday consultation", func(r *entities.BillRequest) { r.ConsultationAt = "2030-01-04T10:00:00Z" }, ErrConsultationRestDay},
		{"saturday consultation far ahead", func(r *entities.BillRequest) { r.ConsultationAt = "2041-06-01T10:00:00Z" }, ErrConsultationRestDay},
		{"thursday night is friday locally", func(r *entities.BillRequest) { r.ConsultationAt = "2030-01-03T22:00:00Z" }, ErrConsultationRestDay},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc, _, _ := newTestBillUseCase(ctrl)

			req := validBillRequest()
			tc.mutate(&req)

			_, err := uc.CreateBill(context.Background(), req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestBillUseCase_CreateBill_GatewayNotConfigured(t *testing.T) {
	uc := NewBillUseCase(nil, nil, nil)
	_, err := uc.CreateBill(context.Background(), validBillRequest())
	if err == nil || err.Error() != "payment gateway not configured" {
		t.Fatalf("expected gateway not configured error, got %v", err)
	}
}

func TestBillUseCase_CreateBill_Upstream(t *testing.T) {
	t.Run("auth failure stops before bill creation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, gateway, _ := newTestBillUseCase(ctrl)

		authErr := pkg.NewUpstreamError(pkg.ErrUpstreamAuth, "Auth failed with TuwaiqPay", map[string]any{"success": false})
		gateway.EXPECT().Authenticate(gomock.Any()).Return("", authErr)

		_, err := uc.CreateBill(context.Background(), validBillRequest())
		if !errors.Is(err, pkg.ErrUpstreamAuth) {
			t.Fatalf("expected ErrUpstreamAuth, got %v", err)
		}
	})

	t.Run("bill failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, gateway, _ := newTestBillUseCase(ctrl)

		gateway.EXPECT().Authenticate(gomock.Any()).Return("tok", nil)
		gateway.EXPECT().CreateBill(gomock.Any(), "tok", gomock.Any()).
			Return(entities.BillResult{}, pkg.NewUpstreamError(pkg.ErrUpstreamBill, "Failed to create bill", nil))

		_, err := uc.CreateBill(context.Background(), validBillRequest())
		if !errors.Is(err, pkg.ErrUpstreamBill) {
			t.Fatalf("expected ErrUpstreamBill, got %v", err)
		}
	})

	t.Run("empty bill is never a success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, gateway, _ := newTestBillUseCase(ctrl)

		gateway.EXPECT().Authenticate(gomock.Any()).Return("tok", nil)
		gateway.EXPECT().CreateBill(gomock.Any(), "tok", gomock.Any()).Return(entities.BillResult{BillID: "B1"}, nil)

		_, err := uc.CreateBill(context.Background(), validBillRequest())
		if !errors.Is(err, pkg.ErrUpstreamBill) {
			t.Fatalf("expected ErrUpstreamBill, got %v", err)
		}
	})
}

func TestBillUseCase_CreateBill_Success(t *testing.T) {
	t.Run("website payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, gateway, ledger := newTestBillUseCase(ctrl)

		gateway.EXPECT().Authenticate(gomock.Any()).Return("tok", nil)
		gateway.EXPECT().CreateBill(gomock.Any(), "tok", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, spec entities.BillSpec) (entities.BillResult, error) {
				if spec.Description != entities.DescriptionWebsitePayment {
					t.Fatalf("unexpected description %q", spec.Description)
				}
				if len(spec.SupportedPaymentMethods) != 6 || spec.ActionDateInDays != 1 || spec.IncludeVat || spec.ContinueWithMaxCharge {
					t.Fatalf("unexpected bill options: %+v", spec)
				}
				if spec.CustomerPhone != "0501234567" || !spec.Amount.Equal(decimal.NewFromInt(500)) {
					t.Fatalf("unexpected customer data: %+v", spec)
				}
				return entities.BillResult{BillID: "B1", Link: "https://pay.example/B1", Amount: decimal.NewFromInt(500)}, nil
			})
		ledger.EXPECT().Save(gomock.Any(), entities.LedgerOrdinary, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ entities.LedgerKind, rec entities.LedgerRecord) error {
				if rec.BillID != "B1" || rec.PaymentLink != "https://pay.example/B1" || rec.Processed {
					t.Fatalf("unexpected record: %+v", rec)
				}
				if rec.Consultation != nil {
					t.Fatalf("expected no consultation fields, got %+v", rec.Consultation)
				}
				return nil
			})

		got, err := uc.CreateBill(context.Background(), validBillRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Bill.BillID != "B1" || got.Bill.Link == "" || got.Consultation != nil {
			t.Fatalf("unexpected outcome: %+v", got)
		}
		if got.LedgerWrite.Failed() || got.LedgerWrite.Skipped {
			t.Fatalf("unexpected ledger side effect: %+v", got.LedgerWrite)
		}
	})

	t.Run("consultation booking on tuesday", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, gateway, ledger := newTestBillUseCase(ctrl)

		req := validBillRequest()
		req.ConsultationAt = "2030-01-08T10:00:00Z"

		gateway.EXPECT().Authenticate(gomock.Any()).Return("tok", nil)
		gateway.EXPECT().CreateBill(gomock.Any(), "tok", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, spec entities.BillSpec) (entities.BillResult, error) {
				if spec.Description != entities.DescriptionConsultationBooking {
					t.Fatalf("unexpected description %q", spec.Description)
				}
				return entities.BillResult{BillID: "B2", Link: "https://pay.example/B2"}, nil
			})
		ledger.EXPECT().Save(gomock.Any(), entities.LedgerConsultation, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ entities.LedgerKind, rec entities.LedgerRecord) error {
				if rec.Consultation == nil || rec.Consultation.Display != "2030-01-08 13:00 (+03:00)" {
					t.Fatalf("unexpected consultation fields: %+v", rec.Consultation)
				}
				if !rec.Amount.Valid || !rec.Amount.Decimal.Equal(decimal.NewFromInt(500)) {
					t.Fatalf("expected request amount on record, got %+v", rec.Amount)
				}
				return nil
			})

		got, err := uc.CreateBill(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ct := got.Consultation
		if ct == nil {
			t.Fatalf("expected consultation fields")
		}
		if ct.UTC != "2030-01-08T10:00:00.000Z" || ct.Display != "2030-01-08 13:00 (+03:00)" || ct.Date != "2030-01-08" || ct.Time != "13:00" {
			t.Fatalf("unexpected consultation projection: %+v", ct)
		}
	})

	t.Run("consultation accepts iso forms without seconds", func(t *testing.T) {
		for _, at := range []string{"2030-01-08T10:00Z", "2030-01-08T13:00+03:00", "2030-01-08T13:00:00.000+0300"} {
			ctrl := gomock.NewController(t)
			uc, gateway, ledger := newTestBillUseCase(ctrl)

			req := validBillRequest()
			req.ConsultationAt = at

			gateway.EXPECT().Authenticate(gomock.Any()).Return("tok", nil)
			gateway.EXPECT().CreateBill(gomock.Any(), "tok", gomock.Any()).Return(entities.BillResult{BillID: "B4", Link: "l"}, nil)
			ledger.EXPECT().Save(gomock.Any(), entities.LedgerConsultation, gomock.Any()).Return(nil)

			got, err := uc.CreateBill(context.Background(), req)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", at, err)
			}
			if got.Consultation == nil || got.Consultation.UTC != "2030-01-08T10:00:00.000Z" {
				t.Fatalf("%s: unexpected consultation projection: %+v", at, got.Consultation)
			}
			ctrl.Finish()
		}
	})

	t.Run("sentinel amount goes to consultation ledger", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, gateway, ledger := newTestBillUseCase(ctrl)

		req := validBillRequest()
		req.Amount = decimal.NewFromInt(270)

		gateway.EXPECT().Authenticate(gomock.Any()).Return("tok", nil)
		gateway.EXPECT().CreateBill(gomock.Any(), "tok", gomock.Any()).Return(entities.BillResult{BillID: "B3", Link: "l"}, nil)
		ledger.EXPECT().Save(gomock.Any(), entities.LedgerConsultation, gomock.Any()).Return(nil)

		if _, err := uc.CreateBill(context.Background(), req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("ledger failure is swallowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, gateway, ledger := newTestBillUseCase(ctrl)

		gateway.EXPECT().Authenticate(gomock.Any()).Return("tok", nil)
		gateway.EXPECT().CreateBill(gomock.Any(), "tok", gomock.Any()).Return(entities.BillResult{BillID: "B4", Link: "l"}, nil)
		ledger.EXPECT().Save(gomock.Any(), entities.LedgerOrdinary, gomock.Any()).Return(errors.New("sheet down"))

		got, err := uc.CreateBill(context.Background(), validBillRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.LedgerWrite.Failed() || got.Bill.BillID != "B4" {
			t.Fatalf("expected failed side effect with bill, got %+v", got)
		}
	})

	t.Run("ledger disabled is skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, gateway, ledger := newTestBillUseCase(ctrl)

		gateway.EXPECT().Authenticate(gomock.Any()).Return("tok", nil)
		gateway.EXPECT().CreateBill(gomock.Any(), "tok", gomock.Any()).Return(entities.BillResult{BillID: "B5", Link: "l"}, nil)
		ledger.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(fmt.Errorf("ordinary ledger: %w", interfaces.ErrIntegrationDisabled))

		got, err := uc.CreateBill(context.Background(), validBillRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.LedgerWrite.Skipped || got.LedgerWrite.Failed() {
			t.Fatalf("expected skipped side effect, got %+v", got.LedgerWrite)
		}
	})
}
