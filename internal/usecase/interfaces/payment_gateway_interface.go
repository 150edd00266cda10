package interfaces

import (
	"context"

	"tuwaiq_relay/internal/domain/entities"
)

// IPaymentGateway abstracts the payment provider (TuwaiqPay).
//
// The service holds no session: every bill request authenticates again and
// uses the returned token for exactly one CreateBill call.
type IPaymentGateway interface {
	Authenticate(ctx context.Context) (accessToken string, err error)
	CreateBill(ctx context.Context, accessToken string, spec entities.BillSpec) (entities.BillResult, error)
}
