package interfaces

import (
	"context"
	"errors"

	"tuwaiq_relay/internal/domain/entities"
)

var (
	// ErrIntegrationDisabled is returned by optional integrations that have no endpoint configured.
	ErrIntegrationDisabled  = errors.New("integration disabled")
	ErrLedgerRecordNotFound = errors.New("ledger record not found")
)

// ILedgerRepository abstracts the external contact/transaction ledger.
// Each LedgerKind maps to its own endpoint or table.
type ILedgerRepository interface {
	FindByBillID(ctx context.Context, kind entities.LedgerKind, billID string) (entities.LedgerRecord, error)
	Save(ctx context.Context, kind entities.LedgerKind, record entities.LedgerRecord) error
}
