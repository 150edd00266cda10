package interfaces

import (
	"context"

	"tuwaiq_relay/internal/domain/entities"
)

// ICRMRelay forwards settled payments to the CRM webhook.
type ICRMRelay interface {
	Forward(ctx context.Context, event entities.RelayEvent) error
}
