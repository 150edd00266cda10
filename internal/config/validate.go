package config

import (
	"github.com/cockroachdb/errors"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Validate rejects values that would make the service unusable at startup.
// Missing provider credentials are not an error: the gateway stays unconfigured,
// bill requests fail with a server error naming it, and the webhook keeps working.
func (c Config) Validate() error {
	switch c.Ledger.Backend {
	case LedgerBackendSheets, LedgerBackendDynamoDB:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown LEDGER_BACKEND %q", c.Ledger.Backend)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Wrapf(ErrInvalidConfig, "PORT out of range: %d", c.Server.Port)
	}
	if c.Tuwaiq.BaseURL == "" {
		return errors.Wrap(ErrInvalidConfig, "TUWAIQ_BASE_URL is empty")
	}
	if c.HTTP.Timeout < 0 {
		return errors.Wrap(ErrInvalidConfig, "HTTP_CLIENT_TIMEOUT must not be negative")
	}
	return nil
}
