package usecase

import (
	"errors"

	"tuwaiq_relay/internal/logger"
	"tuwaiq_relay/internal/usecase/interfaces"
)

const (
	StepLedgerRead  = "ledger_read"
	StepLedgerWrite = "ledger_write"
	StepCRMRelay    = "crm_relay"
)

// SideEffect is the outcome of a best-effort integration call. A failed side
// effect never fails the operation that triggered it; it is logged and reported here.
type SideEffect struct {
	Step    string
	Skipped bool
	Err     error
}

// Failed reports whether the call was attempted and returned an error.
func (s SideEffect) Failed() bool { return !s.Skipped && s.Err != nil }

// runSideEffect runs fn and classifies the result. ErrIntegrationDisabled counts as skipped.
func runSideEffect(step string, fn func() error) SideEffect {
	err := fn()
	if errors.Is(err, interfaces.ErrIntegrationDisabled) {
		return SideEffect{Step: step, Skipped: true}
	}
	return SideEffect{Step: step, Err: err}
}

func skipped(step string) SideEffect { return SideEffect{Step: step, Skipped: true} }

func logSideEffect(log *logger.Logger, area string, s SideEffect, keysAndValues ...any) {
	kv := append([]any{"step", s.Step}, keysAndValues...)
	switch {
	case s.Failed():
		log.Errorw("["+area+"][usecase] side effect failed", append(kv, "err", s.Err)...)
	case s.Skipped:
		log.Warnw("["+area+"][usecase] side effect skipped", kv...)
	default:
		log.Infow("["+area+"][usecase] side effect done", kv...)
	}
}
