package utils

import (
	"context"
	"time"
)

// SleepFunc permite trocar a espera real por uma instantânea nos testes
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep espera d ou até o contexto ser cancelado
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
