package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/ad-revenue-api/pkg/log"
	"github.com/vfg2006/ad-revenue-api/pkg/utils"
)

type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
}

// Delay retorna a espera após a tentativa informada: base × 2^(tentativa-1)
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return p.BaseDelay * time.Duration(1<<(attempt-1))
}

// Retry executa fn até ter sucesso ou esgotar as tentativas. Toda tentativa que
// falha com erro retentável é seguida de uma espera exponencial, inclusive a última.
// Retorna quantas tentativas foram feitas.
func Retry(ctx context.Context, policy RetryPolicy, sleep utils.SleepFunc, fn func(attempt int) error) (int, error) {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(attempt)
		if lastErr == nil {
			return attempt, nil
		}

		if !IsRetryable(lastErr) {
			return attempt, lastErr
		}

		delay := policy.Delay(attempt)
		log.ForContext(ctx).WithFields(log.Fields{
			"attempt":      attempt,
			"max_attempts": attempts,
			"delay":        delay.String(),
		}).WithError(lastErr).Warn("reporting: tentativa falhou")

		if err := sleep(ctx, delay); err != nil {
			return attempt, fmt.Errorf("retry interrompido: %w", err)
		}
	}

	return attempts, fmt.Errorf("%w: %w", ErrRetriesExhausted, lastErr)
}
