package aggregating

import (
	"time"

	"github.com/vfg2006/ad-revenue-api/internal/domain"
)

// ZeroFillDaily cria uma métrica diária zerada para cada dia do intervalo.
// Usado quando o export vem vazio, para que todo dia do intervalo tenha registro.
func ZeroFillDaily(accountID string, dateRange domain.DateRange, currency string) []domain.DailyMetric {
	days := dateRange.Days()
	daily := make([]domain.DailyMetric, 0, len(days))

	for _, day := range days {
		daily = append(daily, domain.DailyMetric{
			AccountID:    accountID,
			Date:         day.Format(time.DateOnly),
			CurrencyCode: currency,
		})
	}

	return daily
}
