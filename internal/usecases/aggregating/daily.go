package aggregating

import (
	"sort"

	"github.com/vfg2006/ad-revenue-api/internal/domain"
)

// RollupDaily agrupa as linhas dimensionais finalizadas por data e recalcula as
// taxas no nível do dia a partir dos somatórios
func RollupDaily(rows []domain.DimensionalRow, accountID, currency string) []domain.DailyMetric {
	byDate := make(map[string]*counters)

	for i := range rows {
		acc, ok := byDate[rows[i].Date]
		if !ok {
			acc = &counters{}
			byDate[rows[i].Date] = acc
		}
		acc.add(countersFromRow(&rows[i]))
	}

	daily := make([]domain.DailyMetric, 0, len(byDate))
	for date, acc := range byDate {
		metric := domain.DailyMetric{
			AccountID:    accountID,
			Date:         date,
			CurrencyCode: currency,
		}
		applyToDaily(&metric, *acc)
		daily = append(daily, metric)
	}

	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

	return daily
}
