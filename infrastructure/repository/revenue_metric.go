package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-revenue-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-revenue-api/internal/domain"
)

const (
	dailyMetricsTable       = "revenue_daily_metrics"
	dimensionalMetricsTable = "revenue_dimensional_metrics"
	backfillMetricsTable    = "revenue_dimensional_metrics_backfill"

	defaultUpsertChunkSize = 1000
)

var (
	dimensionKeyColumns = []string{
		"account_id", "date", "country", "carrier", "device_category",
		"site", "browser", "mobile_app", "operating_system",
	}

	metricColumns = []string{
		"ad_requests", "matched_requests", "impressions", "clicks",
		"measurable_impressions", "viewable_impressions", "revenue", "net_revenue",
		"ctr", "ecpm", "ad_request_ecpm", "match_rate", "delivery_rate", "viewability",
		"currency_code",
	}

	dimensionIDColumns = []string{"country_id", "device_category_id", "operating_system_id"}
)

type RevenueMetricRepository interface {
	UpsertDaily(ctx context.Context, metrics []domain.DailyMetric) error
	UpsertDimensional(ctx context.Context, rows []domain.DimensionalRow, target domain.ReportTarget) error
}

type revenueMetricRepository struct {
	conn          postgres.Conn
	chunkSize     int
	retentionDays int
	now           func() time.Time
}

func NewRevenueMetricRepository(conn postgres.Conn, chunkSize, retentionDays int) RevenueMetricRepository {
	if chunkSize <= 0 {
		chunkSize = defaultUpsertChunkSize
	}
	return &revenueMetricRepository{
		conn:          conn,
		chunkSize:     chunkSize,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// UpsertDaily grava as métricas diárias com chave (account_id, date)
func (r *revenueMetricRepository) UpsertDaily(ctx context.Context, metrics []domain.DailyMetric) error {
	if len(metrics) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(q postgres.Queryer) error {
		for start := 0; start < len(metrics); start += r.chunkSize {
			end := min(start+r.chunkSize, len(metrics))

			query, args, err := buildDailyUpsert(metrics[start:end])
			if err != nil {
				return persistenceError("montar upsert", dailyMetricsTable, err)
			}

			if _, err := q.ExecContext(ctx, query, args...); err != nil {
				return persistenceError("upsert", dailyMetricsTable, err)
			}
		}
		return nil
	})
}

// UpsertDimensional grava as linhas dimensionais na tabela padrão ou na de backfill.
// Na tabela de backfill cada linha recebe cleanup_eligible_at para expurgo posterior.
func (r *revenueMetricRepository) UpsertDimensional(ctx context.Context, rows []domain.DimensionalRow, target domain.ReportTarget) error {
	if len(rows) == 0 {
		return nil
	}

	table := dimensionalMetricsTable
	var cleanupAt *time.Time
	if target == domain.ReportTargetBackfill {
		table = backfillMetricsTable
		at := r.now().AddDate(0, 0, r.retentionDays)
		cleanupAt = &at
	}

	started := time.Now()
	err := r.conn.RunInTransaction(ctx, func(q postgres.Queryer) error {
		for start := 0; start < len(rows); start += r.chunkSize {
			end := min(start+r.chunkSize, len(rows))

			query, args, err := buildDimensionalUpsert(table, rows[start:end], cleanupAt)
			if err != nil {
				return persistenceError("montar upsert", table, err)
			}

			if _, err := q.ExecContext(ctx, query, args...); err != nil {
				return persistenceError("upsert", table, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"table":       table,
		"rows":        len(rows),
		"duration_ms": time.Since(started).Milliseconds(),
	}).Debug("repository: linhas dimensionais gravadas")

	return nil
}

func buildDailyUpsert(metrics []domain.DailyMetric) (string, []interface{}, error) {
	columns := append([]string{"account_id", "date"}, metricColumns...)

	insert := squirrel.
		Insert(dailyMetricsTable).
		Columns(columns...).
		Suffix(upsertSuffix([]string{"account_id", "date"}, metricColumns)).
		PlaceholderFormat(squirrel.Dollar)

	for _, m := range metrics {
		insert = insert.Values(
			m.AccountID, m.Date,
			m.AdRequests, m.MatchedRequests, m.Impressions, m.Clicks,
			m.MeasurableImpressions, m.ViewableImpressions, m.Revenue, m.NetRevenue,
			m.CTR, m.ECPM, m.AdRequestECPM, m.MatchRate, m.DeliveryRate, m.Viewability,
			m.CurrencyCode,
		)
	}

	return insert.ToSql()
}

func buildDimensionalUpsert(table string, rows []domain.DimensionalRow, cleanupAt *time.Time) (string, []interface{}, error) {
	columns := append(append(append([]string{}, dimensionKeyColumns...), dimensionIDColumns...), metricColumns...)
	updated := append(append([]string{}, dimensionIDColumns...), metricColumns...)
	if cleanupAt != nil {
		columns = append(columns, "cleanup_eligible_at")
		updated = append(updated, "cleanup_eligible_at")
	}

	insert := squirrel.
		Insert(table).
		Columns(columns...).
		Suffix(upsertSuffix(dimensionKeyColumns, updated)).
		PlaceholderFormat(squirrel.Dollar)

	for _, row := range rows {
		values := []interface{}{
			row.AccountID, row.Date, row.Country, row.Carrier, row.DeviceCategory,
			row.Site, row.Browser, row.MobileApp, row.OperatingSystem,
			row.CountryID, row.DeviceCategoryID, row.OperatingSystemID,
			row.AdRequests, row.MatchedRequests, row.Impressions, row.Clicks,
			row.MeasurableImpressions, row.ViewableImpressions, row.Revenue, row.NetRevenue,
			row.CTR, row.ECPM, row.AdRequestECPM, row.MatchRate, row.DeliveryRate, row.Viewability,
			row.CurrencyCode,
		}
		if cleanupAt != nil {
			values = append(values, *cleanupAt)
		}
		insert = insert.Values(values...)
	}

	return insert.ToSql()
}

func upsertSuffix(conflict, updated []string) string {
	sets := make([]string, 0, len(updated)+1)
	for _, column := range updated {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
	}
	sets = append(sets, "updated_at = NOW()")

	return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s", strings.Join(conflict, ", "), strings.Join(sets, ", "))
}
