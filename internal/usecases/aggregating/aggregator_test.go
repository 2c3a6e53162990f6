package aggregating

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/ad-revenue-api/internal/domain"
)

func record(date string, fields map[string]string) domain.RawRecord {
	r := domain.RawRecord{colDate: date}
	for k, v := range fields {
		r[k] = v
	}
	return r
}

func TestAggregate_ViewabilityPonderada(t *testing.T) {
	records := []domain.RawRecord{
		record("2024-01-01", map[string]string{colCountry: "Brazil", colImpressions: "100", colViewability: "50"}),
		record("2024-01-01", map[string]string{colCountry: "Brazil", colImpressions: "300", colViewability: "90"}),
	}

	rows := NewAggregator(Options{}).Aggregate(records, "acc-1", "USD")

	require.Len(t, rows, 1)
	assert.Equal(t, int64(400), rows[0].Impressions)
	assert.InDelta(t, 80.0, rows[0].Viewability, 1e-9)
}

func TestAggregate_MatchedRequestsDerivado(t *testing.T) {
	records := []domain.RawRecord{
		record("2024-01-01", map[string]string{colAdRequests: "1,000", colMatchRate: "45.0"}),
	}

	rows := NewAggregator(Options{}).Aggregate(records, "acc-1", "USD")

	require.Len(t, rows, 1)
	assert.Equal(t, int64(1000), rows[0].AdRequests)
	assert.Equal(t, int64(450), rows[0].MatchedRequests)
	assert.InDelta(t, 45.0, rows[0].MatchRate, 1e-9)
	assert.InDelta(t, 45.0, rows[0].DeliveryRate, 1e-9)
}

func TestAggregate_TaxasComDenominadorZero(t *testing.T) {
	records := []domain.RawRecord{
		record("2024-01-01", map[string]string{colClicks: "5", colRevenueMicros: "2500000", colMatchRate: "30"}),
	}

	rows := NewAggregator(Options{}).Aggregate(records, "acc-1", "USD")

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, int64(0), row.Impressions)
	assert.Zero(t, row.CTR)
	assert.Zero(t, row.ECPM)
	assert.Zero(t, row.Viewability)
	assert.Equal(t, int64(0), row.AdRequests)
	assert.Zero(t, row.MatchRate)
	assert.Zero(t, row.AdRequestECPM)
	assert.Zero(t, row.DeliveryRate)
	assert.Equal(t, int64(0), row.MatchedRequests)
	assert.InDelta(t, 2.5, row.Revenue, 1e-9)
}

func TestAggregate_MetricasDerivadas(t *testing.T) {
	records := []domain.RawRecord{
		record("2024-01-01", map[string]string{
			colAdRequests:            "2000",
			colImpressions:           "1000",
			colClicks:                "20",
			colRevenueMicros:         "3000000",
			colMeasurableImpressions: "900",
			colViewableImpressions:   "600",
		}),
	}

	rows := NewAggregator(Options{}).Aggregate(records, "acc-1", "BRL")

	require.Len(t, rows, 1)
	row := rows[0]
	assert.InDelta(t, 3.0, row.Revenue, 1e-9)
	assert.InDelta(t, 3.0, row.NetRevenue, 1e-9)
	assert.InDelta(t, 2.0, row.CTR, 1e-9)
	assert.InDelta(t, 3.0, row.ECPM, 1e-9)
	assert.InDelta(t, 1.5, row.AdRequestECPM, 1e-9)
	assert.Equal(t, int64(900), row.MeasurableImpressions)
	assert.Equal(t, int64(600), row.ViewableImpressions)
	assert.Equal(t, "BRL", row.CurrencyCode)
}

func TestAggregate_NormalizaDimensoesNaChave(t *testing.T) {
	records := []domain.RawRecord{
		record("2024-01-01", map[string]string{colCountry: "(not set)", colImpressions: "1"}),
		record("2024-01-01", map[string]string{colCountry: "", colImpressions: "2"}),
		record("2024-01-01", map[string]string{colCountry: "null", colImpressions: "3"}),
		record("2024-01-01", map[string]string{colImpressions: "4"}),
		record("2024-01-01", map[string]string{colCountry: "(Not applicable)", colImpressions: "5"}),
		record("2024-01-01", map[string]string{colCountry: "Chile", colImpressions: "6"}),
	}

	rows := NewAggregator(Options{}).Aggregate(records, "acc-1", "USD")

	require.Len(t, rows, 2)
	assert.Equal(t, "Chile", rows[0].Country)
	assert.Equal(t, int64(6), rows[0].Impressions)
	assert.Equal(t, Unknown, rows[1].Country)
	assert.Equal(t, Unknown, rows[1].Browser)
	assert.Equal(t, int64(15), rows[1].Impressions)
}

func TestAggregate_ValoresInvalidosViramZero(t *testing.T) {
	records := []domain.RawRecord{
		record("2024-01-01", map[string]string{colImpressions: "abc", colClicks: "", colRevenueMicros: "NaN"}),
		record("2024-01-02", map[string]string{colImpressions: "-10", colRevenueMicros: "-5000000"}),
	}

	rows := NewAggregator(Options{}).Aggregate(records, "acc-1", "USD")

	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, int64(0), row.Impressions)
		assert.Equal(t, int64(0), row.Clicks)
		assert.Zero(t, row.Revenue)
		assert.GreaterOrEqual(t, row.NetRevenue, 0.0)
	}

	daily := RollupDaily(rows, "acc-1", "USD")
	require.Len(t, daily, 2)
	for _, metric := range daily {
		assert.Zero(t, metric.Revenue)
	}
}

func TestAggregate_IgnoraRegistrosSemData(t *testing.T) {
	records := []domain.RawRecord{
		record("", map[string]string{colImpressions: "10"}),
		record("2024-01-02", map[string]string{colImpressions: "20"}),
	}

	rows := NewAggregator(Options{}).Aggregate(records, "acc-1", "USD")

	require.Len(t, rows, 1)
	assert.Equal(t, "2024-01-02", rows[0].Date)
}

func TestAggregate_EmBlocosIgualAoDireto(t *testing.T) {
	build := func() []domain.RawRecord {
		records := make([]domain.RawRecord, 0, 25)
		for i := 0; i < 25; i++ {
			records = append(records, record(fmt.Sprintf("2024-01-0%d", i%3+1), map[string]string{
				colCountry:       []string{"Brazil", "Chile"}[i%2],
				colAdRequests:    fmt.Sprintf("%d", 100+i*10),
				colMatchRate:     fmt.Sprintf("%d", 40+i),
				colImpressions:   fmt.Sprintf("%d", 50+i*7),
				colViewability:   fmt.Sprintf("%d", 30+i*2),
				colClicks:        fmt.Sprintf("%d", i),
				colRevenueMicros: fmt.Sprintf("%d", 1000000+i*12345),
			}))
		}
		return records
	}

	direct := NewAggregator(Options{ChunkThreshold: 100, ChunkSize: 100}).Aggregate(build(), "acc-1", "USD")

	chunkedInput := build()
	chunked := NewAggregator(Options{ChunkThreshold: 10, ChunkSize: 4}).Aggregate(chunkedInput, "acc-1", "USD")

	require.Len(t, chunked, len(direct))
	for i := range direct {
		assert.Equal(t, direct[i].DimensionKey, chunked[i].DimensionKey)
		assert.Equal(t, direct[i].Impressions, chunked[i].Impressions)
		assert.Equal(t, direct[i].AdRequests, chunked[i].AdRequests)
		assert.InDelta(t, direct[i].Revenue, chunked[i].Revenue, 1e-9)
		assert.InDelta(t, direct[i].Viewability, chunked[i].Viewability, 1e-9)
		assert.InDelta(t, direct[i].MatchRate, chunked[i].MatchRate, 1e-9)
	}

	for _, r := range chunkedInput {
		assert.Nil(t, r)
	}
}

func TestNormalizeDimension(t *testing.T) {
	tests := map[string]string{
		"":                 Unknown,
		"   ":              Unknown,
		"(not set)":        Unknown,
		"(Not applicable)": Unknown,
		"null":             Unknown,
		"NULL":             Unknown,
		" Brazil ":         "Brazil",
		"Unknown":          "Unknown",
	}

	for input, expected := range tests {
		assert.Equal(t, expected, NormalizeDimension(input), "input %q", input)
	}
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2024-01-31", NormalizeDate("2024-01-31"))
	assert.Equal(t, "2024-01-31", NormalizeDate("20240131"))
	assert.Equal(t, "2024-01-31", NormalizeDate("01/31/2024"))
	assert.Equal(t, "", NormalizeDate("ontem"))
	assert.Equal(t, "", NormalizeDate(""))
}

func TestZeroFillDaily_UmaLinhaPorDia(t *testing.T) {
	dateRange := domain.NewDateRange(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	)

	daily := ZeroFillDaily("acc-1", dateRange, "USD")

	require.Len(t, daily, 3)
	for i, metric := range daily {
		assert.Equal(t, fmt.Sprintf("2024-01-0%d", i+1), metric.Date)
		assert.Equal(t, "acc-1", metric.AccountID)
		assert.Zero(t, metric.Revenue)
		assert.Zero(t, metric.Impressions)
		assert.Zero(t, metric.AdRequests)
		assert.Zero(t, metric.CTR)
	}
}
