package domain

import "strings"

// RawRecord é uma linha do export: nome da coluna -> valor bruto
type RawRecord map[string]string

// Get retorna o valor da coluna sem espaços nas pontas
func (r RawRecord) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// ReportTarget identifica a tabela de destino das linhas dimensionais
type ReportTarget string

const (
	ReportTargetStandard ReportTarget = "standard"
	ReportTargetBackfill ReportTarget = "backfill"
)

// DimensionKey é a chave composta de uma linha dimensional
type DimensionKey struct {
	AccountID       string `json:"account_id"`
	Date            string `json:"date"`
	Country         string `json:"country"`
	Carrier         string `json:"carrier"`
	DeviceCategory  string `json:"device_category"`
	Site            string `json:"site"`
	Browser         string `json:"browser"`
	MobileApp       string `json:"mobile_app"`
	OperatingSystem string `json:"operating_system"`
}

// DimensionalRow é uma unidade agregada por chave dimensional
type DimensionalRow struct {
	DimensionKey

	CountryID         string `json:"country_id"`
	DeviceCategoryID  string `json:"device_category_id"`
	OperatingSystemID string `json:"operating_system_id"`

	AdRequests            int64   `json:"ad_requests"`
	MatchedRequests       int64   `json:"matched_requests"`
	Impressions           int64   `json:"impressions"`
	Clicks                int64   `json:"clicks"`
	MeasurableImpressions int64   `json:"measurable_impressions"`
	ViewableImpressions   int64   `json:"viewable_impressions"`
	Revenue               float64 `json:"revenue"`
	NetRevenue            float64 `json:"net_revenue"`

	CTR           float64 `json:"ctr"`
	ECPM          float64 `json:"ecpm"`
	AdRequestECPM float64 `json:"ad_request_ecpm"`
	MatchRate     float64 `json:"match_rate"`
	DeliveryRate  float64 `json:"delivery_rate"`
	Viewability   float64 `json:"viewability"`

	CurrencyCode string `json:"currency_code"`
}

// Key retorna a chave composta da linha
func (r *DimensionalRow) Key() DimensionKey {
	return r.DimensionKey
}

// DailyMetric é o rollup de uma conta em um dia
type DailyMetric struct {
	AccountID string `json:"account_id"`
	Date      string `json:"date"`

	AdRequests            int64   `json:"ad_requests"`
	MatchedRequests       int64   `json:"matched_requests"`
	Impressions           int64   `json:"impressions"`
	Clicks                int64   `json:"clicks"`
	MeasurableImpressions int64   `json:"measurable_impressions"`
	ViewableImpressions   int64   `json:"viewable_impressions"`
	Revenue               float64 `json:"revenue"`
	NetRevenue            float64 `json:"net_revenue"`

	CTR           float64 `json:"ctr"`
	ECPM          float64 `json:"ecpm"`
	AdRequestECPM float64 `json:"ad_request_ecpm"`
	MatchRate     float64 `json:"match_rate"`
	DeliveryRate  float64 `json:"delivery_rate"`
	Viewability   float64 `json:"viewability"`

	CurrencyCode string `json:"currency_code"`
}
