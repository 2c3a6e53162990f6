package admanagerdomain

import "github.com/vfg2006/ad-revenue-api/internal/domain"

// Dimensões pedidas ao relatório de receita
const (
	DimensionDate            = "DATE"
	DimensionCountryName     = "COUNTRY_NAME"
	DimensionCountryID       = "COUNTRY_CRITERIA_ID"
	DimensionCarrierName     = "CARRIER_NAME"
	DimensionDeviceCategory  = "DEVICE_CATEGORY_NAME"
	DimensionDeviceID        = "DEVICE_CATEGORY_ID"
	DimensionSiteName        = "AD_EXCHANGE_SITE_NAME"
	DimensionBrowserName     = "BROWSER_NAME"
	DimensionMobileAppName   = "MOBILE_APP_NAME"
	DimensionOperatingSystem = "OPERATING_SYSTEM_VERSION_NAME"
	DimensionOperatingSysID  = "OPERATING_SYSTEM_VERSION_ID"
)

// Métricas pedidas ao relatório de receita
const (
	ColumnAdRequests            = "AD_EXCHANGE_AD_REQUESTS"
	ColumnMatchRate             = "AD_EXCHANGE_MATCH_RATE"
	ColumnImpressions           = "AD_EXCHANGE_IMPRESSIONS"
	ColumnClicks                = "AD_EXCHANGE_CLICKS"
	ColumnCTR                   = "AD_EXCHANGE_CTR"
	ColumnRevenueMicros         = "AD_EXCHANGE_ESTIMATED_REVENUE"
	ColumnECPM                  = "AD_EXCHANGE_AD_ECPM"
	ColumnAdRequestECPM         = "AD_EXCHANGE_AD_REQUEST_ECPM"
	ColumnMeasurableImpressions = "AD_EXCHANGE_ACTIVE_VIEW_MEASURABLE_IMPRESSIONS"
	ColumnViewableImpressions   = "AD_EXCHANGE_ACTIVE_VIEW_VIEWABLE_IMPRESSIONS"
	ColumnViewability           = "AD_EXCHANGE_ACTIVE_VIEW_VIEWABLE"
)

// ReportQuery descreve o relatório submetido ao ReportService
type ReportQuery struct {
	Dimensions []string
	Columns    []string
	DateRange  domain.DateRange
}

// RevenueReportQuery monta a consulta padrão de receita para o intervalo
func RevenueReportQuery(dateRange domain.DateRange) ReportQuery {
	return ReportQuery{
		Dimensions: []string{
			DimensionDate,
			DimensionCountryName,
			DimensionCountryID,
			DimensionCarrierName,
			DimensionDeviceCategory,
			DimensionDeviceID,
			DimensionSiteName,
			DimensionBrowserName,
			DimensionMobileAppName,
			DimensionOperatingSystem,
			DimensionOperatingSysID,
		},
		Columns: []string{
			ColumnAdRequests,
			ColumnMatchRate,
			ColumnImpressions,
			ColumnClicks,
			ColumnCTR,
			ColumnRevenueMicros,
			ColumnECPM,
			ColumnAdRequestECPM,
			ColumnMeasurableImpressions,
			ColumnViewableImpressions,
			ColumnViewability,
		},
		DateRange: dateRange,
	}
}

// HeaderDimension é o nome da coluna de dimensão no export CSV_DUMP
func HeaderDimension(name string) string {
	return "Dimension." + name
}

// HeaderColumn é o nome da coluna de métrica no export CSV_DUMP
func HeaderColumn(name string) string {
	return "Column." + name
}
