package aggregating

import (
	"math"

	"github.com/vfg2006/ad-revenue-api/internal/domain"
	"github.com/vfg2006/ad-revenue-api/pkg/utils"
)

// counters são os somatórios comuns às linhas dimensionais e diárias
type counters struct {
	adRequests            int64
	matchedRequests       int64
	impressions           int64
	clicks                int64
	measurableImpressions int64
	viewableImpressions   int64
	revenue               float64

	// Somas ponderadas, só existem durante a agregação
	viewabilityWeighted  float64
	matchRateWeighted    float64
	deliveryRateWeighted float64
}

type rates struct {
	ctr           float64
	ecpm          float64
	adRequestECPM float64
	matchRate     float64
	deliveryRate  float64
	viewability   float64
}

func (c *counters) add(other counters) {
	c.adRequests += other.adRequests
	c.matchedRequests += other.matchedRequests
	c.impressions += other.impressions
	c.clicks += other.clicks
	c.measurableImpressions += other.measurableImpressions
	c.viewableImpressions += other.viewableImpressions
	c.revenue += other.revenue
	c.viewabilityWeighted += other.viewabilityWeighted
	c.matchRateWeighted += other.matchRateWeighted
	c.deliveryRateWeighted += other.deliveryRateWeighted
}

// finalize deriva as taxas a partir dos somatórios. Denominador zero resulta em 0.
func (c *counters) finalize() rates {
	impressions := float64(c.impressions)
	adRequests := float64(c.adRequests)

	return rates{
		ctr:           utils.SafeDivide(float64(c.clicks), impressions) * 100,
		ecpm:          utils.SafeDivide(c.revenue, impressions) * 1000,
		adRequestECPM: utils.SafeDivide(c.revenue, adRequests) * 1000,
		viewability:   utils.SafeDivide(c.viewabilityWeighted, impressions),
		matchRate:     utils.SafeDivide(c.matchRateWeighted, adRequests),
		deliveryRate:  utils.SafeDivide(c.deliveryRateWeighted, adRequests),
	}
}

// matchedRequests deriva as requisições atendidas, que a API não informa diretamente
func matchedRequests(matchRate float64, adRequests int64) int64 {
	if adRequests <= 0 {
		return 0
	}
	return int64(math.Round(matchRate / 100 * float64(adRequests)))
}

// countersFromRow reconstrói os somatórios ponderados de uma linha já finalizada
func countersFromRow(row *domain.DimensionalRow) counters {
	return counters{
		adRequests:            row.AdRequests,
		matchedRequests:       row.MatchedRequests,
		impressions:           row.Impressions,
		clicks:                row.Clicks,
		measurableImpressions: row.MeasurableImpressions,
		viewableImpressions:   row.ViewableImpressions,
		revenue:               row.Revenue,
		viewabilityWeighted:   row.Viewability * float64(row.Impressions),
		matchRateWeighted:     row.MatchRate * float64(row.AdRequests),
		deliveryRateWeighted:  row.DeliveryRate * float64(row.AdRequests),
	}
}

func applyToRow(row *domain.DimensionalRow, c counters) {
	r := c.finalize()

	row.AdRequests = c.adRequests
	row.MatchedRequests = c.matchedRequests
	row.Impressions = c.impressions
	row.Clicks = c.clicks
	row.MeasurableImpressions = c.measurableImpressions
	row.ViewableImpressions = c.viewableImpressions
	row.Revenue = c.revenue
	row.NetRevenue = c.revenue

	row.CTR = r.ctr
	row.ECPM = r.ecpm
	row.AdRequestECPM = r.adRequestECPM
	row.MatchRate = r.matchRate
	row.DeliveryRate = r.deliveryRate
	row.Viewability = r.viewability
}

func applyToDaily(metric *domain.DailyMetric, c counters) {
	r := c.finalize()

	metric.AdRequests = c.adRequests
	metric.MatchedRequests = c.matchedRequests
	metric.Impressions = c.impressions
	metric.Clicks = c.clicks
	metric.MeasurableImpressions = c.measurableImpressions
	metric.ViewableImpressions = c.viewableImpressions
	metric.Revenue = c.revenue
	metric.NetRevenue = c.revenue

	metric.CTR = r.ctr
	metric.ECPM = r.ecpm
	metric.AdRequestECPM = r.adRequestECPM
	metric.MatchRate = r.matchRate
	metric.DeliveryRate = r.deliveryRate
	metric.Viewability = r.viewability
}
