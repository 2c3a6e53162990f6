package aggregating

import (
	"sort"

	"github.com/sirupsen/logrus"

	admanagerdomain "github.com/vfg2006/ad-revenue-api/infrastructure/integrator/admanager/domain"
	"github.com/vfg2006/ad-revenue-api/internal/domain"
	"github.com/vfg2006/ad-revenue-api/pkg/utils"
)

const microsPerUnit = 1_000_000

// Nomes das colunas no export CSV_DUMP
var (
	colDate            = admanagerdomain.HeaderDimension(admanagerdomain.DimensionDate)
	colCountry         = admanagerdomain.HeaderDimension(admanagerdomain.DimensionCountryName)
	colCountryID       = admanagerdomain.HeaderDimension(admanagerdomain.DimensionCountryID)
	colCarrier         = admanagerdomain.HeaderDimension(admanagerdomain.DimensionCarrierName)
	colDeviceCategory  = admanagerdomain.HeaderDimension(admanagerdomain.DimensionDeviceCategory)
	colDeviceID        = admanagerdomain.HeaderDimension(admanagerdomain.DimensionDeviceID)
	colSite            = admanagerdomain.HeaderDimension(admanagerdomain.DimensionSiteName)
	colBrowser         = admanagerdomain.HeaderDimension(admanagerdomain.DimensionBrowserName)
	colMobileApp       = admanagerdomain.HeaderDimension(admanagerdomain.DimensionMobileAppName)
	colOperatingSystem = admanagerdomain.HeaderDimension(admanagerdomain.DimensionOperatingSystem)
	colOperatingSysID  = admanagerdomain.HeaderDimension(admanagerdomain.DimensionOperatingSysID)

	colAdRequests            = admanagerdomain.HeaderColumn(admanagerdomain.ColumnAdRequests)
	colMatchRate             = admanagerdomain.HeaderColumn(admanagerdomain.ColumnMatchRate)
	colImpressions           = admanagerdomain.HeaderColumn(admanagerdomain.ColumnImpressions)
	colClicks                = admanagerdomain.HeaderColumn(admanagerdomain.ColumnClicks)
	colRevenueMicros         = admanagerdomain.HeaderColumn(admanagerdomain.ColumnRevenueMicros)
	colMeasurableImpressions = admanagerdomain.HeaderColumn(admanagerdomain.ColumnMeasurableImpressions)
	colViewableImpressions   = admanagerdomain.HeaderColumn(admanagerdomain.ColumnViewableImpressions)
	colViewability           = admanagerdomain.HeaderColumn(admanagerdomain.ColumnViewability)
)

type Options struct {
	// Acima deste número de registros a agregação é feita em blocos
	ChunkThreshold int
	ChunkSize      int
}

// Aggregator transforma registros brutos em linhas dimensionais
type Aggregator struct {
	opts Options
}

func NewAggregator(opts Options) *Aggregator {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 10000
	}
	if opts.ChunkThreshold <= 0 {
		opts.ChunkThreshold = opts.ChunkSize
	}
	return &Aggregator{opts: opts}
}

// entry guarda a linha em construção e seus somatórios
type entry struct {
	row      domain.DimensionalRow
	counters counters
}

// Aggregate agrega os registros por chave dimensional. Acima do limite de blocos,
// cada bloco é agregado separadamente e liberado antes do próximo; os resultados
// dos blocos são fundidos por Dedup. Nos dois caminhos as linhas saem ordenadas
// pela chave. O slice de registros é consumido.
func (a *Aggregator) Aggregate(records []domain.RawRecord, accountID, currency string) []domain.DimensionalRow {
	if len(records) <= a.opts.ChunkThreshold {
		return aggregateRecords(records, accountID, currency)
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"records":    len(records),
		"chunk_size": a.opts.ChunkSize,
	}).Info("aggregating: export grande, agregando em blocos")

	rows := make([]domain.DimensionalRow, 0)
	for start := 0; start < len(records); start += a.opts.ChunkSize {
		end := start + a.opts.ChunkSize
		if end > len(records) {
			end = len(records)
		}

		chunk := records[start:end]
		rows = append(rows, aggregateRecords(chunk, accountID, currency)...)

		for i := range chunk {
			chunk[i] = nil
		}
	}

	rows = Dedup(rows)
	sortRows(rows)

	return rows
}

func aggregateRecords(records []domain.RawRecord, accountID, currency string) []domain.DimensionalRow {
	entries := make(map[domain.DimensionKey]*entry)
	skipped := 0

	for _, record := range records {
		if record == nil {
			continue
		}

		date := NormalizeDate(record.Get(colDate))
		if date == "" {
			skipped++
			continue
		}

		key := domain.DimensionKey{
			AccountID:       accountID,
			Date:            date,
			Country:         NormalizeDimension(record.Get(colCountry)),
			Carrier:         NormalizeDimension(record.Get(colCarrier)),
			DeviceCategory:  NormalizeDimension(record.Get(colDeviceCategory)),
			Site:            NormalizeDimension(record.Get(colSite)),
			Browser:         NormalizeDimension(record.Get(colBrowser)),
			MobileApp:       NormalizeDimension(record.Get(colMobileApp)),
			OperatingSystem: NormalizeDimension(record.Get(colOperatingSystem)),
		}

		e, ok := entries[key]
		if !ok {
			e = &entry{row: domain.DimensionalRow{
				DimensionKey:      key,
				CountryID:         NormalizeDimension(record.Get(colCountryID)),
				DeviceCategoryID:  NormalizeDimension(record.Get(colDeviceID)),
				OperatingSystemID: NormalizeDimension(record.Get(colOperatingSysID)),
				CurrencyCode:      currency,
			}}
			entries[key] = e
		}

		e.counters.add(countersFromRecord(record))
	}

	if skipped > 0 {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"skipped":    skipped,
		}).Warn("aggregating: registros sem data válida foram ignorados")
	}

	rows := make([]domain.DimensionalRow, 0, len(entries))
	for _, e := range entries {
		applyToRow(&e.row, e.counters)
		rows = append(rows, e.row)
	}
	sortRows(rows)

	return rows
}

func countersFromRecord(record domain.RawRecord) counters {
	adRequests := utils.ParseIntOrZero(record.Get(colAdRequests))
	impressions := utils.ParseIntOrZero(record.Get(colImpressions))
	matchRate := utils.ParseFloatOrZero(record.Get(colMatchRate))
	viewability := utils.ParseFloatOrZero(record.Get(colViewability))

	// A taxa de entrega desta fonte é a própria taxa de match
	deliveryRate := matchRate

	return counters{
		adRequests:            nonNegative(adRequests),
		matchedRequests:       nonNegative(matchedRequests(matchRate, adRequests)),
		impressions:           nonNegative(impressions),
		clicks:                nonNegative(utils.ParseIntOrZero(record.Get(colClicks))),
		measurableImpressions: nonNegative(utils.ParseIntOrZero(record.Get(colMeasurableImpressions))),
		viewableImpressions:   nonNegative(utils.ParseIntOrZero(record.Get(colViewableImpressions))),
		revenue:               float64(nonNegative(utils.ParseIntOrZero(record.Get(colRevenueMicros)))) / microsPerUnit,
		viewabilityWeighted:   viewability * float64(nonNegative(impressions)),
		matchRateWeighted:     matchRate * float64(nonNegative(adRequests)),
		deliveryRateWeighted:  deliveryRate * float64(nonNegative(adRequests)),
	}
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

func sortRows(rows []domain.DimensionalRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return keyLess(rows[i].DimensionKey, rows[j].DimensionKey)
	})
}

func keyLess(a, b domain.DimensionKey) bool {
	left := []string{a.AccountID, a.Date, a.Country, a.Carrier, a.DeviceCategory, a.Site, a.Browser, a.MobileApp, a.OperatingSystem}
	right := []string{b.AccountID, b.Date, b.Country, b.Carrier, b.DeviceCategory, b.Site, b.Browser, b.MobileApp, b.OperatingSystem}
	for i := range left {
		if left[i] != right[i] {
			return left[i] < right[i]
		}
	}
	return false
}
