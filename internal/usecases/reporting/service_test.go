package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/ad-revenue-api/infrastructure/integrator/admanager"
	"github.com/vfg2006/ad-revenue-api/infrastructure/integrator/admanager/admanagerclient"
	notifiermocks "github.com/vfg2006/ad-revenue-api/infrastructure/notifier/mocks"
	"github.com/vfg2006/ad-revenue-api/infrastructure/notifier"
	"github.com/vfg2006/ad-revenue-api/infrastructure/repository"
	repomocks "github.com/vfg2006/ad-revenue-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-revenue-api/internal/config"
	"github.com/vfg2006/ad-revenue-api/internal/domain"
	"github.com/vfg2006/ad-revenue-api/internal/usecases/reporting/mocks"
)

type serviceFixture struct {
	service  *Service
	fetcher  *mocks.MockReportFetcher
	metrics  *repomocks.MockRevenueMetricRepository
	fetchLog *repomocks.MockFetchLogRepository
	notifier *notifiermocks.MockNotifier
	delays   *[]time.Duration
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &serviceFixture{
		fetcher:  mocks.NewMockReportFetcher(ctrl),
		metrics:  repomocks.NewMockRevenueMetricRepository(ctrl),
		fetchLog: repomocks.NewMockFetchLogRepository(ctrl),
		notifier: notifiermocks.NewMockNotifier(ctrl),
	}

	cfg := &config.Config{ReportSync: config.ReportSync{
		RetryAttempts:  3,
		RetryBaseDelay: time.Second,
		ChunkThreshold: 10000,
		ChunkSize:      10000,
	}}

	sleep, delays := recordingSleep()
	f.delays = delays
	f.service = NewService(cfg, f.fetcher, f.metrics, f.fetchLog, NewOutcomeReporter(f.notifier)).WithSleep(sleep)

	return f
}

func serviceAccount() *domain.Account {
	cred := "publisher-a"
	return &domain.Account{
		ID:             "acc-1",
		Name:           "Publisher A",
		NetworkCode:    "1234",
		Status:         domain.AccountStatusActive,
		CredentialName: &cred,
	}
}

func threeDays() domain.DateRange {
	return domain.NewDateRange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
}

func exportRecord(date, country, impressions, revenueMicros string) domain.RawRecord {
	return domain.RawRecord{
		"Dimension.DATE":                          date,
		"Dimension.COUNTRY_NAME":                  country,
		"Column.AD_EXCHANGE_AD_REQUESTS":          "1000",
		"Column.AD_EXCHANGE_MATCH_RATE":           "45.0",
		"Column.AD_EXCHANGE_IMPRESSIONS":          impressions,
		"Column.AD_EXCHANGE_CLICKS":               "5",
		"Column.AD_EXCHANGE_ESTIMATED_REVENUE":    revenueMicros,
		"Column.AD_EXCHANGE_ACTIVE_VIEW_VIEWABLE": "50",
	}
}

func TestProcessAccount_Sucesso(t *testing.T) {
	f := newServiceFixture(t)
	account := serviceAccount()
	dateRange := threeDays()

	export := &admanager.ReportExport{
		JobID:        "job-1",
		DateRange:    dateRange,
		CurrencyCode: "BRL",
		Records: []domain.RawRecord{
			exportRecord("2024-01-01", "Brazil", "400", "2000000"),
			exportRecord("2024-01-01", "Brazil", "100", "1000000"),
			exportRecord("2024-01-02", "Chile", "200", "500000"),
		},
	}

	f.fetcher.EXPECT().FetchReport(gomock.Any(), account, dateRange).Return(export, nil)
	f.metrics.EXPECT().UpsertDimensional(gomock.Any(), gomock.Any(), domain.ReportTargetStandard).
		DoAndReturn(func(_ context.Context, rows []domain.DimensionalRow, _ domain.ReportTarget) error {
			assert.Len(t, rows, 2)
			return nil
		})
	f.metrics.EXPECT().UpsertDaily(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, daily []domain.DailyMetric) error {
			require.Len(t, daily, 2)
			assert.Equal(t, "2024-01-01", daily[0].Date)
			assert.Equal(t, int64(500), daily[0].Impressions)
			assert.Equal(t, "BRL", daily[0].CurrencyCode)
			return nil
		})
	f.fetchLog.EXPECT().MarkDates(gomock.Any(), "acc-1", []string{"2024-01-01", "2024-01-02", "2024-01-03"}, domain.FetchStatusSuccess, "").Return(nil)

	summary := f.service.ProcessAccount(context.Background(), account, dateRange, domain.ReportTargetStandard)

	assert.False(t, summary.Failed)
	assert.False(t, summary.NoData)
	assert.Equal(t, 1, summary.Attempts)
	assert.Equal(t, 2, summary.DayCount)
	assert.Equal(t, "BRL", summary.CurrencyCode)
	assert.InDelta(t, 3.5, summary.TotalRevenue, 1e-9)
	assert.Equal(t, int64(3000), summary.TotalRequests)
	assert.Equal(t, int64(700), summary.TotalImpressions)
	assert.Empty(t, *f.delays)
}

func TestProcessAccount_ExportVazioPreencheDias(t *testing.T) {
	f := newServiceFixture(t)
	account := serviceAccount()
	dateRange := threeDays()

	f.fetcher.EXPECT().FetchReport(gomock.Any(), account, dateRange).
		Return(&admanager.ReportExport{JobID: "job-1", DateRange: dateRange, CurrencyCode: "USD"}, nil)
	f.metrics.EXPECT().UpsertDaily(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, daily []domain.DailyMetric) error {
			require.Len(t, daily, 3)
			for _, d := range daily {
				assert.Zero(t, d.Revenue)
				assert.Zero(t, d.Impressions)
				assert.Zero(t, d.AdRequests)
			}
			return nil
		})
	f.fetchLog.EXPECT().MarkDates(gomock.Any(), "acc-1", gomock.Len(3), domain.FetchStatusSuccess, "").Return(nil)

	summary := f.service.ProcessAccount(context.Background(), account, dateRange, domain.ReportTargetStandard)

	assert.False(t, summary.Failed)
	assert.True(t, summary.NoData)
	assert.Equal(t, 3, summary.DayCount)
}

func TestProcessAccount_FalhaPermanenteAlerta(t *testing.T) {
	f := newServiceFixture(t)
	account := serviceAccount()
	dateRange := threeDays()

	transportErr := &admanagerclient.TransportError{Op: "submit", StatusCode: 500, Err: errors.New("erro interno")}
	f.fetcher.EXPECT().FetchReport(gomock.Any(), account, dateRange).Return(nil, transportErr).Times(3)
	f.fetchLog.EXPECT().MarkDates(gomock.Any(), "acc-1", gomock.Len(3), domain.FetchStatusFailed, gomock.Any()).Return(nil)
	f.notifier.EXPECT().NotifyFailure(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, failure notifier.Failure) error {
			assert.Equal(t, "acc-1", failure.AccountID)
			assert.Equal(t, "Publisher A", failure.AccountName)
			assert.Equal(t, "1234", failure.NetworkCode)
			assert.Contains(t, failure.Message, "3 tentativa")
			return nil
		})

	summary := f.service.ProcessAccount(context.Background(), account, dateRange, domain.ReportTargetStandard)

	assert.True(t, summary.Failed)
	assert.Equal(t, 3, summary.Attempts)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, *f.delays)
}

func TestProcessAccount_ErroDePersistenciaNaoRetenta(t *testing.T) {
	f := newServiceFixture(t)
	account := serviceAccount()
	dateRange := threeDays()

	f.fetcher.EXPECT().FetchReport(gomock.Any(), account, dateRange).
		Return(&admanager.ReportExport{DateRange: dateRange, CurrencyCode: "USD"}, nil).Times(1)
	f.metrics.EXPECT().UpsertDaily(gomock.Any(), gomock.Any()).
		Return(&repository.PersistenceError{Op: "upsert", Table: "revenue_daily_metrics", Err: errors.New("conexão perdida")})
	f.fetchLog.EXPECT().MarkDates(gomock.Any(), "acc-1", gomock.Any(), domain.FetchStatusFailed, gomock.Any()).Return(nil)
	f.notifier.EXPECT().NotifyFailure(gomock.Any(), gomock.Any()).Return(nil)

	summary := f.service.ProcessAccount(context.Background(), account, dateRange, domain.ReportTargetStandard)

	assert.True(t, summary.Failed)
	assert.Contains(t, summary.FailureMessage, "persistência")
	assert.Empty(t, *f.delays)
}

func TestProcessAccount_PanicViraFalhaComAlerta(t *testing.T) {
	f := newServiceFixture(t)
	account := serviceAccount()
	dateRange := threeDays()

	f.fetcher.EXPECT().FetchReport(gomock.Any(), account, dateRange).
		DoAndReturn(func(context.Context, *domain.Account, domain.DateRange) (*admanager.ReportExport, error) {
			panic("resposta inesperada")
		})
	f.fetchLog.EXPECT().MarkDates(gomock.Any(), "acc-1", gomock.Len(3), domain.FetchStatusFailed, gomock.Any()).Return(nil)
	f.notifier.EXPECT().NotifyFailure(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, failure notifier.Failure) error {
			assert.Equal(t, "acc-1", failure.AccountID)
			assert.Contains(t, failure.Message, "resposta inesperada")
			return nil
		})

	var summary domain.RunSummary
	require.NotPanics(t, func() {
		summary = f.service.ProcessAccount(context.Background(), account, dateRange, domain.ReportTargetStandard)
	})

	assert.True(t, summary.Failed)
	assert.Contains(t, summary.FailureMessage, "execução")
	assert.Contains(t, summary.FailureMessage, "resposta inesperada")
}

func TestProcessAccount_ContaInelegivel(t *testing.T) {
	f := newServiceFixture(t)
	account := serviceAccount()
	account.NetworkCode = "  "

	f.fetchLog.EXPECT().MarkDates(gomock.Any(), "acc-1", gomock.Any(), domain.FetchStatusFailed, gomock.Any()).Return(nil)
	f.notifier.EXPECT().NotifyFailure(gomock.Any(), gomock.Any()).Return(nil)

	summary := f.service.ProcessAccount(context.Background(), account, threeDays(), domain.ReportTargetStandard)

	assert.True(t, summary.Failed)
	assert.Zero(t, summary.Attempts)
}

func TestProcessAccount_BackfillUsaTabelaDeBackfill(t *testing.T) {
	f := newServiceFixture(t)
	account := serviceAccount()
	dateRange := threeDays()

	f.fetcher.EXPECT().FetchReport(gomock.Any(), account, dateRange).Return(&admanager.ReportExport{
		DateRange:    dateRange,
		CurrencyCode: "USD",
		Records:      []domain.RawRecord{exportRecord("2024-01-03", "Brazil", "10", "100")},
	}, nil)
	f.metrics.EXPECT().UpsertDimensional(gomock.Any(), gomock.Len(1), domain.ReportTargetBackfill).Return(nil)
	f.metrics.EXPECT().UpsertDaily(gomock.Any(), gomock.Len(1)).Return(nil)
	f.fetchLog.EXPECT().MarkDates(gomock.Any(), "acc-1", gomock.Any(), domain.FetchStatusSuccess, "").Return(nil)

	summary := f.service.ProcessAccount(context.Background(), account, dateRange, domain.ReportTargetBackfill)

	assert.False(t, summary.Failed)
}

func TestOutcomeReporter_MensagemInformativaNaoAlerta(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := notifiermocks.NewMockNotifier(ctrl)
	n.EXPECT().NotifyFailure(gomock.Any(), gomock.Any()).Times(0)

	reporter := NewOutcomeReporter(n)
	reporter.Failure(context.Background(), domain.RunSummary{
		AccountID:      "acc-1",
		Failed:         true,
		FailureMessage: "acc-1: " + NoDataMessage,
	}, errors.New(NoDataMessage))
}

func TestOutcomeReporter_CancelamentoNaoAlerta(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := notifiermocks.NewMockNotifier(ctrl)
	n.EXPECT().NotifyFailure(gomock.Any(), gomock.Any()).Times(0)

	reporter := NewOutcomeReporter(n)
	reporter.Failure(context.Background(), domain.RunSummary{
		AccountID:      "acc-1",
		Failed:         true,
		FailureMessage: "retry interrompido",
	}, &ReportError{Err: context.Canceled, AccountID: "acc-1", Stage: "busca"})
}
