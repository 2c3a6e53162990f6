package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/ad-revenue-api/infrastructure/integrator/admanager"
	"github.com/vfg2006/ad-revenue-api/infrastructure/repository"
	"github.com/vfg2006/ad-revenue-api/internal/config"
	"github.com/vfg2006/ad-revenue-api/internal/domain"
	"github.com/vfg2006/ad-revenue-api/internal/usecases/aggregating"
	"github.com/vfg2006/ad-revenue-api/pkg/log"
	"github.com/vfg2006/ad-revenue-api/pkg/utils"
)

// Service conduz o fluxo de uma conta: busca com retry, agregação, rollup diário,
// persistência e registro do resultado
type Service struct {
	fetcher      ReportFetcher
	aggregator   *aggregating.Aggregator
	metricRepo   repository.RevenueMetricRepository
	fetchLogRepo repository.FetchLogRepository
	outcome      *OutcomeReporter
	policy       RetryPolicy
	sleep        utils.SleepFunc
}

func NewService(
	cfg *config.Config,
	fetcher ReportFetcher,
	metricRepo repository.RevenueMetricRepository,
	fetchLogRepo repository.FetchLogRepository,
	outcome *OutcomeReporter,
) *Service {
	return &Service{
		fetcher: fetcher,
		aggregator: aggregating.NewAggregator(aggregating.Options{
			ChunkThreshold: cfg.ReportSync.ChunkThreshold,
			ChunkSize:      cfg.ReportSync.ChunkSize,
		}),
		metricRepo:   metricRepo,
		fetchLogRepo: fetchLogRepo,
		outcome:      outcome,
		policy: RetryPolicy{
			Attempts:  cfg.ReportSync.RetryAttempts,
			BaseDelay: cfg.ReportSync.RetryBaseDelay,
		},
		sleep: utils.Sleep,
	}
}

// WithSleep troca a função de espera do retry
func (s *Service) WithSleep(sleep utils.SleepFunc) *Service {
	s.sleep = sleep
	return s
}

// ProcessAccount processa uma conta. Um panic em qualquer etapa vira falha da conta,
// com fetch log e alerta como qualquer outro erro.
func (s *Service) ProcessAccount(ctx context.Context, account *domain.Account, dateRange domain.DateRange, target domain.ReportTarget) (result domain.RunSummary) {
	summary := domain.RunSummary{
		AccountID:   account.ID,
		AccountName: account.Name,
		NetworkCode: account.NetworkCode,
		DateRange:   dateRange,
	}

	defer func() {
		if r := recover(); r != nil {
			log.ForContext(ctx).WithField("account_id", account.ID).Errorf("reporting: panic ao processar conta: %v", r)
			result = s.fail(ctx, summary, &ReportError{
				Err:       fmt.Errorf("%w: %v", ErrPanic, r),
				AccountID: account.ID,
				Stage:     "execução",
				Attempts:  summary.Attempts,
			})
		}
	}()

	if !account.Eligible() {
		return s.fail(ctx, summary, &ReportError{Err: ErrAccountNotEligible, AccountID: account.ID, Stage: "validação"})
	}

	var export *admanager.ReportExport
	attempts, err := Retry(ctx, s.policy, s.sleep, func(attempt int) error {
		log.ForContext(ctx).WithFields(log.Fields{
			"account_id": account.ID,
			"attempt":    attempt,
		}).Debug("reporting: buscando relatório")

		var fetchErr error
		export, fetchErr = s.fetcher.FetchReport(ctx, account, dateRange)
		return fetchErr
	})
	summary.Attempts = attempts
	if err != nil {
		return s.fail(ctx, summary, &ReportError{Err: err, AccountID: account.ID, Stage: "busca", Attempts: attempts})
	}

	summary.CurrencyCode = export.CurrencyCode

	daily, err := s.persist(ctx, account, dateRange, target, export)
	if err != nil {
		return s.fail(ctx, summary, &ReportError{Err: err, AccountID: account.ID, Stage: "persistência"})
	}

	summary.NoData = len(export.Records) == 0
	summary.DayCount = len(daily)
	for i := range daily {
		summary.TotalRevenue += daily[i].Revenue
		summary.TotalRequests += daily[i].AdRequests
		summary.TotalImpressions += daily[i].Impressions
	}

	s.markDates(ctx, account.ID, dateRange, domain.FetchStatusSuccess, "")
	s.outcome.Success(ctx, summary)

	return summary
}

// persist agrega o export e grava linhas dimensionais e diárias. Export vazio,
// ou sem nenhuma linha válida, vira uma métrica zerada por dia do intervalo.
func (s *Service) persist(
	ctx context.Context,
	account *domain.Account,
	dateRange domain.DateRange,
	target domain.ReportTarget,
	export *admanager.ReportExport,
) ([]domain.DailyMetric, error) {
	recordCount := len(export.Records)
	started := time.Now()

	rows := s.aggregator.Aggregate(export.Records, account.ID, export.CurrencyCode)
	export.Records = nil

	var daily []domain.DailyMetric
	if len(rows) == 0 {
		daily = aggregating.ZeroFillDaily(account.ID, dateRange, export.CurrencyCode)
	} else {
		daily = aggregating.RollupDaily(rows, account.ID, export.CurrencyCode)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"account_id":       account.ID,
		"account_currency": export.CurrencyCode,
		"job_id":           export.JobID,
		"job_polls":        export.Polls,
		"records":          recordCount,
		"rows":             len(rows),
		"daily":            len(daily),
		"target":           string(target),
		"duration_ms":      time.Since(started).Milliseconds(),
	}).Info("reporting: export agregado")

	if len(rows) > 0 {
		if err := s.metricRepo.UpsertDimensional(ctx, rows, target); err != nil {
			return nil, err
		}
	}

	if err := s.metricRepo.UpsertDaily(ctx, daily); err != nil {
		return nil, err
	}

	return daily, nil
}

func (s *Service) fail(ctx context.Context, summary domain.RunSummary, err error) domain.RunSummary {
	summary.Failed = true
	summary.FailureMessage = err.Error()

	s.markDates(ctx, summary.AccountID, summary.DateRange, domain.FetchStatusFailed, summary.FailureMessage)
	s.outcome.Failure(ctx, summary, err)

	return summary
}

func (s *Service) markDates(ctx context.Context, accountID string, dateRange domain.DateRange, status domain.FetchStatus, message string) {
	days := dateRange.Days()
	dates := make([]string, 0, len(days))
	for _, day := range days {
		dates = append(dates, day.Format(time.DateOnly))
	}

	if err := s.fetchLogRepo.MarkDates(context.WithoutCancel(ctx), accountID, dates, status, message); err != nil {
		log.ForContext(ctx).WithField("account_id", accountID).WithError(err).Warn("reporting: falha ao registrar fetch log")
	}
}
