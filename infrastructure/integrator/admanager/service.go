package admanager

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-revenue-api/infrastructure/integrator/admanager/admanagerclient"
	admanagerdomain "github.com/vfg2006/ad-revenue-api/infrastructure/integrator/admanager/domain"
	"github.com/vfg2006/ad-revenue-api/internal/config"
	"github.com/vfg2006/ad-revenue-api/internal/domain"
)

// DefaultCurrency é usada quando nem a rede nem a conta informam a moeda
const DefaultCurrency = "USD"

// ReportExport é o resultado de um job concluído e baixado
type ReportExport struct {
	JobID        string
	DateRange    domain.DateRange
	Records      []domain.RawRecord
	CurrencyCode string
	Polls        int
}

type AdManagerIntegrator struct {
	cfg    *config.Config
	Client admanagerclient.Client
	runner *JobRunner
}

func New(cfg *config.Config, client admanagerclient.Client) *AdManagerIntegrator {
	return &AdManagerIntegrator{
		cfg:    cfg,
		Client: client,
		runner: NewJobRunner(client, JobRunnerOptions{
			PollInterval:    cfg.ReportSync.PollInterval,
			MaxPollAttempts: cfg.ReportSync.MaxPollAttempts,
			TolerantPolling: cfg.ReportSync.TolerantPolling,
		}),
	}
}

// FetchReport executa o job de receita da conta para o intervalo e devolve as linhas do export
func (s *AdManagerIntegrator) FetchReport(ctx context.Context, account *domain.Account, dateRange domain.DateRange) (*ReportExport, error) {
	cred := admanagerclient.Credential{
		Name:        account.Credential(),
		NetworkCode: account.NetworkCode,
	}

	logger := logrus.WithFields(logrus.Fields{
		"account_id":   account.ID,
		"network_code": account.NetworkCode,
		"date_range":   dateRange.String(),
	})

	started := time.Now()
	job, err := s.runner.Run(ctx, cred, admanagerdomain.RevenueReportQuery(dateRange))
	if err != nil {
		return nil, err
	}

	downloadURL, err := s.Client.GetDownloadURL(ctx, cred, job.JobID)
	if err != nil {
		return nil, err
	}

	payload, err := s.Client.Download(ctx, downloadURL)
	if err != nil {
		return nil, err
	}

	records, err := DecodeExport(ctx, payload)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"job_id":      job.JobID,
		"records":     len(records),
		"bytes":       len(payload),
		"duration_ms": time.Since(started).Milliseconds(),
	}).Info("admanager: export obtido")

	return &ReportExport{
		JobID:        job.JobID,
		DateRange:    dateRange,
		Records:      records,
		CurrencyCode: s.resolveCurrency(ctx, cred, account),
		Polls:        job.Polls,
	}, nil
}

// resolveCurrency consulta a moeda da rede; em falha usa a moeda cadastrada da conta e por fim USD
func (s *AdManagerIntegrator) resolveCurrency(ctx context.Context, cred admanagerclient.Credential, account *domain.Account) string {
	currency, err := s.Client.GetNetworkCurrency(ctx, cred)
	if err == nil && currency != "" {
		return currency
	}

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id":   account.ID,
			"network_code": account.NetworkCode,
		}).WithError(err).Warn("admanager: falha ao consultar moeda da rede, usando moeda cadastrada")
	}

	if account.CurrencyCode != nil && strings.TrimSpace(*account.CurrencyCode) != "" {
		return strings.ToUpper(strings.TrimSpace(*account.CurrencyCode))
	}
	return DefaultCurrency
}
