package app

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-revenue-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-revenue-api/infrastructure/integrator/admanager"
	"github.com/vfg2006/ad-revenue-api/infrastructure/integrator/admanager/admanagerclient"
	"github.com/vfg2006/ad-revenue-api/infrastructure/notifier"
	"github.com/vfg2006/ad-revenue-api/infrastructure/repository"
	"github.com/vfg2006/ad-revenue-api/internal/config"
	"github.com/vfg2006/ad-revenue-api/internal/scheduler"
	"github.com/vfg2006/ad-revenue-api/internal/usecases/reporting"
)

// App reúne as dependências do pipeline já conectadas
type App struct {
	Config    *config.Config
	Conn      *postgres.Connection
	Reporting *reporting.Service
	Sync      *scheduler.ReportSyncService
}

// New abre a conexão com o banco e monta o pipeline de relatórios
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")

	accountRepo := repository.NewAccountRepository(conn)
	metricRepo := repository.NewRevenueMetricRepository(conn, cfg.ReportSync.UpsertChunkSize, cfg.Backfill.RetentionDays)
	fetchLogRepo := repository.NewFetchLogRepository(conn)
	runLockRepo := repository.NewRunLockRepository(conn)

	tokens := admanagerclient.NewServiceAccountTokenProvider(cfg.ServiceAccount, nil)
	client := admanagerclient.NewClient(cfg.AdManager, tokens, &http.Client{})
	integrator := admanager.New(cfg, client)

	outcome := reporting.NewOutcomeReporter(notifier.NewNotifier(cfg.Alert))
	reportingService := reporting.NewService(cfg, integrator, metricRepo, fetchLogRepo, outcome)

	sync := scheduler.NewReportSyncService(accountRepo, runLockRepo, reportingService, cfg)

	return &App{
		Config:    cfg,
		Conn:      conn,
		Reporting: reportingService,
		Sync:      sync,
	}, nil
}

// ConfigureLogLevel aplica o nível de log da configuração, caindo para info quando inválido
func ConfigureLogLevel(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func (a *App) Close() {
	if err := a.Conn.Close(); err != nil {
		logrus.WithError(err).Warn("Erro ao fechar conexão com PostgreSQL")
	}
}
