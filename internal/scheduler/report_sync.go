package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-revenue-api/infrastructure/repository"
	"github.com/vfg2006/ad-revenue-api/internal/config"
	"github.com/vfg2006/ad-revenue-api/internal/domain"
	"github.com/vfg2006/ad-revenue-api/internal/usecases/reporting"
	"github.com/vfg2006/ad-revenue-api/pkg/log"
	"github.com/vfg2006/ad-revenue-api/pkg/utils"
)

const runLeaseName = "revenue_report"

var (
	ErrRunInProgress   = errors.New("já existe uma execução de relatório em andamento")
	ErrAccountNotFound = errors.New("conta não encontrada")

	ErrInitialLoadCompleted = errors.New("carga inicial da conta já concluída")
)

// ReportSyncConfig representa a configuração do agendador de relatórios de receita
type ReportSyncConfig struct {
	CronSchedule         string
	LookbackDays         int
	BatchSize            int
	DelayBetweenAccounts time.Duration
	DelayBetweenBatches  time.Duration
	SyncEnabled          bool
	OverlapPolicy        string
	LeaseTimeout         time.Duration
	BackfillDays         int
}

// ReportSyncService agenda e conduz as execuções de relatório sobre todas as contas
type ReportSyncService struct {
	scheduler   *gocron.Scheduler
	config      ReportSyncConfig
	accountRepo repository.AccountRepository
	runLockRepo repository.RunLockRepository
	processor   reporting.AccountProcessor
	sleep       utils.SleepFunc
	now         func() time.Time

	// contexto das execuções disparadas em background; cancelado no shutdown
	baseCtx context.Context

	syncMutex           sync.Mutex
	activeRuns          int
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastReport          *domain.RunReport
}

type activeRun struct {
	id     string
	kind   domain.RunKind
	leased bool
}

func NewReportSyncService(
	accountRepo repository.AccountRepository,
	runLockRepo repository.RunLockRepository,
	processor reporting.AccountProcessor,
	appConfig *config.Config,
) *ReportSyncService {
	syncConfig := ReportSyncConfig{
		CronSchedule:         appConfig.ReportSync.CronSchedule,
		LookbackDays:         appConfig.ReportSync.LookbackDays,
		BatchSize:            appConfig.ReportSync.BatchSize,
		DelayBetweenAccounts: appConfig.ReportSync.DelayBetweenAccounts,
		DelayBetweenBatches:  appConfig.ReportSync.DelayBetweenBatches,
		SyncEnabled:          appConfig.ReportSync.Enabled,
		OverlapPolicy:        appConfig.ReportSync.OverlapPolicy,
		LeaseTimeout:         appConfig.ReportSync.LeaseTimeout,
		BackfillDays:         appConfig.Backfill.Days,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":          syncConfig.CronSchedule,
		"lookback_days":          syncConfig.LookbackDays,
		"batch_size":             syncConfig.BatchSize,
		"delay_between_accounts": syncConfig.DelayBetweenAccounts.String(),
		"delay_between_batches":  syncConfig.DelayBetweenBatches.String(),
		"overlap_policy":         syncConfig.OverlapPolicy,
		"sync_enabled":           syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de relatórios de receita carregada")

	return &ReportSyncService{
		scheduler:   gocron.NewScheduler(time.UTC),
		config:      syncConfig,
		accountRepo: accountRepo,
		runLockRepo: runLockRepo,
		processor:   processor,
		sleep:       utils.Sleep,
		now:         time.Now,
		baseCtx:     context.Background(),
	}
}

// Start inicia o agendador
func (s *ReportSyncService) Start(ctx context.Context) error {
	s.baseCtx = ctx

	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de relatórios de receita desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de relatórios de receita")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(s.runScheduled)
	if err != nil {
		return fmt.Errorf("erro ao agendar relatórios de receita: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de relatórios de receita")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *ReportSyncService) runScheduled() {
	run, err := s.begin(s.baseCtx, domain.RunKindDaily)
	if err != nil {
		logrus.WithError(err).Info("Execução agendada ignorada")
		return
	}

	if _, err := s.runDaily(s.baseCtx, run); err != nil {
		logrus.WithError(err).Error("Erro na execução agendada de relatórios de receita")
	}
}

// TriggerRun dispara em background o processamento de todas as contas elegíveis
func (s *ReportSyncService) TriggerRun(ctx context.Context) (string, error) {
	run, err := s.begin(ctx, domain.RunKindDaily)
	if err != nil {
		return "", err
	}

	go func() {
		if _, err := s.runDaily(s.baseCtx, run); err != nil {
			logrus.WithError(err).WithField("run_id", run.id).Error("Erro na execução manual de relatórios de receita")
		}
	}()

	return run.id, nil
}

// TriggerBackfill dispara em background a carga histórica de uma conta
func (s *ReportSyncService) TriggerBackfill(ctx context.Context, accountID string) (string, error) {
	account, err := s.findBackfillAccount(ctx, accountID)
	if err != nil {
		return "", err
	}

	run, err := s.begin(ctx, domain.RunKindBackfill)
	if err != nil {
		return "", err
	}

	go s.runBackfill(s.baseCtx, run, account)

	return run.id, nil
}

// RunNow executa o processamento diário de forma síncrona
func (s *ReportSyncService) RunNow(ctx context.Context) (*domain.RunReport, error) {
	run, err := s.begin(ctx, domain.RunKindDaily)
	if err != nil {
		return nil, err
	}
	return s.runDaily(ctx, run)
}

// RunBackfillNow executa a carga histórica de uma conta de forma síncrona
func (s *ReportSyncService) RunBackfillNow(ctx context.Context, accountID string) (*domain.RunReport, error) {
	account, err := s.findBackfillAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	run, err := s.begin(ctx, domain.RunKindBackfill)
	if err != nil {
		return nil, err
	}
	return s.runBackfill(ctx, run, account), nil
}

func (s *ReportSyncService) findAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	return account, nil
}

// findBackfillAccount só aceita contas ainda sem carga inicial: a tabela de backfill
// é exclusiva do primeiro carregamento
func (s *ReportSyncService) findBackfillAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.findAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if account.InitialLoadCompletedAt != nil {
		logrus.WithFields(logrus.Fields{
			"account_id":           account.ID,
			"initial_load_done_at": account.InitialLoadCompletedAt.Format(time.RFC3339),
		}).Warn("Backfill recusado, carga inicial já concluída")
		return nil, fmt.Errorf("%w: %s", ErrInitialLoadCompleted, account.ID)
	}

	return account, nil
}

// begin reserva a execução: trava local e lease no banco. Com a política reject,
// uma execução ativa (local ou em outra instância) faz a nova ser recusada.
func (s *ReportSyncService) begin(ctx context.Context, kind domain.RunKind) (*activeRun, error) {
	reject := s.config.OverlapPolicy != config.OverlapPolicyAllow

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.activeRuns > 0 && reject {
		return nil, ErrRunInProgress
	}

	runID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar ID da execução: %w", err)
	}

	run := &activeRun{id: runID, kind: kind}

	acquired, err := s.runLockRepo.Acquire(ctx, runLeaseName, runID, s.config.LeaseTimeout)
	switch {
	case err != nil && reject:
		return nil, fmt.Errorf("erro ao adquirir lease da execução: %w", err)
	case err != nil:
		logrus.WithError(err).Warn("Falha ao adquirir lease, seguindo pela política allow")
	case !acquired && reject:
		return nil, ErrRunInProgress
	case !acquired:
		logrus.WithField("run_id", runID).Warn("Execução sobreposta permitida pela política allow, datas podem ser regravadas")
	default:
		run.leased = true
	}

	s.activeRuns++
	s.lastSyncStartedAt = s.now()

	return run, nil
}

func (s *ReportSyncService) finish(run *activeRun, report *domain.RunReport) {
	if run.leased {
		if err := s.runLockRepo.Release(context.Background(), runLeaseName, run.id); err != nil {
			logrus.WithError(err).WithField("run_id", run.id).Warn("Falha ao liberar lease da execução")
		}
	}

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.activeRuns--
	s.lastSyncCompletedAt = s.now()
	if report != nil {
		s.lastReport = report
	}
}

func (s *ReportSyncService) runDaily(ctx context.Context, run *activeRun) (report *domain.RunReport, err error) {
	defer func() { s.finish(run, report) }()

	ctx = log.WithRunID(ctx, run.id)
	logger := log.ForContext(ctx)

	accounts, err := s.accountRepo.ListAccounts(ctx, domain.DefaultAccountFilter())
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar contas para relatório de receita")
		return nil, fmt.Errorf("erro ao listar contas: %w", err)
	}

	if len(accounts) == 0 {
		logger.Info("Nenhuma conta elegível encontrada para relatório de receita")
	}

	dateRange := domain.LookbackRange(s.now(), s.config.LookbackDays)

	return s.processAccounts(ctx, run, accounts, dateRange, domain.ReportTargetStandard), nil
}

func (s *ReportSyncService) runBackfill(ctx context.Context, run *activeRun, account *domain.Account) (report *domain.RunReport) {
	defer func() { s.finish(run, report) }()

	ctx = log.WithRunID(ctx, run.id)
	dateRange := domain.LookbackRange(s.now(), s.config.BackfillDays)

	report = s.processAccounts(ctx, run, []*domain.Account{account}, dateRange, domain.ReportTargetBackfill)

	if report.Succeeded == 1 {
		if err := s.accountRepo.MarkInitialLoadCompleted(ctx, account.ID, s.now()); err != nil {
			log.ForContext(ctx).WithField("account_id", account.ID).WithError(err).Error("Erro ao registrar conclusão da carga inicial")
		}
	}

	return report
}

// processAccounts percorre as contas em lotes, com pausa entre contas e entre lotes.
// O cancelamento do contexto é observado nas fronteiras de lote e nas pausas.
func (s *ReportSyncService) processAccounts(
	ctx context.Context,
	run *activeRun,
	accounts []*domain.Account,
	dateRange domain.DateRange,
	target domain.ReportTarget,
) *domain.RunReport {
	report := domain.NewRunReport(run.id, run.kind, s.now())
	logger := log.ForContext(ctx)

	batchSize := s.config.BatchSize
	if batchSize <= 0 {
		batchSize = len(accounts)
	}

	logger.WithFields(log.Fields{
		"accounts":   len(accounts),
		"batch_size": batchSize,
		"date_start": dateRange.StartDate.Format(time.DateOnly),
		"date_end":   dateRange.EndDate.Format(time.DateOnly),
		"target":     string(target),
	}).Info("Iniciando execução de relatório de receita")

batches:
	for start, batch := 0, 1; start < len(accounts); start, batch = start+batchSize, batch+1 {
		if ctx.Err() != nil {
			report.Cancelled = true
			break
		}

		if start > 0 {
			if err := s.sleep(ctx, s.config.DelayBetweenBatches); err != nil {
				report.Cancelled = true
				break
			}
		}

		end := min(start+batchSize, len(accounts))
		logger.WithFields(log.Fields{"batch": batch, "accounts": end - start}).Info("Processando lote de contas")

		for i, account := range accounts[start:end] {
			if i > 0 {
				if err := s.sleep(ctx, s.config.DelayBetweenAccounts); err != nil {
					report.Cancelled = true
					break batches
				}
			}

			report.Record(s.processSafely(ctx, account, dateRange, target))
		}
	}

	report.CompletedAt = s.now()

	entry := logger.WithFields(log.Fields{
		"processed":   report.Processed,
		"succeeded":   report.Succeeded,
		"failed":      report.Failed,
		"cancelled":   report.Cancelled,
		"revenue":     report.RevenueByCurrency,
		"duration_ms": report.CompletedAt.Sub(report.StartedAt).Milliseconds(),
	})
	if report.Cancelled {
		entry.Warn("Execução de relatório de receita interrompida")
	} else {
		entry.Info("Execução de relatório de receita concluída")
	}

	return report
}

// processSafely isola a conta: um panic vira um resumo de falha e o lote segue
func (s *ReportSyncService) processSafely(
	ctx context.Context,
	account *domain.Account,
	dateRange domain.DateRange,
	target domain.ReportTarget,
) (summary domain.RunSummary) {
	defer func() {
		if r := recover(); r != nil {
			log.ForContext(ctx).WithField("account_id", account.ID).Errorf("Panic ao processar conta: %v", r)
			summary = domain.RunSummary{
				AccountID:      account.ID,
				AccountName:    account.Name,
				NetworkCode:    account.NetworkCode,
				DateRange:      dateRange,
				Failed:         true,
				FailureMessage: fmt.Sprintf("panic: %v", r),
			}
		}
	}()

	return s.processor.ProcessAccount(ctx, account, dateRange, target)
}

// GetStatus retorna o status atual do agendador e o lease registrado no banco,
// que pode pertencer a outra instância
func (s *ReportSyncService) GetStatus(ctx context.Context) map[string]any {
	lease, err := s.runLockRepo.Current(ctx, runLeaseName)
	if err != nil {
		logrus.WithError(err).Warn("Falha ao consultar lease da execução")
	}

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"lease":                  lease,
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_batch_size":        s.config.BatchSize,
		"overlap_policy":         s.config.OverlapPolicy,
		"backfill_days":          s.config.BackfillDays,
		"running":                s.activeRuns > 0,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_report":            s.lastReport,
	}
}
