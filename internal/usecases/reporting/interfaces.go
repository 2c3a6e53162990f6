package reporting

import (
	"context"

	"github.com/vfg2006/ad-revenue-api/infrastructure/integrator/admanager"
	"github.com/vfg2006/ad-revenue-api/internal/domain"
)

// ReportFetcher executa o job de relatório de uma conta e devolve o export baixado
type ReportFetcher interface {
	FetchReport(ctx context.Context, account *domain.Account, dateRange domain.DateRange) (*admanager.ReportExport, error)
}

// AccountProcessor processa uma conta de ponta a ponta. Nunca devolve erro: falhas
// viram um RunSummary marcado como falho.
type AccountProcessor interface {
	ProcessAccount(ctx context.Context, account *domain.Account, dateRange domain.DateRange, target domain.ReportTarget) domain.RunSummary
}
