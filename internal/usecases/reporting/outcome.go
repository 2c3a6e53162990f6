package reporting

import (
	"context"
	"errors"

	"github.com/vfg2006/ad-revenue-api/infrastructure/notifier"
	"github.com/vfg2006/ad-revenue-api/internal/domain"
	"github.com/vfg2006/ad-revenue-api/pkg/log"
)

// OutcomeReporter emite o resultado de cada conta em log estruturado e dispara
// alertas para falhas terminais
type OutcomeReporter struct {
	notifier notifier.Notifier
}

func NewOutcomeReporter(n notifier.Notifier) *OutcomeReporter {
	return &OutcomeReporter{notifier: n}
}

func summaryFields(summary domain.RunSummary) log.Fields {
	return log.Fields{
		"account_id":   summary.AccountID,
		"account_name": summary.AccountName,
		"network_code": summary.NetworkCode,
		"date_start":   summary.DateRange.StartDate.Format("2006-01-02"),
		"date_end":     summary.DateRange.EndDate.Format("2006-01-02"),
		"attempt":      summary.Attempts,
	}
}

func (o *OutcomeReporter) Success(ctx context.Context, summary domain.RunSummary) {
	logger := log.ForContext(ctx).WithFields(summaryFields(summary))

	if summary.NoData {
		logger.WithField("days", summary.DayCount).Info("reporting: " + NoDataMessage + ", dias preenchidos com zero")
		return
	}

	logger.WithFields(log.Fields{
		"account_revenue":     summary.TotalRevenue,
		"account_currency":    summary.CurrencyCode,
		"account_requests":    summary.TotalRequests,
		"account_impressions": summary.TotalImpressions,
		"days":                summary.DayCount,
	}).Info("reporting: conta processada com sucesso")
}

// Failure registra a falha da conta e notifica, exceto para mensagens informativas
// e cancelamento da execução
func (o *OutcomeReporter) Failure(ctx context.Context, summary domain.RunSummary, err error) {
	logger := log.ForContext(ctx).WithFields(summaryFields(summary)).WithError(err)

	if IsInformational(summary.FailureMessage) {
		logger.Info("reporting: " + NoDataMessage)
		return
	}

	logger.Error("reporting: falha ao processar conta")

	if errors.Is(err, context.Canceled) || o.notifier == nil {
		return
	}

	failure := notifier.Failure{
		AccountID:   summary.AccountID,
		AccountName: summary.AccountName,
		NetworkCode: summary.NetworkCode,
		Message:     summary.FailureMessage,
		RunID:       log.GetRunID(ctx),
	}

	// o contexto da execução pode já estar perto do fim; o alerta usa o próprio timeout
	if notifyErr := o.notifier.NotifyFailure(context.WithoutCancel(ctx), failure); notifyErr != nil {
		logger.WithField("notify_error", notifyErr.Error()).Warn("reporting: falha ao enviar alerta")
	}
}
