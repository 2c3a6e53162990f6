package admanager

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-revenue-api/infrastructure/integrator/admanager/admanagerclient"
	admanagerdomain "github.com/vfg2006/ad-revenue-api/infrastructure/integrator/admanager/domain"
	"github.com/vfg2006/ad-revenue-api/internal/domain"
	"github.com/vfg2006/ad-revenue-api/pkg/utils"
)

type JobRunnerOptions struct {
	PollInterval    time.Duration
	MaxPollAttempts int
	// Erro em uma consulta de status conta como "ainda em andamento"
	TolerantPolling bool
}

// JobRunner conduz um job de relatório da submissão até um estado terminal
type JobRunner struct {
	client admanagerclient.Client
	opts   JobRunnerOptions
	sleep  utils.SleepFunc
}

func NewJobRunner(client admanagerclient.Client, opts JobRunnerOptions) *JobRunner {
	if opts.MaxPollAttempts <= 0 {
		opts.MaxPollAttempts = 1
	}
	return &JobRunner{
		client: client,
		opts:   opts,
		sleep:  utils.Sleep,
	}
}

// Run submete o job e consulta o status até COMPLETED, FAILED ou o fim do orçamento de consultas.
// Só retorna sem erro quando o job está DONE.
func (r *JobRunner) Run(
	ctx context.Context,
	cred admanagerclient.Credential,
	query admanagerdomain.ReportQuery,
) (*domain.ReportJob, error) {
	jobID, err := r.client.SubmitJob(ctx, cred, query)
	if err != nil {
		return nil, err
	}

	job := &domain.ReportJob{
		JobID:     jobID,
		Status:    domain.JobStatusPending,
		State:     domain.JobStateSubmitted,
		DateRange: query.DateRange,
	}

	logger := logrus.WithFields(logrus.Fields{
		"network_code": cred.NetworkCode,
		"job_id":       jobID,
	})

	job.State = domain.JobStatePolling
	for job.Polls < r.opts.MaxPollAttempts {
		if err := r.sleep(ctx, r.opts.PollInterval); err != nil {
			return job, err
		}
		job.Polls++

		status, err := r.client.PollStatus(ctx, cred, jobID)
		if err != nil {
			if !r.opts.TolerantPolling || ctx.Err() != nil {
				job.State = domain.JobStateFailed
				return job, err
			}
			logger.WithError(err).Warnf("admanager: erro na consulta %d de status, mantendo job em andamento", job.Polls)
			continue
		}
		job.Status = status

		if !status.IsTerminal() {
			continue
		}

		if status == domain.JobStatusCompleted {
			job.State = domain.JobStateDone
			logger.Debugf("admanager: job concluído após %d consultas", job.Polls)
			return job, nil
		}

		job.State = domain.JobStateFailed
		return job, &JobFailedError{JobID: jobID, Status: status, State: job.State, Polls: job.Polls}
	}

	job.State = domain.JobStateTimedOut
	return job, &JobFailedError{JobID: jobID, Status: job.Status, State: job.State, Polls: job.Polls}
}
