package admanager

import (
	"fmt"

	"github.com/vfg2006/ad-revenue-api/internal/domain"
)

// JobFailedError indica que o job terminou sem sucesso ou esgotou as consultas de status
type JobFailedError struct {
	JobID  string
	Status domain.JobStatus
	State  domain.JobState
	Polls  int
}

func (e *JobFailedError) Error() string {
	if e.State == domain.JobStateTimedOut {
		return fmt.Sprintf("admanager: job %s não concluiu após %d consultas (último status %q)", e.JobID, e.Polls, e.Status)
	}
	return fmt.Sprintf("admanager: job %s terminou com status %s", e.JobID, e.Status)
}

// TimedOut indica se o job esgotou o limite de consultas
func (e *JobFailedError) TimedOut() bool {
	return e.State == domain.JobStateTimedOut
}
