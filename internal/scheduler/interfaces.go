package scheduler

import (
	"context"
)

// ReportTrigger é a superfície usada pelos handlers HTTP para disparar execuções
type ReportTrigger interface {
	TriggerRun(ctx context.Context) (string, error)
	TriggerBackfill(ctx context.Context, accountID string) (string, error)
	GetStatus(ctx context.Context) map[string]any
}
