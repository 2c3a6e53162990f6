package domain

import "time"

// RunKind diferencia a execução diária da carga histórica
type RunKind string

const (
	RunKindDaily    RunKind = "daily"
	RunKindBackfill RunKind = "backfill"
)

// RunSummary é o resultado do processamento de uma conta
type RunSummary struct {
	AccountID        string    `json:"account_id"`
	AccountName      string    `json:"account_name"`
	NetworkCode      string    `json:"network_code"`
	DateRange        DateRange `json:"date_range"`
	TotalRevenue     float64   `json:"total_revenue"`
	TotalRequests    int64     `json:"total_requests"`
	TotalImpressions int64     `json:"total_impressions"`
	DayCount         int       `json:"day_count"`
	CurrencyCode     string    `json:"currency_code"`
	NoData           bool      `json:"no_data"`
	Attempts         int       `json:"attempts"`
	Failed           bool      `json:"failed"`
	FailureMessage   string    `json:"failure_message,omitempty"`
}

// RunReport acumula os contadores de uma execução inteira
type RunReport struct {
	RunID             string             `json:"run_id"`
	Kind              RunKind            `json:"kind"`
	StartedAt         time.Time          `json:"started_at"`
	CompletedAt       time.Time          `json:"completed_at"`
	Processed         int                `json:"processed"`
	Succeeded         int                `json:"succeeded"`
	Failed            int                `json:"failed"`
	Cancelled         bool               `json:"cancelled"`
	RevenueByCurrency map[string]float64 `json:"revenue_by_currency"`
	Summaries         []RunSummary       `json:"summaries"`
}

func NewRunReport(runID string, kind RunKind, startedAt time.Time) *RunReport {
	return &RunReport{
		RunID:             runID,
		Kind:              kind,
		StartedAt:         startedAt,
		RevenueByCurrency: make(map[string]float64),
		Summaries:         make([]RunSummary, 0),
	}
}

// Record incorpora o resultado de uma conta ao relatório da execução.
// Receita só é somada dentro da mesma moeda.
func (r *RunReport) Record(summary RunSummary) {
	r.Processed++
	r.Summaries = append(r.Summaries, summary)

	if summary.Failed {
		r.Failed++
		return
	}

	r.Succeeded++
	r.RevenueByCurrency[summary.CurrencyCode] += summary.TotalRevenue
}
