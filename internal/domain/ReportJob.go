package domain

import (
	"fmt"
	"time"
)

// JobStatus é o status devolvido pela API para um job de relatório
type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusFailed     JobStatus = "FAILED"
)

// IsTerminal indica se o job não muda mais de status
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// JobState é o estado da máquina de estados que conduz um job
type JobState string

const (
	JobStateSubmitted JobState = "SUBMITTED"
	JobStatePolling   JobState = "POLLING"
	JobStateDone      JobState = "DONE"
	JobStateFailed    JobState = "FAILED"
	JobStateTimedOut  JobState = "TIMED_OUT"
)

// ReportJob representa um job assíncrono de relatório
type ReportJob struct {
	JobID     string    `json:"job_id"`
	Status    JobStatus `json:"status"`
	State     JobState  `json:"state"`
	DateRange DateRange `json:"date_range"`
	Polls     int       `json:"polls"`
}

// DateRange é um intervalo de datas inclusivo nas duas pontas
type DateRange struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// NewDateRange normaliza as datas para meia-noite UTC
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{
		StartDate: truncateDay(start),
		EndDate:   truncateDay(end),
	}
}

// LookbackRange retorna os últimos `days` dias terminando ontem
func LookbackRange(now time.Time, days int) DateRange {
	if days < 1 {
		days = 1
	}
	end := truncateDay(now).AddDate(0, 0, -1)
	return DateRange{
		StartDate: end.AddDate(0, 0, -(days - 1)),
		EndDate:   end,
	}
}

// Days lista cada dia do intervalo, em ordem crescente
func (d DateRange) Days() []time.Time {
	if d.EndDate.Before(d.StartDate) {
		return nil
	}

	days := make([]time.Time, 0, int(d.EndDate.Sub(d.StartDate).Hours()/24)+1)
	for day := d.StartDate; !day.After(d.EndDate); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

func (d DateRange) String() string {
	return fmt.Sprintf("%s..%s", d.StartDate.Format(time.DateOnly), d.EndDate.Format(time.DateOnly))
}

func truncateDay(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
