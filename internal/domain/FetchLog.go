package domain

import "time"

type FetchStatus string

const (
	FetchStatusSuccess FetchStatus = "success"
	FetchStatusFailed  FetchStatus = "failed"
)

// FetchLogEntry registra o resultado da busca de uma conta em uma data
type FetchLogEntry struct {
	AccountID string      `json:"account_id"`
	Date      string      `json:"date"`
	Status    FetchStatus `json:"status"`
	Message   string      `json:"message"`
	UpdatedAt time.Time   `json:"updated_at"`
}
