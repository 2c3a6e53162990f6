package domain

import (
	"strings"
	"time"
)

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
)

// CredentialStatus reflete a última validação da credencial de acesso da conta
type CredentialStatus string

const (
	CredentialStatusValid   CredentialStatus = "VALID"
	CredentialStatusInvalid CredentialStatus = "INVALID"
	CredentialStatusUnknown CredentialStatus = "UNKNOWN"
)

// Account é a conta de publisher lida do diretório de contas. O pipeline só lê.
type Account struct {
	ID                     string           `json:"id"`
	Name                   string           `json:"name"`
	NetworkCode            string           `json:"network_code"`
	Status                 AccountStatus    `json:"status"`
	CredentialName         *string          `json:"credential_name"`
	CredentialStatus       CredentialStatus `json:"credential_status"`
	CurrencyCode           *string          `json:"currency_code"`
	InitialLoadCompletedAt *time.Time       `json:"initial_load_completed_at"`
}

// Credential retorna o nome da credencial a ser usada na obtenção do token
func (a *Account) Credential() string {
	if a.CredentialName == nil {
		return ""
	}
	return *a.CredentialName
}

// Eligible indica se a conta pode ser processada
func (a *Account) Eligible() bool {
	if a == nil {
		return false
	}
	return strings.TrimSpace(a.NetworkCode) != "" && a.CredentialStatus != CredentialStatusInvalid
}

// AccountFilter define quais contas entram em uma execução
type AccountFilter struct {
	Statuses                  []AccountStatus
	ExcludeCredentialStatuses []CredentialStatus
	RequireNetworkCode        bool
}

// DefaultAccountFilter retorna o filtro de contas elegíveis para a execução diária
func DefaultAccountFilter() AccountFilter {
	return AccountFilter{
		Statuses:                  []AccountStatus{AccountStatusActive},
		ExcludeCredentialStatuses: []CredentialStatus{CredentialStatusInvalid},
		RequireNetworkCode:        true,
	}
}
