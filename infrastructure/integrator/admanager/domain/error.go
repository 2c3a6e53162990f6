package admanagerdomain

import "strings"

// Fault representa o soap:Fault devolvido pela API em respostas não-2xx
type Fault struct {
	Code    string `xml:"faultcode"`
	Message string `xml:"faultstring"`
}

// IsQuotaExceeded verifica se a falha é de cota da API
func (f *Fault) IsQuotaExceeded() bool {
	return f != nil && strings.Contains(f.Message, "QuotaError")
}

// IsAuthentication verifica se a falha é de autenticação ou permissão
func (f *Fault) IsAuthentication() bool {
	if f == nil {
		return false
	}
	return strings.Contains(f.Message, "AuthenticationError") || strings.Contains(f.Message, "PermissionError")
}
