package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vfg2006/ad-revenue-api/infrastructure/integrator/admanager"
	"github.com/vfg2006/ad-revenue-api/infrastructure/integrator/admanager/admanagerclient"
)

// NoDataMessage marca um resultado vazio; é informativo e não gera alerta
const NoDataMessage = "no data returned"

var (
	ErrAccountNotEligible = errors.New("conta sem network code ou com credencial inválida")
	ErrRetriesExhausted   = errors.New("tentativas esgotadas")
	ErrPanic              = errors.New("panic ao processar conta")
)

// ReportError é a falha terminal de uma conta, com a etapa em que ocorreu
type ReportError struct {
	Err       error
	AccountID string
	Stage     string
	Attempts  int
}

func (e *ReportError) Error() string {
	if e.Attempts > 0 {
		return fmt.Sprintf("%s: %s após %d tentativa(s): %v", e.AccountID, e.Stage, e.Attempts, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.AccountID, e.Stage, e.Err)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

// IsRetryable indica se a falha deve ser tentada novamente pelo laço de retry.
// Falhas de transporte, de protocolo e de job são retentáveis; persistência e
// cancelamento do contexto não são.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var transportErr *admanagerclient.TransportError
	if errors.As(err, &transportErr) {
		return true
	}

	var protocolErr *admanagerclient.ProtocolError
	if errors.As(err, &protocolErr) {
		return true
	}

	var jobErr *admanager.JobFailedError
	return errors.As(err, &jobErr)
}

// IsInformational indica mensagens que só devem ir para o log, sem alerta
func IsInformational(message string) bool {
	return strings.Contains(strings.ToLower(message), NoDataMessage)
}
