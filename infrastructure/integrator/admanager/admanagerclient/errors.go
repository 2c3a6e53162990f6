package admanagerclient

import "fmt"

// TransportError é uma falha de rede, timeout ou resposta não-2xx em qualquer chamada externa
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("admanager: %s: http %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("admanager: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError indica que a resposta chegou mas o campo esperado não foi encontrado
type ProtocolError struct {
	Op     string
	Field  string
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("admanager: %s: campo %q: %s", e.Op, e.Field, e.Reason)
}

func missingField(op, field string) *ProtocolError {
	return &ProtocolError{Op: op, Field: field, Reason: "não encontrado na resposta"}
}
