package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// PersistenceError é uma falha na camada de persistência. Não é reprocessada pelo retry.
type PersistenceError struct {
	Op    string
	Table string
	Code  string
	Err   error
}

func (e *PersistenceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("repository: %s em %s: %v (código: %s)", e.Op, e.Table, e.Err, e.Code)
	}
	return fmt.Sprintf("repository: %s em %s: %v", e.Op, e.Table, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistenceError(op, table string, err error) error {
	if err == nil {
		return nil
	}

	perr := &PersistenceError{Op: op, Table: table, Err: err}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		perr.Code = string(pqErr.Code)
	}

	return perr
}
