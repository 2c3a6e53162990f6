package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/ad-revenue-api/infrastructure/database/postgres"
)

const runLockTable = "report_run_lock"

// RunLease é o registro de execução ativa
type RunLease struct {
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	StartedAt time.Time `json:"started_at"`
}

type RunLockRepository interface {
	// Acquire tenta obter o lease; um lease mais antigo que staleAfter pode ser retomado
	Acquire(ctx context.Context, name, owner string, staleAfter time.Duration) (bool, error)
	Release(ctx context.Context, name, owner string) error
	Current(ctx context.Context, name string) (*RunLease, error)
}

type runLockRepository struct {
	conn postgres.Conn
	now  func() time.Time
}

func NewRunLockRepository(conn postgres.Conn) RunLockRepository {
	return &runLockRepository{conn: conn, now: time.Now}
}

func buildAcquireLease(name, owner string, now, staleBefore time.Time) (string, []interface{}, error) {
	return squirrel.
		Insert(runLockTable).
		Columns("name", "owner", "started_at").
		Values(name, owner, now).
		Suffix(`ON CONFLICT (name) DO UPDATE SET owner = EXCLUDED.owner, started_at = EXCLUDED.started_at
			WHERE report_run_lock.started_at < ? RETURNING owner`, staleBefore).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *runLockRepository) Acquire(ctx context.Context, name, owner string, staleAfter time.Duration) (bool, error) {
	now := r.now()

	query, args, err := buildAcquireLease(name, owner, now, now.Add(-staleAfter))
	if err != nil {
		return false, persistenceError("montar lease", runLockTable, err)
	}

	var got string
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&got); err != nil {
		// Sem linha retornada: o lease existente ainda é válido
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, persistenceError("adquirir lease", runLockTable, err)
	}

	return got == owner, nil
}

func (r *runLockRepository) Release(ctx context.Context, name, owner string) error {
	query, args, err := squirrel.
		Delete(runLockTable).
		Where(squirrel.Eq{"name": name, "owner": owner}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return persistenceError("montar liberação", runLockTable, err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return persistenceError("liberar lease", runLockTable, err)
	}

	return nil
}

func (r *runLockRepository) Current(ctx context.Context, name string) (*RunLease, error) {
	query, args, err := squirrel.
		Select("name", "owner", "started_at").
		From(runLockTable).
		Where(squirrel.Eq{"name": name}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, persistenceError("montar consulta", runLockTable, err)
	}

	lease := &RunLease{}
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&lease.Name, &lease.Owner, &lease.StartedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, persistenceError("buscar lease", runLockTable, err)
	}

	return lease, nil
}
