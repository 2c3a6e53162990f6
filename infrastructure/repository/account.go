package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/ad-revenue-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-revenue-api/internal/domain"
)

const (
	accountsTable   = "accounts a"
	accountsColumns = "a.id, a.name, a.network_code, a.status, a.credential_name, a.credential_status, a.currency_code, a.initial_load_completed_at"
)

type AccountRepository interface {
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	MarkInitialLoadCompleted(ctx context.Context, accountID string, completedAt time.Time) error
}

type accountRepository struct {
	conn postgres.Conn
}

func NewAccountRepository(conn postgres.Conn) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func buildListAccountsQuery(filter domain.AccountFilter) (string, []interface{}, error) {
	queryBuilder := squirrel.
		Select(accountsColumns).
		From(accountsTable).
		OrderBy("a.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(filter.Statuses) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"a.status": filter.Statuses})
	}

	if len(filter.ExcludeCredentialStatuses) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Or{
			squirrel.Eq{"a.credential_status": nil},
			squirrel.NotEq{"a.credential_status": filter.ExcludeCredentialStatuses},
		})
	}

	if filter.RequireNetworkCode {
		queryBuilder = queryBuilder.
			Where(squirrel.NotEq{"a.network_code": nil}).
			Where("TRIM(a.network_code) <> ''")
	}

	return queryBuilder.ToSql()
}

func (r *accountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error) {
	query, args, err := buildListAccountsQuery(filter)
	if err != nil {
		return nil, persistenceError("montar consulta", "accounts", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistenceError("listar contas", "accounts", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, persistenceError("ler conta", "accounts", err)
		}
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, persistenceError("iterar contas", "accounts", err)
	}

	return accounts, nil
}

func (r *accountRepository) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query, args, err := squirrel.
		Select(accountsColumns).
		From(accountsTable).
		Where(squirrel.Eq{"a.id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, persistenceError("montar consulta", "accounts", err)
	}

	acc, err := scanAccount(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, persistenceError("buscar conta", "accounts", err)
	}

	return acc, nil
}

func (r *accountRepository) MarkInitialLoadCompleted(ctx context.Context, accountID string, completedAt time.Time) error {
	query, args, err := squirrel.
		Update("accounts").
		Set("initial_load_completed_at", completedAt).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return persistenceError("montar consulta", "accounts", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return persistenceError("marcar carga inicial", "accounts", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	acc := &domain.Account{}

	var (
		networkCode      sql.NullString
		credentialStatus sql.NullString
		initialLoad      sql.NullTime
	)

	if err := row.Scan(
		&acc.ID,
		&acc.Name,
		&networkCode,
		&acc.Status,
		&acc.CredentialName,
		&credentialStatus,
		&acc.CurrencyCode,
		&initialLoad,
	); err != nil {
		return nil, err
	}

	acc.NetworkCode = networkCode.String
	acc.CredentialStatus = domain.CredentialStatus(credentialStatus.String)
	if credentialStatus.String == "" {
		acc.CredentialStatus = domain.CredentialStatusUnknown
	}
	if initialLoad.Valid {
		acc.InitialLoadCompletedAt = &initialLoad.Time
	}

	return acc, nil
}
