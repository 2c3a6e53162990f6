package repository

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/ad-revenue-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-revenue-api/internal/domain"
)

const fetchLogTable = "report_fetch_log"

type FetchLogRepository interface {
	MarkDates(ctx context.Context, accountID string, dates []string, status domain.FetchStatus, message string) error
}

type fetchLogRepository struct {
	conn postgres.Conn
}

func NewFetchLogRepository(conn postgres.Conn) FetchLogRepository {
	return &fetchLogRepository{conn: conn}
}

// MarkDates registra o status da busca para cada data da conta
func (r *fetchLogRepository) MarkDates(ctx context.Context, accountID string, dates []string, status domain.FetchStatus, message string) error {
	if len(dates) == 0 {
		return nil
	}

	query, args, err := buildFetchLogUpsert(accountID, dates, status, message)
	if err != nil {
		return persistenceError("montar upsert", fetchLogTable, err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return persistenceError("upsert", fetchLogTable, err)
	}

	return nil
}

func buildFetchLogUpsert(accountID string, dates []string, status domain.FetchStatus, message string) (string, []interface{}, error) {
	insert := squirrel.
		Insert(fetchLogTable).
		Columns("account_id", "date", "status", "message").
		Suffix(upsertSuffix([]string{"account_id", "date"}, []string{"status", "message"})).
		PlaceholderFormat(squirrel.Dollar)

	for _, date := range dates {
		insert = insert.Values(accountID, date, string(status), message)
	}

	return insert.ToSql()
}
