package migration

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-revenue-api/infrastructure/database/postgres"
)

//go:embed schema.sql
var schema string

// Statements retorna os comandos do schema na ordem em que devem ser aplicados
func Statements() []string {
	parts := strings.Split(schema, ";")

	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if stmt := strings.TrimSpace(part); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// Apply cria as tabelas do pipeline, caso ainda não existam, em uma única transação
func Apply(ctx context.Context, conn postgres.Conn) error {
	logrus.Info("Iniciando migração do schema...")
	startTime := time.Now()

	statements := Statements()

	err := conn.RunInTransaction(ctx, func(q postgres.Queryer) error {
		for i, stmt := range statements {
			if _, err := q.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migração: comando %d/%d falhou: %w", i+1, len(statements), err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.Infof("Migração concluída em %v (%d comandos)", time.Since(startTime), len(statements))
	return nil
}
