package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vfg2006/ad-revenue-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-revenue-api/infrastructure/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Cria as tabelas do pipeline caso ainda não existam",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		conn, err := postgres.NewConnection(ctx, appConfig.Database)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := migration.Apply(ctx, conn); err != nil {
			return err
		}

		logrus.Info("Schema aplicado")
		return nil
	},
}
