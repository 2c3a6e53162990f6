package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-revenue-api/internal/api"
	"github.com/vfg2006/ad-revenue-api/internal/app"
	"github.com/vfg2006/ad-revenue-api/internal/config"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	app.ConfigureLogLevel(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer application.Close()

	if err := application.Sync.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de relatórios de receita")
	}

	server := api.New(cfg, application.Sync, application.Conn)
	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
