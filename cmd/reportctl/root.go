package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vfg2006/ad-revenue-api/internal/app"
	"github.com/vfg2006/ad-revenue-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "reportctl",
	Short: "Execuções manuais do pipeline de receita do Ad Manager",
	Long: `reportctl roda o mesmo pipeline do agendador sem subir a API HTTP.

A configuração vem do .env e das variáveis de ambiente, como no serviço.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})

		cfg, err := config.NewConfig()
		if err != nil {
			return err
		}
		app.ConfigureLogLevel(cfg)
		appConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd, backfillCmd, migrateCmd)
}

// signalContext é cancelado no primeiro SIGINT/SIGTERM, interrompendo a execução no próximo lote
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
