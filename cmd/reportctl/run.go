package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vfg2006/ad-revenue-api/internal/app"
	"github.com/vfg2006/ad-revenue-api/internal/domain"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Processa todas as contas elegíveis para a janela de lookback",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		application, err := app.New(ctx, appConfig)
		if err != nil {
			return err
		}
		defer application.Close()

		report, err := application.Sync.RunNow(ctx)
		if err != nil {
			return err
		}
		return finishReport(cmd, report)
	},
}

var backfillAccount string

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Executa a carga histórica de uma conta",
	RunE: func(cmd *cobra.Command, args []string) error {
		if backfillAccount == "" {
			return fmt.Errorf("--account é obrigatório")
		}

		ctx, stop := signalContext()
		defer stop()

		application, err := app.New(ctx, appConfig)
		if err != nil {
			return err
		}
		defer application.Close()

		report, err := application.Sync.RunBackfillNow(ctx, backfillAccount)
		if err != nil {
			return err
		}
		return finishReport(cmd, report)
	},
}

func init() {
	backfillCmd.Flags().StringVar(&backfillAccount, "account", "", "ID da conta")
}

// finishReport imprime o relatório e devolve erro quando alguma conta falhou
func finishReport(cmd *cobra.Command, report *domain.RunReport) error {
	if err := printJSON(cmd.OutOrStdout(), report); err != nil {
		return err
	}
	if report.Cancelled {
		return fmt.Errorf("execução %s interrompida após %d conta(s)", report.RunID, report.Processed)
	}
	if report.Failed > 0 {
		return fmt.Errorf("execução %s terminou com %d falha(s)", report.RunID, report.Failed)
	}
	return nil
}
