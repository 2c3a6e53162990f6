package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-revenue-api/internal/scheduler"
	"github.com/vfg2006/ad-revenue-api/pkg/apiErrors"
	"github.com/vfg2006/ad-revenue-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type TriggerResponse struct {
	Message   string `json:"message"`
	RunID     string `json:"run_id"`
	AccountID string `json:"account_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Warn("erro ao escrever resposta")
	}
}

func writeTriggerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scheduler.ErrRunInProgress):
		apiErrors.WriteError(w, apiErrors.ErrRunInProgress, err.Error(), nil)
	case errors.Is(err, scheduler.ErrInitialLoadCompleted):
		apiErrors.WriteError(w, apiErrors.ErrInitialLoadDone, err.Error(), nil)
	case errors.Is(err, scheduler.ErrAccountNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao iniciar execução de relatório", err.Error())
	}
}

// RunReports dispara o processamento de todas as contas elegíveis. A resposta sai
// antes do fim do processamento.
func RunReports(trigger scheduler.ReportTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runID, err := trigger.TriggerRun(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Execução de relatório não iniciada")
			writeTriggerError(w, err)
			return
		}

		writeJSON(w, http.StatusAccepted, TriggerResponse{
			Message: "Execução de relatório iniciada",
			RunID:   runID,
		})
	}
}

// RunBackfill dispara a carga histórica de uma conta
func RunBackfill(trigger scheduler.ReportTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := httprouter.ParamsFromContext(r.Context()).ByName("account_id")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "account_id é obrigatório", nil)
			return
		}

		runID, err := trigger.TriggerBackfill(r.Context(), accountID)
		if err != nil {
			log.ForContext(r.Context()).WithField("account_id", accountID).WithError(err).Warn("Backfill não iniciado")
			writeTriggerError(w, err)
			return
		}

		writeJSON(w, http.StatusAccepted, TriggerResponse{
			Message:   "Carga histórica iniciada",
			RunID:     runID,
			AccountID: accountID,
		})
	}
}

// GetReportStatus retorna o status do agendador e o resultado da última execução
func GetReportStatus(trigger scheduler.ReportTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, trigger.GetStatus(r.Context()))
	}
}
