package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/ad-revenue-api/internal/api/handler/router"
	"github.com/vfg2006/ad-revenue-api/internal/domain"
	"github.com/vfg2006/ad-revenue-api/internal/scheduler"
	"github.com/vfg2006/ad-revenue-api/internal/scheduler/mocks"
	"github.com/vfg2006/ad-revenue-api/pkg/middleware"
)

func asRole(req *http.Request, roleID int) *http.Request {
	claims := &domain.Claims{UserID: "user-1", RoleID: roleID}
	return req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))
}

func newReportRouter(trigger scheduler.ReportTrigger) http.Handler {
	return router.New(router.WithRoutes(Reports(trigger)...))
}

func TestRunReports(t *testing.T) {
	tests := []struct {
		name       string
		triggerErr error
		wantStatus int
		wantBody   string
	}{
		{name: "execução iniciada", wantStatus: http.StatusAccepted, wantBody: `"run_id":"run-1"`},
		{name: "execução em andamento", triggerErr: scheduler.ErrRunInProgress, wantStatus: http.StatusConflict, wantBody: "RUN_001"},
		{name: "erro inesperado", triggerErr: errors.New("banco fora"), wantStatus: http.StatusInternalServerError, wantBody: "SRV_001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			trigger := mocks.NewMockReportTrigger(ctrl)

			runID := "run-1"
			if tt.triggerErr != nil {
				runID = ""
			}
			trigger.EXPECT().TriggerRun(gomock.Any()).Return(runID, tt.triggerErr)

			req := asRole(httptest.NewRequest(http.MethodPost, "/v1/reports/run", nil), middleware.RoleAdmin)
			rec := httptest.NewRecorder()
			newReportRouter(trigger).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestRunReports_OperadorNaoPodeDisparar(t *testing.T) {
	ctrl := gomock.NewController(t)
	trigger := mocks.NewMockReportTrigger(ctrl)

	req := asRole(httptest.NewRequest(http.MethodPost, "/v1/reports/run", nil), middleware.RoleOperator)
	rec := httptest.NewRecorder()
	newReportRouter(trigger).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRunBackfill(t *testing.T) {
	tests := []struct {
		name       string
		triggerErr error
		wantStatus int
		wantBody   string
	}{
		{name: "carga iniciada", wantStatus: http.StatusAccepted, wantBody: `"account_id":"acc-9"`},
		{name: "conta inexistente", triggerErr: scheduler.ErrAccountNotFound, wantStatus: http.StatusNotFound, wantBody: "RES_001"},
		{name: "execução em andamento", triggerErr: scheduler.ErrRunInProgress, wantStatus: http.StatusConflict, wantBody: "RUN_001"},
		{name: "carga inicial já concluída", triggerErr: scheduler.ErrInitialLoadCompleted, wantStatus: http.StatusConflict, wantBody: "RUN_002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			trigger := mocks.NewMockReportTrigger(ctrl)
			trigger.EXPECT().TriggerBackfill(gomock.Any(), "acc-9").Return("run-2", tt.triggerErr)

			req := asRole(httptest.NewRequest(http.MethodPost, "/v1/reports/backfill/acc-9", nil), middleware.RoleAdmin)
			rec := httptest.NewRecorder()
			newReportRouter(trigger).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestGetReportStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	trigger := mocks.NewMockReportTrigger(ctrl)
	trigger.EXPECT().GetStatus(gomock.Any()).Return(map[string]any{
		"sync_enabled": true,
		"active_runs":  1,
	})

	req := asRole(httptest.NewRequest(http.MethodGet, "/v1/reports/status", nil), middleware.RoleOperator)
	rec := httptest.NewRecorder()
	newReportRouter(trigger).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["sync_enabled"])
	assert.EqualValues(t, 1, body["active_runs"])
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthcheck(t *testing.T) {
	ok := router.New(router.WithRoutes(Healthcheck(pingerFunc(func(context.Context) error { return nil }))...))
	rec := httptest.NewRecorder()
	ok.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"ok"`)

	down := router.New(router.WithRoutes(Healthcheck(pingerFunc(func(context.Context) error { return errors.New("timeout") }))...))
	rec = httptest.NewRecorder()
	down.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "unavailable")
}
