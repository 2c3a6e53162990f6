package handler

import (
	"net/http"

	"github.com/vfg2006/ad-revenue-api/internal/api/handler/router"
	"github.com/vfg2006/ad-revenue-api/internal/scheduler"
	"github.com/vfg2006/ad-revenue-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Reports(trigger scheduler.ReportTrigger) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports/run",
			Method:      http.MethodPost,
			Handler:     RunReports(trigger),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/reports/backfill/:account_id",
			Method:      http.MethodPost,
			Handler:     RunBackfill(trigger),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/reports/status",
			Method:      http.MethodGet,
			Handler:     GetReportStatus(trigger),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrOperator()},
		},
	}
}
