package handler

import (
	"net/http"

	"github.com/vfg2006/sales-pipeline-api/internal/api/handler/router"
	"github.com/vfg2006/sales-pipeline-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-pipeline-api/internal/usecases/dealing"
	"github.com/vfg2006/sales-pipeline-api/internal/usecases/targeting"
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

func Dashboard(service dashboarding.Dashboarder) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard",
			Method:  http.MethodGet,
			Handler: GetDashboard(service),
		},
		{
			Path:    "/v1/dashboard/export",
			Method:  http.MethodGet,
			Handler: ExportDashboard(service),
		},
		{
			Path:    "/v1/dashboard/periods",
			Method:  http.MethodGet,
			Handler: GetDashboardPeriods(service),
		},
	}
}

func Deals(service dealing.Dealer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/deals",
			Method:  http.MethodGet,
			Handler: ListDeals(service),
		},
		{
			Path:    "/v1/deals/export",
			Method:  http.MethodGet,
			Handler: ExportDeals(service),
		},
	}
}

func Targets(service targeting.Targeter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/targets",
			Method:  http.MethodGet,
			Handler: ListTargets(service),
		},
		{
			Path:    "/v1/targets/:month",
			Method:  http.MethodPut,
			Handler: UpsertTarget(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
