package handler

import (
	"net/http"

	"github.com/vfg2006/cpg-decision-api/infrastructure/dataset"
	"github.com/vfg2006/cpg-decision-api/internal/api/handler/router"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/advising"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/authenticating"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/detecting"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/simulating"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/trending"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Dataset(data *dataset.Dataset) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dataset/summary",
			Method:  http.MethodGet,
			Handler: DatasetSummary(data),
		},
	}
}

func Tools(
	analyzer trending.Analyzer,
	detector detecting.Detector,
	simulator simulating.Simulator,
) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/tools/trend",
			Method:  http.MethodGet,
			Handler: AnalyzeTrend(analyzer),
		},
		{
			Path:    "/v1/tools/anomalies",
			Method:  http.MethodGet,
			Handler: DetectAnomalies(detector),
		},
		{
			Path:    "/v1/tools/simulations/promo",
			Method:  http.MethodPost,
			Handler: SimulatePromo(simulator),
		},
		{
			Path:    "/v1/tools/simulations/price-change",
			Method:  http.MethodPost,
			Handler: SimulatePriceChange(simulator),
		},
		{
			Path:    "/v1/tools/simulations/supply-shortage",
			Method:  http.MethodPost,
			Handler: SimulateSupplyShortage(simulator),
		},
	}
}

func Routing() []router.Route {
	return []router.Route{
		{
			Path:    "/v1/router/hints",
			Method:  http.MethodGet,
			Handler: RouteQuestion(),
		},
	}
}

func Advising(service advising.Advisor) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/ask",
			Method:  http.MethodPost,
			Handler: Ask(service),
		},
	}
}
