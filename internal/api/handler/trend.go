package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/trending"
	"github.com/vfg2006/cpg-decision-api/pkg/apiErrors"
	"github.com/vfg2006/cpg-decision-api/pkg/utils"
)

// AnalyzeTrend executa a análise de tendência com os filtros da query string
func AnalyzeTrend(service trending.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		startDate, err := utils.ParseDate(query.Get("start_date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "start_date inválida, use YYYY-MM-DD", nil)
			return
		}

		endDate, err := utils.ParseDate(query.Get("end_date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "end_date inválida, use YYYY-MM-DD", nil)
			return
		}

		params := trending.AnalyzeParams{
			SKUID:       query.Get("sku_id"),
			StoreID:     query.Get("store_id"),
			StartDate:   startDate,
			EndDate:     endDate,
			Granularity: query.Get("granularity"),
		}

		if params.Granularity == "" {
			params.Granularity = "monthly"
		}

		report, err := service.Analyze(params)
		if err != nil {
			logrus.WithError(err).Warn("Erro na análise de tendência")
			writeAnalysisError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logrus.WithError(err).Error("Erro ao enviar resposta da análise de tendência")
		}
	}
}
