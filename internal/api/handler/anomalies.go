package handler

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/detecting"
	"github.com/vfg2006/cpg-decision-api/pkg/apiErrors"
)

// DetectAnomalies executa a detecção de anomalias com os filtros da query string
func DetectAnomalies(service detecting.Detector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		params := detecting.DetectParams{
			SKUID:      query.Get("sku_id"),
			StoreID:    query.Get("store_id"),
			Window:     detecting.DefaultWindow,
			ZThreshold: detecting.DefaultZThreshold,
		}

		if raw := query.Get("window"); raw != "" {
			window, err := strconv.Atoi(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "window inválida, use um inteiro", nil)
				return
			}
			params.Window = window
		}

		if raw := query.Get("z_threshold"); raw != "" {
			zThreshold, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "z_threshold inválido, use um número", nil)
				return
			}
			params.ZThreshold = zThreshold
		}

		report, err := service.Detect(params)
		if err != nil {
			logrus.WithError(err).Warn("Erro na detecção de anomalias")
			writeAnalysisError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logrus.WithError(err).Error("Erro ao enviar resposta da detecção de anomalias")
		}
	}
}
