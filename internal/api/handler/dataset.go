package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cpg-decision-api/infrastructure/dataset"
)

// DatasetSummary descreve o dataset carregado: volume, intervalo de datas,
// SKUs e lojas conhecidos
func DatasetSummary(data *dataset.Dataset) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(data.Summary()); err != nil {
			logrus.WithError(err).Error("Erro ao enviar resumo do dataset")
		}
	}
}
