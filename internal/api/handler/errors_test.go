package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/cpg-decision-api/infrastructure/dataset"
	"github.com/vfg2006/cpg-decision-api/infrastructure/integrator/llm"
	"github.com/vfg2006/cpg-decision-api/internal/domain"
)

func TestWriteAnalysisError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Parâmetro inválido",
			err:        domain.NewAnalysisError(domain.ErrInvalidParameter, "promo_simulation", "sku_id é obrigatório"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VAL_002",
		},
		{
			name:       "Nenhum registro após os filtros",
			err:        domain.NewAnalysisError(domain.ErrEmptyResult, "trend_analysis", "sem registros"),
			wantStatus: http.StatusNotFound,
			wantCode:   "ANA_001",
		},
		{
			name:       "Falha do provedor de LLM",
			err:        fmt.Errorf("erro ao gerar a narrativa: %w", llm.ErrProvider),
			wantStatus: http.StatusBadGateway,
			wantCode:   "SRV_004",
		},
		{
			name:       "Dataset malformado",
			err:        dataset.NewDataError(dataset.ErrDataFormat, "sales.csv", "linha 3"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "SRV_003",
		},
		{
			name:       "Falha de carga do dataset",
			err:        dataset.NewDataError(dataset.ErrDataLoad, "sales.csv", "arquivo ausente"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "SRV_002",
		},
		{
			name:       "Erro não mapeado",
			err:        errors.New("falha inesperada"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "SRV_001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			writeAnalysisError(recorder, tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantCode)
		})
	}
}
