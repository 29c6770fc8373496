package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/cpg-decision-api/infrastructure/dataset"
	"github.com/vfg2006/cpg-decision-api/infrastructure/integrator/llm"
	"github.com/vfg2006/cpg-decision-api/internal/domain"
	"github.com/vfg2006/cpg-decision-api/pkg/apiErrors"
)

// writeAnalysisError traduz os erros tipados do núcleo analítico para os
// códigos padronizados da API. Nenhum erro vira número fabricado: o cliente
// sempre recebe a mensagem explícita.
func writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsInvalidParameter(err):
		apiErrors.WriteError(w, apiErrors.ErrInvalidParameter, err.Error(), nil)
	case domain.IsEmptyResult(err):
		apiErrors.WriteError(w, apiErrors.ErrEmptyResult, err.Error(), nil)
	case errors.Is(err, llm.ErrProvider):
		apiErrors.WriteError(w, apiErrors.ErrLLMProvider, err.Error(), nil)
	case errors.Is(err, dataset.ErrDataFormat):
		apiErrors.WriteError(w, apiErrors.ErrDatasetFormat, err.Error(), nil)
	case errors.Is(err, dataset.ErrDataLoad):
		apiErrors.WriteError(w, apiErrors.ErrDatasetLoad, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
	}
}
