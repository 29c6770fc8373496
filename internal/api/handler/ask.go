package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/advising"
	"github.com/vfg2006/cpg-decision-api/pkg/apiErrors"
)

type askRequest struct {
	Question       string `json:"question"`
	ConversationID string `json:"conversation_id"`
}

// Ask encaminha a pergunta de negócio para o orquestrador de decisões
func Ask(service advising.Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.Question == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingParameter, "question é obrigatória", nil)
			return
		}

		advice, err := service.Ask(r.Context(), req.Question, req.ConversationID)
		if err != nil {
			logrus.WithError(err).Warn("Erro ao responder pergunta de negócio")
			writeAnalysisError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(advice); err != nil {
			logrus.WithError(err).Error("Erro ao enviar resposta do orquestrador")
		}
	}
}
