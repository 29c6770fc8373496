package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/routing"
	"github.com/vfg2006/cpg-decision-api/pkg/apiErrors"
)

type hintsResponse struct {
	Question string `json:"question"`
	Hints    any    `json:"hints"`
}

// RouteQuestion devolve as ferramentas recomendadas para a pergunta,
// na ordem fixa da tabela de roteamento
func RouteQuestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		question := r.URL.Query().Get("question")
		if question == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingParameter, "question é obrigatória", nil)
			return
		}

		hints := routing.Route(question)

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(hintsResponse{
			Question: question,
			Hints:    hints,
		})
		if err != nil {
			logrus.WithError(err).Error("Erro ao enviar resposta do roteador")
		}
	}
}
