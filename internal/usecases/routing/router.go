package routing

import (
	"strings"

	"github.com/vfg2006/cpg-decision-api/internal/domain"
)

// keywordGroup associa um grupo de palavras-chave a uma ferramenta.
// A ordem dos grupos é fixa e define a ordem das recomendações devolvidas.
type keywordGroup struct {
	tool     domain.ToolName
	keywords []string
}

// Tabela fechada de roteamento: casamento de substring, sem stemming, sem
// tratamento de negação e sem desambiguação. Chamadores que precisem de
// entendimento de intenção melhor devem colocar um classificador próprio
// na frente deste roteador.
var keywordGroups = []keywordGroup{
	{domain.ToolTrendAnalysis, []string{"trend", "trending", "over time", "performance"}},
	{domain.ToolAnomalyDetection, []string{"anomaly", "spike", "drop", "unusual"}},
	{domain.ToolPromoSimulation, []string{"promo", "promotion", "discount"}},
	{domain.ToolPriceChangeSimulation, []string{"price", "pricing"}},
	{domain.ToolSupplyShortageSimulation, []string{"supply", "shortage"}},
}

// Route mapeia a pergunta para o conjunto ordenado de ferramentas recomendadas.
// Vários grupos podem casar com a mesma pergunta; os resultados seguem a ordem
// da tabela. Nenhum casamento devolve uma lista vazia, e cabe ao orquestrador
// decidir entre não usar ferramenta alguma ou pedir esclarecimento.
func Route(question string) []domain.ToolHint {
	normalized := strings.ToLower(question)

	hints := make([]domain.ToolHint, 0, len(keywordGroups))

	for _, group := range keywordGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(normalized, keyword) {
				hints = append(hints, domain.ToolHint{
					Tool:    group.tool,
					Matched: keyword,
				})
				break
			}
		}
	}

	return hints
}
