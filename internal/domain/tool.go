package domain

// ToolName identifica uma ferramenta analítica do conjunto fechado.
type ToolName string

const (
	ToolTrendAnalysis            ToolName = "trend_analysis"
	ToolAnomalyDetection         ToolName = "anomaly_detection"
	ToolPromoSimulation          ToolName = "promo_simulation"
	ToolPriceChangeSimulation    ToolName = "price_change_simulation"
	ToolSupplyShortageSimulation ToolName = "supply_shortage_simulation"
)

// ToolHint é uma recomendação de ferramenta produzida pelo roteador de intenção
// a partir das palavras-chave encontradas na pergunta.
type ToolHint struct {
	Tool    ToolName `json:"tool"`
	Matched string   `json:"matched"`
}
