package tooling

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/vfg2006/cpg-decision-api/internal/domain"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/detecting"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/simulating"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/trending"
)

// Description descreve uma ferramenta para o orquestrador e para o prompt do LLM.
type Description struct {
	Name        domain.ToolName `json:"name"`
	Description string          `json:"description"`
}

// Invoker é o contrato de despacho exposto ao orquestrador: cada operação
// analítica é um callable nomeado que recebe parâmetros nomeados e devolve
// um valor estruturado, nunca texto livre.
type Invoker interface {
	Invoke(name domain.ToolName, args map[string]any) (any, error)
	Describe() []Description
}

// Registry é o conjunto fechado de ferramentas analíticas. O despacho por
// enum com registros de parâmetros tipados rejeita combinações inválidas na
// decodificação, antes de qualquer cálculo.
type Registry struct {
	analyzer  trending.Analyzer
	detector  detecting.Detector
	simulator simulating.Simulator
}

// NewRegistry cria o registro de ferramentas sobre os serviços analíticos
func NewRegistry(
	analyzer trending.Analyzer,
	detector detecting.Detector,
	simulator simulating.Simulator,
) *Registry {
	return &Registry{
		analyzer:  analyzer,
		detector:  detector,
		simulator: simulator,
	}
}

// Describe lista as ferramentas na ordem fixa da tabela de roteamento
func (r *Registry) Describe() []Description {
	return []Description{
		{
			Name:        domain.ToolTrendAnalysis,
			Description: "Analisa tendências de venda ao longo do tempo por SKU, loja ou intervalo de datas. Use para entender crescimento, queda ou sazonalidade.",
		},
		{
			Name:        domain.ToolAnomalyDetection,
			Description: "Detecta picos ou quedas anormais nas vendas. Útil para identificar choques de demanda ou problemas de abastecimento.",
		},
		{
			Name:        domain.ToolPromoSimulation,
			Description: "Simula o impacto de um desconto promocional sobre vendas e receita.",
		},
		{
			Name:        domain.ToolPriceChangeSimulation,
			Description: "Simula o impacto de aumentos ou reduções de preço usando elasticidade.",
		},
		{
			Name:        domain.ToolSupplyShortageSimulation,
			Description: "Simula o impacto de rupturas de abastecimento sobre as unidades vendáveis.",
		},
	}
}

// Invoke despacha a chamada para a ferramenta nomeada, decodificando o mapa de
// parâmetros no registro tipado correspondente. Ferramentas desconhecidas e
// parâmetros fora do contrato falham com ErrInvalidParameter.
func (r *Registry) Invoke(name domain.ToolName, args map[string]any) (any, error) {
	switch name {
	case domain.ToolTrendAnalysis:
		params := trending.AnalyzeParams{Granularity: domain.GranularityMonthly}
		if err := decodeParams(name, args, &params); err != nil {
			return nil, err
		}
		return r.analyzer.Analyze(params)

	case domain.ToolAnomalyDetection:
		params := detecting.DetectParams{
			Window:     detecting.DefaultWindow,
			ZThreshold: detecting.DefaultZThreshold,
		}
		if err := decodeParams(name, args, &params); err != nil {
			return nil, err
		}
		return r.detector.Detect(params)

	case domain.ToolPromoSimulation:
		params := simulating.PromoParams{
			DiscountPct:     simulating.DefaultDiscountPct,
			ExpectedLiftPct: simulating.DefaultExpectedLiftPct,
		}
		if err := decodeParams(name, args, &params); err != nil {
			return nil, err
		}
		return r.simulator.SimulatePromo(params)

	case domain.ToolPriceChangeSimulation:
		params := simulating.PriceChangeParams{
			PriceChangePct:   simulating.DefaultPriceChangePct,
			DemandElasticity: simulating.DefaultDemandElasticity,
		}
		if err := decodeParams(name, args, &params); err != nil {
			return nil, err
		}
		return r.simulator.SimulatePriceChange(params)

	case domain.ToolSupplyShortageSimulation:
		params := simulating.SupplyShortageParams{
			SupplyDropPct: simulating.DefaultSupplyDropPct,
		}
		if err := decodeParams(name, args, &params); err != nil {
			return nil, err
		}
		return r.simulator.SimulateSupplyShortage(params)
	}

	return nil, domain.NewAnalysisError(
		domain.ErrInvalidParameter,
		string(name),
		fmt.Sprintf("ferramenta desconhecida: %q", name),
	)
}

// decodeParams decodifica o mapa de argumentos no registro tipado.
// Campos desconhecidos são rejeitados para que combinações inválidas de
// parâmetros falhem na construção, não durante o cálculo.
func decodeParams(tool domain.ToolName, args map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      target,
		ErrorUnused: true,
		DecodeHook:  mapstructure.StringToTimeHookFunc(time.DateOnly),
	})
	if err != nil {
		return domain.NewAnalysisError(domain.ErrInvalidParameter, string(tool), err.Error())
	}

	if err := decoder.Decode(args); err != nil {
		return domain.NewAnalysisError(
			domain.ErrInvalidParameter,
			string(tool),
			fmt.Sprintf("parâmetros inválidos: %v", err),
		)
	}

	return nil
}
