package simulating

import (
	"github.com/vfg2006/cpg-decision-api/infrastructure/dataset"
	"github.com/vfg2006/cpg-decision-api/internal/domain"
	"github.com/vfg2006/cpg-decision-api/pkg/log"
	"github.com/vfg2006/cpg-decision-api/pkg/utils"
)

// Valores padrão das premissas de cenário
const (
	DefaultDiscountPct      = 20.0
	DefaultExpectedLiftPct  = 30.0
	DefaultPriceChangePct   = 10.0
	DefaultDemandElasticity = -1.2
	DefaultSupplyDropPct    = 30.0
)

// PromoParams parametriza a simulação de promoção.
type PromoParams struct {
	SKUID           string  `mapstructure:"sku_id"`
	StoreID         string  `mapstructure:"store_id"`
	DiscountPct     float64 `mapstructure:"discount_pct"`
	ExpectedLiftPct float64 `mapstructure:"expected_lift_pct"`
}

// PriceChangeParams parametriza a simulação de mudança de preço.
// A elasticidade é uma premissa do chamador, não um ajuste estatístico.
type PriceChangeParams struct {
	SKUID            string  `mapstructure:"sku_id"`
	PriceChangePct   float64 `mapstructure:"price_change_pct"`
	DemandElasticity float64 `mapstructure:"demand_elasticity"`
}

// SupplyShortageParams parametriza a simulação de ruptura de abastecimento.
type SupplyShortageParams struct {
	SKUID         string  `mapstructure:"sku_id"`
	SupplyDropPct float64 `mapstructure:"supply_drop_pct"`
}

// Simulator define as três projeções de cenário de negócio.
// Todas são funções puras sobre o subconjunto filtrado do dataset.
type Simulator interface {
	SimulatePromo(params PromoParams) (*domain.PromoResult, error)
	SimulatePriceChange(params PriceChangeParams) (*domain.PriceChangeResult, error)
	SimulateSupplyShortage(params SupplyShortageParams) (*domain.SupplyShortageResult, error)
}

type Service struct {
	data *dataset.Dataset
}

// NewService cria o serviço de simulação de cenários sobre o dataset carregado
func NewService(data *dataset.Dataset) Simulator {
	return &Service{data: data}
}

// SimulatePromo projeta o impacto de um desconto promocional sobre unidades e
// receita a partir das médias históricas do SKU.
func (s *Service) SimulatePromo(params PromoParams) (*domain.PromoResult, error) {
	rows, err := s.subset(params.SKUID, params.StoreID, domain.ToolPromoSimulation)
	if err != nil {
		return nil, err
	}

	baselineUnits := meanUnits(rows)
	baselinePrice := meanPrice(rows)

	simulatedUnits := baselineUnits * (1 + params.ExpectedLiftPct/100)
	simulatedPrice := baselinePrice * (1 - params.DiscountPct/100)
	simulatedRevenue := simulatedUnits * simulatedPrice

	log.L.WithFields(log.Fields{
		"sku_id":       params.SKUID,
		"discount_pct": params.DiscountPct,
		"lift_pct":     params.ExpectedLiftPct,
	}).Debug("Simulação de promoção concluída")

	return &domain.PromoResult{
		Scenario:         domain.ScenarioPromo,
		BaselineAvgUnits: utils.RoundWithTwoDecimalPlace(baselineUnits),
		SimulatedUnits:   utils.RoundWithTwoDecimalPlace(simulatedUnits),
		SimulatedPrice:   utils.RoundWithTwoDecimalPlace(simulatedPrice),
		SimulatedRevenue: utils.RoundWithTwoDecimalPlace(simulatedRevenue),
		Assumptions: domain.PromoAssumptions{
			DiscountPct:     params.DiscountPct,
			ExpectedLiftPct: params.ExpectedLiftPct,
		},
	}, nil
}

// SimulatePriceChange projeta o efeito de uma variação de preço sobre a
// demanda usando a elasticidade informada.
func (s *Service) SimulatePriceChange(params PriceChangeParams) (*domain.PriceChangeResult, error) {
	rows, err := s.subset(params.SKUID, "", domain.ToolPriceChangeSimulation)
	if err != nil {
		return nil, err
	}

	baselineUnits := meanUnits(rows)
	baselinePrice := meanPrice(rows)

	demandChangePct := params.DemandElasticity * (params.PriceChangePct / 100)
	simulatedUnits := baselineUnits * (1 + demandChangePct)
	simulatedPrice := baselinePrice * (1 + params.PriceChangePct/100)
	simulatedRevenue := simulatedUnits * simulatedPrice

	log.L.WithFields(log.Fields{
		"sku_id":           params.SKUID,
		"price_change_pct": params.PriceChangePct,
		"elasticity":       params.DemandElasticity,
	}).Debug("Simulação de mudança de preço concluída")

	return &domain.PriceChangeResult{
		Scenario:         domain.ScenarioPriceChange,
		BaselinePrice:    utils.RoundWithTwoDecimalPlace(baselinePrice),
		BaselineUnits:    utils.RoundWithTwoDecimalPlace(baselineUnits),
		SimulatedPrice:   utils.RoundWithTwoDecimalPlace(simulatedPrice),
		SimulatedUnits:   utils.RoundWithTwoDecimalPlace(simulatedUnits),
		SimulatedRevenue: utils.RoundWithTwoDecimalPlace(simulatedRevenue),
		Assumptions: domain.PriceChangeAssumptions{
			PriceChangePct:   params.PriceChangePct,
			DemandElasticity: params.DemandElasticity,
		},
	}, nil
}

// SimulateSupplyShortage projeta o teto de unidades vendáveis sob uma queda
// de abastecimento e as vendas perdidas correspondentes.
func (s *Service) SimulateSupplyShortage(params SupplyShortageParams) (*domain.SupplyShortageResult, error) {
	rows, err := s.subset(params.SKUID, "", domain.ToolSupplyShortageSimulation)
	if err != nil {
		return nil, err
	}

	baselineUnits := meanUnits(rows)

	maxSellableUnits := baselineUnits * (1 - params.SupplyDropPct/100)
	lostSalesUnits := baselineUnits - maxSellableUnits

	log.L.WithFields(log.Fields{
		"sku_id":          params.SKUID,
		"supply_drop_pct": params.SupplyDropPct,
	}).Debug("Simulação de ruptura de abastecimento concluída")

	return &domain.SupplyShortageResult{
		Scenario:         domain.ScenarioSupplyShortage,
		BaselineUnits:    utils.RoundWithTwoDecimalPlace(baselineUnits),
		MaxSellableUnits: utils.RoundWithTwoDecimalPlace(maxSellableUnits),
		LostSalesUnits:   utils.RoundWithTwoDecimalPlace(lostSalesUnits),
		Assumptions: domain.SupplyShortageAssumptions{
			SupplyDropPct: params.SupplyDropPct,
		},
	}, nil
}

// subset filtra o dataset pelo SKU (e loja, quando aplicável).
// O SKU é obrigatório: sem ele a linha de base viraria uma média do dataset
// inteiro, um número silenciosamente errado. A média de um subconjunto vazio
// é indefinida, então a ausência de linhas também é rejeitada explicitamente.
func (s *Service) subset(skuID, storeID string, tool domain.ToolName) ([]domain.SalesRecord, error) {
	if skuID == "" {
		return nil, domain.NewAnalysisError(
			domain.ErrInvalidParameter,
			string(tool),
			"sku_id é obrigatório para simulações",
		)
	}

	rows := s.data.Filter(dataset.Filter{
		SKUID:   skuID,
		StoreID: storeID,
	})

	if len(rows) == 0 {
		return nil, domain.NewAnalysisError(
			domain.ErrEmptyResult,
			string(tool),
			"nenhum registro de venda para o SKU informado",
		)
	}

	return rows, nil
}

func meanUnits(rows []domain.SalesRecord) float64 {
	var sum float64
	for _, row := range rows {
		sum += row.UnitsSold
	}
	return sum / float64(len(rows))
}

func meanPrice(rows []domain.SalesRecord) float64 {
	var sum float64
	for _, row := range rows {
		sum += row.Price
	}
	return sum / float64(len(rows))
}
