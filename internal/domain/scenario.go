package domain

// Identificadores dos cenários simulados
const (
	ScenarioPromo          = "promo_simulation"
	ScenarioPriceChange    = "price_change_simulation"
	ScenarioSupplyShortage = "supply_shortage_simulation"
)

// PromoAssumptions são as premissas informadas para a simulação de promoção,
// devolvidas ao chamador exatamente como recebidas para auditoria.
type PromoAssumptions struct {
	DiscountPct     float64 `json:"discount_pct"`
	ExpectedLiftPct float64 `json:"expected_lift_pct"`
}

// PromoResult é o resultado da simulação de promoção.
// Valores monetários e de unidades são arredondados para duas casas decimais
// na apresentação; o cálculo interno usa precisão total.
type PromoResult struct {
	Scenario         string           `json:"scenario"`
	BaselineAvgUnits float64          `json:"baseline_avg_units"`
	SimulatedUnits   float64          `json:"simulated_units"`
	SimulatedPrice   float64          `json:"simulated_price"`
	SimulatedRevenue float64          `json:"simulated_revenue"`
	Assumptions      PromoAssumptions `json:"assumptions"`
}

// PriceChangeAssumptions são as premissas da simulação de mudança de preço.
// A elasticidade é informada pelo chamador, não estimada a partir dos dados:
// é uma premissa de modelagem, não uma estimativa estatística.
type PriceChangeAssumptions struct {
	PriceChangePct   float64 `json:"price_change_pct"`
	DemandElasticity float64 `json:"demand_elasticity"`
}

// PriceChangeResult é o resultado da simulação de mudança de preço.
type PriceChangeResult struct {
	Scenario         string                 `json:"scenario"`
	BaselinePrice    float64                `json:"baseline_price"`
	BaselineUnits    float64                `json:"baseline_units"`
	SimulatedPrice   float64                `json:"simulated_price"`
	SimulatedUnits   float64                `json:"simulated_units"`
	SimulatedRevenue float64                `json:"simulated_revenue"`
	Assumptions      PriceChangeAssumptions `json:"assumptions"`
}

// SupplyShortageAssumptions são as premissas da simulação de ruptura de abastecimento.
type SupplyShortageAssumptions struct {
	SupplyDropPct float64 `json:"supply_drop_pct"`
}

// SupplyShortageResult é o resultado da simulação de ruptura de abastecimento.
type SupplyShortageResult struct {
	Scenario         string                    `json:"scenario"`
	BaselineUnits    float64                   `json:"baseline_units"`
	MaxSellableUnits float64                   `json:"max_sellable_units"`
	LostSalesUnits   float64                   `json:"lost_sales_units"`
	Assumptions      SupplyShortageAssumptions `json:"assumptions"`
}
