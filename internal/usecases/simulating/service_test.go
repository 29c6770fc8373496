package simulating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cpg-decision-api/infrastructure/dataset"
	"github.com/vfg2006/cpg-decision-api/internal/domain"
)

// baselineDataset monta um SKU com média de 100 unidades e preço médio de 10,
// espalhado em duas lojas, mais um SKU de ruído que não deve entrar nas médias.
func baselineDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	day := func(offset int) time.Time {
		return time.Date(2024, 1, 1+offset, 0, 0, 0, 0, time.UTC)
	}

	data, err := dataset.NewFromRecords([]domain.SalesRecord{
		{Date: day(0), SKUID: "SKU001", StoreID: "ST01", UnitsSold: 90, Price: 10, Revenue: 900},
		{Date: day(1), SKUID: "SKU001", StoreID: "ST02", UnitsSold: 110, Price: 10, Revenue: 1100},
		{Date: day(2), SKUID: "SKU999", StoreID: "ST01", UnitsSold: 5000, Price: 99, Revenue: 495000},
	})
	require.NoError(t, err)

	return data
}

func TestService_SimulatePromo(t *testing.T) {
	service := NewService(baselineDataset(t))

	result, err := service.SimulatePromo(PromoParams{
		SKUID:           "SKU001",
		DiscountPct:     DefaultDiscountPct,
		ExpectedLiftPct: DefaultExpectedLiftPct,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ScenarioPromo, result.Scenario)
	assert.Equal(t, 100.0, result.BaselineAvgUnits)
	assert.Equal(t, 130.0, result.SimulatedUnits)
	assert.Equal(t, 8.0, result.SimulatedPrice)
	assert.Equal(t, 1040.0, result.SimulatedRevenue)
	assert.Equal(t, DefaultDiscountPct, result.Assumptions.DiscountPct)
	assert.Equal(t, DefaultExpectedLiftPct, result.Assumptions.ExpectedLiftPct)
}

func TestService_SimulatePromo_FiltroPorLoja(t *testing.T) {
	service := NewService(baselineDataset(t))

	result, err := service.SimulatePromo(PromoParams{
		SKUID:           "SKU001",
		StoreID:         "ST01",
		DiscountPct:     10,
		ExpectedLiftPct: 0,
	})

	require.NoError(t, err)
	assert.Equal(t, 90.0, result.BaselineAvgUnits)
	assert.Equal(t, 90.0, result.SimulatedUnits)
	assert.Equal(t, 9.0, result.SimulatedPrice)
	assert.Equal(t, 810.0, result.SimulatedRevenue)
}

func TestService_SimulatePriceChange(t *testing.T) {
	service := NewService(baselineDataset(t))

	result, err := service.SimulatePriceChange(PriceChangeParams{
		SKUID:            "SKU001",
		PriceChangePct:   DefaultPriceChangePct,
		DemandElasticity: DefaultDemandElasticity,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ScenarioPriceChange, result.Scenario)
	assert.Equal(t, 100.0, result.BaselineUnits)
	assert.Equal(t, 10.0, result.BaselinePrice)
	// Elasticidade -1.2 com +10% de preço: demanda cai 12%
	assert.Equal(t, 88.0, result.SimulatedUnits)
	assert.Equal(t, 11.0, result.SimulatedPrice)
	assert.Equal(t, 968.0, result.SimulatedRevenue)
	assert.Equal(t, DefaultPriceChangePct, result.Assumptions.PriceChangePct)
	assert.Equal(t, DefaultDemandElasticity, result.Assumptions.DemandElasticity)
}

func TestService_SimulatePriceChange_ReducaoDePreco(t *testing.T) {
	service := NewService(baselineDataset(t))

	result, err := service.SimulatePriceChange(PriceChangeParams{
		SKUID:            "SKU001",
		PriceChangePct:   -10,
		DemandElasticity: -1.2,
	})

	require.NoError(t, err)
	// Redução de preço com elasticidade negativa aumenta a demanda
	assert.Equal(t, 112.0, result.SimulatedUnits)
	assert.Equal(t, 9.0, result.SimulatedPrice)
	assert.Equal(t, 1008.0, result.SimulatedRevenue)
}

func TestService_SimulateSupplyShortage(t *testing.T) {
	service := NewService(baselineDataset(t))

	result, err := service.SimulateSupplyShortage(SupplyShortageParams{
		SKUID:         "SKU001",
		SupplyDropPct: DefaultSupplyDropPct,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ScenarioSupplyShortage, result.Scenario)
	assert.Equal(t, 100.0, result.BaselineUnits)
	assert.Equal(t, 70.0, result.MaxSellableUnits)
	assert.Equal(t, 30.0, result.LostSalesUnits)
	assert.Equal(t, DefaultSupplyDropPct, result.Assumptions.SupplyDropPct)
}

func TestService_SKUObrigatorio(t *testing.T) {
	service := NewService(baselineDataset(t))

	tests := []struct {
		name string
		run  func() error
	}{
		{
			name: "Promoção",
			run: func() error {
				_, err := service.SimulatePromo(PromoParams{
					DiscountPct:     DefaultDiscountPct,
					ExpectedLiftPct: DefaultExpectedLiftPct,
				})
				return err
			},
		},
		{
			name: "Mudança de preço",
			run: func() error {
				_, err := service.SimulatePriceChange(PriceChangeParams{
					PriceChangePct:   DefaultPriceChangePct,
					DemandElasticity: DefaultDemandElasticity,
				})
				return err
			},
		},
		{
			name: "Ruptura de abastecimento",
			run: func() error {
				_, err := service.SimulateSupplyShortage(SupplyShortageParams{
					SupplyDropPct: DefaultSupplyDropPct,
				})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()

			// Sem SKU a linha de base seria a média do dataset inteiro,
			// então a simulação rejeita o parâmetro ausente
			require.Error(t, err)
			assert.True(t, domain.IsInvalidParameter(err))
		})
	}
}

func TestService_SKUDesconhecido(t *testing.T) {
	service := NewService(baselineDataset(t))

	tests := []struct {
		name string
		run  func() error
	}{
		{
			name: "Promoção",
			run: func() error {
				_, err := service.SimulatePromo(PromoParams{SKUID: "SKU404"})
				return err
			},
		},
		{
			name: "Mudança de preço",
			run: func() error {
				_, err := service.SimulatePriceChange(PriceChangeParams{SKUID: "SKU404"})
				return err
			},
		},
		{
			name: "Ruptura de abastecimento",
			run: func() error {
				_, err := service.SimulateSupplyShortage(SupplyShortageParams{SKUID: "SKU404"})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()

			require.Error(t, err)
			assert.True(t, domain.IsEmptyResult(err))
		})
	}
}
