package tooling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cpg-decision-api/infrastructure/dataset"
	"github.com/vfg2006/cpg-decision-api/internal/domain"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/detecting"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/simulating"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/trending"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	records := make([]domain.SalesRecord, 0, 12)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 12; i++ {
		records = append(records, domain.SalesRecord{
			Date:      start.AddDate(0, 0, i*7),
			SKUID:     "SKU001",
			StoreID:   "ST01",
			UnitsSold: float64(100 + i),
			Price:     10,
			Revenue:   float64(100+i) * 10,
		})
	}

	data, err := dataset.NewFromRecords(records)
	require.NoError(t, err)

	return NewRegistry(
		trending.NewService(data),
		detecting.NewService(data),
		simulating.NewService(data),
	)
}

func TestRegistry_Invoke(t *testing.T) {
	registry := newTestRegistry(t)

	tests := []struct {
		name     string
		tool     domain.ToolName
		args     map[string]any
		validate func(t *testing.T, result any)
	}{
		{
			name: "Análise de tendência sem argumentos usa granularidade mensal",
			tool: domain.ToolTrendAnalysis,
			args: map[string]any{},
			validate: func(t *testing.T, result any) {
				report, ok := result.(*domain.TrendReport)
				require.True(t, ok)
				assert.Equal(t, "2024-01", report.TimeSeries[0].Period)
			},
		},
		{
			name: "Análise de tendência com granularidade semanal",
			tool: domain.ToolTrendAnalysis,
			args: map[string]any{"granularity": "weekly"},
			validate: func(t *testing.T, result any) {
				report, ok := result.(*domain.TrendReport)
				require.True(t, ok)
				assert.Equal(t, "2024-W01", report.TimeSeries[0].Period)
			},
		},
		{
			name: "Datas em texto são decodificadas no filtro",
			tool: domain.ToolTrendAnalysis,
			args: map[string]any{
				"start_date": "2024-02-01",
				"end_date":   "2024-02-29",
			},
			validate: func(t *testing.T, result any) {
				report, ok := result.(*domain.TrendReport)
				require.True(t, ok)
				assert.Equal(t, 1, report.DataCoverage.NumPeriods)
			},
		},
		{
			name: "Detecção de anomalias sem argumentos usa janela e limiar padrão",
			tool: domain.ToolAnomalyDetection,
			args: map[string]any{"sku_id": "SKU001"},
			validate: func(t *testing.T, result any) {
				report, ok := result.(*domain.AnomalyReport)
				require.True(t, ok)
				assert.Equal(t, 0, report.AnomalyCount)
			},
		},
		{
			name: "Simulação de promoção com premissas padrão",
			tool: domain.ToolPromoSimulation,
			args: map[string]any{"sku_id": "SKU001"},
			validate: func(t *testing.T, result any) {
				promo, ok := result.(*domain.PromoResult)
				require.True(t, ok)
				assert.Equal(t, simulating.DefaultDiscountPct, promo.Assumptions.DiscountPct)
				assert.Equal(t, simulating.DefaultExpectedLiftPct, promo.Assumptions.ExpectedLiftPct)
			},
		},
		{
			name: "Simulação de promoção com desconto sobrescrito",
			tool: domain.ToolPromoSimulation,
			args: map[string]any{"sku_id": "SKU001", "discount_pct": 10.0},
			validate: func(t *testing.T, result any) {
				promo, ok := result.(*domain.PromoResult)
				require.True(t, ok)
				assert.Equal(t, 10.0, promo.Assumptions.DiscountPct)
				assert.Equal(t, simulating.DefaultExpectedLiftPct, promo.Assumptions.ExpectedLiftPct)
			},
		},
		{
			name: "Simulação de mudança de preço com elasticidade padrão",
			tool: domain.ToolPriceChangeSimulation,
			args: map[string]any{"sku_id": "SKU001"},
			validate: func(t *testing.T, result any) {
				change, ok := result.(*domain.PriceChangeResult)
				require.True(t, ok)
				assert.Equal(t, simulating.DefaultDemandElasticity, change.Assumptions.DemandElasticity)
			},
		},
		{
			name: "Simulação de ruptura com queda padrão",
			tool: domain.ToolSupplyShortageSimulation,
			args: map[string]any{"sku_id": "SKU001"},
			validate: func(t *testing.T, result any) {
				shortage, ok := result.(*domain.SupplyShortageResult)
				require.True(t, ok)
				assert.Equal(t, simulating.DefaultSupplyDropPct, shortage.Assumptions.SupplyDropPct)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := registry.Invoke(tt.tool, tt.args)

			require.NoError(t, err)
			tt.validate(t, result)
		})
	}
}

func TestRegistry_Invoke_Erros(t *testing.T) {
	registry := newTestRegistry(t)

	tests := []struct {
		name string
		tool domain.ToolName
		args map[string]any
	}{
		{
			name: "Ferramenta desconhecida",
			tool: domain.ToolName("forecast"),
			args: map[string]any{},
		},
		{
			name: "Parâmetro fora do contrato da ferramenta",
			tool: domain.ToolTrendAnalysis,
			args: map[string]any{"window": 7},
		},
		{
			name: "Filtro de loja não existe na simulação de preço",
			tool: domain.ToolPriceChangeSimulation,
			args: map[string]any{"sku_id": "SKU001", "store_id": "ST01"},
		},
		{
			name: "Tipo incompatível com o registro",
			tool: domain.ToolAnomalyDetection,
			args: map[string]any{"window": "muitos"},
		},
		{
			name: "Simulação de promoção sem SKU",
			tool: domain.ToolPromoSimulation,
			args: map[string]any{},
		},
		{
			name: "Simulação de mudança de preço sem SKU",
			tool: domain.ToolPriceChangeSimulation,
			args: map[string]any{},
		},
		{
			name: "Simulação de ruptura sem SKU",
			tool: domain.ToolSupplyShortageSimulation,
			args: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := registry.Invoke(tt.tool, tt.args)

			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, domain.IsInvalidParameter(err))
		})
	}
}

func TestRegistry_Invoke_SimulacaoNaoAgregaDatasetInteiro(t *testing.T) {
	// Dois SKUs com volumes muito diferentes: sem o SKU obrigatório a
	// simulação teria devolvido a média global (500) como linha de base
	data, err := dataset.NewFromRecords([]domain.SalesRecord{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), SKUID: "SKU001", StoreID: "ST01", UnitsSold: 100, Price: 10, Revenue: 1000},
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), SKUID: "SKU002", StoreID: "ST01", UnitsSold: 900, Price: 10, Revenue: 9000},
	})
	require.NoError(t, err)

	registry := NewRegistry(
		trending.NewService(data),
		detecting.NewService(data),
		simulating.NewService(data),
	)

	result, err := registry.Invoke(domain.ToolPromoSimulation, map[string]any{})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, domain.IsInvalidParameter(err))
}

func TestRegistry_Describe(t *testing.T) {
	registry := newTestRegistry(t)

	descriptions := registry.Describe()

	require.Len(t, descriptions, 5)
	assert.Equal(t, domain.ToolTrendAnalysis, descriptions[0].Name)
	assert.Equal(t, domain.ToolAnomalyDetection, descriptions[1].Name)
	assert.Equal(t, domain.ToolPromoSimulation, descriptions[2].Name)
	assert.Equal(t, domain.ToolPriceChangeSimulation, descriptions[3].Name)
	assert.Equal(t, domain.ToolSupplyShortageSimulation, descriptions[4].Name)

	for _, description := range descriptions {
		assert.NotEmpty(t, description.Description)
	}
}
