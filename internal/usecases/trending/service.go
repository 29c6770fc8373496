package trending

import (
	"fmt"
	"sort"
	"time"

	"github.com/vfg2006/cpg-decision-api/infrastructure/dataset"
	"github.com/vfg2006/cpg-decision-api/internal/domain"
	"github.com/vfg2006/cpg-decision-api/pkg/log"
	"github.com/vfg2006/cpg-decision-api/pkg/utils"
)

// Limiares fixos de classificação de tendência, em pontos percentuais
const (
	increasingThresholdPct = 5.0
	decreasingThresholdPct = -5.0
)

// AnalyzeParams são os filtros e a granularidade da análise de tendência.
// Campos zerados significam ausência de restrição.
type AnalyzeParams struct {
	SKUID       string     `mapstructure:"sku_id"`
	StoreID     string     `mapstructure:"store_id"`
	StartDate   *time.Time `mapstructure:"start_date"`
	EndDate     *time.Time `mapstructure:"end_date"`
	Granularity string     `mapstructure:"granularity"`
}

// Analyzer define a interface da análise de tendência de vendas
type Analyzer interface {
	Analyze(params AnalyzeParams) (*domain.TrendReport, error)
}

type Service struct {
	data *dataset.Dataset
}

// NewService cria o serviço de análise de tendência sobre o dataset carregado
func NewService(data *dataset.Dataset) Analyzer {
	return &Service{data: data}
}

// Analyze agrega as vendas filtradas em períodos semanais ou mensais e
// classifica a direção da tendência pela receita do primeiro e do último
// período.
func (s *Service) Analyze(params AnalyzeParams) (*domain.TrendReport, error) {
	if params.Granularity != domain.GranularityWeekly && params.Granularity != domain.GranularityMonthly {
		return nil, domain.NewAnalysisError(
			domain.ErrInvalidParameter,
			string(domain.ToolTrendAnalysis),
			fmt.Sprintf("granularidade não suportada: %q", params.Granularity),
		)
	}

	rows := s.data.Filter(dataset.Filter{
		SKUID:     params.SKUID,
		StoreID:   params.StoreID,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
	})

	if len(rows) == 0 {
		return nil, domain.NewAnalysisError(
			domain.ErrEmptyResult,
			string(domain.ToolTrendAnalysis),
			"nenhum registro de venda satisfaz os filtros informados",
		)
	}

	buckets := bucketize(rows, params.Granularity)

	report := &domain.TrendReport{
		TimeSeries:   buckets,
		DataCoverage: coverage(rows, len(buckets)),
	}

	report.OverallTrend, report.GrowthRatePct = classifyTrend(buckets)
	report.PeakPeriod, report.LowestPeriod = peakAndLowest(buckets)

	log.L.WithFields(log.Fields{
		"sku_id":      params.SKUID,
		"store_id":    params.StoreID,
		"granularity": params.Granularity,
		"num_periods": len(buckets),
		"trend":       report.OverallTrend,
	}).Debug("Análise de tendência concluída")

	return report, nil
}

// bucketize soma unidades e receita por período, em ordem crescente de período
func bucketize(rows []domain.SalesRecord, granularity string) []domain.TimeSeriesBucket {
	sums := make(map[string]*domain.TimeSeriesBucket)

	for _, row := range rows {
		period := periodLabel(row.Date, granularity)

		bucket, ok := sums[period]
		if !ok {
			bucket = &domain.TimeSeriesBucket{Period: period}
			sums[period] = bucket
		}

		bucket.UnitsSold += row.UnitsSold
		bucket.Revenue += row.Revenue
	}

	buckets := make([]domain.TimeSeriesBucket, 0, len(sums))
	for _, bucket := range sums {
		buckets = append(buckets, *bucket)
	}

	// Os rótulos de período são lexicograficamente ordenáveis nos dois formatos
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Period < buckets[j].Period
	})

	return buckets
}

// periodLabel rotula a data como mês calendário (2006-01) ou semana ISO (2006-W02)
func periodLabel(date time.Time, granularity string) string {
	if granularity == domain.GranularityMonthly {
		return date.Format("2006-01")
	}

	year, week := date.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// classifyTrend compara a receita do primeiro e do último período.
// Com menos de dois períodos, ou receita inicial zero, o crescimento é
// definido como 0 para evitar divisão por zero.
func classifyTrend(buckets []domain.TimeSeriesBucket) (string, float64) {
	if len(buckets) < 2 {
		return domain.TrendFlat, 0
	}

	first := buckets[0].Revenue
	last := buckets[len(buckets)-1].Revenue

	var growthRatePct float64
	if first != 0 {
		growthRatePct = (last - first) / first * 100
	}

	trend := domain.TrendFlat
	switch {
	case growthRatePct > increasingThresholdPct:
		trend = domain.TrendIncreasing
	case growthRatePct < decreasingThresholdPct:
		trend = domain.TrendDecreasing
	}

	return trend, utils.RoundWithTwoDecimalPlace(growthRatePct)
}

// peakAndLowest encontra os períodos de maior e menor receita.
// Empates ficam com a primeira ocorrência na ordem dos períodos.
func peakAndLowest(buckets []domain.TimeSeriesBucket) (string, string) {
	peak := buckets[0]
	lowest := buckets[0]

	for _, bucket := range buckets[1:] {
		if bucket.Revenue > peak.Revenue {
			peak = bucket
		}
		if bucket.Revenue < lowest.Revenue {
			lowest = bucket
		}
	}

	return peak.Period, lowest.Period
}

// coverage resume o intervalo de datas e volumes cobertos pela análise
func coverage(rows []domain.SalesRecord, numPeriods int) domain.DataCoverage {
	minDate := rows[0].Date
	maxDate := rows[0].Date

	for _, row := range rows[1:] {
		if row.Date.Before(minDate) {
			minDate = row.Date
		}
		if row.Date.After(maxDate) {
			maxDate = row.Date
		}
	}

	return domain.DataCoverage{
		StartDate:  minDate.Format(time.DateOnly),
		EndDate:    maxDate.Format(time.DateOnly),
		NumRecords: len(rows),
		NumPeriods: numPeriods,
	}
}
