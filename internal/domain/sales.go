package domain

import "time"

// SalesRecord representa uma linha do dataset de vendas.
// O dataset é carregado uma única vez e tratado como somente leitura
// durante toda a vida do processo.
type SalesRecord struct {
	Date      time.Time `json:"date"`
	StoreID   string    `json:"store_id"`
	SKUID     string    `json:"sku_id"`
	UnitsSold float64   `json:"units_sold"`
	Price     float64   `json:"price"`
	Revenue   float64   `json:"revenue"`
}

// TimeSeriesBucket agrega unidades e receita por período (semana ISO ou mês).
type TimeSeriesBucket struct {
	Period    string  `json:"period"`
	UnitsSold float64 `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}

// DataCoverage resume a cobertura dos dados usados em uma análise.
type DataCoverage struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	NumRecords int    `json:"num_records"`
	NumPeriods int    `json:"num_periods"`
}

// Granularidades de agregação suportadas pela análise de tendência
const (
	GranularityWeekly  = "weekly"
	GranularityMonthly = "monthly"
)

// Classificações de tendência
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendFlat       = "flat"
)

// TrendReport é o resultado da análise de tendência de vendas.
type TrendReport struct {
	TimeSeries    []TimeSeriesBucket `json:"time_series"`
	OverallTrend  string             `json:"overall_trend"`
	GrowthRatePct float64            `json:"growth_rate_pct"`
	PeakPeriod    string             `json:"peak_period"`
	LowestPeriod  string             `json:"lowest_period"`
	DataCoverage  DataCoverage       `json:"data_coverage"`
}

// AnomalyRecord é uma observação marcada como anômala pelo detector.
type AnomalyRecord struct {
	Date      time.Time `json:"date"`
	StoreID   string    `json:"store_id"`
	SKUID     string    `json:"sku_id"`
	UnitsSold float64   `json:"units_sold"`
	ZScore    float64   `json:"z_score"`
}

// Níveis de severidade por quantidade de anomalias detectadas
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// AnomalyReport é o resultado de uma chamada de detecção de anomalias.
// Uma lista vazia de anomalias é um resultado válido, não um erro.
type AnomalyReport struct {
	Anomalies    []AnomalyRecord `json:"anomalies"`
	AnomalyCount int             `json:"anomaly_count"`
	Severity     string          `json:"severity"`
}
