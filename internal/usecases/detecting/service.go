package detecting

import (
	"fmt"
	"math"
	"sort"

	"github.com/vfg2006/cpg-decision-api/infrastructure/dataset"
	"github.com/vfg2006/cpg-decision-api/internal/domain"
	"github.com/vfg2006/cpg-decision-api/pkg/log"
)

// Valores padrão da detecção
const (
	DefaultWindow     = 7
	DefaultZThreshold = 2.0
)

// DetectParams são os filtros e parâmetros da detecção de anomalias.
type DetectParams struct {
	SKUID      string  `mapstructure:"sku_id"`
	StoreID    string  `mapstructure:"store_id"`
	Window     int     `mapstructure:"window"`
	ZThreshold float64 `mapstructure:"z_threshold"`
}

// Detector define a interface da detecção de anomalias de vendas
type Detector interface {
	Detect(params DetectParams) (*domain.AnomalyReport, error)
}

type Service struct {
	data *dataset.Dataset
}

// NewService cria o serviço de detecção de anomalias sobre o dataset carregado
func NewService(data *dataset.Dataset) Detector {
	return &Service{data: data}
}

// Detect calcula média e desvio padrão móveis de units_sold sobre as `window`
// observações anteriores a cada linha e marca como anômala toda linha cujo
// z-score excede o limiar em módulo.
//
// Linhas sem histórico suficiente não produzem score: é o aquecimento esperado
// da janela, não um erro. Linhas com desvio padrão móvel zero têm z-score
// indefinido e são excluídas do conjunto de anomalias; nenhuma divisão por
// zero acontece e nenhum infinito vaza para o resultado.
func (s *Service) Detect(params DetectParams) (*domain.AnomalyReport, error) {
	if params.Window < 1 {
		return nil, domain.NewAnalysisError(
			domain.ErrInvalidParameter,
			string(domain.ToolAnomalyDetection),
			fmt.Sprintf("janela deve ser positiva, recebido %d", params.Window),
		)
	}

	if params.ZThreshold <= 0 {
		return nil, domain.NewAnalysisError(
			domain.ErrInvalidParameter,
			string(domain.ToolAnomalyDetection),
			fmt.Sprintf("limiar de z-score deve ser positivo, recebido %v", params.ZThreshold),
		)
	}

	rows := s.data.Filter(dataset.Filter{
		SKUID:   params.SKUID,
		StoreID: params.StoreID,
	})

	if len(rows) == 0 {
		return nil, domain.NewAnalysisError(
			domain.ErrEmptyResult,
			string(domain.ToolAnomalyDetection),
			"nenhum registro de venda satisfaz os filtros informados",
		)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	anomalies := make([]domain.AnomalyRecord, 0)

	for i := params.Window; i < len(rows); i++ {
		mean, std := rollingStats(rows[i-params.Window : i])

		// Desvio zero: z-score indefinido, linha fora do conjunto
		if std == 0 {
			continue
		}

		zScore := (rows[i].UnitsSold - mean) / std
		if math.Abs(zScore) > params.ZThreshold {
			anomalies = append(anomalies, domain.AnomalyRecord{
				Date:      rows[i].Date,
				StoreID:   rows[i].StoreID,
				SKUID:     rows[i].SKUID,
				UnitsSold: rows[i].UnitsSold,
				ZScore:    zScore,
			})
		}
	}

	report := &domain.AnomalyReport{
		Anomalies:    anomalies,
		AnomalyCount: len(anomalies),
		Severity:     classifySeverity(len(anomalies)),
	}

	log.L.WithFields(log.Fields{
		"sku_id":        params.SKUID,
		"store_id":      params.StoreID,
		"window":        params.Window,
		"anomaly_count": report.AnomalyCount,
		"severity":      report.Severity,
	}).Debug("Detecção de anomalias concluída")

	return report, nil
}

// rollingStats calcula média e desvio padrão amostral da janela
func rollingStats(window []domain.SalesRecord) (float64, float64) {
	var sum float64
	for _, row := range window {
		sum += row.UnitsSold
	}
	mean := sum / float64(len(window))

	if len(window) < 2 {
		return mean, 0
	}

	var squares float64
	for _, row := range window {
		diff := row.UnitsSold - mean
		squares += diff * diff
	}

	return mean, math.Sqrt(squares / float64(len(window)-1))
}

// classifySeverity classifica pela quantidade de anomalias: 0 baixa,
// até 2 média, 3 ou mais alta. Limiares fixos de projeto.
func classifySeverity(count int) string {
	switch {
	case count == 0:
		return domain.SeverityLow
	case count <= 2:
		return domain.SeverityMedium
	default:
		return domain.SeverityHigh
	}
}
