// Package scheduler contém os serviços de agendamento de varreduras analíticas
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cpg-decision-api/infrastructure/dataset"
	"github.com/vfg2006/cpg-decision-api/internal/config"
	"github.com/vfg2006/cpg-decision-api/internal/domain"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/detecting"
)

type AnomalyDigestConfig struct {
	CronSchedule string
	Enabled      bool
	Window       int
	ZThreshold   float64
}

// AnomalyDigestService varre periodicamente todos os pares (sku, loja) do
// dataset com o detector de anomalias e registra um resumo das severidades
// média e alta. Serve como alerta operacional; nenhum estado é persistido.
type AnomalyDigestService struct {
	scheduler           *gocron.Scheduler
	detector            detecting.Detector
	data                *dataset.Dataset
	config              AnomalyDigestConfig
	sweepRunning        bool
	sweepMutex          sync.Mutex
	lastSweepStartedAt  time.Time
	lastSweepFinishedAt time.Time
}

func NewAnomalyDigestService(
	detector detecting.Detector,
	data *dataset.Dataset,
	cfg *config.Config,
) *AnomalyDigestService {
	digestConfig := AnomalyDigestConfig{
		CronSchedule: cfg.AnomalyDigest.CronSchedule,
		Enabled:      cfg.AnomalyDigest.Enabled,
		Window:       cfg.AnomalyDigest.Window,
		ZThreshold:   cfg.AnomalyDigest.ZThreshold,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": digestConfig.CronSchedule,
	}).Info("Configuração do agendador de resumo de anomalias carregada")

	return &AnomalyDigestService{
		scheduler: scheduler,
		detector:  detector,
		data:      data,
		config:    digestConfig,
	}
}

func (s *AnomalyDigestService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de resumo de anomalias desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de resumo de anomalias")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunDigest(); err != nil {
			logrus.WithError(err).Error("Erro na varredura de anomalias")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar a varredura de anomalias: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de resumo de anomalias")
		s.scheduler.Stop()
	}()

	return nil
}

// RunDigest executa uma varredura completa do dataset.
// Pares com poucas observações para preencher a janela produzem zero
// anomalias e ficam fora do resumo.
func (s *AnomalyDigestService) RunDigest() error {
	s.sweepMutex.Lock()
	defer s.sweepMutex.Unlock()

	if s.sweepRunning {
		logrus.Warn("Varredura de anomalias já está em execução")
		return nil
	}

	s.sweepRunning = true
	s.lastSweepStartedAt = time.Now()
	defer func() {
		s.sweepRunning = false
		s.lastSweepFinishedAt = time.Now()
	}()

	logrus.Info("Iniciando varredura de anomalias")

	flagged := 0

	for _, pair := range s.data.SKUStorePairs() {
		report, err := s.detector.Detect(detecting.DetectParams{
			SKUID:      pair[0],
			StoreID:    pair[1],
			Window:     s.config.Window,
			ZThreshold: s.config.ZThreshold,
		})
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"sku_id":   pair[0],
				"store_id": pair[1],
			}).Error("Erro ao detectar anomalias na varredura")
			continue
		}

		if report.Severity == domain.SeverityLow {
			continue
		}

		flagged++
		logrus.WithFields(logrus.Fields{
			"sku_id":        pair[0],
			"store_id":      pair[1],
			"anomaly_count": report.AnomalyCount,
			"severity":      report.Severity,
		}).Warn("Anomalias de venda detectadas na varredura agendada")
	}

	logrus.WithField("flagged_pairs", flagged).Info("Varredura de anomalias concluída")

	return nil
}
