package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cpg-decision-api/infrastructure/database/postgres"
	"github.com/vfg2006/cpg-decision-api/infrastructure/dataset"
	"github.com/vfg2006/cpg-decision-api/infrastructure/integrator/llm"
	"github.com/vfg2006/cpg-decision-api/internal/api"
	"github.com/vfg2006/cpg-decision-api/internal/config"
	"github.com/vfg2006/cpg-decision-api/internal/scheduler"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/advising"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/authenticating"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/detecting"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/simulating"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/tooling"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/trending"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Carrega o dataset de vendas uma única vez; tudo lê desta tabela imutável
	data, err := loadDataset(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar o dataset de vendas")
	}

	logrus.WithFields(logrus.Fields{
		"source":  data.SourceName(),
		"records": data.Len(),
	}).Info("Dataset de vendas carregado")

	analyzer := trending.NewService(data)
	detector := detecting.NewService(data)
	simulator := simulating.NewService(data)

	registry := tooling.NewRegistry(analyzer, detector, simulator)

	completer, err := llm.NewFromConfig(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao criar o cliente de LLM")
	}

	advisor := advising.NewService(registry, completer, data)
	authenticator := authenticating.NewService(cfg)

	// Inicializa o agendador de varredura de anomalias
	anomalyDigestService := scheduler.NewAnomalyDigestService(detector, data, cfg)
	if err := anomalyDigestService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de resumo de anomalias")
	} else {
		logrus.Info("Agendador de resumo de anomalias iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		data,
		analyzer,
		detector,
		simulator,
		advisor,
		authenticator,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// loadDataset materializa o dataset a partir da fonte configurada
func loadDataset(ctx context.Context, cfg *config.Config) (*dataset.Dataset, error) {
	if cfg.Dataset.Kind == "postgres" {
		conn, err := postgres.NewConnection(ctx, cfg.Dataset)
		if err != nil {
			return nil, err
		}
		defer conn.Close()

		return dataset.New(ctx, dataset.NewPostgresSource(conn, cfg.Dataset.Table))
	}

	return dataset.New(ctx, dataset.NewCSVSource(cfg.Dataset.CSVPath))
}
