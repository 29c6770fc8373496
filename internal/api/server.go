package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cpg-decision-api/infrastructure/dataset"
	"github.com/vfg2006/cpg-decision-api/internal/api/handler"
	"github.com/vfg2006/cpg-decision-api/internal/api/handler/router"
	"github.com/vfg2006/cpg-decision-api/internal/config"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/advising"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/authenticating"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/detecting"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/simulating"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/trending"
	"github.com/vfg2006/cpg-decision-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	data *dataset.Dataset,
	analyzer trending.Analyzer,
	detector detecting.Detector,
	simulator simulating.Simulator,
	advisor advising.Advisor,
	authenticator authenticating.Authenticator,
) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.Dataset(data)...),
		router.WithRoutes(handler.Tools(analyzer, detector, simulator)...),
		router.WithRoutes(handler.Routing()...),
		router.WithRoutes(handler.Advising(advisor)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logrus.Info("Encerrando o servidor")
	return s.httpServer.Shutdown(shutdownCtx)
}
