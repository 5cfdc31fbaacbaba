package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/application/agent"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/application/usecase"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/port"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/service"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/infrastructure/adapter"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/infrastructure/config"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/infrastructure/letter"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/infrastructure/messaging"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/infrastructure/metrics"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/infrastructure/persistence/memory"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/infrastructure/provider"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/presentation/rest"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/pkg/auth"
	pkgkafka "github.com/PrafulK99/CodeRed-LoanOps-AI/pkg/kafka"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/pkg/observability"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Service: cfg.ServiceName,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	logger.Info("starting loanops orchestrator",
		"http_port", cfg.HTTPPort,
		"underwriting_policy", cfg.UnderwritingPolicy,
	)

	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Warn("failed to initialize metrics exporter, continuing without /metrics", "error", err)
	}
	workflow := metrics.NewWorkflow()

	// Repositories. The demo keeps all workflow state in memory.
	sessions := memory.NewSessionRepository()
	applications := memory.NewApplicationRepository()
	users := memory.NewUserRepository()

	// Event publisher: Kafka when brokers are configured, the log otherwise.
	var publisher port.EventPublisher = messaging.NewLogPublisher(logger)
	if kafkaCfg := (pkgkafka.Config{Brokers: cfg.KafkaBrokers}); kafkaCfg.Enabled() {
		producer := pkgkafka.NewProducer(kafkaCfg)
		defer producer.Close() //nolint:errcheck
		publisher = messaging.NewKafkaPublisher(producer, "", logger)
		logger.Info("publishing events to kafka", "brokers", cfg.KafkaBrokers)
	}
	publisher = metrics.NewEventCounter(publisher, workflow)

	// External collaborators, all with local fallbacks.
	panVerifier := provider.NewPANVerifier(provider.PANVerifierConfig{
		BaseURL:         cfg.PANBaseURL,
		ClientID:        cfg.PANClientID,
		ClientSecret:    cfg.PANClientSecret,
		ProductInstance: cfg.PANProductInstance,
		Timeout:         cfg.PANRequestTimeout,
	}, logger)
	explainer := provider.NewExplainer(provider.ExplainerConfig{
		BaseURL: cfg.ExplainerBaseURL,
		APIKey:  cfg.ExplainerAPIKey,
		Timeout: cfg.ExplainerTimeout,
	}, logger)
	letters := letter.NewRenderer(cfg.LetterDir)

	gate := service.NewGate(panVerifier, logger)

	terms := agent.Defaults{
		TenureMonths:      cfg.DefaultTenureMonths,
		AnnualRatePercent: cfg.DefaultInterestRate,
	}
	var underwriting agent.Agent
	if cfg.UnderwritingPolicy == "tiered" {
		engine := service.NewTieredEngine(adapter.NewStubCreditBureau(), adapter.NewStubOfferMart())
		underwriting = agent.NewTieredUnderwriting(engine, terms, logger, nil)
	} else {
		underwriting = agent.NewUnderwriting(terms, logger, nil)
	}

	chatUC := usecase.NewProcessMessage(sessions, applications, publisher, usecase.Agents{
		Sales:        agent.NewSales(),
		Verification: agent.NewVerification(gate, logger, nil),
		Underwriting: underwriting,
		Sanction:     agent.NewSanction(letters, explainer, logger),
	}, logger, nil)
	verifyUC := usecase.NewSubmitVerification(sessions, publisher, gate, logger, nil)

	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		Expiration: cfg.JWTExpiration,
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	handler := rest.NewHandler(
		chatUC,
		verifyUC,
		usecase.NewSessionAdmin(sessions, logger),
		usecase.NewApplications(applications),
		usecase.NewAuthenticate(users, jwtSvc, logger, nil),
		workflow,
		logger,
	)
	router := rest.NewRouter(handler, jwtSvc, metricsHandler, cfg.ServiceName, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("loanops orchestrator stopped")
}
