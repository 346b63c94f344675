package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wms-platform/delivery-planner/internal/application"
	"github.com/wms-platform/delivery-planner/internal/domain"
	"github.com/wms-platform/delivery-planner/internal/infrastructure/events"
	"github.com/wms-platform/delivery-planner/internal/infrastructure/invoicing"
	"github.com/wms-platform/delivery-planner/pkg/cloudevents"
	"github.com/wms-platform/delivery-planner/pkg/kafka"
	"github.com/wms-platform/delivery-planner/pkg/logging"
	"github.com/wms-platform/delivery-planner/pkg/metrics"
	"github.com/wms-platform/delivery-planner/pkg/tracing"
)

const serviceName = "delivery-planner"

func main() {
	config, err := loadConfig()

	logConfig := logging.DefaultConfig(serviceName)
	if config != nil {
		logConfig.Level = logging.ParseLevel(config.LogLevel)
		logConfig.Environment = config.Environment
	}
	logger := logging.New(logConfig)
	logger.SetDefault()

	if err != nil {
		logger.WithError(err).Error("Invalid configuration")
		os.Exit(1)
	}

	logger.Info("Starting delivery-planner API")
	gin.SetMode(gin.ReleaseMode)
	ctx := context.Background()

	// Initialize OpenTelemetry tracing
	tracingConfig := tracing.DefaultConfig(serviceName)
	tracingConfig.Enabled = config.Tracing.Enabled
	tracingConfig.OTLPEndpoint = config.Tracing.Endpoint
	tracingConfig.SampleRate = config.Tracing.SampleRate
	tracingConfig.Environment = config.Environment

	tracerProvider, err := tracing.Initialize(ctx, tracingConfig)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize tracing")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Error("Failed to shutdown tracer")
			}
		}()
		if config.Tracing.Enabled {
			logger.Info("Tracing initialized", "endpoint", config.Tracing.Endpoint)
		}
	}

	m := metrics.New(metrics.DefaultConfig(serviceName))

	var publisher domain.EventPublisher = events.NoopPublisher{}
	if config.Events.Enabled {
		producer := kafka.NewInstrumentedProducer(kafka.NewProducer(config.kafkaConfig()), m, logger)
		defer producer.Close()
		publisher = events.NewEventPublisher(
			producer,
			cloudevents.NewEventFactory(cloudevents.SourceDeliveryPlanner),
			config.Events.Topic,
		)
		logger.Info("Assignment events enabled", "brokers", config.Events.Brokers, "topic", config.Events.Topic)
	}

	client := invoicing.NewClient(config.invoicingConfig(), m, logger)
	if config.Invoicing.Secret == "" || config.Invoicing.UserKey == "" {
		logger.Warn("Invoicing credentials are not set, provider calls will be rejected")
	}

	service := application.NewPlannerService(client, client, publisher, m, logger, domain.SummaryGrouping(config.SummaryGroupBy))

	router, err := newRouter(service, m, logger, config.CORSOrigins)
	if err != nil {
		logger.WithError(err).Error("Failed to build router")
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         config.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: config.LoadTimeout + 10*time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("Server error")
			os.Exit(1)
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	// /ready reports not ready until the initial load finishes
	go func() {
		loadCtx, cancel := context.WithTimeout(ctx, config.LoadTimeout)
		defer cancel()
		result := service.Load(loadCtx)
		logger.Info("Initial load finished",
			"products", result.Products,
			"orders", result.Orders,
			"degraded", result.Degraded(),
		)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
}
