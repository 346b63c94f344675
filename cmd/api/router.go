package main

import (
	"github.com/gin-gonic/gin"

	"github.com/wms-platform/delivery-planner/internal/api/dto"
	"github.com/wms-platform/delivery-planner/internal/application"
	"github.com/wms-platform/delivery-planner/pkg/logging"
	"github.com/wms-platform/delivery-planner/pkg/metrics"
	"github.com/wms-platform/delivery-planner/pkg/middleware"
)

func newRouter(service *application.PlannerService, m *metrics.Metrics, logger *logging.Logger, corsOrigins []string) (*gin.Engine, error) {
	router := gin.New()

	middlewareConfig := middleware.DefaultConfig(serviceName, logger.Logger)
	middlewareConfig.AllowedOrigins = corsOrigins
	middleware.Setup(router, middlewareConfig)

	if err := middleware.RegisterCustomValidation(dto.DeliveryDayTag, dto.ValidateDeliveryDay, dto.DeliveryDayMessage); err != nil {
		return nil, err
	}

	router.Use(middleware.MetricsMiddleware(m))
	router.Use(middleware.SimpleTracingMiddleware(serviceName))

	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, service.Ready))
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	api := router.Group("/api/v1")
	{
		api.GET("/delivery-days", listDeliveryDaysHandler(service))
		api.GET("/products", listProductsHandler(service))
		api.POST("/reload", reloadHandler(service, logger))

		orders := api.Group("/orders")
		{
			orders.GET("", listOrdersHandler(service))
			orders.GET("/:orderId", getOrderHandler(service, logger))
			orders.PUT("/:orderId/delivery-day", assignDeliveryDayHandler(service, logger))
		}

		reports := api.Group("/reports")
		{
			reports.POST("/summary", summaryReportHandler(service, logger))
			reports.POST("/detailed", detailedReportHandler(service, logger))
		}

		selection := api.Group("/selection")
		{
			selection.GET("", getSelectionHandler(service))
			selection.DELETE("", dismissSelectionHandler(service))
			selection.POST("/orders/:orderId", viewOrderHandler(service, logger))
		}
	}

	return router, nil
}
