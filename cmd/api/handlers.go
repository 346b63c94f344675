package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wms-platform/delivery-planner/internal/api/dto"
	"github.com/wms-platform/delivery-planner/internal/application"
	"github.com/wms-platform/delivery-planner/pkg/api"
	"github.com/wms-platform/delivery-planner/pkg/logging"
	"github.com/wms-platform/delivery-planner/pkg/middleware"
)

func listDeliveryDaysHandler(service *application.PlannerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewListResponse(service.DeliveryDays()))
	}
}

func listProductsHandler(service *application.PlannerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := api.ParseFilter(c)
		products := make([]application.ProductDTO, 0)
		for _, p := range service.Products() {
			if filter.Matches(p.SKU, p.Name) {
				products = append(products, p)
			}
		}
		c.JSON(http.StatusOK, api.Paginate(products, api.ParsePagination(c)))
	}
}

func listOrdersHandler(service *application.PlannerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewListResponse(service.ListOrders()))
	}
}

func getOrderHandler(service *application.PlannerService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		orderID := c.Param("orderId")
		middleware.AddSpanAttributes(c, map[string]interface{}{
			"order.id": orderID,
		})

		order, err := service.GetOrder(orderID)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

func assignDeliveryDayHandler(service *application.PlannerService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		orderID := c.Param("orderId")

		var req dto.AssignDeliveryDayRequest
		if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"order.id":     orderID,
			"delivery.day": req.Day,
		})

		result, err := service.AssignDeliveryDay(c.Request.Context(), application.AssignDeliveryDayCommand{
			OrderID: orderID,
			Day:     req.Day,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func summaryReportHandler(service *application.PlannerService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req dto.ReportRequest
		if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"report.type":  "summary",
			"delivery.day": req.Day,
		})

		report, err := service.SummaryReport(c.Request.Context(), application.ReportQuery{Day: req.Day, GroupBy: req.GroupBy})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, report)
	}
}

func detailedReportHandler(service *application.PlannerService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req dto.ReportRequest
		if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		middleware.AddSpanAttributes(c, map[string]interface{}{
			"report.type":  "detailed",
			"delivery.day": req.Day,
		})

		report, err := service.DetailedReport(c.Request.Context(), application.ReportQuery{Day: req.Day})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, report)
	}
}

func viewOrderHandler(service *application.PlannerService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		if _, err := service.ViewOrder(c.Param("orderId")); err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, service.CurrentSelection())
	}
}

func getSelectionHandler(service *application.PlannerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, service.CurrentSelection())
	}
}

func dismissSelectionHandler(service *application.PlannerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		service.DismissSelection()
		c.Status(http.StatusNoContent)
	}
}

func reloadHandler(service *application.PlannerService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		result, err := service.Reload(c.Request.Context())
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
