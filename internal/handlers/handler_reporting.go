package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/caseledger/caseledger/internal/apperrors"
	portssvc "github.com/caseledger/caseledger/internal/core/ports/services"
	"github.com/caseledger/caseledger/internal/dto"
	"github.com/caseledger/caseledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for the analytics dashboard.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: reportingService,
	}
}

// registerReportingRoutes registers all reporting-related routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	rg.GET("/reports/dashboard", h.getDashboard)
}

// getDashboard godoc
// @Summary Get dashboard metrics
// @Description Computes revenue, outstanding, collection and aging metrics for the requested reporting period
// @Tags reports
// @Produce  json
// @Param   period query string false "Reporting period (month, quarter, year)" default(month)
// @Success 200 {object} dto.DashboardMetricsResponse
// @Failure 400 {object} map[string]string "Unknown reporting period"
// @Failure 500 {object} map[string]string "Failed to compute dashboard metrics"
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.DashboardMetricsParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for GetDashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	metrics, err := h.reportingService.DashboardMetrics(c.Request.Context(), params.Period)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Unknown reporting period", slog.String("period", string(params.Period)))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute dashboard metrics", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard metrics"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardMetricsResponse(metrics))
}
