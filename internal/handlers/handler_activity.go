package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/caseledger/caseledger/internal/core/ports/services"
	"github.com/caseledger/caseledger/internal/dto"
	"github.com/caseledger/caseledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// activityHandler handles HTTP requests for the audit trail.
type activityHandler struct {
	activityService portssvc.ActivitySvcFacade
}

// newActivityHandler creates a new activityHandler.
func newActivityHandler(activityService portssvc.ActivitySvcFacade) *activityHandler {
	return &activityHandler{
		activityService: activityService,
	}
}

// registerActivityRoutes registers all audit-trail routes.
func registerActivityRoutes(rg *gin.RouterGroup, activityService portssvc.ActivitySvcFacade) {
	h := newActivityHandler(activityService)

	rg.GET("/activities/:entityType/:entityID", h.listActivities)
}

// listActivities godoc
// @Summary List audit records for an entity
// @Description Retrieves audit records for an entity, newest first
// @Tags activities
// @Produce  json
// @Param   entityType path string true "Entity type (invoice, payment, ...)"
// @Param   entityID path string true "Entity ID"
// @Param   limit query int false "Maximum records" default(50)
// @Success 200 {array} dto.ActivityResponse
// @Failure 500 {object} map[string]string "Failed to list activities"
// @Router /activities/{entityType}/{entityID} [get]
func (h *activityHandler) listActivities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityType := c.Param("entityType")
	entityID := c.Param("entityID")

	params := dto.ListActivitiesParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for ListActivities", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	activities, err := h.activityService.ListActivities(c.Request.Context(), entityType, entityID, params.Limit)
	if err != nil {
		logger.Error("Failed to list activities from service", slog.String("error", err.Error()), slog.String("entity_type", entityType), slog.String("entity_id", entityID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list activities"})
		return
	}

	c.JSON(http.StatusOK, dto.ToActivityResponses(activities))
}
