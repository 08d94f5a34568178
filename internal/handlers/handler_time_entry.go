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

// timeEntryHandler handles HTTP requests related to time entries.
type timeEntryHandler struct {
	timeEntryService portssvc.TimeEntrySvcFacade
}

// newTimeEntryHandler creates a new timeEntryHandler.
func newTimeEntryHandler(timeEntryService portssvc.TimeEntrySvcFacade) *timeEntryHandler {
	return &timeEntryHandler{
		timeEntryService: timeEntryService,
	}
}

// registerTimeEntryRoutes registers all time-entry-related routes.
func registerTimeEntryRoutes(rg *gin.RouterGroup, timeEntryService portssvc.TimeEntrySvcFacade) {
	h := newTimeEntryHandler(timeEntryService)

	entries := rg.Group("/time-entries")
	{
		entries.POST("", h.recordTimeEntry)
		entries.GET("/:timeEntryID", h.getTimeEntry)
		entries.PUT("/:timeEntryID", h.updateTimeEntry)
		entries.DELETE("/:timeEntryID", h.deleteTimeEntry)
	}

	matters := rg.Group("/matters/:matterID")
	{
		matters.GET("/time-entries", h.listTimeEntries)
		matters.GET("/time-entries/unbilled", h.listUnbilled)
	}
}

// recordTimeEntry godoc
// @Summary Record a time entry
// @Description Records a new unit of work against a matter
// @Tags time-entries
// @Accept  json
// @Produce  json
// @Param   timeEntry body dto.CreateTimeEntryRequest true "Time Entry"
// @Success 201 {object} dto.TimeEntryResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to record time entry"
// @Router /time-entries [post]
func (h *timeEntryHandler) recordTimeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateTimeEntryRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for RecordTimeEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.timeEntryService.RecordTimeEntry(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error recording time entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record time entry in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record time entry"})
		}
		return
	}

	logger.Info("Time entry recorded successfully", slog.String("time_entry_id", entry.TimeEntryID))
	c.JSON(http.StatusCreated, dto.ToTimeEntryResponse(entry))
}

// getTimeEntry godoc
// @Summary Get a time entry
// @Description Retrieves a time entry by its ID
// @Tags time-entries
// @Produce  json
// @Param   timeEntryID path string true "Time Entry ID"
// @Success 200 {object} dto.TimeEntryResponse
// @Failure 404 {object} map[string]string "Time entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve time entry"
// @Router /time-entries/{timeEntryID} [get]
func (h *timeEntryHandler) getTimeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	timeEntryID := c.Param("timeEntryID")

	entry, err := h.timeEntryService.GetTimeEntryByID(c.Request.Context(), timeEntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Time entry not found", slog.String("time_entry_id", timeEntryID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Time entry not found"})
			return
		}
		logger.Error("Failed to get time entry from service", slog.String("error", err.Error()), slog.String("time_entry_id", timeEntryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve time entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

// updateTimeEntry godoc
// @Summary Update a time entry
// @Description Updates a not-yet-invoiced time entry
// @Tags time-entries
// @Accept  json
// @Produce  json
// @Param   timeEntryID path string true "Time Entry ID"
// @Param   timeEntry body dto.UpdateTimeEntryRequest true "Fields to update"
// @Success 200 {object} dto.TimeEntryResponse
// @Failure 400 {object} map[string]string "Invalid request or entry already invoiced"
// @Failure 404 {object} map[string]string "Time entry not found"
// @Failure 500 {object} map[string]string "Failed to update time entry"
// @Router /time-entries/{timeEntryID} [put]
func (h *timeEntryHandler) updateTimeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	timeEntryID := c.Param("timeEntryID")

	updateReq := dto.UpdateTimeEntryRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for UpdateTimeEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.timeEntryService.UpdateTimeEntry(c.Request.Context(), timeEntryID, updateReq, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Time entry not found for update", slog.String("time_entry_id", timeEntryID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Time entry not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating time entry", slog.String("error", err.Error()), slog.String("time_entry_id", timeEntryID))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update time entry in service", slog.String("error", err.Error()), slog.String("time_entry_id", timeEntryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update time entry"})
		}
		return
	}

	logger.Info("Time entry updated successfully", slog.String("time_entry_id", timeEntryID))
	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

// deleteTimeEntry godoc
// @Summary Delete a time entry
// @Description Deletes a not-yet-invoiced time entry
// @Tags time-entries
// @Produce  json
// @Param   timeEntryID path string true "Time Entry ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Entry already invoiced"
// @Failure 404 {object} map[string]string "Time entry not found"
// @Failure 500 {object} map[string]string "Failed to delete time entry"
// @Router /time-entries/{timeEntryID} [delete]
func (h *timeEntryHandler) deleteTimeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	timeEntryID := c.Param("timeEntryID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.timeEntryService.DeleteTimeEntry(c.Request.Context(), timeEntryID, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Time entry not found for delete", slog.String("time_entry_id", timeEntryID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Time entry not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error deleting time entry", slog.String("error", err.Error()), slog.String("time_entry_id", timeEntryID))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to delete time entry in service", slog.String("error", err.Error()), slog.String("time_entry_id", timeEntryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete time entry"})
		}
		return
	}

	logger.Info("Time entry deleted successfully", slog.String("time_entry_id", timeEntryID))
	c.Status(http.StatusNoContent)
}

// listTimeEntries godoc
// @Summary List time entries for a matter
// @Description Retrieves a paginated list of time entries for a matter, newest first
// @Tags time-entries
// @Produce  json
// @Param   matterID path string true "Matter ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListTimeEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list time entries"
// @Router /matters/{matterID}/time-entries [get]
func (h *timeEntryHandler) listTimeEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	matterID := c.Param("matterID")

	params := dto.ListTimeEntriesParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for ListTimeEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.timeEntryService.ListTimeEntries(c.Request.Context(), matterID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error listing time entries", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list time entries from service", slog.String("error", err.Error()), slog.String("matter_id", matterID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list time entries"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listUnbilled godoc
// @Summary List unbilled time entries for a matter
// @Description Retrieves billable, not yet invoiced entries for a matter
// @Tags time-entries
// @Produce  json
// @Param   matterID path string true "Matter ID"
// @Success 200 {array} dto.TimeEntryResponse
// @Failure 500 {object} map[string]string "Failed to list unbilled entries"
// @Router /matters/{matterID}/time-entries/unbilled [get]
func (h *timeEntryHandler) listUnbilled(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	matterID := c.Param("matterID")

	entries, err := h.timeEntryService.ListUnbilled(c.Request.Context(), matterID)
	if err != nil {
		logger.Error("Failed to list unbilled entries from service", slog.String("error", err.Error()), slog.String("matter_id", matterID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list unbilled entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryResponses(entries))
}
