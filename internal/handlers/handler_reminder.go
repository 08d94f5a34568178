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

// reminderHandler handles HTTP requests related to payment reminders.
type reminderHandler struct {
	reminderService portssvc.ReminderSvcFacade
}

// newReminderHandler creates a new reminderHandler.
func newReminderHandler(reminderService portssvc.ReminderSvcFacade) *reminderHandler {
	return &reminderHandler{
		reminderService: reminderService,
	}
}

// registerReminderRoutes registers all reminder-related routes.
func registerReminderRoutes(rg *gin.RouterGroup, reminderService portssvc.ReminderSvcFacade) {
	h := newReminderHandler(reminderService)

	rg.POST("/invoices/:invoiceID/reminders", h.autoCreateReminders)
	rg.GET("/invoices/:invoiceID/reminders", h.listReminders)
	rg.GET("/invoices/overdue", h.getOverdueInvoices)
	rg.POST("/reminders/:reminderID/sent", h.markSent)
}

// autoCreateReminders godoc
// @Summary Generate the reminder schedule for an invoice
// @Description Derives reminders relative to the invoice due date and persists them. Not idempotent: repeated calls duplicate reminders.
// @Tags reminders
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 201 {object} dto.AutoCreateRemindersResponse
// @Failure 400 {object} map[string]string "Invoice has no due date"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to create reminders"
// @Router /invoices/{invoiceID}/reminders [post]
func (h *reminderHandler) autoCreateReminders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reminders, err := h.reminderService.AutoCreateReminders(c.Request.Context(), invoiceID, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Invoice not found for reminders", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		case errors.Is(err, apperrors.ErrMissingDueDate):
			logger.Warn("Invoice has no due date for reminders", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create reminders in service", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reminders"})
		}
		return
	}

	logger.Info("Reminders created successfully", slog.String("invoice_id", invoiceID), slog.Int("count", len(reminders)))
	c.JSON(http.StatusCreated, dto.AutoCreateRemindersResponse{
		Created:   len(reminders),
		Reminders: dto.ToReminderResponses(reminders),
	})
}

// listReminders godoc
// @Summary List reminders for an invoice
// @Description Retrieves all reminders for an invoice ordered by reminder date
// @Tags reminders
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {array} dto.ReminderResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to list reminders"
// @Router /invoices/{invoiceID}/reminders [get]
func (h *reminderHandler) listReminders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	reminders, err := h.reminderService.ListReminders(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found for reminder list", slog.String("invoice_id", invoiceID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		logger.Error("Failed to list reminders from service", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reminders"})
		return
	}

	c.JSON(http.StatusOK, dto.ToReminderResponses(reminders))
}

// markSent godoc
// @Summary Mark a reminder as sent
// @Description Stamps a reminder as sent; marking an already sent reminder is a no-op
// @Tags reminders
// @Produce  json
// @Param   reminderID path string true "Reminder ID"
// @Success 200 {object} dto.ReminderResponse
// @Failure 404 {object} map[string]string "Reminder not found"
// @Failure 500 {object} map[string]string "Failed to mark reminder sent"
// @Router /reminders/{reminderID}/sent [post]
func (h *reminderHandler) markSent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reminderID := c.Param("reminderID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reminder, err := h.reminderService.MarkSent(c.Request.Context(), reminderID, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Reminder not found", slog.String("reminder_id", reminderID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
			return
		}
		logger.Error("Failed to mark reminder sent in service", slog.String("error", err.Error()), slog.String("reminder_id", reminderID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark reminder sent"})
		return
	}

	logger.Info("Reminder marked sent", slog.String("reminder_id", reminderID))
	c.JSON(http.StatusOK, dto.ToReminderResponse(reminder))
}

// getOverdueInvoices godoc
// @Summary List overdue invoices
// @Description Retrieves invoices that are billed, unpaid and past their due date
// @Tags reminders
// @Produce  json
// @Success 200 {array} dto.InvoiceResponse
// @Failure 500 {object} map[string]string "Failed to list overdue invoices"
// @Router /invoices/overdue [get]
func (h *reminderHandler) getOverdueInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	invoices, err := h.reminderService.GetOverdueInvoices(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list overdue invoices from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list overdue invoices"})
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponses(invoices))
}
