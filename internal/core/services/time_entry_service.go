package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/caseledger/caseledger/internal/apperrors"
	"github.com/caseledger/caseledger/internal/core/domain"
	portsrepo "github.com/caseledger/caseledger/internal/core/ports/repositories"
	portssvc "github.com/caseledger/caseledger/internal/core/ports/services"
	"github.com/caseledger/caseledger/internal/dto"
)

// timeEntryService provides the time entry ledger operations.
type timeEntryService struct {
	BaseService
	timeEntryRepo portsrepo.TimeEntryRepositoryFacade
}

// NewTimeEntryService creates a new TimeEntryService.
func NewTimeEntryService(timeEntryRepo portsrepo.TimeEntryRepositoryFacade) portssvc.TimeEntrySvcFacade {
	return &timeEntryService{
		timeEntryRepo: timeEntryRepo,
	}
}

// Ensure timeEntryService implements the facade interface
var _ portssvc.TimeEntrySvcFacade = (*timeEntryService)(nil)

// RecordTimeEntry records a new unit of work against a matter.
// Implements portssvc.TimeEntryWriterSvc
func (s *timeEntryService) RecordTimeEntry(ctx context.Context, req dto.CreateTimeEntryRequest, creatorUserID string) (*domain.TimeEntry, error) {
	if req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be a positive number of minutes", apperrors.ErrValidation)
	}
	if req.HourlyRateCents != nil && *req.HourlyRateCents < 0 {
		return nil, fmt.Errorf("%w: hourly rate must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	entry := domain.TimeEntry{
		TimeEntryID:     uuid.NewString(),
		MatterID:        req.MatterID,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		HourlyRateCents: req.HourlyRateCents,
		IsBillable:      req.IsBillable,
		IsInvoiced:      false,
		InvoiceID:       nil,
		EntryDate:       req.EntryDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.timeEntryRepo.SaveTimeEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save time entry", slog.String("matter_id", req.MatterID))
		return nil, fmt.Errorf("failed to save time entry: %w", err)
	}

	s.LogInfo(ctx, "Time entry recorded", slog.String("time_entry_id", entry.TimeEntryID), slog.String("matter_id", entry.MatterID))
	return &entry, nil
}

// GetTimeEntryByID retrieves a specific time entry.
// Implements portssvc.TimeEntryReaderSvc
func (s *timeEntryService) GetTimeEntryByID(ctx context.Context, timeEntryID string) (*domain.TimeEntry, error) {
	entry, err := s.timeEntryRepo.FindTimeEntryByID(ctx, timeEntryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find time entry", slog.String("time_entry_id", timeEntryID))
		}
		return nil, fmt.Errorf("failed to find time entry %s: %w", timeEntryID, err)
	}
	return entry, nil
}

// ListUnbilled retrieves billable, not yet invoiced entries for a matter.
// Implements portssvc.TimeEntryReaderSvc
func (s *timeEntryService) ListUnbilled(ctx context.Context, matterID string) ([]domain.TimeEntry, error) {
	entries, err := s.timeEntryRepo.ListUnbilledTimeEntries(ctx, matterID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list unbilled time entries", slog.String("matter_id", matterID))
		return nil, fmt.Errorf("failed to list unbilled time entries: %w", err)
	}
	return entries, nil
}

// ListTimeEntries retrieves a paginated list of entries for a matter.
// Implements portssvc.TimeEntryReaderSvc
func (s *timeEntryService) ListTimeEntries(ctx context.Context, matterID string, params dto.ListTimeEntriesParams) (*dto.ListTimeEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.timeEntryRepo.ListTimeEntriesByMatter(ctx, matterID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list time entries", slog.String("matter_id", matterID))
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}

	return &dto.ListTimeEntriesResponse{
		TimeEntries: dto.ToTimeEntryResponses(entries),
		NextToken:   nextToken,
	}, nil
}

// UpdateTimeEntry updates a not-yet-invoiced entry. Invoiced entries are frozen
// historical billing records; any change to them is rejected.
// Implements portssvc.TimeEntryWriterSvc
func (s *timeEntryService) UpdateTimeEntry(ctx context.Context, timeEntryID string, req dto.UpdateTimeEntryRequest, requestingUserID string) (*domain.TimeEntry, error) {
	entry, err := s.timeEntryRepo.FindTimeEntryByID(ctx, timeEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find time entry %s: %w", timeEntryID, err)
	}

	if entry.IsInvoiced {
		return nil, fmt.Errorf("%w: time entry %s is invoiced and cannot be modified", apperrors.ErrValidation, timeEntryID)
	}

	updated := false
	if req.Description != nil {
		entry.Description = *req.Description
		updated = true
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: duration must be a positive number of minutes", apperrors.ErrValidation)
		}
		entry.DurationMinutes = *req.DurationMinutes
		updated = true
	}
	if req.HourlyRateCents != nil {
		if *req.HourlyRateCents < 0 {
			return nil, fmt.Errorf("%w: hourly rate must not be negative", apperrors.ErrValidation)
		}
		entry.HourlyRateCents = req.HourlyRateCents
		updated = true
	}
	if req.IsBillable != nil {
		entry.IsBillable = *req.IsBillable
		updated = true
	}
	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
		updated = true
	}

	if !updated {
		s.LogDebug(ctx, "No fields provided for time entry update", slog.String("time_entry_id", timeEntryID))
		return entry, nil
	}

	now := time.Now().UTC()
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = requestingUserID

	if err := s.timeEntryRepo.UpdateTimeEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update time entry", slog.String("time_entry_id", timeEntryID))
		return nil, fmt.Errorf("failed to update time entry: %w", err)
	}

	s.LogInfo(ctx, "Time entry updated", slog.String("time_entry_id", timeEntryID))
	return entry, nil
}

// DeleteTimeEntry deletes a not-yet-invoiced entry.
// Implements portssvc.TimeEntryWriterSvc
func (s *timeEntryService) DeleteTimeEntry(ctx context.Context, timeEntryID string, requestingUserID string) error {
	entry, err := s.timeEntryRepo.FindTimeEntryByID(ctx, timeEntryID)
	if err != nil {
		return fmt.Errorf("failed to find time entry %s: %w", timeEntryID, err)
	}

	if entry.IsInvoiced {
		return fmt.Errorf("%w: time entry %s is invoiced and cannot be deleted", apperrors.ErrValidation, timeEntryID)
	}

	if err := s.timeEntryRepo.DeleteTimeEntry(ctx, timeEntryID); err != nil {
		s.LogError(ctx, err, "Failed to delete time entry", slog.String("time_entry_id", timeEntryID))
		return fmt.Errorf("failed to delete time entry: %w", err)
	}

	s.LogInfo(ctx, "Time entry deleted", slog.String("time_entry_id", timeEntryID), slog.String("deleted_by", requestingUserID))
	return nil
}
