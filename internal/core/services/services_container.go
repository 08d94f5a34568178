package services

import (
	portsrepo "github.com/caseledger/caseledger/internal/core/ports/repositories"
	portssvc "github.com/caseledger/caseledger/internal/core/ports/services"
	"github.com/caseledger/caseledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Activity first since the mutating services hang audit logging off it
	container.Activity = NewActivityService(repos.ActivityRepo)

	container.TimeEntry = NewTimeEntryService(repos.TimeEntryRepo)
	container.Invoice = NewInvoiceService(
		repos.InvoiceRepo,
		repos.TimeEntryRepo,
		repos.PaymentRepo,
		WithInvoiceActivityLogger(container.Activity),
	)
	container.Payment = NewPaymentService(
		repos.PaymentRepo,
		repos.InvoiceRepo,
		WithPaymentActivityLogger(container.Activity),
	)
	container.Reminder = NewReminderService(repos.ReminderRepo, repos.InvoiceRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)

	return container
}
