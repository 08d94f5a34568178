package pgsql

import (
	portsrepo "github.com/caseledger/caseledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	timeEntryRepo := newPgxTimeEntryRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool, timeEntryRepo)
	paymentRepo := newPgxPaymentRepository(dbPool)
	reminderRepo := newPgxReminderRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	activityRepo := newPgxActivityRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TimeEntryRepo: timeEntryRepo,
		InvoiceRepo:   invoiceRepo,
		PaymentRepo:   paymentRepo,
		ReminderRepo:  reminderRepo,
		ReportingRepo: reportingRepo,
		UserRepo:      userRepo,
		ActivityRepo:  activityRepo,
	}
}
