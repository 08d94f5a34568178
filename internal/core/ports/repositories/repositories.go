package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TimeEntryRepo TimeEntryRepositoryFacade
	InvoiceRepo   InvoiceRepositoryFacade
	PaymentRepo   PaymentRepositoryFacade
	ReminderRepo  ReminderRepositoryFacade
	ReportingRepo ReportingRepository
	UserRepo      UserRepositoryFacade
	ActivityRepo  ActivityRepositoryFacade
}
