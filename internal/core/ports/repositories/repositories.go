package repositories

// RepositoryProvider bundles every repository the service container needs.
type RepositoryProvider struct {
	CurrencyRepo CurrencyRepositoryFacade
	RateRepo     RateRepositoryFacade
	PartyRepo    PartyRepositoryFacade
	LedgerRepo   LedgerRepositoryFacade
	UserRepo     UserRepositoryFacade
}
