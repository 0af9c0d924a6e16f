package services

import (
	portsrepo "github.com/aromex/aromex_backend/internal/core/ports/repositories"
	portssvc "github.com/aromex/aromex_backend/internal/core/ports/services"
	"github.com/aromex/aromex_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Rate = NewRateService(repos.RateRepo, container.Currency)
	container.Party = NewPartyService(repos.PartyRepo, cfg.BaseCurrency)

	// Ledger depends on party/currency validation and on rate resolution for exchanges.
	container.Ledger = NewLedgerService(repos.LedgerRepo, container.Party, container.Currency, container.Rate)
	container.Profit = NewProfitService(repos.LedgerRepo, container.Rate, cfg.BaseCurrency)

	container.User = NewUserService(repos.UserRepo)
	container.TokenService = NewTokenService(cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
