package services_test

import (
	"context"
	"time"

	"github.com/aromex/aromex_backend/internal/core/domain"
	"github.com/aromex/aromex_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock RateRepository ---

type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) FindDirectRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.DirectExchangeRate, error) {
	args := m.Called(ctx, fromCurrency, toCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DirectExchangeRate), args.Error(1)
}

func (m *MockRateRepository) ListDirectRates(ctx context.Context) ([]domain.DirectExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DirectExchangeRate), args.Error(1)
}

func (m *MockRateRepository) UpsertDirectRate(ctx context.Context, rate domain.DirectExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, changes []domain.BalanceChange) (domain.BalanceSnapshot, error) {
	args := m.Called(ctx, txn, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.BalanceSnapshot), args.Error(1)
}

func (m *MockLedgerRepository) DeleteTransaction(ctx context.Context, transactionID string, changes []domain.BalanceChange) error {
	args := m.Called(ctx, transactionID, changes)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockLedgerRepository) ListExchangeTransactionsSince(ctx context.Context, since *time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// --- Mock CurrencyService ---

type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) GetCurrencyByName(ctx context.Context, name string) (*domain.Currency, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock PartyService ---

type MockPartyService struct {
	mock.Mock
}

func (m *MockPartyService) CreateParty(ctx context.Context, req dto.CreatePartyRequest, creatorUserID string) (*domain.Party, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyService) GetParty(ctx context.Context, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyService) ListParties(ctx context.Context, partyType *domain.PartyType) ([]domain.Party, error) {
	args := m.Called(ctx, partyType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}

func (m *MockPartyService) GetPartyBalances(ctx context.Context, partyID string) (*dto.PartyBalancesResponse, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PartyBalancesResponse), args.Error(1)
}

func (m *MockPartyService) EnsurePartyExists(ctx context.Context, partyID string) error {
	args := m.Called(ctx, partyID)
	return args.Error(0)
}

// --- Mock RateService ---

type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) Resolve(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCurrency, toCurrency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateService) DisplayRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.DisplayRate, error) {
	args := m.Called(ctx, fromCurrency, toCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DisplayRate), args.Error(1)
}

func (m *MockRateService) SetDirectRate(ctx context.Context, req dto.SetDirectRateRequest, creatorUserID string) (*domain.DirectExchangeRate, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DirectExchangeRate), args.Error(1)
}

func (m *MockRateService) ListDirectRates(ctx context.Context) ([]domain.DirectExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DirectExchangeRate), args.Error(1)
}
