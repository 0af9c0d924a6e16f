package services_test

import (
	"context"
	"testing"

	"github.com/aromex/aromex_backend/internal/apperrors"
	"github.com/aromex/aromex_backend/internal/core/domain"
	portssvc "github.com/aromex/aromex_backend/internal/core/ports/services"
	"github.com/aromex/aromex_backend/internal/core/services"
	"github.com/aromex/aromex_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockLedgerRepository
	mockPartySvc    *MockPartyService
	mockCurrencySvc *MockCurrencyService
	mockRateSvc     *MockRateService
	service         portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLedgerRepository)
	suite.mockPartySvc = new(MockPartyService)
	suite.mockCurrencySvc = new(MockCurrencyService)
	suite.mockRateSvc = new(MockRateService)
	suite.service = services.NewLedgerService(suite.mockRepo, suite.mockPartySvc, suite.mockCurrencySvc, suite.mockRateSvc)
}

func (suite *LedgerServiceTestSuite) expectPartiesAndCurrency(ctx context.Context, giverID, takerID, currency string) {
	suite.mockPartySvc.On("EnsurePartyExists", ctx, giverID).Return(nil).Once()
	suite.mockPartySvc.On("EnsurePartyExists", ctx, takerID).Return(nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByName", ctx, currency).Return(&domain.Currency{Name: currency}, nil).Once()
}

func hasChange(changes []domain.BalanceChange, partyID, currency string, delta decimal.Decimal) bool {
	for _, c := range changes {
		if c.PartyID == partyID && c.Currency == currency && c.Delta.Equal(delta) {
			return true
		}
	}
	return false
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_Transfer() {
	ctx := context.Background()
	giverID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		GiverID:  giverID,
		TakerID:  domain.MyselfID,
		Amount:   decimal.NewFromInt(100),
		Currency: "USD",
	}

	suite.expectPartiesAndCurrency(ctx, giverID, domain.MyselfID, "USD")

	snapshot := domain.BalanceSnapshot{}
	snapshot.Set(giverID, "USD", decimal.NewFromInt(-100))
	snapshot.Set(domain.MyselfID, "USD", decimal.NewFromInt(100))

	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(changes []domain.BalanceChange) bool {
		return len(changes) == 2 &&
			hasChange(changes, giverID, "USD", decimal.NewFromInt(-100)) &&
			hasChange(changes, domain.MyselfID, "USD", decimal.NewFromInt(100))
	})).Return(snapshot, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.False(txn.IsExchange)
	suite.Nil(txn.CustomRate)
	suite.True(txn.BalancesAfter.Get(domain.MyselfID, "USD").Equal(decimal.NewFromInt(100)))
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRateSvc.AssertNotCalled(suite.T(), "Resolve")
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_Exchange() {
	ctx := context.Background()
	giverID := uuid.NewString()
	takerID := uuid.NewString()
	receiving := "INR"
	customRate := decimal.NewFromInt(90)
	req := dto.CreateTransactionRequest{
		GiverID:           giverID,
		TakerID:           takerID,
		Amount:            decimal.NewFromInt(100),
		Currency:          "USD",
		IsExchange:        true,
		CustomRate:        &customRate,
		ReceivingCurrency: &receiving,
	}

	suite.expectPartiesAndCurrency(ctx, giverID, takerID, "USD")
	suite.mockCurrencySvc.On("GetCurrencyByName", ctx, "INR").Return(&domain.Currency{Name: "INR"}, nil).Once()
	suite.mockRateSvc.On("Resolve", ctx, "USD", "INR").Return(decimal.NewFromInt(88), nil).Once()

	suite.mockRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.IsExchange &&
			t.CustomRate != nil && t.CustomRate.Equal(customRate) &&
			t.ReceivedAmount != nil && t.ReceivedAmount.Equal(decimal.NewFromInt(9000))
	}), mock.MatchedBy(func(changes []domain.BalanceChange) bool {
		return len(changes) == 2 &&
			hasChange(changes, giverID, "USD", decimal.NewFromInt(-100)) &&
			hasChange(changes, takerID, "INR", decimal.NewFromInt(9000))
	})).Return(domain.BalanceSnapshot{}, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(txn.ReceivedAmount)
	suite.True(txn.ReceivedAmount.Equal(decimal.NewFromInt(9000)))
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRateSvc.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_ExchangeInvertedRate() {
	ctx := context.Background()
	giverID := uuid.NewString()
	takerID := uuid.NewString()
	receiving := "USD"
	// Entered in the display direction (USD->INR = 80); stored and applied as INR->USD.
	customRate := decimal.NewFromInt(80)
	req := dto.CreateTransactionRequest{
		GiverID:           giverID,
		TakerID:           takerID,
		Amount:            decimal.NewFromInt(8000),
		Currency:          "INR",
		IsExchange:        true,
		CustomRate:        &customRate,
		ReceivingCurrency: &receiving,
		RateInverted:      true,
	}

	suite.expectPartiesAndCurrency(ctx, giverID, takerID, "INR")
	suite.mockCurrencySvc.On("GetCurrencyByName", ctx, "USD").Return(&domain.Currency{Name: "USD"}, nil).Once()
	suite.mockRateSvc.On("Resolve", ctx, "INR", "USD").Return(decimal.NewFromFloat(0.0125), nil).Once()

	suite.mockRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.CustomRate != nil && t.CustomRate.Equal(decimal.NewFromFloat(0.0125)) &&
			t.ReceivedAmount != nil && t.ReceivedAmount.Equal(decimal.NewFromInt(100))
	}), mock.Anything).Return(domain.BalanceSnapshot{}, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(txn.ReceivedAmount.Equal(decimal.NewFromInt(100)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_ExchangeNoMarketRate() {
	ctx := context.Background()
	giverID := uuid.NewString()
	takerID := uuid.NewString()
	receiving := "AED"
	customRate := decimal.NewFromInt(3)
	req := dto.CreateTransactionRequest{
		GiverID:           giverID,
		TakerID:           takerID,
		Amount:            decimal.NewFromInt(100),
		Currency:          "USD",
		IsExchange:        true,
		CustomRate:        &customRate,
		ReceivingCurrency: &receiving,
	}

	suite.expectPartiesAndCurrency(ctx, giverID, takerID, "USD")
	suite.mockCurrencySvc.On("GetCurrencyByName", ctx, "AED").Return(&domain.Currency{Name: "AED"}, nil).Once()
	suite.mockRateSvc.On("Resolve", ctx, "USD", "AED").Return(decimal.Zero, apperrors.ErrRateUnavailable).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_RejectsNonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		GiverID:  uuid.NewString(),
		TakerID:  uuid.NewString(),
		Amount:   decimal.Zero,
		Currency: "USD",
	}

	txn, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_RejectsSelfTransfer() {
	ctx := context.Background()
	partyID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		GiverID:  partyID,
		TakerID:  partyID,
		Amount:   decimal.NewFromInt(50),
		Currency: "USD",
	}

	txn, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_RejectsSameCurrencyExchange() {
	ctx := context.Background()
	giverID := uuid.NewString()
	takerID := uuid.NewString()
	receiving := "USD"
	customRate := decimal.NewFromInt(1)
	req := dto.CreateTransactionRequest{
		GiverID:           giverID,
		TakerID:           takerID,
		Amount:            decimal.NewFromInt(100),
		Currency:          "USD",
		IsExchange:        true,
		CustomRate:        &customRate,
		ReceivingCurrency: &receiving,
	}

	suite.expectPartiesAndCurrency(ctx, giverID, takerID, "USD")

	txn, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *LedgerServiceTestSuite) TestReverseTransaction_Exchange() {
	ctx := context.Background()
	giverID := uuid.NewString()
	takerID := uuid.NewString()
	receiving := "INR"
	customRate := decimal.NewFromInt(90)
	receivedAmount := decimal.NewFromInt(9000)
	txn := &domain.Transaction{
		TransactionID:     uuid.NewString(),
		GiverID:           giverID,
		TakerID:           takerID,
		Amount:            decimal.NewFromInt(100),
		Currency:          "USD",
		IsExchange:        true,
		CustomRate:        &customRate,
		ReceivingCurrency: &receiving,
		ReceivedAmount:    &receivedAmount,
	}

	suite.mockRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockPartySvc.On("EnsurePartyExists", ctx, giverID).Return(nil).Once()
	suite.mockPartySvc.On("EnsurePartyExists", ctx, takerID).Return(nil).Once()

	// The reversal is the exact mirror of the original deltas.
	suite.mockRepo.On("DeleteTransaction", ctx, txn.TransactionID, mock.MatchedBy(func(changes []domain.BalanceChange) bool {
		return len(changes) == 2 &&
			hasChange(changes, giverID, "USD", decimal.NewFromInt(100)) &&
			hasChange(changes, takerID, "INR", decimal.NewFromInt(-9000))
	})).Return(nil).Once()

	err := suite.service.ReverseTransaction(ctx, txn.TransactionID, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReverseTransaction_MissingParty() {
	ctx := context.Background()
	giverID := uuid.NewString()
	takerID := uuid.NewString()
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		GiverID:       giverID,
		TakerID:       takerID,
		Amount:        decimal.NewFromInt(100),
		Currency:      "USD",
	}

	suite.mockRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockPartySvc.On("EnsurePartyExists", ctx, giverID).Return(apperrors.ErrPartyNotFound).Once()

	err := suite.service.ReverseTransaction(ctx, txn.TransactionID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPartyNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteTransaction")
}

func (suite *LedgerServiceTestSuite) TestReverseTransaction_NotFound() {
	ctx := context.Background()
	transactionID := uuid.NewString()

	suite.mockRepo.On("FindTransactionByID", ctx, transactionID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.ReverseTransaction(ctx, transactionID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteTransaction")
}

func (suite *LedgerServiceTestSuite) TestListTransactions_DefaultsLimit() {
	ctx := context.Background()

	suite.mockRepo.On("ListTransactions", ctx, 20, (*string)(nil)).
		Return([]domain.Transaction{}, nil, nil).Once()

	txns, nextToken, err := suite.service.ListTransactions(ctx, dto.ListTransactionsParams{})

	suite.Require().NoError(err)
	suite.NotNil(txns)
	suite.Nil(nextToken)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestListTransactions_CapsLimit() {
	ctx := context.Background()

	suite.mockRepo.On("ListTransactions", ctx, 100, (*string)(nil)).
		Return([]domain.Transaction{}, nil, nil).Once()

	_, _, err := suite.service.ListTransactions(ctx, dto.ListTransactionsParams{Limit: 1000000})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
