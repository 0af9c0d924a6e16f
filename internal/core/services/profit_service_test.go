package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/aromex/aromex_backend/internal/apperrors"
	"github.com/aromex/aromex_backend/internal/core/domain"
	portssvc "github.com/aromex/aromex_backend/internal/core/ports/services"
	"github.com/aromex/aromex_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ProfitServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockLedgerRepository
	mockRateSvc *MockRateService
	service     portssvc.ProfitSvcFacade
}

func (suite *ProfitServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLedgerRepository)
	suite.mockRateSvc = new(MockRateService)
	suite.service = services.NewProfitService(suite.mockRepo, suite.mockRateSvc, "CAD")
}

func exchangeTxn(giving, receiving string, amount, customRate int64) domain.Transaction {
	amt := decimal.NewFromInt(amount)
	rate := decimal.NewFromInt(customRate)
	received := amt.Mul(rate)
	recv := receiving
	return domain.Transaction{
		TransactionID:     uuid.NewString(),
		GiverID:           uuid.NewString(),
		TakerID:           uuid.NewString(),
		Amount:            amt,
		Currency:          giving,
		IsExchange:        true,
		CustomRate:        &rate,
		ReceivingCurrency: &recv,
		ReceivedAmount:    &received,
	}
}

func (suite *ProfitServiceTestSuite) TestProfit_CustomerRateAboveMarket() {
	ctx := context.Background()
	txn := exchangeTxn("USD", "INR", 100, 90)

	suite.mockRateSvc.On("Resolve", ctx, "USD", "INR").Return(decimal.NewFromInt(88), nil).Once()

	result, err := suite.service.Profit(ctx, &txn)

	suite.Require().NoError(err)
	suite.Equal("INR", result.Currency)
	suite.True(result.Amount.Equal(decimal.NewFromInt(200)), "expected (90-88)*100, got %s", result.Amount)
	suite.mockRateSvc.AssertExpectations(suite.T())
}

func (suite *ProfitServiceTestSuite) TestProfit_CustomerRateBelowMarket() {
	ctx := context.Background()
	txn := exchangeTxn("USD", "INR", 100, 85)

	suite.mockRateSvc.On("Resolve", ctx, "USD", "INR").Return(decimal.NewFromInt(88), nil).Once()

	result, err := suite.service.Profit(ctx, &txn)

	suite.Require().NoError(err)
	suite.True(result.Amount.Equal(decimal.NewFromInt(-300)))
}

func (suite *ProfitServiceTestSuite) TestProfit_MissingMarketRate() {
	ctx := context.Background()
	txn := exchangeTxn("USD", "AED", 100, 3)

	suite.mockRateSvc.On("Resolve", ctx, "USD", "AED").Return(decimal.Zero, apperrors.ErrRateUnavailable).Once()

	result, err := suite.service.Profit(ctx, &txn)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
}

func (suite *ProfitServiceTestSuite) TestProfit_RejectsNonExchange() {
	ctx := context.Background()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Amount:        decimal.NewFromInt(100),
		Currency:      "USD",
	}

	result, err := suite.service.Profit(ctx, &txn)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateSvc.AssertNotCalled(suite.T(), "Resolve")
}

func (suite *ProfitServiceTestSuite) TestTotalProfit_AllTime() {
	ctx := context.Background()

	// Two USD->INR exchanges (profit 200 + 100 INR), one USD->CAD (profit 0.5 CAD,
	// already base) and one USD->AED whose market rate no longer resolves.
	t1 := exchangeTxn("USD", "INR", 100, 90)
	t2 := exchangeTxn("USD", "INR", 50, 90)
	t3 := exchangeTxn("USD", "AED", 100, 3)
	t4 := exchangeTxn("USD", "CAD", 10, 2)

	suite.mockRepo.On("ListExchangeTransactionsSince", ctx, (*time.Time)(nil)).
		Return([]domain.Transaction{t1, t2, t3, t4}, nil).Once()

	suite.mockRateSvc.On("Resolve", ctx, "USD", "INR").Return(decimal.NewFromInt(88), nil).Twice()
	suite.mockRateSvc.On("Resolve", ctx, "USD", "AED").Return(decimal.Zero, apperrors.ErrRateUnavailable).Once()
	suite.mockRateSvc.On("Resolve", ctx, "USD", "CAD").Return(decimal.NewFromFloat(1.95), nil).Once()

	// INR totals cannot be converted to the base currency.
	suite.mockRateSvc.On("Resolve", ctx, "INR", "CAD").Return(decimal.Zero, apperrors.ErrRateUnavailable).Once()

	report, err := suite.service.TotalProfit(ctx, domain.TimeframeAll)

	suite.Require().NoError(err)
	suite.Equal(domain.TimeframeAll, report.Timeframe)
	suite.Nil(report.From)
	suite.Equal("CAD", report.BaseCurrency)

	suite.Require().Len(report.ByCurrency, 2)
	suite.Equal("CAD", report.ByCurrency[0].Currency)
	suite.True(report.ByCurrency[0].Amount.Equal(decimal.NewFromFloat(0.5)))
	suite.Require().NotNil(report.ByCurrency[0].BaseAmount)
	suite.Equal("INR", report.ByCurrency[1].Currency)
	suite.True(report.ByCurrency[1].Amount.Equal(decimal.NewFromInt(300)))
	suite.Nil(report.ByCurrency[1].BaseAmount)

	suite.True(report.TotalBase.Equal(decimal.NewFromFloat(0.5)))
	suite.Equal([]string{"INR"}, report.Unconverted)
	suite.Equal([]string{t3.TransactionID}, report.MissingMarketRate)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRateSvc.AssertExpectations(suite.T())
}

func (suite *ProfitServiceTestSuite) TestTotalProfit_ConvertsToBase() {
	ctx := context.Background()
	t1 := exchangeTxn("CAD", "USD", 100, 2)

	suite.mockRepo.On("ListExchangeTransactionsSince", ctx, mock.Anything).
		Return([]domain.Transaction{t1}, nil).Once()

	// Profit (2 - 1.5) * 100 = 50 USD; converted at USD->CAD 1.4 gives 70 CAD.
	suite.mockRateSvc.On("Resolve", ctx, "CAD", "USD").Return(decimal.NewFromFloat(1.5), nil).Once()
	suite.mockRateSvc.On("Resolve", ctx, "USD", "CAD").Return(decimal.NewFromFloat(1.4), nil).Once()

	report, err := suite.service.TotalProfit(ctx, domain.TimeframeAll)

	suite.Require().NoError(err)
	suite.Require().Len(report.ByCurrency, 1)
	suite.True(report.ByCurrency[0].Amount.Equal(decimal.NewFromInt(50)))
	suite.Require().NotNil(report.ByCurrency[0].BaseAmount)
	suite.True(report.ByCurrency[0].BaseAmount.Equal(decimal.NewFromInt(70)))
	suite.True(report.TotalBase.Equal(decimal.NewFromInt(70)))
	suite.Empty(report.Unconverted)
}

func (suite *ProfitServiceTestSuite) TestTotalProfit_UnknownTimeframe() {
	ctx := context.Background()

	report, err := suite.service.TotalProfit(ctx, domain.Timeframe("decade"))

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListExchangeTransactionsSince")
}

func (suite *ProfitServiceTestSuite) TestTotalProfit_BoundedTimeframePassesWindowStart() {
	ctx := context.Background()

	suite.mockRepo.On("ListExchangeTransactionsSince", ctx, mock.MatchedBy(func(since *time.Time) bool {
		return since != nil && since.Hour() == 0 && since.Minute() == 0 && since.Weekday() == time.Monday
	})).Return([]domain.Transaction{}, nil).Once()

	report, err := suite.service.TotalProfit(ctx, domain.TimeframeWeek)

	suite.Require().NoError(err)
	suite.Require().NotNil(report.From)
	suite.True(report.TotalBase.IsZero())
	suite.Empty(report.ByCurrency)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProfitServiceTestSuite) TestTotalProfit_WindowStartIsInclusive() {
	ctx := context.Background()

	weekStart, ok := domain.TimeframeWeek.Start(time.Now())
	suite.Require().True(ok)

	atBoundary := exchangeTxn("USD", "INR", 100, 90)
	atBoundary.Timestamp = weekStart
	justBefore := exchangeTxn("USD", "INR", 50, 90)
	justBefore.Timestamp = weekStart.Add(-time.Second)

	// The row one second before the window start must not count, even when the store
	// hands it back.
	suite.mockRepo.On("ListExchangeTransactionsSince", ctx, mock.MatchedBy(func(since *time.Time) bool {
		return since != nil
	})).Return([]domain.Transaction{justBefore, atBoundary}, nil).Once()
	suite.mockRateSvc.On("Resolve", ctx, "USD", "INR").Return(decimal.NewFromInt(88), nil).Once()
	suite.mockRateSvc.On("Resolve", ctx, "INR", "CAD").Return(decimal.NewFromFloat(0.016), nil).Once()

	report, err := suite.service.TotalProfit(ctx, domain.TimeframeWeek)

	suite.Require().NoError(err)
	suite.Require().Len(report.ByCurrency, 1)
	suite.True(report.ByCurrency[0].Amount.Equal(decimal.NewFromInt(200)),
		"expected only the boundary transaction's profit, got %s", report.ByCurrency[0].Amount)
	suite.True(report.TotalBase.Equal(decimal.NewFromFloat(3.2)))
	suite.mockRateSvc.AssertExpectations(suite.T())
}

func TestProfitServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProfitServiceTestSuite))
}
