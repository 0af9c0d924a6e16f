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

type RateServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockRateRepository
	mockCurrencySvc *MockCurrencyService
	service         portssvc.RateSvcFacade
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockRateRepository)
	suite.mockCurrencySvc = new(MockCurrencyService)
	suite.service = services.NewRateService(suite.mockRepo, suite.mockCurrencySvc)
}

func (suite *RateServiceTestSuite) TestResolve_SameCurrency() {
	ctx := context.Background()

	rate, err := suite.service.Resolve(ctx, "USD", "USD")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
	suite.mockRepo.AssertNotCalled(suite.T(), "FindDirectRate")
}

func (suite *RateServiceTestSuite) TestResolve_DirectRate() {
	ctx := context.Background()
	stored := &domain.DirectExchangeRate{
		FromCurrency: "USD",
		ToCurrency:   "INR",
		Rate:         decimal.NewFromInt(88),
	}

	suite.mockRepo.On("FindDirectRate", ctx, "USD", "INR").Return(stored, nil).Once()

	rate, err := suite.service.Resolve(ctx, "USD", "INR")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(88)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestResolve_InverseFallback() {
	ctx := context.Background()
	reverse := &domain.DirectExchangeRate{
		FromCurrency: "USD",
		ToCurrency:   "INR",
		Rate:         decimal.NewFromInt(80),
	}

	suite.mockRepo.On("FindDirectRate", ctx, "INR", "USD").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindDirectRate", ctx, "USD", "INR").Return(reverse, nil).Once()

	rate, err := suite.service.Resolve(ctx, "INR", "USD")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromFloat(0.0125)), "expected 1/80, got %s", rate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestResolve_NeitherDirection() {
	ctx := context.Background()

	suite.mockRepo.On("FindDirectRate", ctx, "USD", "AED").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindDirectRate", ctx, "AED", "USD").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Resolve(ctx, "USD", "AED")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestDisplayRate_PrefersRateAboveOne() {
	ctx := context.Background()
	stored := &domain.DirectExchangeRate{
		FromCurrency: "INR",
		ToCurrency:   "USD",
		Rate:         decimal.NewFromFloat(0.0125),
	}

	// The requested direction resolves below 1, so the displayed direction flips.
	suite.mockRepo.On("FindDirectRate", ctx, "INR", "USD").Return(stored, nil).Once()

	display, err := suite.service.DisplayRate(ctx, "INR", "USD")

	suite.Require().NoError(err)
	suite.Equal("USD", display.FromCurrency)
	suite.Equal("INR", display.ToCurrency)
	suite.True(display.Rate.Equal(decimal.NewFromInt(80)))
	suite.True(display.Inverted)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestDisplayRate_KeepsRequestedDirection() {
	ctx := context.Background()
	stored := &domain.DirectExchangeRate{
		FromCurrency: "USD",
		ToCurrency:   "INR",
		Rate:         decimal.NewFromInt(88),
	}

	suite.mockRepo.On("FindDirectRate", ctx, "USD", "INR").Return(stored, nil).Once()

	display, err := suite.service.DisplayRate(ctx, "USD", "INR")

	suite.Require().NoError(err)
	suite.Equal("USD", display.FromCurrency)
	suite.Equal("INR", display.ToCurrency)
	suite.False(display.Inverted)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestSetDirectRate_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.SetDirectRateRequest{
		FromCurrency: "USD",
		ToCurrency:   "INR",
		Rate:         decimal.NewFromInt(88),
	}

	suite.mockCurrencySvc.On("GetCurrencyByName", ctx, "USD").Return(&domain.Currency{Name: "USD"}, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByName", ctx, "INR").Return(&domain.Currency{Name: "INR"}, nil).Once()
	suite.mockRepo.On("UpsertDirectRate", ctx, mock.MatchedBy(func(r domain.DirectExchangeRate) bool {
		return r.FromCurrency == "USD" && r.ToCurrency == "INR" && r.Rate.Equal(req.Rate) && r.CreatedBy == creatorUserID
	})).Return(nil).Once()

	saved, err := suite.service.SetDirectRate(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(saved)
	suite.NotEmpty(saved.RateID)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCurrencySvc.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestSetDirectRate_RejectsNonPositiveRate() {
	ctx := context.Background()
	req := dto.SetDirectRateRequest{
		FromCurrency: "USD",
		ToCurrency:   "INR",
		Rate:         decimal.Zero,
	}

	_, err := suite.service.SetDirectRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertDirectRate")
}

func (suite *RateServiceTestSuite) TestSetDirectRate_RejectsUnknownCurrency() {
	ctx := context.Background()
	req := dto.SetDirectRateRequest{
		FromCurrency: "USD",
		ToCurrency:   "XXX",
		Rate:         decimal.NewFromInt(2),
	}

	suite.mockCurrencySvc.On("GetCurrencyByName", ctx, "USD").Return(&domain.Currency{Name: "USD"}, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByName", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.SetDirectRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertDirectRate")
}

func TestRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
