package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aromex/aromex_backend/internal/apperrors"
	"github.com/aromex/aromex_backend/internal/core/domain"
	portsrepo "github.com/aromex/aromex_backend/internal/core/ports/repositories"
	portssvc "github.com/aromex/aromex_backend/internal/core/ports/services"
	"github.com/aromex/aromex_backend/internal/dto"
	"github.com/aromex/aromex_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultTransactionPageSize = 20
	maxTransactionPageSize     = 100
)

// ledgerService builds, commits and reverses transactions. All balance math is computed
// here as signed deltas; the repository applies them atomically alongside the record.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	partySvc    portssvc.PartySvcFacade
	currencySvc portssvc.CurrencySvcFacade
	rateSvc     portssvc.RateSvcFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	partySvc portssvc.PartySvcFacade,
	currencySvc portssvc.CurrencySvcFacade,
	rateSvc portssvc.RateSvcFacade,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		partySvc:    partySvc,
		currencySvc: currencySvc,
		rateSvc:     rateSvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateTransaction validates the request, computes the balance deltas for both
// participants and commits everything in one atomic repository call. Exchange requests
// are refused up front when no market rate resolves for the pair, so every committed
// exchange has a computable profit at creation time.
func (s *ledgerService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.GiverID == req.TakerID {
		return nil, fmt.Errorf("%w: giver and taker must differ", apperrors.ErrValidation)
	}
	if err := s.partySvc.EnsurePartyExists(ctx, req.GiverID); err != nil {
		return nil, err
	}
	if err := s.partySvc.EnsurePartyExists(ctx, req.TakerID); err != nil {
		return nil, err
	}
	if _, err := s.currencySvc.GetCurrencyByName(ctx, req.Currency); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	timestamp := now
	if req.Timestamp != nil {
		timestamp = req.Timestamp.UTC()
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Timestamp:     timestamp,
		GiverID:       req.GiverID,
		TakerID:       req.TakerID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Notes:         req.Notes,
		IsExchange:    req.IsExchange,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// The giver always hands over Amount of Currency.
	changes := []domain.BalanceChange{
		{PartyID: req.GiverID, Currency: req.Currency, Delta: req.Amount.Neg()},
	}

	if req.IsExchange {
		receiving, customerRate, err := s.resolveExchange(ctx, req)
		if err != nil {
			return nil, err
		}
		receivedAmount := req.Amount.Mul(customerRate)
		txn.CustomRate = &customerRate
		txn.ReceivingCurrency = &receiving
		txn.ReceivedAmount = &receivedAmount
		changes = append(changes, domain.BalanceChange{
			PartyID:  req.TakerID,
			Currency: receiving,
			Delta:    receivedAmount,
		})
	} else {
		changes = append(changes, domain.BalanceChange{
			PartyID:  req.TakerID,
			Currency: req.Currency,
			Delta:    req.Amount,
		})
	}

	snapshot, err := s.ledgerRepo.SaveTransaction(ctx, txn, changes)
	if err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	txn.BalancesAfter = snapshot

	logger.Info("Transaction committed",
		"transaction_id", txn.TransactionID,
		"giver_id", txn.GiverID,
		"taker_id", txn.TakerID,
		"is_exchange", txn.IsExchange,
	)
	return &txn, nil
}

// resolveExchange validates the exchange fields and normalizes the customer rate into
// the giving -> receiving direction. The market rate must resolve for the pair; an
// exchange with no market reference would have an uncomputable profit forever.
func (s *ledgerService) resolveExchange(ctx context.Context, req dto.CreateTransactionRequest) (string, decimal.Decimal, error) {
	if req.ReceivingCurrency == nil || *req.ReceivingCurrency == "" {
		return "", decimal.Zero, fmt.Errorf("%w: receiving currency is required for an exchange", apperrors.ErrValidation)
	}
	receiving := *req.ReceivingCurrency
	if receiving == req.Currency {
		return "", decimal.Zero, fmt.Errorf("%w: receiving currency must differ from the giving currency", apperrors.ErrValidation)
	}
	if _, err := s.currencySvc.GetCurrencyByName(ctx, receiving); err != nil {
		return "", decimal.Zero, err
	}
	if req.CustomRate == nil || !req.CustomRate.IsPositive() {
		return "", decimal.Zero, fmt.Errorf("%w: a positive custom exchange rate is required", apperrors.ErrValidation)
	}

	customerRate := *req.CustomRate
	if req.RateInverted {
		customerRate = one.Div(customerRate)
	}

	if _, err := s.rateSvc.Resolve(ctx, req.Currency, receiving); err != nil {
		return "", decimal.Zero, err
	}
	return receiving, customerRate, nil
}

// GetTransaction retrieves a committed transaction.
func (s *ledgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactions retrieves transactions newest-first with token pagination.
func (s *ledgerService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultTransactionPageSize
	}
	if limit > maxTransactionPageSize {
		limit = maxTransactionPageSize
	}
	txns, nextToken, err := s.ledgerRepo.ListTransactions(ctx, limit, params.NextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nextToken, nil
}

// ReverseTransaction undoes a committed transaction: the exact inverse of every balance
// delta is applied and the record deleted, as one atomic unit. Both participants must
// still exist; otherwise nothing is touched.
func (s *ledgerService) ReverseTransaction(ctx context.Context, transactionID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if err := s.partySvc.EnsurePartyExists(ctx, txn.GiverID); err != nil {
		return err
	}
	if err := s.partySvc.EnsurePartyExists(ctx, txn.TakerID); err != nil {
		return err
	}

	if err := s.ledgerRepo.DeleteTransaction(ctx, transactionID, txn.ReversalChanges()); err != nil {
		return fmt.Errorf("failed to reverse transaction %s: %w", transactionID, err)
	}

	logger.Info("Transaction reversed", "transaction_id", transactionID, "requested_by", requestingUserID)
	return nil
}
