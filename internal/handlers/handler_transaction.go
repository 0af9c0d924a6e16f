package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aromex/aromex_backend/internal/apperrors"
	"github.com/aromex/aromex_backend/internal/core/domain"
	portssvc "github.com/aromex/aromex_backend/internal/core/ports/services"
	"github.com/aromex/aromex_backend/internal/dto"
	"github.com/aromex/aromex_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for the transaction ledger.
type transactionHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	profitService portssvc.ProfitSvcFacade
}

func newTransactionHandler(ls portssvc.LedgerSvcFacade, ps portssvc.ProfitSvcFacade) *transactionHandler {
	return &transactionHandler{ledgerService: ls, profitService: ps}
}

// RegisterTransactionRoutes registers routes related to ledger transactions.
func RegisterTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, profitService portssvc.ProfitSvcFacade) {
	h := newTransactionHandler(ledgerService, profitService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.DELETE("/:id", h.reverseTransaction)
	}
}

// toResponseWithProfit attaches the current profit figure to an exchange transaction's
// response. A missing market rate marks the response rather than zeroing the profit.
func (h *transactionHandler) toResponseWithProfit(c *gin.Context, txn *domain.Transaction) dto.TransactionResponse {
	resp := dto.ToTransactionResponse(txn)
	if !txn.IsExchange {
		return resp
	}

	result, err := h.profitService.Profit(c.Request.Context(), txn)
	if err != nil {
		if !errors.Is(err, apperrors.ErrRateUnavailable) {
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Error("Failed to compute profit for transaction",
				slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		}
		resp.ProfitUnavailable = true
		return resp
	}
	resp.Profit = dto.ToProfitResponse(result)
	return resp
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Records a transfer or currency exchange between two parties, updating both balances atomically. Exchanges are refused when no market rate resolves for the pair.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Party or currency not found"
// @Failure 422 {object} ErrorResponse "No market rate available for the pair"
// @Failure 500 {object} ErrorResponse "Failed to record transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.ledgerService.CreateTransaction(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrRateUnavailable):
			// The client may prompt for a manual rate and retry.
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrPartyNotFound), errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, h.toResponseWithProfit(c, txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Retrieves transactions newest-first with token pagination. Exchange entries carry their profit at current market rates.
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse "Invalid pagination token"
// @Failure 500 {object} ErrorResponse "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	txns, nextToken, err := h.ledgerService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to list transactions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list transactions"})
		}
		return
	}

	resp := dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, len(txns)),
		NextToken:    nextToken,
	}
	for i := range txns {
		resp.Transactions[i] = h.toResponseWithProfit(c, &txns[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Description Retrieves a single committed transaction with profit at current market rates
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	txn, err := h.ledgerService.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
		} else {
			logger.Error("Failed to get transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, h.toResponseWithProfit(c, txn))
}

// reverseTransaction godoc
// @Summary Reverse a transaction
// @Description Applies the exact inverse balance deltas and deletes the record, as one atomic unit
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 204 "Reversed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Transaction or participant not found"
// @Failure 500 {object} ErrorResponse "Failed to reverse transaction"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) reverseTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	err := h.ledgerService.ReverseTransaction(c.Request.Context(), transactionID, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrPartyNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to reverse transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to reverse transaction"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
