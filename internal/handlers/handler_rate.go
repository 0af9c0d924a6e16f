package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aromex/aromex_backend/internal/apperrors"
	portssvc "github.com/aromex/aromex_backend/internal/core/ports/services"
	"github.com/aromex/aromex_backend/internal/dto"
	"github.com/aromex/aromex_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// rateHandler handles HTTP requests related to exchange rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{rateService: rs}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.PUT("", h.setDirectRate)
		rates.GET("", h.listDirectRates)
		rates.GET("/display", h.getDisplayRate)
	}
}

// setDirectRate godoc
// @Summary Set a direct exchange rate
// @Description Stores a manual market rate for a currency pair, replacing any previous rate in the same direction
// @Tags rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.SetDirectRateRequest true "Rate details"
// @Success 200 {object} dto.DirectRateResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to save rate"
// @Security BearerAuth
// @Router /rates [put]
func (h *rateHandler) setDirectRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetDirectRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	saved, err := h.rateService.SetDirectRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error setting rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to set direct rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDirectRateResponse(saved))
}

// listDirectRates godoc
// @Summary List stored direct rates
// @Description Retrieves every stored direct exchange rate
// @Tags rates
// @Produce  json
// @Success 200 {array} dto.DirectRateResponse
// @Failure 500 {object} ErrorResponse "Failed to list rates"
// @Security BearerAuth
// @Router /rates [get]
func (h *rateHandler) listDirectRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.rateService.ListDirectRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list direct rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list rates"})
		return
	}

	responses := make([]dto.DirectRateResponse, len(rates))
	for i := range rates {
		responses[i] = dto.ToDirectRateResponse(&rates[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getDisplayRate godoc
// @Summary Get the display rate for a currency pair
// @Description Resolves the market rate for the pair and returns the "1 X = Y Z" presentation, preferring the direction whose rate is >= 1
// @Tags rates
// @Produce  json
// @Param   from query string true "Giving currency name"
// @Param   to query string true "Receiving currency name"
// @Success 200 {object} dto.DisplayRateResponse
// @Failure 400 {object} ErrorResponse "Missing parameters"
// @Failure 422 {object} ErrorResponse "No rate available for the pair"
// @Failure 500 {object} ErrorResponse "Failed to resolve rate"
// @Security BearerAuth
// @Router /rates/display [get]
func (h *rateHandler) getDisplayRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Query parameters 'from' and 'to' are required"})
		return
	}

	display, err := h.rateService.DisplayRate(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateUnavailable) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to resolve display rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resolve rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDisplayRateResponse(*display))
}
