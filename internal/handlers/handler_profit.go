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

// profitHandler handles HTTP requests for profit reporting.
type profitHandler struct {
	profitService portssvc.ProfitSvcFacade
}

func newProfitHandler(ps portssvc.ProfitSvcFacade) *profitHandler {
	return &profitHandler{profitService: ps}
}

// registerProfitRoutes registers routes related to profit reporting.
func registerProfitRoutes(rg *gin.RouterGroup, profitService portssvc.ProfitSvcFacade) {
	h := newProfitHandler(profitService)

	profit := rg.Group("/profit")
	{
		profit.GET("", h.getTotalProfit)
	}
}

// getTotalProfit godoc
// @Summary Get aggregated exchange profit
// @Description Aggregates exchange profit over a calendar-aligned timeframe (day, week, month, year or all), grouped by receiving currency and converted to the base currency where possible
// @Tags profit
// @Produce  json
// @Param   timeframe query string false "Timeframe (default all)"
// @Success 200 {object} dto.ProfitReportResponse
// @Failure 400 {object} ErrorResponse "Unknown timeframe"
// @Failure 500 {object} ErrorResponse "Failed to compute profit"
// @Security BearerAuth
// @Router /profit [get]
func (h *profitHandler) getTotalProfit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	timeframe := domain.TimeframeAll
	if param := c.Query("timeframe"); param != "" {
		timeframe = domain.Timeframe(param)
	}

	report, err := h.profitService.TotalProfit(c.Request.Context(), timeframe)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to compute profit report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute profit"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProfitReportResponse(report))
}
