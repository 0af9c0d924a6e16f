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

// partyHandler handles HTTP requests related to parties and their balances.
type partyHandler struct {
	partyService portssvc.PartySvcFacade
}

func newPartyHandler(ps portssvc.PartySvcFacade) *partyHandler {
	return &partyHandler{partyService: ps}
}

// registerPartyRoutes registers routes related to parties.
func registerPartyRoutes(rg *gin.RouterGroup, partyService portssvc.PartySvcFacade) {
	h := newPartyHandler(partyService)

	parties := rg.Group("/parties")
	{
		parties.POST("", h.createParty)
		parties.GET("", h.listParties)
		parties.GET("/:id", h.getParty)
		parties.GET("/:id/balances", h.getPartyBalances)
	}
}

// createParty godoc
// @Summary Create a new party
// @Description Creates a customer, middleman or supplier with a zero starting balance
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   party body dto.CreatePartyRequest true "Party details"
// @Success 201 {object} dto.PartyResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create party"
// @Security BearerAuth
// @Router /parties [post]
func (h *partyHandler) createParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	party, err := h.partyService.CreateParty(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create party", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create party"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPartyResponse(party))
}

// listParties godoc
// @Summary List parties
// @Description Retrieves parties, optionally filtered by type (CUSTOMER, MIDDLEMAN or SUPPLIER)
// @Tags parties
// @Produce  json
// @Param   type query string false "Party type filter"
// @Success 200 {array} dto.PartyResponse
// @Failure 400 {object} ErrorResponse "Unknown party type"
// @Failure 500 {object} ErrorResponse "Failed to list parties"
// @Security BearerAuth
// @Router /parties [get]
func (h *partyHandler) listParties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var partyType *domain.PartyType
	if typeParam := c.Query("type"); typeParam != "" {
		t := domain.PartyType(typeParam)
		switch t {
		case domain.PartyCustomer, domain.PartyMiddleman, domain.PartySupplier:
			partyType = &t
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown party type: " + typeParam})
			return
		}
	}

	parties, err := h.partyService.ListParties(c.Request.Context(), partyType)
	if err != nil {
		logger.Error("Failed to list parties", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list parties"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListPartyResponse(parties))
}

// getParty godoc
// @Summary Get a party by ID
// @Description Retrieves a single party record
// @Tags parties
// @Produce  json
// @Param   id path string true "Party ID"
// @Success 200 {object} dto.PartyResponse
// @Failure 404 {object} ErrorResponse "Party not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve party"
// @Security BearerAuth
// @Router /parties/{id} [get]
func (h *partyHandler) getParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("id")

	party, err := h.partyService.GetParty(c.Request.Context(), partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPartyNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Party not found"})
		} else {
			logger.Error("Failed to get party", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve party"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}

// getPartyBalances godoc
// @Summary Get a party's balances
// @Description Retrieves a party's base-currency balance and per-currency balances. Use "myself" for the operator's cash position.
// @Tags parties
// @Produce  json
// @Param   id path string true "Party ID or 'myself'"
// @Success 200 {object} dto.PartyBalancesResponse
// @Failure 404 {object} ErrorResponse "Party not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve balances"
// @Security BearerAuth
// @Router /parties/{id}/balances [get]
func (h *partyHandler) getPartyBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("id")

	balances, err := h.partyService.GetPartyBalances(c.Request.Context(), partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPartyNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Party not found"})
		} else {
			logger.Error("Failed to get party balances", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve balances"})
		}
		return
	}

	c.JSON(http.StatusOK, balances)
}
