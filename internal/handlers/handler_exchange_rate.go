package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/activity_tracker/internal/core/ports/services"
	"github.com/SscSPs/activity_tracker/internal/dto"
	"github.com/SscSPs/activity_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
	converter           portssvc.CurrencyConverter
}

// RegisterExchangeRateRoutes registers routes related to exchange rates.
func RegisterExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade, converter portssvc.CurrencyConverter) {
	h := &exchangeRateHandler{exchangeRateService: exchangeRateService, converter: converter}

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.POST("", h.createExchangeRate)
		exchangeRates.GET("/snapshot", h.getSnapshot)
	}
}

// createExchangeRate godoc
// @Summary Store an exchange rate
// @Description Adds a rate quoted as units of toCurrencyCode per one USD for a specific date
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.CreateExchangeRateRequest true "Exchange Rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create exchange rate"
// @Security BearerAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	creatorUserID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateExchangeRateRequest
	if !bindJSON(c, &req, "CreateExchangeRate") {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create exchange rate",
		slog.String("from", req.FromCurrencyCode),
		slog.String("to", req.ToCurrencyCode),
		slog.String("rate", req.Rate.String()),
		slog.Time("date_effective", req.DateEffective),
	)

	createdRate, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create exchange rate")
		return
	}

	logger.Info("Exchange rate created successfully", slog.String("rate_id", createdRate.ExchangeRateID))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(createdRate))
}

// getSnapshot godoc
// @Summary Current conversion table
// @Description Returns the rate snapshot the converter is serving
// @Tags exchange rates
// @Produce  json
// @Success 200 {object} dto.RateSnapshotResponse
// @Failure 503 {object} map[string]string "No rates loaded yet"
// @Security BearerAuth
// @Router /exchange-rates/snapshot [get]
func (h *exchangeRateHandler) getSnapshot(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}
	snap := h.converter.Snapshot()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "exchange rates have not been loaded yet"})
		return
	}
	c.JSON(http.StatusOK, dto.ToRateSnapshotResponse(snap))
}
