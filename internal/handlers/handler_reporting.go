package handlers

import (
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/activity_tracker/internal/core/ports/services"
	"github.com/SscSPs/activity_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// RegisterReportingRoutes registers the yearly analytics route.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &reportingHandler{reportingService: reportingService}
	rg.GET("/reporting/yearly", h.getYearlyReport)
}

// getYearlyReport godoc
// @Summary Yearly activity and revenue
// @Description Aggregates COMPLETED reports of a year. Revenue figures are converted to the requested currency
// @Tags reporting
// @Produce  json
// @Param   year query int true "Year"
// @Param   currency query string false "Base currency (ISO 4217), defaults to the configured one"
// @Param   country query string false "Holiday calendar for workingDaysInYear (ISO 3166-1 alpha-2)"
// @Success 200 {object} dto.YearlyReportResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 503 {object} map[string]string "Exchange rates unavailable"
// @Security BearerAuth
// @Router /reporting/yearly [get]
func (h *reportingHandler) getYearlyReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.YearlyReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	data, err := h.reportingService.ComputeYearlyReport(c.Request.Context(), userID, params.Year,
		strings.ToUpper(params.Currency), strings.ToUpper(params.Country))
	if err != nil {
		respondError(c, err, "Failed to compute yearly report")
		return
	}
	c.JSON(http.StatusOK, dto.ToYearlyReportResponse(data))
}
