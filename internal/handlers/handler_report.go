package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	portssvc "github.com/SscSPs/activity_tracker/internal/core/ports/services"
	"github.com/SscSPs/activity_tracker/internal/dto"
	"github.com/SscSPs/activity_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

var exportContentTypes = map[string]string{
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

// RegisterReportRoutes registers the activity report routes.
func RegisterReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	h := &reportHandler{reportService: reportService}

	reports := rg.Group("/reports")
	{
		reports.POST("", h.createReport)
		reports.GET("", h.listReports)
		reports.GET("/:reportID", h.getReport)
		reports.PATCH("/:reportID", h.updateReport)
		reports.DELETE("/:reportID", h.deleteReport)
		reports.PATCH("/:reportID/entries", h.updateEntries)
		reports.POST("/:reportID/auto-fill", h.autoFill)
		reports.POST("/:reportID/clear", h.clear)
		reports.GET("/:reportID/export", h.exportReport)
	}
}

// createReport godoc
// @Summary Create an activity report
// @Description Opens a DRAFT report for a mission and month with one zero entry per calendar day
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   report body dto.CreateReportRequest true "Mission and period"
// @Success 201 {object} dto.ReportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Mission not found"
// @Failure 409 {object} map[string]string "A report already exists for this mission and month"
// @Security BearerAuth
// @Router /reports [post]
func (h *reportHandler) createReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateReportRequest
	if !bindJSON(c, &req, "CreateReport") {
		return
	}
	report, err := h.reportService.CreateReport(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create report")
		return
	}
	c.JSON(http.StatusCreated, dto.ToReportResponse(report))
}

// listReports godoc
// @Summary List activity reports
// @Description Reports are returned without their entries
// @Tags reports
// @Produce  json
// @Param   year query int false "Year"
// @Param   month query int false "Month (1-12)"
// @Param   missionID query string false "Mission ID"
// @Param   status query string false "DRAFT or COMPLETED"
// @Success 200 {array} dto.ReportResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /reports [get]
func (h *reportHandler) listReports(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListReportsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	reports, err := h.reportService.ListReports(c.Request.Context(), userID, params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to list reports")
		return
	}
	c.JSON(http.StatusOK, dto.ToListReportResponse(reports))
}

// getReport godoc
// @Summary Get an activity report
// @Tags reports
// @Produce  json
// @Param   reportID path string true "Report ID"
// @Success 200 {object} dto.ReportResponse
// @Failure 404 {object} map[string]string "Report not found"
// @Security BearerAuth
// @Router /reports/{reportID} [get]
func (h *reportHandler) getReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	report, err := h.reportService.GetReport(c.Request.Context(), userID, c.Param("reportID"))
	if err != nil {
		respondError(c, err, "Failed to get report")
		return
	}
	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}

// updateReport godoc
// @Summary Update report status or note
// @Description Moves the report between DRAFT and COMPLETED. The note can only change while the report is, or becomes, DRAFT
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   reportID path string true "Report ID"
// @Param   update body dto.UpdateReportRequest true "Status and/or note"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 409 {object} map[string]string "Report is completed"
// @Security BearerAuth
// @Router /reports/{reportID} [patch]
func (h *reportHandler) updateReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateReportRequest
	if !bindJSON(c, &req, "UpdateReport") {
		return
	}
	report, err := h.reportService.UpdateReport(c.Request.Context(), c.Param("reportID"), req.ToReportUpdate(), userID)
	if err != nil {
		respondError(c, err, "Failed to update report")
		return
	}
	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}

// updateEntries godoc
// @Summary Update report entries
// @Description Applies a batch of entry edits atomically; the total is recomputed from the entries
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   reportID path string true "Report ID"
// @Param   entries body dto.UpdateEntriesRequest true "Entry updates"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} map[string]string "Invalid value or unknown entry"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 409 {object} map[string]string "Report is completed"
// @Security BearerAuth
// @Router /reports/{reportID}/entries [patch]
func (h *reportHandler) updateEntries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateEntriesRequest
	if !bindJSON(c, &req, "UpdateEntries") {
		return
	}
	report, err := h.reportService.ApplyEntryUpdates(c.Request.Context(), c.Param("reportID"), req.ToEntryUpdates(), userID)
	if err != nil {
		respondError(c, err, "Failed to update report entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}

// autoFill godoc
// @Summary Fill workdays
// @Description Sets every entry that is neither weekend nor holiday to a full day
// @Tags reports
// @Produce  json
// @Param   reportID path string true "Report ID"
// @Success 200 {object} dto.ReportResponse
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 409 {object} map[string]string "Report is completed"
// @Security BearerAuth
// @Router /reports/{reportID}/auto-fill [post]
func (h *reportHandler) autoFill(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	report, err := h.reportService.AutoFill(c.Request.Context(), c.Param("reportID"), userID)
	if err != nil {
		respondError(c, err, "Failed to auto-fill report")
		return
	}
	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}

// clear godoc
// @Summary Clear a report
// @Description Sets every entry value to zero
// @Tags reports
// @Produce  json
// @Param   reportID path string true "Report ID"
// @Success 200 {object} dto.ReportResponse
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 409 {object} map[string]string "Report is completed"
// @Security BearerAuth
// @Router /reports/{reportID}/clear [post]
func (h *reportHandler) clear(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	report, err := h.reportService.Clear(c.Request.Context(), c.Param("reportID"), userID)
	if err != nil {
		respondError(c, err, "Failed to clear report")
		return
	}
	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}

// deleteReport godoc
// @Summary Delete a draft report
// @Tags reports
// @Param   reportID path string true "Report ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 409 {object} map[string]string "Report is completed"
// @Security BearerAuth
// @Router /reports/{reportID} [delete]
func (h *reportHandler) deleteReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.reportService.DeleteReport(c.Request.Context(), c.Param("reportID"), userID); err != nil {
		respondError(c, err, "Failed to delete report")
		return
	}
	c.Status(http.StatusNoContent)
}

// exportReport godoc
// @Summary Export a completed report
// @Description Downloads the report as a spreadsheet. Draft reports cannot be exported
// @Tags reports
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   reportID path string true "Report ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 409 {object} map[string]string "Report is draft"
// @Security BearerAuth
// @Router /reports/{reportID}/export [get]
func (h *reportHandler) exportReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	filename, err := h.reportService.ExportReport(c.Request.Context(), c.Param("reportID"), userID, &buf)
	if err != nil {
		respondError(c, err, "Failed to export report")
		return
	}

	contentType, ok := exportContentTypes[filepath.Ext(filename)]
	if !ok {
		contentType = "application/octet-stream"
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Report exported",
		slog.String("report_id", c.Param("reportID")),
		slog.Int("bytes", buf.Len()))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
