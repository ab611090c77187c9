package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/activity_tracker/internal/core/ports/services"
	"github.com/SscSPs/activity_tracker/internal/dto"
	"github.com/SscSPs/activity_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

type missionHandler struct {
	missionService portssvc.MissionSvcFacade
}

// RegisterMissionRoutes registers the mission routes.
func RegisterMissionRoutes(rg *gin.RouterGroup, missionService portssvc.MissionSvcFacade) {
	h := &missionHandler{missionService: missionService}

	missions := rg.Group("/missions")
	{
		missions.POST("", h.createMission)
		missions.GET("", h.listMissions)
		missions.GET("/:missionID", h.getMission)
		missions.PUT("/:missionID", h.updateMission)
		missions.DELETE("/:missionID", h.deleteMission)
	}
}

// createMission godoc
// @Summary Create a mission
// @Description Creates a mission for an owned client. Without companyID the default company is used
// @Tags missions
// @Accept  json
// @Produce  json
// @Param   mission body dto.CreateMissionRequest true "Mission details"
// @Success 201 {object} dto.MissionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Client or company not found"
// @Security BearerAuth
// @Router /missions [post]
func (h *missionHandler) createMission(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateMissionRequest
	if !bindJSON(c, &req, "CreateMission") {
		return
	}
	mission, err := h.missionService.CreateMission(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create mission")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Mission created", slog.String("mission_id", mission.MissionID))
	c.JSON(http.StatusCreated, dto.ToMissionResponse(mission))
}

// listMissions godoc
// @Summary List missions
// @Tags missions
// @Produce  json
// @Param   clientID query string false "Only missions of this client"
// @Param   companyID query string false "Only missions of this company"
// @Param   active query bool false "Only active missions"
// @Success 200 {array} dto.MissionResponse
// @Security BearerAuth
// @Router /missions [get]
func (h *missionHandler) listMissions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListMissionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	missions, err := h.missionService.ListMissions(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list missions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMissionResponse(missions))
}

// getMission godoc
// @Summary Get a mission
// @Tags missions
// @Produce  json
// @Param   missionID path string true "Mission ID"
// @Success 200 {object} dto.MissionResponse
// @Failure 404 {object} map[string]string "Mission not found"
// @Security BearerAuth
// @Router /missions/{missionID} [get]
func (h *missionHandler) getMission(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	mission, err := h.missionService.GetMissionByID(c.Request.Context(), userID, c.Param("missionID"))
	if err != nil {
		respondError(c, err, "Failed to get mission")
		return
	}
	c.JSON(http.StatusOK, dto.ToMissionResponse(mission))
}

// updateMission godoc
// @Summary Update a mission
// @Description Rate changes do not affect existing reports, which keep their snapshot
// @Tags missions
// @Accept  json
// @Produce  json
// @Param   missionID path string true "Mission ID"
// @Param   mission body dto.UpdateMissionRequest true "Fields to update"
// @Success 200 {object} dto.MissionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Mission not found"
// @Security BearerAuth
// @Router /missions/{missionID} [put]
func (h *missionHandler) updateMission(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateMissionRequest
	if !bindJSON(c, &req, "UpdateMission") {
		return
	}
	mission, err := h.missionService.UpdateMission(c.Request.Context(), c.Param("missionID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update mission")
		return
	}
	c.JSON(http.StatusOK, dto.ToMissionResponse(mission))
}

// deleteMission godoc
// @Summary Delete a mission
// @Description Fails while reports reference the mission
// @Tags missions
// @Param   missionID path string true "Mission ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Mission still has reports"
// @Failure 404 {object} map[string]string "Mission not found"
// @Security BearerAuth
// @Router /missions/{missionID} [delete]
func (h *missionHandler) deleteMission(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.missionService.DeleteMission(c.Request.Context(), c.Param("missionID"), userID); err != nil {
		respondError(c, err, "Failed to delete mission")
		return
	}
	c.Status(http.StatusNoContent)
}
