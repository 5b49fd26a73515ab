package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vibespace/vibe-backend/internal/requestdata"
	"github.com/vibespace/vibe-backend/internal/services"
)

type AchievementHandler struct {
	achievementService services.AchievementService
}

func NewAchievementHandler(achievementService services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

func (ah *AchievementHandler) ListAll(c *gin.Context) {
	achievements, err := ah.achievementService.ListAll(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, achievements)
}

func (ah *AchievementHandler) ListForUser(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	records, err := ah.achievementService.ListForUser(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, records)
}

func (ah *AchievementHandler) ListUnlocked(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	records, err := ah.achievementService.ListUnlocked(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, records)
}

func (ah *AchievementHandler) ListInProgress(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	records, err := ah.achievementService.ListInProgress(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, records)
}

func (ah *AchievementHandler) Unlock(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	var body struct {
		AchievementCode string `json:"achievement_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	record, err := ah.achievementService.Unlock(c.Request.Context(), rd.UserID, body.AchievementCode)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, record)
}

func (ah *AchievementHandler) UpdateProgress(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	code := c.Param("code")

	progress, err := strconv.Atoi(c.Query("progress"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_progress", err)
		return
	}

	record, err := ah.achievementService.UpdateProgress(c.Request.Context(), rd.UserID, code, progress)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, record)
}

func (ah *AchievementHandler) Stats(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	stats, err := ah.achievementService.Stats(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, stats)
}
