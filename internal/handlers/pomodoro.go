package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vibespace/vibe-backend/internal/requestdata"
	"github.com/vibespace/vibe-backend/internal/services"
)

type PomodoroHandler struct {
	pomodoroService services.PomodoroService
}

func NewPomodoroHandler(pomodoroService services.PomodoroService) *PomodoroHandler {
	return &PomodoroHandler{pomodoroService: pomodoroService}
}

func (ph *PomodoroHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	var input services.PomodoroCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	session, err := ph.pomodoroService.Create(c.Request.Context(), rd.UserID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, session)
}

func (ph *PomodoroHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	offset, limit := paginationParams(c)

	var taskID *uint
	if raw := c.Query("task_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_task_id", err)
			return
		}
		id := uint(parsed)
		taskID = &id
	}

	sessions, err := ph.pomodoroService.List(c.Request.Context(), rd.UserID, taskID, offset, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, sessions)
}

func (ph *PomodoroHandler) GetActive(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	session, err := ph.pomodoroService.GetActive(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, session)
}

func (ph *PomodoroHandler) Stats(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	stats, err := ph.pomodoroService.Stats(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, stats)
}

func (ph *PomodoroHandler) Get(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := ph.pomodoroService.Get(c.Request.Context(), rd.UserID, sessionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, session)
}

func (ph *PomodoroHandler) Update(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.PomodoroUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	session, err := ph.pomodoroService.Update(c.Request.Context(), rd.UserID, sessionID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, session)
}

func (ph *PomodoroHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ph.pomodoroService.Delete(c.Request.Context(), rd.UserID, sessionID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "pomodoro session deleted successfully"})
}
