package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibespace/vibe-backend/internal/requestdata"
	"github.com/vibespace/vibe-backend/internal/services"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (th *TaskHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	offset, limit := paginationParams(c)

	tasks, err := th.taskService.List(c.Request.Context(), rd.UserID, offset, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, tasks)
}

func (th *TaskHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	var input services.TaskCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	task, err := th.taskService.Create(c.Request.Context(), rd.UserID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, task)
}

func (th *TaskHandler) Get(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := th.taskService.Get(c.Request.Context(), rd.UserID, taskID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, task)
}

func (th *TaskHandler) Update(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.TaskUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	task, err := th.taskService.Update(c.Request.Context(), rd.UserID, taskID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, task)
}

func (th *TaskHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := th.taskService.Delete(c.Request.Context(), rd.UserID, taskID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "task deleted successfully"})
}
