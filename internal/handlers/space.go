package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibespace/vibe-backend/internal/requestdata"
	"github.com/vibespace/vibe-backend/internal/services"
)

type SpaceHandler struct {
	spaceService services.SpaceService
}

func NewSpaceHandler(spaceService services.SpaceService) *SpaceHandler {
	return &SpaceHandler{spaceService: spaceService}
}

func (sh *SpaceHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	var input services.SpaceCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	space, err := sh.spaceService.Create(c.Request.Context(), rd.UserID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, space)
}

func (sh *SpaceHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	spaces, err := sh.spaceService.ListAll(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, spaces)
}

func (sh *SpaceHandler) GetActive(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	if err := sh.spaceService.EnsureDefault(c.Request.Context(), rd.UserID); err != nil {
		RespondServiceError(c, err)
		return
	}
	space, err := sh.spaceService.GetActive(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, space)
}

func (sh *SpaceHandler) Get(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	spaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	space, err := sh.spaceService.Get(c.Request.Context(), rd.UserID, spaceID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, space)
}

func (sh *SpaceHandler) Update(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	spaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.SpaceUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	space, err := sh.spaceService.Update(c.Request.Context(), rd.UserID, spaceID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, space)
}

func (sh *SpaceHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	spaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := sh.spaceService.Delete(c.Request.Context(), rd.UserID, spaceID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "space deleted successfully"})
}

func (sh *SpaceHandler) Activate(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	spaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	space, err := sh.spaceService.Activate(c.Request.Context(), rd.UserID, spaceID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, space)
}
