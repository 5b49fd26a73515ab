package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vibespace/vibe-backend/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondServiceError maps the domain error taxonomy onto status codes:
// auth 401, not found (or not owned) 404, conflicts and everything else 400.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case services.IsAuthError(err):
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	case services.IsNotFound(err):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case services.IsConflict(err):
		RespondError(c, http.StatusBadRequest, "conflict", err)
	default:
		RespondError(c, http.StatusBadRequest, "bad_request", err)
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return 0, false
	}
	return uint(id), true
}

func paginationParams(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return offset, limit
}
