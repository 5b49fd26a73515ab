package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vibespace/vibe-backend/internal/handlers"
	"github.com/vibespace/vibe-backend/internal/logger"
	"github.com/vibespace/vibe-backend/internal/requestdata"
	"github.com/vibespace/vibe-backend/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	verifier    services.ClerkVerifier
	userService services.UserService
}

func NewAuthMiddleware(log *logger.Logger, verifier services.ClerkVerifier, userService services.UserService) *AuthMiddleware {
	middlewareLog := log.With("middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLog, verifier: verifier, userService: userService}
}

// RequireAuth verifies the bearer token, makes sure the user row exists and
// stores the identity in the request context.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			handlers.RespondError(c, http.StatusUnauthorized, "unauthorized", services.AuthError{Reason: services.AuthReasonMissingToken})
			c.Abort()
			return
		}

		identity, err := am.verifier.Verify(c.Request.Context(), tokenString)
		if err != nil {
			am.log.Debug("Token verification failed", "error", err)
			handlers.RespondError(c, http.StatusUnauthorized, "unauthorized", err)
			c.Abort()
			return
		}

		if err := am.userService.EnsureUser(c.Request.Context(), identity); err != nil {
			am.log.Error("Failed to ensure user", "user_id", identity.Sub, "error", err)
			handlers.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("could not resolve user"))
			c.Abort()
			return
		}

		ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{
			UserID: identity.Sub,
			Email:  identity.Email,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
