package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vibespace/vibe-backend/internal/handlers"
	"github.com/vibespace/vibe-backend/internal/logger"
	"github.com/vibespace/vibe-backend/internal/requestdata"
	"github.com/vibespace/vibe-backend/internal/services"
	"github.com/vibespace/vibe-backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier struct {
	identity *services.Identity
	err      error
}

func (s *stubVerifier) Verify(ctx context.Context, tokenString string) (*services.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

type stubUserService struct {
	ensureErr error
}

func (s *stubUserService) EnsureUser(ctx context.Context, identity *services.Identity) error {
	return s.ensureErr
}

func (s *stubUserService) GetMe(ctx context.Context, userID string) (*types.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserService) UpdateMe(ctx context.Context, userID string, input services.UserUpdateInput) (*types.User, error) {
	return nil, errors.New("not implemented")
}

func newAuthTestRouter(verifier services.ClerkVerifier, userService services.UserService) *gin.Engine {
	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	am := NewAuthMiddleware(log, verifier, userService)

	router := gin.New()
	router.GET("/protected", am.RequireAuth(), func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user_id": rd.UserID})
	})
	return router
}

func TestRequireAuthRejectionsUseErrorEnvelope(t *testing.T) {
	cases := []struct {
		name        string
		authHeader  string
		verifier    *stubVerifier
		userService *stubUserService
	}{
		{
			name:        "missing_header",
			authHeader:  "",
			verifier:    &stubVerifier{},
			userService: &stubUserService{},
		},
		{
			name:        "invalid_token",
			authHeader:  "Bearer bad-token",
			verifier:    &stubVerifier{err: services.AuthError{Reason: services.AuthReasonInvalidToken}},
			userService: &stubUserService{},
		},
		{
			name:        "ensure_user_failure",
			authHeader:  "Bearer good-token",
			verifier:    &stubVerifier{identity: &services.Identity{Sub: "user_abc"}},
			userService: &stubUserService{ensureErr: errors.New("db down")},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newAuthTestRouter(tc.verifier, tc.userService)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			var envelope handlers.ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("failed to decode body %q: %v", rec.Body.String(), err)
			}
			if envelope.Error.Code != "unauthorized" {
				t.Errorf("code = %q, want unauthorized", envelope.Error.Code)
			}
			if envelope.Error.Message == "" {
				t.Error("message is empty")
			}
		})
	}
}

func TestRequireAuthPassesIdentityThrough(t *testing.T) {
	verifier := &stubVerifier{identity: &services.Identity{Sub: "user_abc", Email: "a@example.com"}}
	router := newAuthTestRouter(verifier, &stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %q", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["user_id"] != "user_abc" {
		t.Errorf("user_id = %q, want user_abc", body["user_id"])
	}
}
