package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"doctqr-server/internal/config"
	"doctqr-server/internal/models"
	"doctqr-server/internal/utils"
)

func testRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(cfg), func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.String(http.StatusInternalServerError, "no user id in context")
			return
		}
		c.String(http.StatusOK, userID)
	})
	return r
}

func signedToken(t *testing.T, cfg *config.Config, userID string) string {
	t.Helper()
	u := &models.User{Email: "jane@example.com"}
	u.ID = userID
	token, err := utils.GenerateToken(u, cfg)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func TestAuthMiddlewareBearerHeader(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1}
	router := testRouter(cfg)
	token := signedToken(t, cfg, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	if w.Body.String() != "user-1" {
		t.Errorf("user id %q in context, want user-1", w.Body.String())
	}
}

func TestAuthMiddlewareCookieFallback(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1}
	router := testRouter(cfg)
	token := signedToken(t, cfg, "user-2")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthTokenCookie, Value: token})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareRejects(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1}
	router := testRouter(cfg)

	cases := []struct {
		name   string
		header string
	}{
		{"no credentials", ""},
		{"malformed header", "Token abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			router.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status %d, want 401", w.Code)
			}
		})
	}
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1}
	other := &config.Config{JWTSecret: "other-secret", JWTExpirationHours: 1}
	router := testRouter(cfg)
	token := signedToken(t, other, "user-3")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", w.Code)
	}
}
