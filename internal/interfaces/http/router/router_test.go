package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailorders/backend/internal/infrastructure/auth"
	"github.com/retailorders/backend/internal/infrastructure/config"
	"github.com/retailorders/backend/internal/interfaces/http/dto"
	"github.com/retailorders/backend/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-router-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "test",
	})

	engine := New(Dependencies{
		Config:    &config.Config{App: config.AppConfig{Env: "test"}},
		Logger:    zap.NewNop(),
		JWT:       jwtService,
		Blacklist: auth.NewInMemoryTokenBlacklist(),
		Handlers: Handlers{
			System: handler.NewSystemHandler("test"),
		},
	})
	return engine, jwtService
}

func accessTokenFor(t *testing.T, jwtService *auth.JWTService, role string) string {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "user@example.com",
		Role:   role,
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func TestHealthIsPublic(t *testing.T) {
	engine, _ := newTestEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	engine, _ := newTestEngine(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/user/details"},
		{http.MethodGet, "/api/v1/user/contacts"},
		{http.MethodGet, "/api/v1/basket"},
		{http.MethodGet, "/api/v1/orders"},
		{http.MethodGet, "/api/v1/partner/orders"},
	}

	for _, route := range protected {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, dto.ErrCodeAuthRequired, resp.Error.Code)
		})
	}
}

func TestPartnerRoutesRejectBuyers(t *testing.T) {
	engine, jwtService := newTestEngine(t)
	token := accessTokenFor(t, jwtService, "buyer")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/partner/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeForbidden, resp.Error.Code)
}

func TestUnknownRouteReturns404(t *testing.T) {
	engine, jwtService := newTestEngine(t)
	token := accessTokenFor(t, jwtService, "buyer")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResponsesCarryRequestID(t *testing.T) {
	engine, _ := newTestEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
