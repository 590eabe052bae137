package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"watchdog/internal/alert"
	"watchdog/internal/config"
	"watchdog/internal/server/api/handler"
	"watchdog/internal/server/state"
	"watchdog/pkg/middleware"
)

const routesTestConfig = `
regions:
  - name: eu-west
    groups:
      - name: core
        tests:
          - http https://example.org
`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.Parse([]byte(routesTestConfig))
	require.NoError(t, err)

	store := state.NewStore(zap.NewNop(), nil)
	store.Init(cfg)
	alerts := alert.NewManager(zap.NewNop())
	h := handler.NewWatchdogHandler(zap.NewNop(), store, alerts, func() *config.Config {
		return cfg
	})

	r := gin.New()
	SetUpWatchdogRoutes(r, h, middleware.NewAuthMiddleware("test-token"))
	return r
}

func TestSetUpWatchdogRoutes(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		token          string
		expectedStatus int
	}{
		{
			name:           "rejects requests without a token",
			method:         http.MethodGet,
			path:           "/api/v1/status",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "rejects requests with a wrong token",
			method:         http.MethodGet,
			path:           "/api/v1/config",
			token:          "wrong-token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "serves the configuration",
			method:         http.MethodGet,
			path:           "/api/v1/config",
			token:          "test-token",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "accepts relay pushes",
			method:         http.MethodPost,
			path:           "/api/v1/relay/eu-west",
			body:           `{"results":[{"group":"core","status":"ok"}]}`,
			token:          "test-token",
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "serves analytics",
			method:         http.MethodGet,
			path:           "/api/v1/analytics",
			token:          "test-token",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "serves the status summary",
			method:         http.MethodGet,
			path:           "/api/v1/status",
			token:          "test-token",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "serves the incident ledger",
			method:         http.MethodGet,
			path:           "/api/v1/incidents",
			token:          "test-token",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "returns not found for a missing incident",
			method:         http.MethodGet,
			path:           "/api/v1/incidents/missing",
			token:          "test-token",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "triggers test alerts",
			method:         http.MethodPost,
			path:           "/api/v1/alerting/test",
			token:          "test-token",
			expectedStatus: http.StatusNoContent,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := newTestRouter(t)
			req := httptest.NewRequest(test.method, test.path, strings.NewReader(test.body))
			req.Header.Set("Content-Type", "application/json")
			if test.token != "" {
				req.Header.Set("Authorization", "Bearer "+test.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, test.expectedStatus, w.Code)
		})
	}
}
