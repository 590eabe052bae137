package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"watchdog/internal/alert"
	mockalert "watchdog/internal/alert/mocks"
	"watchdog/internal/config"
	"watchdog/internal/server/state"
)

const handlerTestConfig = `
regions:
  - name: eu-west
    interval: 1s
    threshold: 3
    groups:
      - name: core
        threshold: 2
        tests:
          - http https://example.org
`

func newTestHandler(t *testing.T, sinks ...alert.Sink) (WatchdogHandler, *state.Store) {
	t.Helper()
	cfg, err := config.Parse([]byte(handlerTestConfig))
	require.NoError(t, err)

	store := state.NewStore(zap.NewNop(), nil)
	store.Init(cfg)
	alerts := alert.NewManager(zap.NewNop(), sinks...)
	return NewWatchdogHandler(zap.NewNop(), store, alerts, func() *config.Config {
		return cfg
	}), store
}

func performRequest(r *gin.Engine, method string, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWatchdogHandler_GetConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := newTestHandler(t)
	r := gin.New()
	r.GET("/api/v1/config", h.GetConfig())

	w := performRequest(r, http.MethodGet, "/api/v1/config", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Hash    string `json:"hash"`
		Regions []struct {
			Name string `json:"name"`
		} `json:"regions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Hash)
	require.Len(t, resp.Regions, 1)
	assert.Equal(t, "eu-west", resp.Regions[0].Name)
}

func TestWatchdogHandler_IngestResults(t *testing.T) {
	tests := []struct {
		name           string
		region         string
		body           string
		expectedStatus int
	}{
		{
			name:           "accepts a valid push",
			region:         "eu-west",
			body:           `{"results":[{"group":"core","status":"ok"}]}`,
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "rejects an unknown region",
			region:         "mars-central",
			body:           `{"results":[{"group":"core","status":"ok"}]}`,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "rejects a malformed body",
			region:         "eu-west",
			body:           `{"results":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "rejects an unknown status value",
			region:         "eu-west",
			body:           `{"results":[{"group":"core","status":"maybe"}]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "rejects a missing results field",
			region:         "eu-west",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			h, _ := newTestHandler(t)
			r := gin.New()
			r.POST("/api/v1/relay/:region", h.IngestResults())

			w := performRequest(r, http.MethodPost, "/api/v1/relay/"+test.region, []byte(test.body))
			assert.Equal(t, test.expectedStatus, w.Code)
		})
	}
}

func TestWatchdogHandler_GetStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, store := newTestHandler(t)
	r := gin.New()
	r.GET("/api/v1/status", h.GetStatus())

	require.NoError(t, store.Ingest("eu-west", []state.GroupResult{{Group: "core", OK: true}}))

	w := performRequest(r, http.MethodGet, "/api/v1/status", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Regions []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"regions"`
		Groups []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
			Stale  bool   `json:"stale"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Regions, 1)
	assert.Equal(t, "up", resp.Regions[0].Status)
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, "eu-west.core", resp.Groups[0].Name)
	assert.Equal(t, "up", resp.Groups[0].Status)
	assert.False(t, resp.Groups[0].Stale)
}

func TestWatchdogHandler_GetAnalyticsIncludesIncidents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, store := newTestHandler(t)
	r := gin.New()
	r.GET("/api/v1/analytics", h.GetAnalytics())

	for i := 0; i < 2; i++ {
		require.NoError(t, store.Ingest("eu-west", []state.GroupResult{{Group: "core", OK: false}}))
	}

	w := performRequest(r, http.MethodGet, "/api/v1/analytics", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Incidents []struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"incidents"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Incidents, 1)
	assert.Equal(t, "opened", resp.Incidents[0].Kind)
	assert.Contains(t, resp.Incidents[0].Message, "core")
}

func TestWatchdogHandler_GetIncident(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, store := newTestHandler(t)
	r := gin.New()
	r.GET("/api/v1/incidents", h.GetIncidents())
	r.GET("/api/v1/incidents/:id", h.GetIncident())

	for i := 0; i < 2; i++ {
		require.NoError(t, store.Ingest("eu-west", []state.GroupResult{{Group: "core", OK: false}}))
	}
	incidents := store.Incidents()
	require.Len(t, incidents, 1)

	w := performRequest(r, http.MethodGet, "/api/v1/incidents/"+incidents[0].ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var item struct {
		ID   string `json:"id"`
		Kind string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, incidents[0].ID, item.ID)
	assert.Equal(t, "opened", item.Kind)

	w = performRequest(r, http.MethodGet, "/api/v1/incidents/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWatchdogHandler_TestAlerting(t *testing.T) {
	tests := []struct {
		name           string
		dispatchErr    error
		expectedStatus int
	}{
		{
			name:           "returns no content when every medium delivers",
			dispatchErr:    nil,
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "returns bad gateway when a medium fails",
			dispatchErr:    fmt.Errorf("connection refused"),
			expectedStatus: http.StatusBadGateway,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			ctrl := gomock.NewController(t)
			sink := mockalert.NewMockSink(ctrl)
			sink.EXPECT().Name().Return("telegram").AnyTimes()
			sink.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(test.dispatchErr)

			h, _ := newTestHandler(t, sink)
			r := gin.New()
			r.POST("/api/v1/alerting/test", h.TestAlerting())

			w := performRequest(r, http.MethodPost, "/api/v1/alerting/test", nil)
			assert.Equal(t, test.expectedStatus, w.Code)
		})
	}
}
