package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"watchdog/internal/alert"
	"watchdog/internal/config"
	"watchdog/internal/server/api/dto/request"
	"watchdog/internal/server/api/dto/response"
	"watchdog/internal/server/state"
)

type WatchdogHandler interface {
	GetConfig() gin.HandlerFunc
	IngestResults() gin.HandlerFunc
	GetAnalytics() gin.HandlerFunc
	GetStatus() gin.HandlerFunc
	GetIncidents() gin.HandlerFunc
	GetIncident() gin.HandlerFunc
	TestAlerting() gin.HandlerFunc
}

// ConfigProvider returns the currently applied configuration snapshot.
type ConfigProvider func() *config.Config

type watchdogHandler struct {
	logger    *zap.Logger
	store     *state.Store
	alerts    *alert.Manager
	getConfig ConfigProvider
	validator *validator.Validate
}

func NewWatchdogHandler(logger *zap.Logger, store *state.Store, alerts *alert.Manager, getConfig ConfigProvider) WatchdogHandler {
	return &watchdogHandler{
		logger:    logger,
		store:     store,
		alerts:    alerts,
		getConfig: getConfig,
		validator: validator.New(),
	}
}

// GetConfig serves the normalized configuration with its content hash, the
// relay side uses the hash to detect changes.
func (h *watchdogHandler) GetConfig() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, h.getConfig())
	}
}

func (h *watchdogHandler) IngestResults() gin.HandlerFunc {
	return func(c *gin.Context) {
		region := c.Param("region")

		var req request.IngestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Response{
				Message: "Invalid request body",
			})
			return
		}
		if err := h.validator.Struct(req); err != nil {
			c.JSON(http.StatusBadRequest, response.Response{
				Message: fmt.Sprintf("Invalid request body: %v", err),
			})
			return
		}

		results := make([]state.GroupResult, 0, len(req.Results))
		for _, result := range req.Results {
			results = append(results, state.GroupResult{
				Group: result.Group,
				OK:    result.Status == "ok",
			})
		}

		if err := h.store.Ingest(region, results); err != nil {
			if errors.Is(err, state.ErrUnknownRegion) {
				c.JSON(http.StatusNotFound, response.Response{
					Message: fmt.Sprintf("Region %s is not configured", region),
				})
				return
			}
			err = fmt.Errorf("WatchdogHandler.IngestResults: %w", err)
			h.loggingError(c, err, "failed to ingest relay results", zap.ErrorLevel)
			c.JSON(http.StatusInternalServerError, response.Response{
				Message: "Internal Server Error",
			})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (h *watchdogHandler) GetAnalytics() gin.HandlerFunc {
	return func(c *gin.Context) {
		summary := h.store.Summary()
		c.JSON(http.StatusOK, response.AnalyticsResponse{
			Regions:   response.NewRegionItems(summary.Regions),
			Groups:    response.NewGroupItems(summary.Groups),
			Incidents: response.NewIncidentItems(summary.Incidents),
		})
	}
}

func (h *watchdogHandler) GetStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		summary := h.store.Summary()
		c.JSON(http.StatusOK, response.StatusResponse{
			Regions: response.NewRegionItems(summary.Regions),
			Groups:  response.NewGroupItems(summary.Groups),
		})
	}
}

func (h *watchdogHandler) GetIncidents() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, response.IncidentsResponse{
			Incidents: response.NewIncidentItems(h.store.Incidents()),
		})
	}
}

func (h *watchdogHandler) GetIncident() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		incident, found := h.store.Incident(id)
		if !found {
			c.JSON(http.StatusNotFound, response.Response{
				Message: "Could not find incident",
			})
			return
		}
		items := response.NewIncidentItems([]state.Incident{incident})
		c.JSON(http.StatusOK, items[0])
	}
}

func (h *watchdogHandler) TestAlerting() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.alerts.TestAll(c.Request.Context()); err != nil {
			err = fmt.Errorf("WatchdogHandler.TestAlerting: %w", err)
			h.loggingError(c, err, "failed to send test alerts", zap.ErrorLevel)
			c.JSON(http.StatusBadGateway, response.Response{
				Message: "Could not deliver test alerts to every medium",
			})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
