package routes

import (
	"github.com/gin-gonic/gin"

	"watchdog/internal/server/api/handler"
	"watchdog/pkg/middleware"
)

func SetUpWatchdogRoutes(r *gin.Engine, h handler.WatchdogHandler, m middleware.AuthMiddleware) {
	api := r.Group("/api/v1", m.CheckToken())
	api.GET("/config", h.GetConfig())
	api.POST("/relay/:region", h.IngestResults())
	api.GET("/analytics", h.GetAnalytics())
	api.GET("/status", h.GetStatus())
	api.GET("/incidents", h.GetIncidents())
	api.GET("/incidents/:id", h.GetIncident())
	api.POST("/alerting/test", h.TestAlerting())
}
