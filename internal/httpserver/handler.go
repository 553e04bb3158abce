package httpserver

import (
	"alerts-srv/internal/middleware"
)

const Api = "/api/v1"

func (srv *HTTPServer) mapHandlers() {
	srv.gin.Use(middleware.Recovery(srv.logger))
	srv.gin.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	api := srv.gin.Group(Api)
	api.GET("/alerts", srv.listAlerts)
	api.GET("/alerts/:id", srv.detailAlert)
	api.POST("/alerts", srv.createAlert)
	api.PATCH("/alerts/:id", srv.updateAlert)
	api.POST("/alerts/sync", srv.syncAlerts)
	api.GET("/dashboard", srv.dashboard)
}
