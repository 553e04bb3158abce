package httpserver

import (
	"net/http"

	"alerts-srv/pkg/errors"
	"alerts-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

func (srv *HTTPServer) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	redisStatus := "disabled"
	if srv.redis != nil {
		if err := srv.redis.Ping(ctx); err != nil {
			response.HttpError(c, errors.NewHTTPError(http.StatusServiceUnavailable, "Redis connection failed"))
			return
		}
		redisStatus = "connected"
	}

	response.OK(c, gin.H{
		"status":  "healthy",
		"service": "alerts-srv",
		"jobs":    len(srv.jobs),
		"redis":   redisStatus,
	})
}

func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if srv.redis != nil {
		if err := srv.redis.Ping(ctx); err != nil {
			response.HttpError(c, errors.NewHTTPError(http.StatusServiceUnavailable, "Redis connection not available"))
			return
		}
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"service": "alerts-srv",
	})
}

func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"service": "alerts-srv",
	})
}
