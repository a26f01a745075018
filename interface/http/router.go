package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/alexmorbo/slackhook/interface/http/handler"
	"github.com/alexmorbo/slackhook/interface/http/middleware"
)

const maxRequestBody = 1 << 20

func NewRouter(
	log *slog.Logger,
	messageHandler *handler.MessageHandler,
	healthHandler *handler.HealthHandler,
) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery(log))

	// Probes and scraping skip the request middleware.
	router.GET("/health/live", healthHandler.Live)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/metrics", healthHandler.Metrics)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RequestID())
	v1.Use(middleware.BodyLimit(maxRequestBody))
	v1.Use(middleware.Metrics())
	v1.Use(middleware.Logging(log))
	{
		v1.POST("/messages", messageHandler.SendMessage)
		v1.GET("/deliveries/:id", messageHandler.GetDelivery)
	}

	return router
}
