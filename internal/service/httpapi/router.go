package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/health"
)

// NewRouter собирает маршруты API заказов поверх общих middleware.
// healthHandler может быть nil: тогда сервисные маршруты не регистрируются.
func NewRouter(handler *OrderHandler, healthHandler *health.Handler, logger *log.Entry) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(logger))

	api := router.Group("/api/v1")
	{
		api.POST("/orders/batch", handler.BatchCreate)
		api.GET("/orders", handler.List)
	}

	if healthHandler != nil {
		router.GET("/healthz", gin.WrapF(health.LivenessHandler))
		router.GET("/readyz", gin.WrapF(healthHandler.ReadinessHandler))
		router.GET("/health", gin.WrapH(http.Handler(healthHandler)))
	}

	return router
}
