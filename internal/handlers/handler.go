package handlers

import (
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"solar_telemetry/internal/charts"
	"solar_telemetry/internal/logger"
	"solar_telemetry/internal/service"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	registry *charts.Registry
	log      *logger.Logger
}

func NewHandler(services *service.Service, registry *charts.Registry, log *logger.Logger) *Handler {
	return &Handler{services: services, registry: registry, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	api := router.Group("/api/v1")
	{
		api.POST("/ingest", h.ingest)
		api.GET("/dates", h.getDates)
		api.GET("/aggregates", h.getAggregates)
		api.GET("/readings", h.getReadings)
		api.GET("/charts", h.getCharts)
		api.GET("/logs", h.getLogs)

		exp := api.Group("/export")
		{
			exp.GET("/csv", h.exportCSV)
			exp.GET("/xlsx", h.exportXLSX)
		}
	}

	// live snapshot stream (HTTP upgrade) on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
