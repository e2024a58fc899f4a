// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/procuresmart/backend-go/internal/api/handlers"
	"github.com/procuresmart/backend-go/internal/api/middleware"
	"github.com/procuresmart/backend-go/internal/service"
)

func NewRouter(svc *service.ProcurementService, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	// Health check reports catalog initialization status
	router.GET("/health", func(c *gin.Context) {
		if err := svc.Ready(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")
	{
		procurementHandler := handlers.NewProcurementHandler(svc)
		apiGroup.GET("/materials", procurementHandler.GetMaterials)
		apiGroup.GET("/predict", procurementHandler.PredictPrice)
		apiGroup.GET("/recommend_vendor", procurementHandler.RecommendVendor)

		feasibilityHandler := handlers.NewFeasibilityHandler(svc)
		apiGroup.POST("/evaluate", feasibilityHandler.EvaluateRequirement)
		apiGroup.GET("/alerts", feasibilityHandler.GetAlerts)
		apiGroup.POST("/refresh", feasibilityHandler.Refresh)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
