// Package http wires the HTTP surface: routes, middleware, and the
// dependency container behind them.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"facturo/internal/interfaces/http/handlers"
	"facturo/internal/interfaces/http/middleware"
	"facturo/internal/shared/logger"
)

// RouterConfig holds the knobs the router needs from service configuration.
type RouterConfig struct {
	Mode           string
	AllowedOrigins []string
}

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Plan      *handlers.PlanHandler
	Resource  *handlers.ResourceHandler
	LimitInfo *handlers.LimitInfoHandler
}

// NewRouter builds the gin engine with all routes mounted.
func NewRouter(cfg RouterConfig, h Handlers, log logger.Interface) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(log))
	if len(cfg.AllowedOrigins) > 0 {
		router.Use(middleware.CORS(cfg.AllowedOrigins))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/plans", h.Plan.ListPlans)
		v1.GET("/plans/:slug", h.Plan.GetPlan)

		admin := v1.Group("/admin")
		{
			admin.PUT("/plans/:slug/limits", h.Plan.UpdatePlanLimits)
			admin.DELETE("/plans/:slug", h.Plan.DeletePlan)
		}

		companies := v1.Group("/companies/:companyID")
		{
			companies.GET("/:resourceType/limit-info", h.LimitInfo.GetLimitInfo)
			companies.GET("/:resourceType", h.Resource.ListResources)
			companies.POST("/:resourceType", h.Resource.CreateResource)
			companies.DELETE("/:resourceType/:resourceID", h.Resource.DeactivateResource)
			companies.POST("/:resourceType/:resourceID/reactivate", h.Resource.ReactivateResource)
		}
	}

	return router
}
