// Package router assembles the Gin engine from registered modules.
package router

import (
	"net/http"
	"time"

	apphttp "quotation_backend/internal/http"
	"quotation_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// New builds the HTTP engine, wires global middleware, and lets every
// registered module mount its routes.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(app))

	// Global rate limit: 100 requests per minute per IP.
	globalLimiter := httpkit.NewIPRateLimiter(rate.Limit(100.0/60.0), 100, app.Logger)
	engine.Use(globalLimiter.RateLimit())

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	engine.GET("/api/ready", func(c *gin.Context) {
		if app.Health != nil {
			if err := app.Health.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	adminMiddleware := httpkit.AdminAuthRequired(app.Config, app.Sessions)

	v1 := engine.Group("/api/v1")
	admin := v1.Group("/admin")
	admin.Use(adminMiddleware)

	routerCtx := &apphttp.RouterContext{
		Engine:          engine,
		V1:              v1,
		Admin:           admin,
		Config:          app.Config,
		AdminMiddleware: adminMiddleware,
		AuthRateLimiter: httpkit.NewAuthRateLimiter(app.Logger),
	}

	for _, module := range app.Modules {
		module.RegisterRoutes(routerCtx)
		app.Logger.Info("module_routes_registered", "module", module.Name())
	}

	return engine
}

func corsMiddleware(app *apphttp.App) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: app.Config.GetCORSAllowCreds(),
		MaxAge:           12 * time.Hour,
	}

	if app.Config.GetCORSAllowAll() {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = app.Config.GetCORSOrigins()
	}

	return cors.New(corsConfig)
}
