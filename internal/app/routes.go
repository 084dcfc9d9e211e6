package app

import (
	"net/http"

	"github.com/formify/core/internal/middleware"
	"github.com/formify/core/internal/modules/auth/user"
	"github.com/formify/core/internal/modules/form/block"
	"github.com/formify/core/internal/modules/form/form"
	"github.com/formify/core/internal/modules/form/template"
	"github.com/formify/core/internal/pkg/metrics"
	"github.com/formify/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1"

var appInfo = gin.H{
	"name":    "formify-core",
	"version": "1.0.0",
}

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group(apiPrefix)
	// Identity first so the limiter can let signed-in callers through.
	api.Use(middleware.OptionalAuth(db))
	if a.redis != nil {
		if a.cfg.RateLimit.Enable {
			api.Use(middleware.RateLimit(a.redis.Raw(), a.cfg.RateLimit.RequestsPerSecond, a.logger))
		}
		api.Use(middleware.Idempotence(a.redis.Raw()))
	}

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })

	// Accounts
	user.NewHandler(user.NewService(db, user.WithLogger(a.logger))).RegisterRoutes(api, authMW)

	// Blocks and templates
	blockSvc := block.NewService(db, block.WithLogger(a.logger))
	block.NewHandler(blockSvc).RegisterRoutes(api, authMW)

	templateSvc := template.NewService(blockSvc, template.WithLogger(a.logger))
	template.NewHandler(templateSvc).RegisterRoutes(api)

	// Forms and responses
	formSvc := form.NewService(db, form.WithTemplates(templateSvc), form.WithLogger(a.logger))
	form.NewHandler(formSvc).RegisterRoutes(api, authMW)
}
