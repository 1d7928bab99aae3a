package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tagshop/core/internal/middleware"
	"github.com/tagshop/core/internal/modules/admin"
	"github.com/tagshop/core/internal/modules/analytics"
	"github.com/tagshop/core/internal/modules/auth"
	"github.com/tagshop/core/internal/modules/billing"
	"github.com/tagshop/core/internal/modules/commerce/affiliatelink"
	"github.com/tagshop/core/internal/modules/commerce/product"
	"github.com/tagshop/core/internal/modules/content/category"
	"github.com/tagshop/core/internal/modules/content/post"
	"github.com/tagshop/core/internal/modules/content/render"
	"github.com/tagshop/core/internal/modules/dashboard"
	"github.com/tagshop/core/internal/modules/workspace"
	pkgredis "github.com/tagshop/core/internal/pkg/redis"
	"github.com/tagshop/core/internal/pkg/response"
)

const apiPrefix = "/api/v1"

var processStart = time.Now()

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "")
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	// OptionalAuth first so the rate limiter can tell visitors from members.
	r.Use(middleware.OptionalAuth())
	r.Use(middleware.RateLimit(rc.Raw()))
	r.Use(middleware.Idempotence(rc.Raw()))

	// Shared services
	workspaceSvc := workspace.NewService(db)
	postSvc := post.NewService(db, workspaceSvc)
	analyticsSvc := analytics.NewService(db, workspaceSvc, a.logger)

	api := r.Group(apiPrefix)

	api.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{
			"status": "ok",
			"uptime": time.Since(processStart).Truncate(time.Second).String(),
		})
	})

	auth.NewHandler(auth.NewService(db)).RegisterRoutes(api, authMW)
	workspace.NewHandler(workspaceSvc).RegisterRoutes(api, authMW)
	post.NewHandler(postSvc).RegisterRoutes(api, authMW)
	category.NewHandler(category.NewService(db, workspaceSvc)).RegisterRoutes(api, authMW)
	product.NewHandler(product.NewService(db, workspaceSvc)).RegisterRoutes(api, authMW)
	affiliatelink.NewHandler(affiliatelink.NewService(db, workspaceSvc)).RegisterRoutes(api, authMW)
	analytics.NewHandler(analyticsSvc).RegisterRoutes(api, authMW)
	render.NewHandler(render.NewService(postSvc, analyticsSvc)).RegisterRoutes(api)
	dashboard.NewHandler(dashboard.NewService(db, a.logger), a.cfg.BaseURL).RegisterRoutes(api, authMW)
	billing.NewHandler(billing.NewService(db), a.cfg.BillingWebhookSecret).RegisterRoutes(api, authMW)
	admin.NewHandler(admin.NewService(db)).RegisterRoutes(api, authMW)
}
