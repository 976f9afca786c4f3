package router

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/posting/config"
	_ "github.com/d60-Lab/posting/docs"
	"github.com/d60-Lab/posting/internal/api/handler"
	"github.com/d60-Lab/posting/internal/api/middleware"
)

// New 组装 gin 引擎与路由
func New(cfg *config.Config, h *handler.Handler) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery())
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/health", h.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	users := r.Group("/users")
	{
		users.POST("/:username/post", h.NewPost)
		users.PUT("/:username/follow", h.Follow)
		users.GET("/:username/completeWall", h.GetCompleteWall)
		users.GET("/:username/wall", h.GetWall)
		users.GET("/:username/completeTimeline", h.GetCompleteTimeline)
		users.GET("/:username/timeline", h.GetTimeline)
	}

	return r
}
