package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/usedcar-api/internal/handler"
	"github.com/noah-isme/usedcar-api/internal/middleware"
	"github.com/noah-isme/usedcar-api/internal/service"
	"github.com/noah-isme/usedcar-api/pkg/config"
	"github.com/noah-isme/usedcar-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/usedcar-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/usedcar-api/pkg/middleware/requestid"
)

type routeDeps struct {
	cars     *handler.CarHandler
	exports  *handler.ExportHandler
	sellers  *handler.SellerHandler
	listings *handler.ListingHandler
	account  *handler.AccountHandler
	ops      *handler.MetricsHandler
}

func newRouter(cfg *config.Config, logr *zap.Logger, metrics *service.MetricsService, deps routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(middleware.Identity())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics, "/metrics", "/health", "/ready"))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", deps.ops.Health)
	r.GET("/ready", deps.ops.Ready)
	r.GET("/metrics", deps.ops.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/metrics/summary", deps.ops.Summary)

	cars := api.Group("/cars")
	cars.GET("", deps.cars.Search)
	cars.GET("/filters", deps.cars.Filters)
	cars.GET("/export", deps.exports.Export)
	cars.GET("/:id", deps.cars.Detail)

	api.GET("/browse/:dimension", deps.cars.Browse)
	api.GET("/sellers/:id", deps.sellers.Profile)

	me := api.Group("/me", middleware.RequireIdentity())
	me.GET("/saved", deps.account.ListSaved)
	me.POST("/saved", deps.account.Save)
	me.DELETE("/saved/:carId", deps.account.Unsave)
	me.GET("/enquiries", deps.account.SentEnquiries)
	me.POST("/enquiries", deps.account.SendEnquiry)
	me.GET("/enquiries/received", deps.account.ReceivedEnquiries)
	me.GET("/packages", deps.account.Packages)
	me.GET("/listings", deps.listings.List)
	me.POST("/listings", deps.listings.Create)
	me.PUT("/listings/:id", deps.listings.Update)
	me.DELETE("/listings/:id", deps.listings.Delete)
	me.POST("/listings/:id/sold", deps.listings.MarkSold)

	return r
}
