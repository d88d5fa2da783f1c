package main

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"book-catalog/internal/shared/middleware"
	"book-catalog/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	// Covers stored on the filesystem fallback are served directly.
	router.Static(localCoversRoute(c.Config.Local.BaseURL), c.Config.Local.Path)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthorRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupSubscriptionRoutes(v1, c)
		setupReportRoutes(v1, c)
	}

	return router
}

// localCoversRoute reduces the configured cover base URL to a route path.
// Behind a proxy the base URL may be absolute; local covers are still served
// on its path component.
func localCoversRoute(baseURL string) string {
	path := baseURL
	if u, err := url.Parse(baseURL); err == nil {
		path = u.Path
	}
	if path == "" {
		path = "/uploads/covers"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authors := v1.Group("/authors")
	{
		authors.POST("", c.AuthorHandler.Create)
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/:id", c.AuthorHandler.Get)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.POST("", c.BookHandler.Create)
		books.GET("", c.BookHandler.List)
		books.GET("/:id", c.BookHandler.Get)
		books.PUT("/:id", c.BookHandler.Update)
		books.DELETE("/:id", c.BookHandler.Delete)
	}
}

func setupSubscriptionRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/subscriptions", c.SubscriptionHandler.Subscribe)
}

func setupReportRoutes(v1 *gin.RouterGroup, c *container.Container) {
	reports := v1.Group("/reports")
	{
		reports.GET("/top-authors", c.ReportHandler.TopAuthors)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "ok"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			dbStatus = "unavailable"
		}

		cacheStatus := "ok"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "unavailable"
		}

		storageStatus := "ok"
		if c.Storage.Degraded() {
			storageStatus = "degraded"
		}

		status := http.StatusOK
		if dbStatus != "ok" {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":   dbStatus,
			"database": dbStatus,
			"cache":    cacheStatus,
			"storage":  storageStatus,
		})
	}
}
