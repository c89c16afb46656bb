package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wookie-books-backend/internal/shared/middleware"
	"wookie-books-backend/pkg/container"
)

// SetupRouter wires the route table. Public book reads stay outside the
// auth group on purpose; that is the allow-list for anonymous access.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	router.GET("/health", healthCheckHandler(c))

	setupAuthRoutes(router, c)
	setupUserRoutes(router, c)
	setupBookRoutes(router, c)

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(router *gin.Engine, c *container.Container) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", c.UserHandler.Login)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(router *gin.Engine, c *container.Container) {
	// Registration is public.
	router.POST("/users", c.UserHandler.Register)

	me := router.Group("/users")
	me.Use(middleware.Auth(c.JWTManager))
	{
		me.GET("/me", c.UserHandler.GetProfile)
		me.PATCH("/me", c.UserHandler.UpdateProfile)
		me.DELETE("/me", c.UserHandler.DeleteAccount)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(router *gin.Engine, c *container.Container) {
	// Public reads bypass the request authenticator.
	router.GET("/books", c.BookHandler.List)
	router.GET("/books/:id", c.BookHandler.Get)

	books := router.Group("/books")
	books.Use(middleware.Auth(c.JWTManager))
	{
		books.POST("", c.BookHandler.Create)
		books.PATCH("/:id", c.BookHandler.Update)
		books.DELETE("/:id", c.BookHandler.Unpublish)
		books.POST("/:id/cover", c.BookHandler.UploadCover)
	}
}

// ========================================
// HEALTH
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "up"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			dbStatus = "down"
		}

		cacheStatus := "up"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "down"
		}

		status := http.StatusOK
		if dbStatus == "down" {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"name":     c.Config.App.Name,
			"version":  c.Config.App.Version,
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	}
}
