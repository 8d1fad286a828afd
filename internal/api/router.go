package api

import (
	"github.com/gin-gonic/gin"

	"github.com/gr3edydevel0per/N-Layer-API/internal/handler"
	"github.com/gr3edydevel0per/N-Layer-API/internal/middleware"
)

func SetupRouter(
	userHandler *handler.UserHandler,
	gadgetHandler *handler.GadgetHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter middleware.RateLimiter,
) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(rateLimiter.Middleware())

	// User routes: register/login are public, the rest needs a fresh
	// access token.
	users := api.Group("/users")
	{
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)

		users.POST("/generate-token", authMiddleware.RequireAccessToken(), userHandler.GenerateToken)
		users.GET("/profile", authMiddleware.RequireAccessToken(), userHandler.GetProfile)
	}

	// Gadget routes are guarded by the long-lived API token.
	gadgets := api.Group("/gadgets")
	gadgets.Use(authMiddleware.RequireApiToken())
	{
		gadgets.GET("", gadgetHandler.Fetch)
		gadgets.POST("", gadgetHandler.Register)
		gadgets.DELETE("", gadgetHandler.Delete)
		gadgets.PATCH("", gadgetHandler.Patch)
		gadgets.POST("/:id/self-destruct", gadgetHandler.SelfDestruct)
	}

	return r
}
