package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"ridetogether.backend/internal/domain/repositories"
	"ridetogether.backend/internal/interfaces/http/handlers"
	"ridetogether.backend/internal/interfaces/http/middleware"
	"ridetogether.backend/pkg/jwt"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	rideHandler    *handlers.RideHandler
	contactHandler *handlers.ContactHandler
	jwtService     *jwt.JWTService
	userRepo       repositories.UserRepository
	rideRepo       repositories.RideRepository
}

func newRouter(d routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	registerAPIV1Routes(r, d)
	return r
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	authRequired := middleware.AuthMiddleware(d.jwtService, d.userRepo)

	v1 := r.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/send-otp", d.authHandler.SendOTP)
			auth.POST("/verify-otp", d.authHandler.VerifyOTP)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/forgot-password", d.authHandler.ForgotPassword)
			auth.POST("/verify-reset-otp", d.authHandler.VerifyResetOTP)
			auth.POST("/reset-password", d.authHandler.ResetPassword)
			auth.GET("/profile", authRequired, d.authHandler.GetProfile)
			auth.PUT("/profile", authRequired, d.authHandler.UpdateProfile)
		}

		// Ride routes
		rides := v1.Group("/rides")
		{
			// Public browse and search
			rides.GET("", d.rideHandler.List)
			rides.GET("/filter", d.rideHandler.Filter)

			// Authenticated
			rides.POST("", authRequired, d.rideHandler.Create)
			rides.GET("/myrides", authRequired, d.rideHandler.ListMine)

			// Admin (registered before /:id so the literal segments match first)
			rides.GET("/admin/all", authRequired, middleware.RequireAdmin(), d.rideHandler.AdminList)
			rides.DELETE("/admin/:id", authRequired, middleware.RequireAdmin(), d.rideHandler.AdminDelete)
			rides.PUT("/:id/flag", authRequired, middleware.RequireAdmin(), d.rideHandler.Flag)
			rides.PUT("/:id/moderate", authRequired, middleware.RequireAdmin(), d.rideHandler.Moderate)

			// Owner-gated
			rides.GET("/:id", d.rideHandler.Get)
			rides.PUT("/:id", authRequired, middleware.RequireRideOwner(d.rideRepo), d.rideHandler.Update)
			rides.DELETE("/:id", authRequired, middleware.RequireRideOwner(d.rideRepo), d.rideHandler.Delete)
		}

		// Contact relay
		v1.POST("/contact", d.contactHandler.Submit)
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "ridetogether-backend",
			"version": "0.1.0",
		})
	})
}
