package auth

import (
	"github.com/adamstrass/payroll-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	g := r.Group("/auth")
	{
		g.POST("/sign-in", middleware.RateLimitByIP(0.5, 3), handler.SignIn)
		g.POST("/sign-out", middleware.Identity(), handler.SignOut)
		g.GET("/me", middleware.Identity(), handler.Me)
	}
}
