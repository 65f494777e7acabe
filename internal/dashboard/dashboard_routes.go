package dashboard

import (
	"github.com/adamstrass/payroll-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
) {
	g := r.Group("/dashboard")
	g.Use(middleware.Identity())
	g.Use(middleware.ContextLogger(logger))
	{
		g.GET("",
			middleware.RateLimitByIdentity(5, 20),
			handler.GetDashboard,
		)

		g.GET("/export",
			middleware.RateLimitByIdentity(1, 3),
			handler.ExportCSV,
		)

		g.PUT("/month",
			middleware.RateLimitByIdentity(2, 5),
			handler.SetSelectedMonth,
		)

		g.POST("/employees",
			middleware.RateLimitByIdentity(1, 3),
			handler.AddEmployee,
		)

		g.PUT("/employees/:id/paid",
			middleware.RateLimitByIdentity(2, 5),
			handler.SetPaid,
		)

		g.PUT("/employees/:id/payment-date",
			middleware.RateLimitByIdentity(2, 5),
			handler.SetPaymentDate,
		)

		g.POST("/mark-all-paid",
			middleware.RateLimitByIdentity(0.5, 2),
			handler.MarkAllPaid,
		)

		g.POST("/employees/:id/proofs",
			middleware.RateLimitByIdentity(0.5, 2),
			handler.AttachProof,
		)

		g.GET("/proofs/:proofId",
			middleware.RateLimitByIdentity(2, 5),
			handler.DownloadProof,
		)

		g.DELETE("/employees/:id/proofs/:proofId",
			middleware.RateLimitByIdentity(0.5, 2),
			handler.RemoveProof,
		)
	}
}
