package attendance

import (
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/middleware"
	"github.com/sagarkumargupta/retailops-staff-app-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	att := r.Group("/attendance")
	att.Use(middleware.AuthMiddleware())
	{
		att.POST("", middleware.RBACAuthorize(rbacService, "attendance", "mark"), handler.Mark)
		att.GET("/:email", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.GetByRange)
		att.GET("/:email/summary/:month", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.GetMonthlySummary)
	}
}
