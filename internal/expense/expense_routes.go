package expense

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
	expenses := r.Group("/expenses")
	expenses.Use(middleware.AuthMiddleware())
	{
		expenses.GET("/store/:storeId", middleware.RBACAuthorize(rbacService, "expense", "read"), handler.GetAllByStore)
		expenses.POST("", middleware.RBACAuthorize(rbacService, "expense", "create"), handler.Create)
		expenses.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "expense", "approve"), handler.Approve)
		expenses.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "expense", "approve"), handler.Reject)
	}
}
