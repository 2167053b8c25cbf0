package salaryrequest

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
	requests := r.Group("/salary-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.GET("/store/:storeId", middleware.RBACAuthorize(rbacService, "salary_request", "read"), handler.GetAllByStore)
		requests.POST("", middleware.RBACAuthorize(rbacService, "salary_request", "create"), handler.Create)
		requests.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "salary_request", "approve"), handler.Approve)
		requests.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "salary_request", "approve"), handler.Reject)
	}
}
